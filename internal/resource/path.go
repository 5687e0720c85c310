package resource

import (
	"fmt"
	"os"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
	"viewcast/internal/tmppath"
)

// PathPattern is the pattern of a bare filesystem path typed to a format.
type PathPattern struct {
	vt   format.ViewType
	desc format.Descriptor
}

// NewPathPattern returns the pattern of a path view type.
func NewPathPattern(vt format.ViewType) *PathPattern {
	return &PathPattern{vt: vt, desc: vt.Format()}
}

func (p *PathPattern) ViewType() format.ViewType { return p.vt }

// Normalize turns strings into read-only paths and format instances of the
// pattern's format into their backing path.
func (p *PathPattern) Normalize(_ format.Converter, view any) (any, error) {
	switch v := view.(type) {
	case string:
		return tmppath.NewInPath(v), nil
	case format.Instance:
		if v.Descriptor().ViewType() == p.desc.ViewType() {
			return v.Backing(), nil
		}
	}

	return view, nil
}

// Validate requires an existing path. A directory format requires a
// directory, a file format a regular file.
func (p *PathPattern) Validate(view any) error {
	path, ok := view.(tmppath.Path)
	if !ok {
		return fmt.Errorf("%w: %T is not a path", diagnostic.ErrTypeMismatch, view)
	}

	info, err := os.Stat(path.String())
	if err != nil {
		return fmt.Errorf("validate %s: %w", p.vt, err)
	}

	_, wantDir := p.desc.(*format.DirectoryFormat)
	if info.IsDir() != wantDir {
		var d diagnostic.Diagnostics
		if wantDir {
			d.AddError(diagnostic.CodeNotADirectory, "expected a directory", p.desc.Name(), path.String())
		} else {
			d.AddError(diagnostic.CodeInvalidContent, "expected a file, found a directory", p.desc.Name(), path.String())
		}

		return diagnostic.NewStructuralError(p.desc.Name(), path.String(), d)
	}

	return nil
}

func (p *PathPattern) Deliver(view any) (any, error) { return deliverAsIs(view) }

// InputCoercions are the identity and opening the path as its format.
func (p *PathPattern) InputCoercions() []Coercion {
	return []Coercion{
		identity(p.vt),
		{
			Kind:   CoercionOpen,
			Bridge: p.desc.ViewType(),
			Apply: func(c format.Converter, view any) (any, error) {
				path, ok := view.(tmppath.Path)
				if !ok {
					return nil, fmt.Errorf("%w: %T is not a path", diagnostic.ErrTypeMismatch, view)
				}

				return adopt(p.desc, path, c), nil
			},
		},
	}
}

// OutputCoercions are the identity and taking the backing path of an
// instance of the pattern's format. Ownership of an owned path travels with it.
func (p *PathPattern) OutputCoercions() []Coercion {
	return []Coercion{
		identity(p.vt),
		{
			Kind:   CoercionOpen,
			Bridge: p.desc.ViewType(),
			Apply: func(_ format.Converter, view any) (any, error) {
				inst, ok := view.(format.Instance)
				if !ok {
					return nil, fmt.Errorf("%w: %T is not a format instance", diagnostic.ErrTypeMismatch, view)
				}

				return inst.Backing(), nil
			},
		},
	}
}
