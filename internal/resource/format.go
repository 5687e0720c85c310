package resource

import (
	"fmt"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
	"viewcast/internal/tmppath"
)

// FormatPattern is the pattern of a concrete file or directory format.
type FormatPattern struct {
	desc format.Descriptor
}

// NewFormatPattern returns the pattern of a file or directory format.
func NewFormatPattern(desc format.Descriptor) *FormatPattern {
	return &FormatPattern{desc: desc}
}

func (p *FormatPattern) ViewType() format.ViewType { return p.desc.ViewType() }

// Normalize opens strings and paths read-only as the pattern's format.
// Format instances are returned unchanged.
func (p *FormatPattern) Normalize(c format.Converter, view any) (any, error) {
	return normalizeInstance(p.desc, c, view)
}

// Validate requires an instance of the pattern's format whose content passes
// the format's own check.
func (p *FormatPattern) Validate(view any) error {
	return validateInstance(p.desc, view)
}

func (p *FormatPattern) Deliver(view any) (any, error) { return deliverAsIs(view) }

// InputCoercions are the identity and the read-only path of the instance.
func (p *FormatPattern) InputCoercions() []Coercion {
	return []Coercion{identity(p.ViewType()), toPath(p.desc)}
}

// OutputCoercions are the identity and opening a path as the format.
func (p *FormatPattern) OutputCoercions() []Coercion {
	return []Coercion{identity(p.ViewType()), fromPath(p.desc)}
}

func toPath(desc format.Descriptor) Coercion {
	return Coercion{
		Kind:   CoercionPath,
		Bridge: format.PathOf(desc),
		Apply: func(_ format.Converter, view any) (any, error) {
			inst, ok := view.(format.Instance)
			if !ok {
				return nil, fmt.Errorf("%w: %T is not a format instance", diagnostic.ErrTypeMismatch, view)
			}

			return tmppath.Borrow(inst.Backing()), nil
		},
	}
}

func fromPath(desc format.Descriptor) Coercion {
	return Coercion{
		Kind:   CoercionPath,
		Bridge: format.PathOf(desc),
		Apply: func(c format.Converter, view any) (any, error) {
			p, ok := view.(tmppath.Path)
			if !ok {
				return nil, fmt.Errorf("%w: %T is not a path", diagnostic.ErrTypeMismatch, view)
			}

			return adopt(desc, p, c), nil
		},
	}
}

// adopt opens p as desc, handing ownership of owned paths to the instance.
func adopt(desc format.Descriptor, p tmppath.Path, c format.Converter) format.Instance {
	switch d := desc.(type) {
	case *format.FileFormat:
		return format.AdoptFile(d, p)
	case *format.DirectoryFormat:
		return format.AdoptDirectory(d, p, c)
	default:
		panic(fmt.Sprintf("unexpected descriptor %T", desc))
	}
}

func normalizeInstance(desc format.Descriptor, c format.Converter, view any) (any, error) {
	switch v := view.(type) {
	case string:
		return adopt(desc, tmppath.NewInPath(v), c), nil
	case tmppath.Path:
		return adopt(desc, v, c), nil
	default:
		return view, nil
	}
}

func validateInstance(desc format.Descriptor, view any) error {
	inst, ok := view.(format.Instance)
	if !ok {
		return fmt.Errorf("%w: %T is not a %s instance", diagnostic.ErrTypeMismatch, view, desc.Name())
	}

	if inst.Descriptor().ViewType() != desc.ViewType() {
		return fmt.Errorf("%w: %s instance is not a %s", diagnostic.ErrTypeMismatch,
			inst.Descriptor().Name(), desc.Name())
	}

	return inst.Validate()
}
