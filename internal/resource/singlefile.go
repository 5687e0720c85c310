package resource

import (
	"errors"
	"fmt"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
)

// SingleFileDirectoryPattern is the pattern of a directory format wrapping
// exactly one file. It is looked up as the directory format, and in addition
// coerces to and from the wrapped file's format, which lets it take part in
// transformations registered only for that file format.
type SingleFileDirectoryPattern struct {
	dir    *format.DirectoryFormat
	file   *format.Field
	asPath bool
}

// NewSingleFileDirectoryPattern returns the pattern of a single-file
// directory format. When asPath is set, results are delivered as the backing
// path rather than as a directory instance.
func NewSingleFileDirectoryPattern(dir *format.DirectoryFormat, asPath bool) (*SingleFileDirectoryPattern, error) {
	file, ok := dir.SingleFile()
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a single-file directory format", diagnostic.ErrConfiguration, dir.Name())
	}

	return &SingleFileDirectoryPattern{dir: dir, file: file, asPath: asPath}, nil
}

func (p *SingleFileDirectoryPattern) ViewType() format.ViewType { return p.dir.ViewType() }

// Inner returns the view type of the wrapped file's format.
func (p *SingleFileDirectoryPattern) Inner() format.ViewType { return p.file.Format().ViewType() }

func (p *SingleFileDirectoryPattern) Normalize(c format.Converter, view any) (any, error) {
	return normalizeInstance(p.dir, c, view)
}

func (p *SingleFileDirectoryPattern) Validate(view any) error {
	return validateInstance(p.dir, view)
}

// Deliver returns the backing path when the pattern was classified from a
// path view type.
func (p *SingleFileDirectoryPattern) Deliver(view any) (any, error) {
	if !p.asPath {
		return view, nil
	}

	inst, ok := view.(format.Instance)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a format instance", diagnostic.ErrTypeMismatch, view)
	}

	return inst.Backing(), nil
}

// InputCoercions are the identity, the read-only path, and unwrapping the
// single file.
func (p *SingleFileDirectoryPattern) InputCoercions() []Coercion {
	return []Coercion{identity(p.ViewType()), toPath(p.dir), p.unwrap()}
}

// OutputCoercions are the identity, opening a path, and wrapping a file into
// a new directory.
func (p *SingleFileDirectoryPattern) OutputCoercions() []Coercion {
	return []Coercion{identity(p.ViewType()), fromPath(p.dir), p.wrap()}
}

func (p *SingleFileDirectoryPattern) unwrap() Coercion {
	return Coercion{
		Kind:   CoercionInner,
		Bridge: p.Inner(),
		Apply: func(_ format.Converter, view any) (any, error) {
			inst, ok := view.(*format.DirectoryInstance)
			if !ok {
				return nil, fmt.Errorf("%w: %T is not a %s instance", diagnostic.ErrTypeMismatch, view, p.dir.Name())
			}

			bf, err := inst.File(p.file.Name())
			if err != nil {
				return nil, err
			}

			return bf.Open(), nil
		},
	}
}

func (p *SingleFileDirectoryPattern) wrap() Coercion {
	return Coercion{
		Kind:   CoercionInner,
		Bridge: p.Inner(),
		Apply: func(c format.Converter, view any) (out any, err error) {
			inst, err := format.NewDirectory(p.dir, c)
			if err != nil {
				return nil, err
			}

			defer func() {
				if err != nil {
					err = errors.Join(err, inst.Close())
				}
			}()

			bf, err := inst.File(p.file.Name())
			if err != nil {
				return nil, err
			}

			if err := bf.Set(view, p.Inner()); err != nil {
				return nil, err
			}

			return inst, nil
		},
	}
}
