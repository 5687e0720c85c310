package resource

import (
	"fmt"
	"reflect"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
)

// ObjectPattern is the pattern of plain Go values. Only the type check applies.
type ObjectPattern struct {
	vt format.ViewType
}

// NewObjectPattern returns the pattern of an object view type.
func NewObjectPattern(vt format.ViewType) *ObjectPattern {
	return &ObjectPattern{vt: vt}
}

func (p *ObjectPattern) ViewType() format.ViewType { return p.vt }

// Normalize returns view unchanged.
func (p *ObjectPattern) Normalize(_ format.Converter, view any) (any, error) { return view, nil }

// Validate requires the dynamic type of view to be the pattern's type, or to
// implement it when the pattern's type is an interface.
func (p *ObjectPattern) Validate(view any) error {
	want := p.vt.Type()
	got := reflect.TypeOf(view)

	switch {
	case got == want:
		return nil
	case got == nil:
		if want.Kind() == reflect.Interface {
			return nil
		}
	case want.Kind() == reflect.Interface && got.Implements(want):
		return nil
	}

	return fmt.Errorf("%w: %v is not a %s", diagnostic.ErrTypeMismatch, got, want)
}

func (p *ObjectPattern) Deliver(view any) (any, error) { return deliverAsIs(view) }

func (p *ObjectPattern) InputCoercions() []Coercion { return []Coercion{identity(p.vt)} }

func (p *ObjectPattern) OutputCoercions() []Coercion { return []Coercion{identity(p.vt)} }
