package resource

import (
	"viewcast/internal/common"
	"viewcast/internal/format"
)

// CoercionKind describes how a coercion bridges a pattern.
type CoercionKind int

const (
	// CoercionIdentity leaves the view unchanged; the bridge is the pattern's own view type.
	CoercionIdentity CoercionKind = iota
	// CoercionOpen opens a bare path as its backing format (or the reverse).
	CoercionOpen
	// CoercionPath exposes a format instance as a read-only path (or the reverse).
	CoercionPath
	// CoercionInner unwraps a single-file directory to its file (or wraps a file).
	CoercionInner
)

// String returns a human-readable coercion name.
func (k CoercionKind) String() string {
	switch k {
	case CoercionIdentity:
		return "identity"
	case CoercionOpen:
		return "open"
	case CoercionPath:
		return "path"
	case CoercionInner:
		return "inner"
	default:
		return common.UnknownStr
	}
}

// CoerceFunc applies a coercion. The converter is handed to instances that
// the coercion opens or creates.
type CoerceFunc func(c format.Converter, view any) (any, error)

// Coercion is a local conversion between a pattern and a bridge view type.
// Input coercions map a pattern value to a Bridge value; output coercions map
// a Bridge value to a pattern value.
type Coercion struct {
	Kind   CoercionKind
	Bridge format.ViewType
	Apply  CoerceFunc
}

// IsIdentity reports whether the coercion leaves views unchanged.
func (c Coercion) IsIdentity() bool { return c.Kind == CoercionIdentity }

// Pattern is the strategy bound to one view type.
type Pattern interface {
	// ViewType returns the view type used for transformer lookups.
	ViewType() format.ViewType
	// Normalize converts loosely typed input into the canonical shape.
	Normalize(c format.Converter, view any) (any, error)
	// Validate checks the canonical value's type and content.
	Validate(view any) error
	// Deliver turns a canonical value into the value handed back to callers.
	Deliver(view any) (any, error)
	// InputCoercions lists the bridges this pattern can be read through.
	InputCoercions() []Coercion
	// OutputCoercions lists the bridges this pattern can be produced from.
	OutputCoercions() []Coercion
}

func identity(vt format.ViewType) Coercion {
	return Coercion{
		Kind:   CoercionIdentity,
		Bridge: vt,
		Apply:  func(_ format.Converter, view any) (any, error) { return view, nil },
	}
}

func deliverAsIs(view any) (any, error) { return view, nil }
