package registry

import (
	"fmt"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
)

// Func converts a view of a transformer's source type into its destination
// type. The converter lets a transformer populate directory fields.
type Func func(c format.Converter, view any) (any, error)

// Transformer is a registered single-hop conversion.
type Transformer struct {
	From   format.ViewType
	To     format.ViewType
	Func   Func
	Plugin string
}

// String returns "From -> To".
func (t *Transformer) String() string {
	return t.From.String() + " -> " + t.To.String()
}

// Plugin groups the formats and transformers contributed by one package.
type Plugin struct {
	Name         string
	Version      string
	Formats      []format.Descriptor
	Transformers []*Transformer
}

// NewPlugin returns an empty plugin.
func NewPlugin(name, version string) *Plugin {
	return &Plugin{Name: name, Version: version}
}

// RegisterFormat declares formats provided by the plugin.
func (p *Plugin) RegisterFormat(descs ...format.Descriptor) {
	p.Formats = append(p.Formats, descs...)
}

// RegisterTransformer declares a transformer from one view type to another.
func (p *Plugin) RegisterTransformer(from, to format.ViewType, fn Func) {
	p.Transformers = append(p.Transformers, &Transformer{From: from, To: to, Func: fn, Plugin: p.Name})
}

// Typed adapts a typed conversion function to a Func. A view of any other
// type is a type mismatch.
func Typed[In, Out any](fn func(c format.Converter, in In) (Out, error)) Func {
	return func(c format.Converter, view any) (any, error) {
		in, ok := view.(In)
		if !ok {
			var zero In
			return nil, fmt.Errorf("%w: transformer expects %T, got %T", diagnostic.ErrTypeMismatch, zero, view)
		}

		return fn(c, in)
	}
}
