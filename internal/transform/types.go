package transform

import (
	"fmt"

	"viewcast/internal/common"
	"viewcast/internal/format"
	"viewcast/internal/registry"
	"viewcast/internal/resource"
)

// Strategy names the resolution step that produced a plan.
type Strategy int

const (
	// StrategyDirect - transformer registered from source to destination.
	StrategyDirect Strategy = iota
	// StrategyInputCoercion - source coerced to a bridge before the transformer.
	StrategyInputCoercion
	// StrategyDoubleCoercion - single-file directory unwrapped and rewrapped.
	StrategyDoubleCoercion
	// StrategyOutputCoercion - transformer result coerced to the destination.
	StrategyOutputCoercion
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyInputCoercion:
		return "input_coercion"
	case StrategyDoubleCoercion:
		return "double_coercion"
	case StrategyOutputCoercion:
		return "output_coercion"
	default:
		return common.UnknownStr
	}
}

// Plan describes a resolved transformation.
type Plan struct {
	// Source and Destination are the view types of the patterns resolved.
	Source      format.ViewType
	Destination format.ViewType
	// Strategy is the step that found the transformer.
	Strategy Strategy
	// Input and Output are the coercions around the transformer; either may
	// be the identity.
	Input  resource.Coercion
	Output resource.Coercion
	// Transformer converts Input.Bridge into Output.Bridge.
	Transformer registry.Func
	// Identity is true when no registered transformer is involved.
	Identity bool
}

// String renders the plan as a chain, e.g.
// "IntSequenceDirectoryFormat =inner=> IntSequenceFormat -> []int".
func (p *Plan) String() string {
	s := p.Source.String()

	if !p.Input.IsIdentity() {
		s += fmt.Sprintf(" =%s=> %s", p.Input.Kind, p.Input.Bridge)
	}

	if p.Identity {
		s += " -> (identity)"
	} else {
		s += " -> " + p.Output.Bridge.String()
	}

	if !p.Output.IsIdentity() {
		s += fmt.Sprintf(" =%s=> %s", p.Output.Kind, p.Destination)
	}

	return s
}

// Lookup is the transformer registry as seen by the resolver.
type Lookup interface {
	Lookup(from, to format.ViewType) (registry.Func, bool)
}
