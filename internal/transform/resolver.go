package transform

import (
	"errors"
	"fmt"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
	"viewcast/internal/registry"
	"viewcast/internal/resource"
)

// ResolutionConfig holds configuration for the resolver.
type ResolutionConfig struct {
	// Logger receives debug output for every resolution. Nil disables logging.
	Logger *zap.Logger
	// DisableCache turns off memoisation of resolved plans.
	DisableCache bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		Logger:       zap.NewNop(),
		DisableCache: false,
	}
}

// Resolver finds and composes transformations between view types.
// It implements format.Converter, so directory instances created with it can
// read and write their members through the same registry.
type Resolver struct {
	registry Lookup
	logger   *zap.Logger
	// plans caches resolutions by view type pair; the registry is immutable
	// after build, so entries never expire.
	plans *cache.Cache
}

type resolved struct {
	src  resource.Pattern
	dst  resource.Pattern
	plan *Plan
}

// NewResolver creates a new Resolver over a transformer registry.
func NewResolver(reg Lookup, config ResolutionConfig) *Resolver {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Resolver{
		registry: reg,
		logger:   logger,
	}

	if !config.DisableCache {
		r.plans = cache.New(cache.NoExpiration, 0)
	}

	return r
}

// Plan resolves a transformation between two patterns without composing it.
func (r *Resolver) Plan(src, dst resource.Pattern) (*Plan, error) {
	from, to := src.ViewType(), dst.ViewType()

	plan := r.search(src, dst)
	if plan == nil {
		r.logger.Debug("no transformation",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)

		return nil, fmt.Errorf("%w from %s to %s", diagnostic.ErrNoTransformation, from, to)
	}

	r.logger.Debug("resolved transformation",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("strategy", plan.Strategy),
		zap.Stringer("plan", plan),
	)

	return plan, nil
}

// Resolve finds a transformation between two patterns and returns the
// composed conversion.
func (r *Resolver) Resolve(src, dst resource.Pattern) (format.Conversion, error) {
	plan, err := r.Plan(src, dst)
	if err != nil {
		return nil, err
	}

	return r.compose(src, dst, plan), nil
}

// Explain classifies both view types and returns the plan that Convert would
// use.
func (r *Resolver) Explain(from, to format.ViewType) (*Plan, error) {
	res, err := r.resolve(from, to)
	if err != nil {
		return nil, err
	}

	return res.plan, nil
}

// Convert classifies both view types and returns the composed conversion.
func (r *Resolver) Convert(from, to format.ViewType) (format.Conversion, error) {
	res, err := r.resolve(from, to)
	if err != nil {
		return nil, err
	}

	return r.compose(res.src, res.dst, res.plan), nil
}

// Transform converts a single view.
func (r *Resolver) Transform(view any, from, to format.ViewType) (any, error) {
	conv, err := r.Convert(from, to)
	if err != nil {
		return nil, err
	}

	return conv(view)
}

func (r *Resolver) resolve(from, to format.ViewType) (*resolved, error) {
	key := from.Key() + "->" + to.Key()

	if r.plans != nil {
		if v, ok := r.plans.Get(key); ok {
			return v.(*resolved), nil
		}
	}

	src, err := resource.Classify(from)
	if err != nil {
		return nil, err
	}

	dst, err := resource.Classify(to)
	if err != nil {
		return nil, err
	}

	plan, err := r.Plan(src, dst)
	if err != nil {
		return nil, err
	}

	res := &resolved{src: src, dst: dst, plan: plan}
	if r.plans != nil {
		r.plans.Set(key, res, cache.NoExpiration)
	}

	return res, nil
}

// search tries the strategies in order; the first hit wins.
func (r *Resolver) search(src, dst resource.Pattern) *Plan {
	from, to := src.ViewType(), dst.ViewType()
	inID, outID := identityOf(src.InputCoercions(), from), identityOf(dst.OutputCoercions(), to)

	newPlan := func(s Strategy, in, out resource.Coercion, fn registry.Func) *Plan {
		return &Plan{
			Source:      from,
			Destination: to,
			Strategy:    s,
			Input:       in,
			Output:      out,
			Transformer: fn,
		}
	}

	// 1. direct
	if from == to {
		p := newPlan(StrategyDirect, inID, outID, identityFunc)
		p.Identity = true

		return p
	}

	if fn, ok := r.registry.Lookup(from, to); ok {
		return newPlan(StrategyDirect, inID, outID, fn)
	}

	// 2. coerce the source
	for _, in := range src.InputCoercions() {
		if in.IsIdentity() {
			continue
		}

		if fn, ok := r.lookup(in.Bridge, to); ok {
			return newPlan(StrategyInputCoercion, in, outID, fn)
		}
	}

	// 3. unwrap and rewrap single-file directories
	if isSingleFile(src) && isSingleFile(dst) {
		for _, in := range src.InputCoercions() {
			if in.Kind != resource.CoercionInner {
				continue
			}

			for _, out := range dst.OutputCoercions() {
				if out.Kind != resource.CoercionInner {
					continue
				}

				if fn, ok := r.lookup(in.Bridge, out.Bridge); ok {
					return newPlan(StrategyDoubleCoercion, in, out, fn)
				}
			}
		}
	}

	// 4. coerce the result
	for _, out := range dst.OutputCoercions() {
		if out.IsIdentity() {
			continue
		}

		if fn, ok := r.lookup(from, out.Bridge); ok {
			return newPlan(StrategyOutputCoercion, inID, out, fn)
		}
	}

	return nil
}

// lookup treats equal view types as the identity.
func (r *Resolver) lookup(from, to format.ViewType) (registry.Func, bool) {
	if from == to {
		return identityFunc, true
	}

	return r.registry.Lookup(from, to)
}

func (r *Resolver) compose(src, dst resource.Pattern, plan *Plan) format.Conversion {
	return func(view any) (any, error) {
		v, err := src.Normalize(r, view)
		if err != nil {
			return nil, err
		}

		if err := src.Validate(v); err != nil {
			return nil, err
		}

		if v, err = plan.Input.Apply(r, v); err != nil {
			return nil, err
		}

		res, err := plan.Transformer(r, v)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", plan, err)
		}

		wrapped, err := plan.Output.Apply(r, res)
		if err != nil {
			return nil, discard(err, res, v)
		}

		out, err := dst.Normalize(r, wrapped)
		if err != nil {
			return nil, discard(err, wrapped, v)
		}

		if err := dst.Validate(out); err != nil {
			return nil, discard(err, out, v)
		}

		return dst.Deliver(out)
	}
}

// discard closes result when it is a format instance produced by the
// conversion rather than the input handed to it, and returns err.
func discard(err error, result, input any) error {
	inst, ok := result.(format.Instance)
	if !ok {
		return err
	}

	if in, ok := input.(format.Instance); ok && in == inst {
		return err
	}

	return errors.Join(err, inst.Close())
}

func identityFunc(_ format.Converter, view any) (any, error) { return view, nil }

func identityOf(coercions []resource.Coercion, vt format.ViewType) resource.Coercion {
	for _, c := range coercions {
		if c.IsIdentity() {
			return c
		}
	}

	return resource.Coercion{Kind: resource.CoercionIdentity, Bridge: vt, Apply: identityFunc}
}

func isSingleFile(p resource.Pattern) bool {
	_, ok := p.(*resource.SingleFileDirectoryPattern)
	return ok
}
