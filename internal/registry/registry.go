package registry

import (
	"fmt"
	"sort"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
	"viewcast/internal/match"
)

type pairKey struct {
	from, to format.ViewType
}

// Registry is an immutable set of formats and transformers.
type Registry struct {
	plugins      map[string]*Plugin
	formats      map[string]format.Descriptor
	transformers map[pairKey]*Transformer
}

// Build aggregates plugins into a Registry. Duplicate plugin names, format
// names and transformer pairs are reported together as a configuration error.
func Build(plugins ...*Plugin) (*Registry, error) {
	r := &Registry{
		plugins:      make(map[string]*Plugin),
		formats:      make(map[string]format.Descriptor),
		transformers: make(map[pairKey]*Transformer),
	}

	var diags diagnostic.Diagnostics

	for _, p := range plugins {
		if _, dup := r.plugins[p.Name]; dup {
			diags.AddError("duplicate_plugin", fmt.Sprintf("duplicate plugin %q", p.Name), p.Name, "")
			continue
		}

		r.plugins[p.Name] = p
	}

	for _, p := range plugins {
		if r.plugins[p.Name] != p {
			continue
		}

		r.integrate(p, &diags)
	}

	if err := diags.Wrap(diagnostic.ErrConfiguration); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Registry) integrate(p *Plugin, diags *diagnostic.Diagnostics) {
	for _, d := range p.Formats {
		if d == nil {
			diags.AddError("nil_format", "nil format", p.Name, "")
			continue
		}

		if existing, dup := r.formats[d.Name()]; dup {
			if existing != d {
				diags.AddError("duplicate_format", fmt.Sprintf("duplicate format %q", d.Name()), p.Name, "")
			}

			continue
		}

		r.formats[d.Name()] = d
	}

	for _, t := range p.Transformers {
		switch {
		case t.Func == nil:
			diags.AddError("nil_transformer", fmt.Sprintf("transformer %s has no function", t), p.Name, "")
			continue
		case t.From.IsZero() || t.To.IsZero():
			diags.AddError("invalid_transformer", fmt.Sprintf("transformer %s has an invalid view type", t), p.Name, "")
			continue
		}

		key := pairKey{from: t.From, to: t.To}
		if existing, dup := r.transformers[key]; dup {
			diags.AddError("duplicate_transformer",
				fmt.Sprintf("transformer from %s to %s already registered by %q", t.From, t.To, existing.Plugin),
				p.Name, "")

			continue
		}

		r.transformers[key] = t
	}
}

// Lookup returns the transformer registered for the ordered pair.
func (r *Registry) Lookup(from, to format.ViewType) (Func, bool) {
	t, ok := r.transformers[pairKey{from: from, to: to}]
	if !ok {
		return nil, false
	}

	return t.Func, true
}

// Format returns the format registered under name.
func (r *Registry) Format(name string) (format.Descriptor, bool) {
	d, ok := r.formats[name]
	return d, ok
}

// FileFormat returns the file format registered under name.
func (r *Registry) FileFormat(name string) (*format.FileFormat, bool) {
	ff, ok := r.formats[name].(*format.FileFormat)
	return ff, ok
}

// Formats returns every registered format sorted by name.
func (r *Registry) Formats() []format.Descriptor {
	out := make([]format.Descriptor, 0, len(r.formats))
	for _, d := range r.formats {
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })

	return out
}

// Transformers returns every registered transformer sorted by source then
// destination name.
func (r *Registry) Transformers() []*Transformer {
	out := make([]*Transformer, 0, len(r.transformers))
	for _, t := range r.transformers {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

// Plugins returns the plugin names in ascending order.
func (r *Registry) Plugins() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Suggest returns up to limit registered format names similar to name, best
// match first.
func (r *Registry) Suggest(name string, limit int) []string {
	names := make([]string, 0, len(r.formats))
	for n := range r.formats {
		names = append(names, n)
	}

	var out []string
	for _, s := range match.Suggest(name, names, limit) {
		out = append(out, s.Name)
	}

	return out
}
