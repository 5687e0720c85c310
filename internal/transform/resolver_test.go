package transform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
	"viewcast/internal/registry"
	"viewcast/internal/resource"
)

type fakeRegistry map[[2]format.ViewType]registry.Func

func (f fakeRegistry) Lookup(from, to format.ViewType) (registry.Func, bool) {
	fn, ok := f[[2]format.ViewType{from, to}]
	return fn, ok
}

func (f fakeRegistry) add(from, to format.ViewType) fakeRegistry {
	name := from.String() + "->" + to.String()
	f[[2]format.ViewType{from, to}] = func(_ format.Converter, view any) (any, error) {
		return name, nil
	}

	return f
}

func anything(io.Reader) error { return nil }

var (
	fileA = format.MustFileFormat("A", anything)
	fileB = format.MustFileFormat("B", anything)
	dirA  = format.MustSingleFileDirectory("DirA", "a.txt", fileA)
	dirB  = format.MustSingleFileDirectory("DirB", "b.txt", fileB)
	multi = format.NewSchema("Multi").
		File("a", "a.txt", fileA).
		File("b", "b.txt", fileB).
		MustBuild()
)

func TestStrategyString(t *testing.T) {
	tests := []struct {
		strategy Strategy
		expected string
	}{
		{StrategyDirect, "direct"},
		{StrategyInputCoercion, "input_coercion"},
		{StrategyDoubleCoercion, "double_coercion"},
		{StrategyOutputCoercion, "output_coercion"},
		{Strategy(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.strategy.String())
		})
	}
}

func TestResolverStrategies(t *testing.T) {
	tests := []struct {
		name     string
		registry fakeRegistry
		from, to format.ViewType
		strategy Strategy
		input    resource.CoercionKind
		output   resource.CoercionKind
	}{
		{
			name:     "direct",
			registry: fakeRegistry{}.add(dirA.ViewType(), dirB.ViewType()),
			from:     dirA.ViewType(),
			to:       dirB.ViewType(),
			strategy: StrategyDirect,
		},
		{
			name:     "unwrap source",
			registry: fakeRegistry{}.add(fileA.ViewType(), dirB.ViewType()),
			from:     dirA.ViewType(),
			to:       dirB.ViewType(),
			strategy: StrategyInputCoercion,
			input:    resource.CoercionInner,
		},
		{
			name: "path before unwrap",
			registry: fakeRegistry{}.
				add(fileA.ViewType(), dirB.ViewType()).
				add(format.PathOf(dirA), dirB.ViewType()),
			from:     dirA.ViewType(),
			to:       dirB.ViewType(),
			strategy: StrategyInputCoercion,
			input:    resource.CoercionPath,
		},
		{
			name:     "unwrap and wrap",
			registry: fakeRegistry{}.add(fileA.ViewType(), fileB.ViewType()),
			from:     dirA.ViewType(),
			to:       dirB.ViewType(),
			strategy: StrategyDoubleCoercion,
			input:    resource.CoercionInner,
			output:   resource.CoercionInner,
		},
		{
			name:     "wrap result",
			registry: fakeRegistry{}.add(dirA.ViewType(), fileB.ViewType()),
			from:     dirA.ViewType(),
			to:       dirB.ViewType(),
			strategy: StrategyOutputCoercion,
			output:   resource.CoercionInner,
		},
		{
			name: "input coercion before double coercion",
			registry: fakeRegistry{}.
				add(fileA.ViewType(), fileB.ViewType()).
				add(fileA.ViewType(), dirB.ViewType()),
			from:     dirA.ViewType(),
			to:       dirB.ViewType(),
			strategy: StrategyInputCoercion,
			input:    resource.CoercionInner,
		},
		{
			name: "double coercion before output coercion",
			registry: fakeRegistry{}.
				add(fileA.ViewType(), fileB.ViewType()).
				add(dirA.ViewType(), fileB.ViewType()),
			from:     dirA.ViewType(),
			to:       dirB.ViewType(),
			strategy: StrategyDoubleCoercion,
			input:    resource.CoercionInner,
			output:   resource.CoercionInner,
		},
		{
			name:     "open path as format",
			registry: fakeRegistry{}.add(fileA.ViewType(), fileB.ViewType()),
			from:     format.PathOf(fileA),
			to:       fileB.ViewType(),
			strategy: StrategyInputCoercion,
			input:    resource.CoercionOpen,
		},
		{
			name:     "format as path",
			registry: fakeRegistry{}.add(format.PathOf(fileA), fileB.ViewType()),
			from:     fileA.ViewType(),
			to:       fileB.ViewType(),
			strategy: StrategyInputCoercion,
			input:    resource.CoercionPath,
		},
		{
			name:     "result as path",
			registry: fakeRegistry{}.add(format.ObjectOf[int](), fileB.ViewType()),
			from:     format.ObjectOf[int](),
			to:       format.PathOf(fileB),
			strategy: StrategyOutputCoercion,
			output:   resource.CoercionOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.registry, DefaultConfig())

			plan, err := r.Explain(tt.from, tt.to)
			require.NoError(t, err)
			t.Log(plan)

			assert.Equal(t, tt.strategy, plan.Strategy)
			assert.Equal(t, tt.input, plan.Input.Kind)
			assert.Equal(t, tt.output, plan.Output.Kind)
			assert.False(t, plan.Identity)
		})
	}
}

func TestResolverNoDoubleCoercionOutsideSingleFile(t *testing.T) {
	reg := fakeRegistry{}.add(fileA.ViewType(), fileB.ViewType())
	r := NewResolver(reg, DefaultConfig())

	_, err := r.Explain(multi.ViewType(), dirB.ViewType())
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrNoTransformation)
	assert.Contains(t, err.Error(), "Multi")
	assert.Contains(t, err.Error(), "DirB")
}

func TestResolverIdentity(t *testing.T) {
	r := NewResolver(fakeRegistry{}, DefaultConfig())

	plan, err := r.Explain(format.ObjectOf[int](), format.ObjectOf[int]())
	require.NoError(t, err)
	assert.True(t, plan.Identity)
	assert.Equal(t, StrategyDirect, plan.Strategy)

	out, err := r.Transform(5, format.ObjectOf[int](), format.ObjectOf[int]())
	require.NoError(t, err)
	assert.Equal(t, 5, out)
}

func TestResolverRunsTransformer(t *testing.T) {
	reg := fakeRegistry{
		{format.ObjectOf[int](), format.ObjectOf[string]()}: registry.Typed(
			func(_ format.Converter, in int) (string, error) { return fmt.Sprint(in * 2), nil },
		),
	}
	r := NewResolver(reg, DefaultConfig())

	out, err := r.Transform(21, format.ObjectOf[int](), format.ObjectOf[string]())
	require.NoError(t, err)
	assert.Equal(t, "42", out)

	_, err = r.Transform("21", format.ObjectOf[int](), format.ObjectOf[string]())
	assert.ErrorIs(t, err, diagnostic.ErrTypeMismatch)
}

func TestResolverRejectsWrongResult(t *testing.T) {
	reg := fakeRegistry{}.add(format.ObjectOf[int](), format.ObjectOf[float64]())
	r := NewResolver(reg, DefaultConfig())

	// the fake transformer yields a string
	_, err := r.Transform(1, format.ObjectOf[int](), format.ObjectOf[float64]())
	assert.ErrorIs(t, err, diagnostic.ErrTypeMismatch)
}

func TestResolverClosesRejectedResult(t *testing.T) {
	strict := format.MustFileFormat("Strict", func(io.Reader) error { return errors.New("rejected") })

	var written string

	reg := fakeRegistry{
		{format.ObjectOf[int](), strict.ViewType()}: registry.Typed(
			func(_ format.Converter, in int) (*format.FileInstance, error) {
				fi, err := format.NewFile(strict)
				if err != nil {
					return nil, err
				}

				written = fi.Path()

				return fi, os.WriteFile(written, []byte(fmt.Sprintln(in)), 0o644)
			},
		),
	}
	r := NewResolver(reg, DefaultConfig())

	_, err := r.Transform(1, format.ObjectOf[int](), strict.ViewType())
	require.ErrorIs(t, err, diagnostic.ErrStructural)
	require.NotEmpty(t, written)
	assert.NoFileExists(t, written, "a result failing validation is removed")
}

func TestResolverKeepsRejectedInput(t *testing.T) {
	strict := format.MustFileFormat("Strict", func(io.Reader) error { return errors.New("rejected") })
	r := NewResolver(fakeRegistry{}, DefaultConfig())

	p := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(p, []byte("1\n"), 0o644))

	_, err := r.Transform(p, strict.ViewType(), strict.ViewType())
	require.ErrorIs(t, err, diagnostic.ErrStructural)
	assert.FileExists(t, p)
}

func TestResolverMalformedViewType(t *testing.T) {
	r := NewResolver(fakeRegistry{}, DefaultConfig())

	_, err := r.Convert(format.ViewType{}, format.ObjectOf[int]())
	assert.ErrorIs(t, err, diagnostic.ErrConfiguration)
}

func TestResolverCache(t *testing.T) {
	reg := fakeRegistry{}.add(fileA.ViewType(), fileB.ViewType())

	cached := NewResolver(reg, DefaultConfig())
	p1, err := cached.Explain(dirA.ViewType(), dirB.ViewType())
	require.NoError(t, err)
	p2, err := cached.Explain(dirA.ViewType(), dirB.ViewType())
	require.NoError(t, err)
	assert.Same(t, p1, p2)

	uncached := NewResolver(reg, ResolutionConfig{DisableCache: true})
	p3, err := uncached.Explain(dirA.ViewType(), dirB.ViewType())
	require.NoError(t, err)
	p4, err := uncached.Explain(dirA.ViewType(), dirB.ViewType())
	require.NoError(t, err)
	assert.NotSame(t, p3, p4)
	assert.Equal(t, p3.String(), p4.String())
	assert.Equal(t, p1.String(), p3.String())

	if t.Failed() {
		t.Log(spew.Sdump(p1, p3))
	}
}

func TestPlanString(t *testing.T) {
	reg := fakeRegistry{}.add(fileA.ViewType(), fileB.ViewType())
	r := NewResolver(reg, DefaultConfig())

	plan, err := r.Explain(dirA.ViewType(), dirB.ViewType())
	require.NoError(t, err)
	assert.Equal(t, "DirA =inner=> A -> B =inner=> DirB", plan.String())
}
