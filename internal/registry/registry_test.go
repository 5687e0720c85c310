package registry

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
)

func anything(io.Reader) error { return nil }

func echo(_ format.Converter, view any) (any, error) { return view, nil }

var (
	textA = format.MustFileFormat("TextA", anything)
	textB = format.MustFileFormat("TextB", anything)
	ints  = format.ObjectOf[[]int]()
)

func TestBuild(t *testing.T) {
	p := NewPlugin("demo", "1.0")
	p.RegisterFormat(textA, textB)
	p.RegisterTransformer(ints, textA.ViewType(), echo)
	p.RegisterTransformer(textA.ViewType(), ints, echo)

	r, err := Build(p)
	require.NoError(t, err)

	_, ok := r.Lookup(ints, textA.ViewType())
	assert.True(t, ok)
	_, ok = r.Lookup(textA.ViewType(), ints)
	assert.True(t, ok)
	_, ok = r.Lookup(ints, textB.ViewType())
	assert.False(t, ok, "lookups are exact")

	d, ok := r.Format("TextB")
	require.True(t, ok)
	assert.Equal(t, textB.ViewType(), d.ViewType())

	ff, ok := r.FileFormat("TextA")
	require.True(t, ok)
	assert.Same(t, textA, ff)

	_, ok = r.FileFormat("Nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"demo"}, r.Plugins())
	require.Len(t, r.Formats(), 2)
	assert.Equal(t, "TextA", r.Formats()[0].Name())

	transformers := r.Transformers()
	require.Len(t, transformers, 2)
	assert.Equal(t, "TextA -> []int", transformers[0].String())
	assert.Equal(t, "demo", transformers[0].Plugin)
}

func TestBuildRejectsDuplicates(t *testing.T) {
	first := NewPlugin("first", "1")
	first.RegisterFormat(textA)
	first.RegisterTransformer(ints, textA.ViewType(), echo)

	second := NewPlugin("second", "1")
	second.RegisterFormat(format.MustFileFormat("TextA", anything))
	second.RegisterTransformer(ints, textA.ViewType(), echo)

	_, err := Build(first, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrConfiguration)
	assert.Contains(t, err.Error(), "[duplicate_format]")
	assert.Contains(t, err.Error(), "[duplicate_transformer]")
	assert.Contains(t, err.Error(), `already registered by "first"`)
}

func TestBuildAllowsSharedFormat(t *testing.T) {
	first := NewPlugin("first", "1")
	first.RegisterFormat(textA)

	second := NewPlugin("second", "1")
	second.RegisterFormat(textA)

	r, err := Build(first, second)
	require.NoError(t, err)
	assert.Len(t, r.Formats(), 1)
}

func TestBuildRejectsInvalidEntries(t *testing.T) {
	p := NewPlugin("bad", "1")
	p.RegisterFormat(nil)
	p.RegisterTransformer(ints, textA.ViewType(), nil)
	p.RegisterTransformer(format.ViewType{}, textA.ViewType(), echo)

	dup := NewPlugin("bad", "2")

	_, err := Build(p, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrConfiguration)

	for _, code := range []string{"nil_format", "nil_transformer", "invalid_transformer", "duplicate_plugin"} {
		assert.Contains(t, err.Error(), "["+code+"]")
	}
}

func TestTyped(t *testing.T) {
	double := Typed(func(_ format.Converter, in []int) ([]int, error) {
		out := make([]int, len(in))
		for i, v := range in {
			out[i] = v * 2
		}

		return out, nil
	})

	out, err := double(nil, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, out)

	_, err = double(nil, "nope")
	assert.ErrorIs(t, err, diagnostic.ErrTypeMismatch)
}

func TestSuggest(t *testing.T) {
	p := NewPlugin("demo", "1")
	p.RegisterFormat(
		format.MustFileFormat("IntSequenceFormat", anything),
		format.MustFileFormat("MappingFormat", anything),
	)

	r, err := Build(p)
	require.NoError(t, err)

	assert.Equal(t, []string{"IntSequenceFormat"}, r.Suggest("IntSequnceFormat", 3))
	assert.Empty(t, r.Suggest("Completely different", 3))
}
