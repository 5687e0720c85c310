package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"abc", "ab", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"intsequence", "intsequnce", 1},
		{"mapping", "mappings", 1},
		{"fourints", "fiveints", 3},
		{"größe", "grösse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestDistance_Metric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-d]{0,8}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-d]{0,8}`).Draw(t, "b")
		c := rapid.StringMatching(`[a-d]{0,8}`).Draw(t, "c")

		ab := Distance(a, b)
		if ab != Distance(b, a) {
			t.Fatalf("asymmetric distance for %q %q", a, b)
		}

		if (ab == 0) != (a == b) {
			t.Fatalf("zero distance must mean equality: %q %q", a, b)
		}

		if ab > Distance(a, c)+Distance(c, b) {
			t.Fatalf("triangle inequality broken for %q %q %q", a, b, c)
		}
	})
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("hello", "hello"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 1.0-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
}

func TestNameScore(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"IntSequenceFormat", "int_sequence", 1.0},
		{"IntSequenceDirectoryFormat", "IntSequenceFormat", 1.0},
		{"MappingFormat", "mapping", 1.0},
		{"IntSequnceFormat", "IntSequenceFormat", 1.0 - 1.0/11.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, NameScore(tt.a, tt.b), 1e-3)
		})
	}
}

func BenchmarkNameScore(b *testing.B) {
	for b.Loop() {
		NameScore("FourIntsDirectoryFormat", "four_ints")
	}
}
