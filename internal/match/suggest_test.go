package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	candidates := []string{
		"IntSequenceFormat",
		"IntSequenceDirectoryFormat",
		"MappingFormat",
		"SingleIntFormat",
	}

	got := Suggest("IntSequnceFormat", candidates, 3)
	require.Len(t, got, 2)
	// both normalize to "intsequence"; ties break by name
	assert.Equal(t, "IntSequenceDirectoryFormat", got[0].Name)
	assert.Equal(t, "IntSequenceFormat", got[1].Name)
	assert.Greater(t, got[0].Score, DefaultMinScore)

	assert.Empty(t, Suggest("zzz", candidates, 3))
	assert.Len(t, Suggest("IntSequence", candidates, 1), 1)
}
