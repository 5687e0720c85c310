package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"IntSequenceDirectoryFormat", "intsequence"},
		{"IntSequenceFormat", "intsequence"},
		{"int_sequence", "intsequence"},
		{"SingleIntFormat", "singleint"},
		{"TSVFormat", "tsv"},
		{"four-ints.dir", "fourints"},
		{"Format", "format"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestTokenizeCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"SingleIntFormat", []string{"Single", "Int", "Format"}},
		{"TSVFormat", []string{"TSV", "Format"}},
		{"mappingDirectory", []string{"mapping", "Directory"}},
		{"four_ints.dir", []string{"four", "ints", "dir"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"", nil},
		{"a", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizeCamelCase(tt.input))
		})
	}
}
