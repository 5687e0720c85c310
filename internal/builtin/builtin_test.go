package builtin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewcast/internal/format"
	"viewcast/internal/registry"
)

func TestSniffers(t *testing.T) {
	tests := []struct {
		name    string
		sniff   format.SniffFunc
		content string
		ok      bool
	}{
		{"ints", sniffIntSequence, "1\n2\n-3\n", true},
		{"ints empty", sniffIntSequence, "", true},
		{"ints bad", sniffIntSequence, "1\nx\n", false},
		{"ints only first five lines", sniffIntSequence, "1\n2\n3\n4\n5\nnot a number\n", true},
		{"mapping", sniffMapping, "a\t1\nb\t2\n", true},
		{"mapping too many cells", sniffMapping, "a\t1\t2\n", false},
		{"mapping no tab", sniffMapping, "a 1\n", false},
		{"single int", sniffSingleInt, "42\n", true},
		{"single int without newline", sniffSingleInt, "42", true},
		{"single int empty", sniffSingleInt, "", false},
		{"single int bad", sniffSingleInt, "4 2\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sniff(strings.NewReader(tt.content))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSingleIntsPath(t *testing.T) {
	for num, want := range map[int]string{
		1: "file1.txt",
		2: "file2.txt",
		3: "nested/file3.txt",
		4: "nested/file4.txt",
	} {
		got, err := singleIntsPath(nil, format.Args{"num": num})
		require.NoError(t, err)
		assert.Equal(t, want, got)

		f, ok := FourIntsDirectoryFormat.Field("single_ints")
		require.True(t, ok)
		assert.True(t, f.Match(got))
	}

	_, err := singleIntsPath(nil, format.Args{})
	assert.Error(t, err)
}

func TestPlugin(t *testing.T) {
	r, err := registry.Build(Plugin())
	require.NoError(t, err)

	assert.Len(t, r.Formats(), 6)
	assert.Len(t, r.Transformers(), 11)

	_, ok := r.FileFormat("SingleIntFormat")
	assert.True(t, ok)

	d, ok := r.Format("IntSequenceDirectoryFormat")
	require.True(t, ok)
	assert.Equal(t, format.TagSingleFileDirectory, d.ViewType().Tag())

	_, ok = r.Lookup(intsType, FourIntsDirectoryFormat.ViewType())
	assert.True(t, ok)

	// registering the plugin twice is a duplicate
	_, err = registry.Build(Plugin(), Plugin())
	assert.Error(t, err)
}
