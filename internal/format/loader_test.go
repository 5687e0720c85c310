package format_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewcast/internal/builtin"
	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
)

func builtinFileFormats(name string) (*format.FileFormat, bool) {
	switch name {
	case "SingleIntFormat":
		return builtin.SingleIntFormat, true
	case "IntSequenceFormat":
		return builtin.IntSequenceFormat, true
	default:
		return nil, false
	}
}

func TestParseSchemas(t *testing.T) {
	yaml := `
formats:
  - name: IntPairDirectoryFormat
    fields:
      - name: left
        pattern: left.txt
        format: SingleIntFormat
      - name: extras
        pattern: 'extra/[0-9]+\.txt'
        format: SingleIntFormat
        collection: true
        path: 'extra/{{.num}}.txt'
  - name: WrappedIntsDirectoryFormat
    single_file:
      path: ints.txt
      format: IntSequenceFormat
`
	sf, err := format.ParseSchemas([]byte(yaml))
	require.NoError(t, err)
	assert.Equal(t, "1", sf.Version)
	require.Len(t, sf.Formats, 2)

	dirs, err := sf.Build(builtinFileFormats)
	require.NoError(t, err)
	require.Len(t, dirs, 2)

	pair := dirs[0]
	assert.Equal(t, "IntPairDirectoryFormat", pair.Name())
	assert.False(t, pair.IsSingleFile())

	wrapped := dirs[1]
	assert.True(t, wrapped.IsSingleFile())
	assert.Equal(t, format.TagSingleFileDirectory, wrapped.ViewType().Tag())

	inner, ok := wrapped.SingleFile()
	require.True(t, ok)
	assert.True(t, inner.Match("ints.txt"))
	assert.False(t, inner.Match("intsXtxt"), "single_file paths are literal")

	// collection members are placed by the path template
	conv := newConverter(t)
	di := newDirectory(t, pair, conv)

	left, err := di.File("left")
	require.NoError(t, err)
	require.NoError(t, left.Set(1, intVT))

	extras, err := di.Collection("extras")
	require.NoError(t, err)
	require.NoError(t, extras.Add(7, intVT, format.Args{"num": 7}))
	require.NoError(t, extras.Add(12, intVT, format.Args{"num": 12}))

	assert.FileExists(t, filepath.Join(di.Path(), "extra", "7.txt"))
	require.NoError(t, di.Validate())

	paths, err := extras.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"extra/12.txt", "extra/7.txt"}, paths)

	err = extras.Add(1, intVT, format.Args{})
	assert.Error(t, err, "missing template arguments are an error")
}

func TestLoadSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
formats:
  - name: OneDirectoryFormat
    fields:
      - name: one
        pattern: one.txt
        format: SingleIntFormat
`), 0o644))

	sf, err := format.LoadSchemaFile(path)
	require.NoError(t, err)

	dirs, err := sf.Build(builtinFileFormats)
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	_, err = format.LoadSchemaFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchemaFileErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		codes []string
	}{
		{
			name:  "unsupported version",
			yaml:  "version: \"2\"\nformats: []\n",
			codes: []string{"unsupported_version"},
		},
		{
			name: "unknown format",
			yaml: `
formats:
  - name: D
    fields:
      - {name: a, pattern: a.txt, format: NoSuchFormat}
`,
			codes: []string{"unknown_format"},
		},
		{
			name: "single file with fields",
			yaml: `
formats:
  - name: D
    single_file: {path: a.txt, format: SingleIntFormat}
    fields:
      - {name: a, pattern: a.txt, format: SingleIntFormat}
`,
			codes: []string{"conflicting_fields"},
		},
		{
			name: "collection without path",
			yaml: `
formats:
  - name: D
    fields:
      - {name: c, pattern: 'c[0-9]\.txt', format: SingleIntFormat, collection: true}
`,
			codes: []string{"invalid_path_template"},
		},
		{
			name: "bad template",
			yaml: `
formats:
  - name: D
    fields:
      - {name: c, pattern: 'c[0-9]\.txt', format: SingleIntFormat, collection: true, path: 'c{{.num'}
`,
			codes: []string{"invalid_path_template"},
		},
		{
			name: "schema problems",
			yaml: `
formats:
  - name: D
    fields:
      - {name: a, pattern: a.txt, format: SingleIntFormat}
      - {name: a, pattern: b.txt, format: SingleIntFormat}
`,
			codes: []string{"invalid_schema", "duplicate_field"},
		},
		{
			name: "every format is checked",
			yaml: `
formats:
  - name: D1
    fields:
      - {name: a, pattern: a.txt, format: Nope1}
  - name: D2
    fields:
      - {name: a, pattern: a.txt, format: Nope2}
`,
			codes: []string{"Nope1", "Nope2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, err := format.ParseSchemas([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = sf.Build(builtinFileFormats)
			require.Error(t, err)
			assert.ErrorIs(t, err, diagnostic.ErrConfiguration)

			for _, code := range tt.codes {
				assert.Contains(t, err.Error(), code)
			}
		})
	}
}

func TestParseSchemasInvalidYAML(t *testing.T) {
	_, err := format.ParseSchemas([]byte("formats: [unclosed"))
	assert.ErrorIs(t, err, diagnostic.ErrConfiguration)
}
