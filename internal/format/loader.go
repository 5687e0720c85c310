package format

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"viewcast/internal/diagnostic"
)

// SchemaFile is the YAML representation of directory format declarations:
//
//	version: "1"
//	formats:
//	  - name: IntPairDirectoryFormat
//	    fields:
//	      - name: left
//	        pattern: left.txt
//	        format: SingleIntFormat
//	      - name: extras
//	        pattern: 'extra/[0-9]+\.txt'
//	        format: SingleIntFormat
//	        collection: true
//	        path: 'extra/{{.num}}.txt'
//	  - name: WrappedIntsDirectoryFormat
//	    single_file:
//	      path: ints.txt
//	      format: IntSequenceFormat
//
// The pattern of a field that is not a collection, like a single_file path,
// is a literal relative path. Collection paths are text/template strings
// executed over the Args given to Add; referencing a missing argument is an
// error.
type SchemaFile struct {
	Version string      `yaml:"version"`
	Formats []SchemaDef `yaml:"formats"`
}

// SchemaDef declares one directory format.
type SchemaDef struct {
	Name       string         `yaml:"name"`
	SingleFile *SingleFileDef `yaml:"single_file,omitempty"`
	Fields     []FieldDef     `yaml:"fields,omitempty"`
}

// SingleFileDef declares the wrapped file of a single-file directory format.
type SingleFileDef struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// FieldDef declares one field.
type FieldDef struct {
	Name       string `yaml:"name"`
	Pattern    string `yaml:"pattern"`
	Format     string `yaml:"format"`
	Collection bool   `yaml:"collection,omitempty"`
	Path       string `yaml:"path,omitempty"`
}

// FileFormatLookup resolves file format names used in a SchemaFile.
type FileFormatLookup func(name string) (*FileFormat, bool)

// LoadSchemaFile reads and parses a YAML schema file.
func LoadSchemaFile(path string) (*SchemaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return ParseSchemas(data)
}

// ParseSchemas parses YAML data into a SchemaFile.
func ParseSchemas(data []byte) (*SchemaFile, error) {
	var sf SchemaFile

	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%w: failed to parse schema YAML: %v", diagnostic.ErrConfiguration, err)
	}

	if sf.Version == "" {
		sf.Version = "1"
	}

	return &sf, nil
}

// Build declares every directory format of the file. All problems are
// reported together as a configuration error.
func (sf *SchemaFile) Build(lookup FileFormatLookup) ([]*DirectoryFormat, error) {
	var (
		diags diagnostic.Diagnostics
		out   []*DirectoryFormat
	)

	if sf.Version != "1" {
		diags.AddError("unsupported_version", fmt.Sprintf("unsupported schema version %q", sf.Version), "", "")
		return nil, diags.Wrap(diagnostic.ErrConfiguration)
	}

	for i := range sf.Formats {
		def := &sf.Formats[i]

		d, err := def.build(lookup, &diags)
		if err != nil {
			diags.AddError("invalid_schema", err.Error(), def.Name, "")
			continue
		}

		if d != nil {
			out = append(out, d)
		}
	}

	if err := diags.Wrap(diagnostic.ErrConfiguration); err != nil {
		return nil, err
	}

	return out, nil
}

func (def *SchemaDef) build(lookup FileFormatLookup, diags *diagnostic.Diagnostics) (*DirectoryFormat, error) {
	if def.SingleFile != nil {
		if len(def.Fields) > 0 {
			diags.AddError("conflicting_fields", "single_file formats cannot declare fields", def.Name, "")
			return nil, nil
		}

		ff, ok := lookup(def.SingleFile.Format)
		if !ok {
			diags.AddError("unknown_format", fmt.Sprintf("unknown file format %q", def.SingleFile.Format),
				def.Name, def.SingleFile.Path)
			return nil, nil
		}

		return SingleFileDirectory(def.Name, def.SingleFile.Path, ff)
	}

	s := NewSchema(def.Name)
	ok := true

	for _, fd := range def.Fields {
		ff, found := lookup(fd.Format)
		if !found {
			diags.AddError("unknown_format", fmt.Sprintf("field %q: unknown file format %q", fd.Name, fd.Format),
				def.Name, fd.Pattern)

			ok = false

			continue
		}

		if !fd.Collection {
			s.File(fd.Name, fd.Pattern, ff)
			continue
		}

		pm, err := TemplatePathMaker(fd.Path)
		if err != nil {
			diags.AddError("invalid_path_template", fmt.Sprintf("field %q: %v", fd.Name, err), def.Name, fd.Path)

			ok = false

			continue
		}

		s.Collection(fd.Name, fd.Pattern, ff, pm)
	}

	if !ok {
		return nil, nil
	}

	return s.Build()
}

// TemplatePathMaker returns a PathMaker executing text as a text/template
// over the Args given to Add.
func TemplatePathMaker(text string) (PathMaker, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty path template")
	}

	tmpl, err := template.New("path").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, err
	}

	return func(_ *DirectoryInstance, args Args) (string, error) {
		var b strings.Builder
		if err := tmpl.Execute(&b, map[string]any(args)); err != nil {
			return "", err
		}

		return b.String(), nil
	}, nil
}
