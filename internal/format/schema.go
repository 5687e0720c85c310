package format

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"viewcast/internal/common"
	"viewcast/internal/diagnostic"
)

// FieldKind distinguishes singleton files from file collections.
type FieldKind int

const (
	FieldFile FieldKind = iota
	FieldCollection
)

// String returns a human-readable kind name.
func (k FieldKind) String() string {
	switch k {
	case FieldFile:
		return "file"
	case FieldCollection:
		return "collection"
	default:
		return common.UnknownStr
	}
}

// PathMaker returns the relative path of a new collection member. It must be
// consistent with the collection's pattern.
type PathMaker func(inst *DirectoryInstance, args Args) (string, error)

// Field is one declared member of a directory format.
type Field struct {
	name      string
	pattern   string
	re        *regexp.Regexp
	format    *FileFormat
	kind      FieldKind
	pathMaker PathMaker
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Pattern returns the path pattern as declared. For a singleton file it is
// the literal relative path of the file.
func (f *Field) Pattern() string { return f.pattern }

// Format returns the file format expected at each matched path.
func (f *Field) Format() *FileFormat { return f.format }

// Kind returns whether the field is a singleton file or a collection.
func (f *Field) Kind() FieldKind { return f.kind }

// IsCollection reports whether the field is a file collection.
func (f *Field) IsCollection() bool { return f.kind == FieldCollection }

// Match reports whether the slash-separated relative path matches the field.
func (f *Field) Match(relpath string) bool { return f.re.MatchString(relpath) }

// DirectoryFormat describes a multi-file directory layout.
type DirectoryFormat struct {
	name       string
	fields     []*Field
	byName     map[string]*Field
	singleFile bool
}

// Name returns the format name.
func (d *DirectoryFormat) Name() string { return d.name }

func (d *DirectoryFormat) String() string { return d.name }

// ViewType returns TagSingleFileDirectory for formats built with
// SingleFileDirectory and TagDirectoryFormat otherwise.
func (d *DirectoryFormat) ViewType() ViewType {
	if d.singleFile {
		return ViewType{tag: TagSingleFileDirectory, dir: d}
	}

	return ViewType{tag: TagDirectoryFormat, dir: d}
}

// Fields returns the fields in declaration order.
func (d *DirectoryFormat) Fields() []*Field {
	return append([]*Field(nil), d.fields...)
}

// Field returns the field with the given name.
func (d *DirectoryFormat) Field(name string) (*Field, bool) {
	f, ok := d.byName[name]
	return f, ok
}

// IsSingleFile reports whether d wraps exactly one file.
func (d *DirectoryFormat) IsSingleFile() bool { return d.singleFile }

// SingleFile returns the wrapped file field of a single-file directory format.
func (d *DirectoryFormat) SingleFile() (*Field, bool) {
	if !d.singleFile {
		return nil, false
	}

	return d.fields[0], true
}

// Schema builds a DirectoryFormat. Declaration problems are collected and
// reported together by Build.
type Schema struct {
	name   string
	fields []*Field
	diags  diagnostic.Diagnostics
}

// NewSchema starts a directory format declaration.
func NewSchema(name string) *Schema {
	return &Schema{name: name}
}

// File declares a singleton file field at the fixed, slash-separated
// relative path relpath. The path is matched literally.
func (s *Schema) File(name, relpath string, f *FileFormat) *Schema {
	s.add(name, relpath, f, FieldFile, nil)
	return s
}

// Collection declares a file collection field. The pattern is a regular
// expression over slash-separated relative paths, anchored at both ends.
func (s *Schema) Collection(name, pattern string, f *FileFormat, pm PathMaker) *Schema {
	s.add(name, pattern, f, FieldCollection, pm)
	return s
}

func (s *Schema) add(name, pattern string, f *FileFormat, kind FieldKind, pm PathMaker) {
	field := &Field{name: name, pattern: pattern, format: f, kind: kind, pathMaker: pm}

	if name == "" {
		s.diags.AddError("missing_name", "field requires a name", s.name, pattern)
	}

	if f == nil {
		s.diags.AddError("missing_format", fmt.Sprintf("field %q requires a format", name), s.name, pattern)
	}

	if kind == FieldCollection && pm == nil {
		s.diags.AddError("missing_path_maker",
			fmt.Sprintf("collection %q requires a path maker", name), s.name, pattern)
	}

	expr := pattern
	if kind == FieldFile {
		expr = regexp.QuoteMeta(pattern)

		if !isRelPath(pattern) {
			s.diags.AddError("invalid_path",
				fmt.Sprintf("file %q: %q is not a clean relative path", name, pattern), s.name, pattern)
		}
	}

	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		s.diags.AddError("invalid_pattern", fmt.Sprintf("field %q: %v", name, err), s.name, pattern)
	} else {
		field.re = re
	}

	s.fields = append(s.fields, field)
}

// Build validates the declaration and returns the directory format.
func (s *Schema) Build() (*DirectoryFormat, error) {
	return s.build(false)
}

// MustBuild is like Build but panics on error.
func (s *Schema) MustBuild() *DirectoryFormat {
	d, err := s.Build()
	if err != nil {
		panic(err)
	}

	return d
}

func (s *Schema) build(singleFile bool) (*DirectoryFormat, error) {
	diags := diagnostic.Diagnostics{}
	diags.Merge(s.diags)

	if s.name == "" {
		diags.AddError("missing_name", "directory format requires a name", "", "")
	}

	if len(s.fields) == 0 {
		diags.AddError("empty_schema", "directory format declares no fields", s.name, "")
	}

	byName := make(map[string]*Field, len(s.fields))

	for _, f := range s.fields {
		if f.name == "" {
			continue
		}

		if _, dup := byName[f.name]; dup {
			diags.AddError("duplicate_field", fmt.Sprintf("duplicate field %q", f.name), s.name, f.pattern)
			continue
		}

		byName[f.name] = f
	}

	checkOverlap(s.name, s.fields, &diags)

	if err := diags.Wrap(diagnostic.ErrConfiguration); err != nil {
		return nil, err
	}

	return &DirectoryFormat{
		name:       s.name,
		fields:     append([]*Field(nil), s.fields...),
		byName:     byName,
		singleFile: singleFile,
	}, nil
}

// checkOverlap requires that no other field matches a singleton file's path.
func checkOverlap(schema string, fields []*Field, diags *diagnostic.Diagnostics) {
	for _, f := range fields {
		if f.kind != FieldFile || f.re == nil {
			continue
		}

		for _, other := range fields {
			if other == f || other.re == nil {
				continue
			}

			if other.Match(f.pattern) {
				diags.AddError("pattern_overlap",
					fmt.Sprintf("file %q is also matched by field %q", f.name, other.name), schema, f.pattern)
			}
		}
	}
}

func isRelPath(p string) bool {
	return p != "" && p != "." && !path.IsAbs(p) && path.Clean(p) == p && p != ".." && !strings.HasPrefix(p, "../")
}

// SingleFileFieldName is the field name of the file wrapped by a single-file
// directory format.
const SingleFileFieldName = "file"

// SingleFileDirectory declares a directory format containing exactly one
// file named filename of format f. It participates in resolution as a stand-in
// for f.
func SingleFileDirectory(name, filename string, f *FileFormat) (*DirectoryFormat, error) {
	return NewSchema(name).File(SingleFileFieldName, filename, f).build(true)
}

// MustSingleFileDirectory is like SingleFileDirectory but panics on error.
func MustSingleFileDirectory(name, filename string, f *FileFormat) *DirectoryFormat {
	d, err := SingleFileDirectory(name, filename, f)
	if err != nil {
		panic(err)
	}

	return d
}
