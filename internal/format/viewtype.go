package format

import (
	"fmt"
	"reflect"

	"viewcast/internal/common"
	"viewcast/internal/diagnostic"
)

// Tag identifies the category of a ViewType.
type Tag int

const (
	TagInvalid             Tag = iota
	TagObject                  // arbitrary Go value
	TagPath                    // filesystem path typed to a format
	TagFileFormat              // single-file format
	TagDirectoryFormat         // multi-file directory format
	TagSingleFileDirectory     // directory format wrapping exactly one file
)

// String returns a human-readable tag name.
func (t Tag) String() string {
	switch t {
	case TagInvalid:
		return "invalid"
	case TagObject:
		return "object"
	case TagPath:
		return "path"
	case TagFileFormat:
		return "file_format"
	case TagDirectoryFormat:
		return "directory_format"
	case TagSingleFileDirectory:
		return "single_file_directory"
	default:
		return common.UnknownStr
	}
}

// ViewType identifies a concrete representation. It is comparable; equality
// is identity of the underlying format descriptor or Go type.
type ViewType struct {
	tag    Tag
	file   *FileFormat
	dir    *DirectoryFormat
	object reflect.Type
}

// Descriptor is implemented by *FileFormat and *DirectoryFormat.
type Descriptor interface {
	Name() string
	ViewType() ViewType
}

// Object returns the view type of Go values of type t.
func Object(t reflect.Type) ViewType {
	return ViewType{tag: TagObject, object: t}
}

// ObjectOf returns the view type of Go values of type T.
func ObjectOf[T any]() ViewType {
	return Object(reflect.TypeFor[T]())
}

// NewPath returns the view type of a bare path holding data of format d.
func NewPath(d Descriptor) (ViewType, error) {
	switch f := d.(type) {
	case *FileFormat:
		if f != nil {
			return ViewType{tag: TagPath, file: f}, nil
		}
	case *DirectoryFormat:
		if f != nil {
			return ViewType{tag: TagPath, dir: f}, nil
		}
	}

	return ViewType{}, fmt.Errorf("%w: path view type requires a format", diagnostic.ErrConfiguration)
}

// PathOf is like NewPath but panics on a nil descriptor. It is meant for
// package-level declarations.
func PathOf(d Descriptor) ViewType {
	vt, err := NewPath(d)
	if err != nil {
		panic(err)
	}

	return vt
}

// Tag returns the category of the view type.
func (v ViewType) Tag() Tag { return v.tag }

// IsZero reports whether v is the zero ViewType.
func (v ViewType) IsZero() bool { return v == ViewType{} }

// FileFormat returns the file format of a file-format or path view type.
func (v ViewType) FileFormat() *FileFormat { return v.file }

// DirectoryFormat returns the directory format of a directory or path view type.
func (v ViewType) DirectoryFormat() *DirectoryFormat { return v.dir }

// Type returns the Go type of an object view type.
func (v ViewType) Type() reflect.Type { return v.object }

// Format returns the descriptor behind a format or path view type, or nil.
func (v ViewType) Format() Descriptor {
	switch {
	case v.file != nil:
		return v.file
	case v.dir != nil:
		return v.dir
	default:
		return nil
	}
}

// Inner returns the format view type wrapped by a path view type.
func (v ViewType) Inner() (ViewType, bool) {
	if v.tag != TagPath {
		return ViewType{}, false
	}

	d := v.Format()
	if d == nil {
		return ViewType{}, false
	}

	return d.ViewType(), true
}

// IsFormat reports whether v is a file or directory format view type.
func (v ViewType) IsFormat() bool {
	switch v.tag {
	case TagFileFormat, TagDirectoryFormat, TagSingleFileDirectory:
		return true
	default:
		return false
	}
}

// Key returns a string uniquely identifying v within the process.
func (v ViewType) Key() string {
	switch {
	case v.file != nil:
		return fmt.Sprintf("%d:f:%p", v.tag, v.file)
	case v.dir != nil:
		return fmt.Sprintf("%d:d:%p", v.tag, v.dir)
	case v.object != nil:
		return fmt.Sprintf("%d:o:%p", v.tag, v.object)
	default:
		return fmt.Sprintf("%d", v.tag)
	}
}

func (v ViewType) String() string {
	switch v.tag {
	case TagObject:
		if v.object == nil {
			return "<nil>"
		}

		return v.object.String()
	case TagPath:
		if d := v.Format(); d != nil {
			return "Path[" + d.Name() + "]"
		}

		return "Path[?]"
	case TagFileFormat, TagDirectoryFormat, TagSingleFileDirectory:
		if d := v.Format(); d != nil {
			return d.Name()
		}
	}

	return "<invalid>"
}
