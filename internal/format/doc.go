// Package format provides the on-disk format model: view types, single-file
// formats, directory formats declared as ordered field schemas, and the
// read/write format instances that back them.
//
// # View types
//
// A ViewType is a closed tagged union identifying a representation:
//
//	TagObject               any Go value of a given reflect.Type
//	TagPath                 a bare filesystem path typed to a format
//	TagFileFormat           a single-file format
//	TagDirectoryFormat      a multi-file directory format
//	TagSingleFileDirectory  a directory format wrapping exactly one file
//
// Two view types are interchangeable only when they compare equal.
//
// # Directory formats
//
// A directory format is a named, ordered list of fields. A File field matches
// exactly one path; a FileCollection field matches one or more paths and
// carries a path maker producing the relative path of each new member:
//
//	schema, err := format.NewSchema("FourIntsDirectoryFormat").
//		Collection("single_ints", `(nested/)?file[1-4]\.txt`, singleInt, pathMaker).
//		Build()
//
// Patterns are regular expressions matched against the whole slash-separated
// path relative to the directory root.
//
// # Instances
//
// NewFile / NewDirectory create write-mode instances backed by an owned
// temporary path. OpenFile / OpenDirectory create read-mode instances over an
// existing path. Fields are populated through BoundFile.Set and
// BoundFileCollection.Add, which convert the given view with the instance's
// Converter and relocate the result to the field's path.
package format
