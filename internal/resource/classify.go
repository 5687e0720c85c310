package resource

import (
	"fmt"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
)

// Classify returns the pattern strategy of a view type:
//  1. a path wrapping a single-file directory format, or a single-file
//     directory format itself, yields a SingleFileDirectoryPattern
//  2. any other path yields a PathPattern
//  3. any other file or directory format yields a FormatPattern
//  4. everything else yields an ObjectPattern
//
// Classify is pure; it fails only on malformed view types.
func Classify(vt format.ViewType) (Pattern, error) {
	switch vt.Tag() {
	case format.TagPath:
		switch {
		case vt.DirectoryFormat() != nil && vt.DirectoryFormat().IsSingleFile():
			return NewSingleFileDirectoryPattern(vt.DirectoryFormat(), true)
		case vt.Format() != nil:
			return NewPathPattern(vt), nil
		}
	case format.TagSingleFileDirectory:
		if vt.DirectoryFormat() != nil {
			return NewSingleFileDirectoryPattern(vt.DirectoryFormat(), false)
		}
	case format.TagFileFormat, format.TagDirectoryFormat:
		if d := vt.Format(); d != nil {
			return NewFormatPattern(d), nil
		}
	case format.TagObject:
		if vt.Type() != nil {
			return NewObjectPattern(vt), nil
		}
	}

	return nil, fmt.Errorf("%w: malformed view type %s (%s)", diagnostic.ErrConfiguration, vt, vt.Tag())
}
