package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error returned by the format model and the resolver
// wraps exactly one of the first four, so callers can branch with errors.Is.
// Filesystem failures are wrapped as-is and keep matching the io/fs sentinels.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrNoTransformation = errors.New("no transformation found")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrStructural       = errors.New("structural error")

	ErrMissingFile      = errors.New("missing file")
	ErrUnrecognizedFile = errors.New("unrecognized file")

	ErrReadOnly = fmt.Errorf("%w: format instance is read-only", ErrTypeMismatch)
)

// Structural diagnostic codes.
const (
	CodeMissingFile      = "missing_file"
	CodeUnrecognizedFile = "unrecognized_file"
	CodeAmbiguousFile    = "ambiguous_file"
	CodeInvalidContent   = "invalid_content"
	CodeEmptyDirectory   = "empty_directory"
	CodeNotADirectory    = "not_a_directory"
)

// StructuralError reports that on-disk content does not match a declared
// layout. Problems lists every offending path found in one pass.
type StructuralError struct {
	Format   string
	Root     string
	Problems []Diagnostic
}

// NewStructuralError builds a StructuralError from the error diagnostics of d.
func NewStructuralError(format, root string, d Diagnostics) *StructuralError {
	return &StructuralError{Format: format, Root: root, Problems: d.Errors}
}

func (e *StructuralError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}

	return fmt.Sprintf("%s: %s does not match %s: %s",
		ErrStructural, e.Root, e.Format, strings.Join(parts, "; "))
}

// Is reports ErrStructural for every structural error, and ErrMissingFile or
// ErrUnrecognizedFile when a problem of that kind is present.
func (e *StructuralError) Is(target error) bool {
	switch target {
	case ErrStructural:
		return true
	case ErrMissingFile:
		return e.has(CodeMissingFile)
	case ErrUnrecognizedFile:
		return e.has(CodeUnrecognizedFile)
	default:
		return false
	}
}

// Paths returns the offending paths in the order they were found.
func (e *StructuralError) Paths() []string {
	var paths []string

	for _, p := range e.Problems {
		if p.Path != "" {
			paths = append(paths, p.Path)
		}
	}

	return paths
}

func (e *StructuralError) has(code string) bool {
	for _, p := range e.Problems {
		if p.Code == code {
			return true
		}
	}

	return false
}
