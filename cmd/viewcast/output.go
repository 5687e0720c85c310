package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow)
)

// objectTypes are the Go value view types reachable from the command line.
var objectTypes = map[string]format.ViewType{}

func init() {
	for _, vt := range []format.ViewType{
		format.ObjectOf[int](),
		format.ObjectOf[[]int](),
		format.ObjectOf[map[string]string](),
	} {
		objectTypes[vt.String()] = vt
	}
}

func joinQuoted(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	return strings.Join(quoted, ", ")
}

func describeKind(d format.Descriptor) string {
	switch d.ViewType().Tag() {
	case format.TagFileFormat:
		return "file"
	case format.TagSingleFileDirectory:
		return "single-file directory"
	default:
		return "directory"
	}
}

// printProblems lists structural problems, one per line. Other errors are
// printed as they are.
func printProblems(w io.Writer, err error) {
	var se *diagnostic.StructuralError
	if !errors.As(err, &se) {
		errorColor.Fprintf(w, "  %v\n", err)
		return
	}

	for _, p := range se.Problems {
		errorColor.Fprintf(w, "  ✗ ")
		fmt.Fprintf(w, "%s: ", p.Path)
		warningColor.Fprintf(w, "[%s] ", p.Code)
		fmt.Fprintln(w, p.Message)
	}
}
