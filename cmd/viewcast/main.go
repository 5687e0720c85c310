// Package main provides the CLI entrypoint for viewcast.
//
// viewcast inspects and converts data stored in declared file and directory
// formats:
//   - lists registered formats and transformers
//   - validates files and directories against a format
//   - views stored data as Go values or as another format
//   - saves directory formats into zip archives and inspects them
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorColor.Sprint("Error:"), err)
		os.Exit(1)
	}
}
