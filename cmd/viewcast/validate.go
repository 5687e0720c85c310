package main

import (
	"errors"

	"github.com/spf13/cobra"

	"viewcast/internal/format"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <format> <path>",
		Short: "Check a file or directory against a format",
		Long: `Check that a file or directory matches a registered format.

Directories are checked for missing, unexpected and ambiguous files, and
every member is checked against its file format.

Examples:
  viewcast validate IntSequenceFormat ints.txt
  viewcast validate FourIntsDirectoryFormat ./ints`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.lookupFormat(args[0])
			if err != nil {
				return err
			}

			inst := open(d, args[1], a.resolver)
			out := cmd.OutOrStdout()

			if err := inst.Validate(); err != nil {
				errorColor.Fprintf(out, "%s is not a valid %s\n", args[1], d.Name())
				printProblems(out, err)

				return errors.New("validation failed")
			}

			successColor.Fprintf(out, "✓ %s is a valid %s\n", args[1], d.Name())

			return nil
		},
	}
}

// open returns a read-mode instance of d over path.
func open(d format.Descriptor, path string, conv format.Converter) format.Instance {
	if f, ok := d.(*format.FileFormat); ok {
		return format.OpenFile(f, path)
	}

	return format.OpenDirectory(d.(*format.DirectoryFormat), path, conv)
}
