package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"viewcast/internal/format"
)

func newFormatsCommand(a *app) *cobra.Command {
	var showTransformers bool

	cmd := &cobra.Command{
		Use:   "formats [name]",
		Short: "List registered formats",
		Long: `List registered file and directory formats.

With a format name, show the fields of that format.

Examples:
  viewcast formats                          # List all formats
  viewcast formats --transformers           # Also list transformers
  viewcast formats FourIntsDirectoryFormat  # Show fields of one format`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				d, err := a.lookupFormat(args[0])
				if err != nil {
					return err
				}

				printFormat(cmd, d)

				return nil
			}

			infoColor.Fprintln(out, "Formats:")
			for _, d := range a.registry.Formats() {
				fmt.Fprintf(out, "  %-32s %s\n", d.Name(), describeKind(d))
			}

			if showTransformers {
				infoColor.Fprintln(out, "\nTransformers:")
				for _, t := range a.registry.Transformers() {
					fmt.Fprintf(out, "  %-56s (%s)\n", t, t.Plugin)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&showTransformers, "transformers", "t", false, "Also list registered transformers")

	return cmd
}

func printFormat(cmd *cobra.Command, d format.Descriptor) {
	out := cmd.OutOrStdout()

	infoColor.Fprintf(out, "%s", d.Name())
	fmt.Fprintf(out, " (%s)\n", describeKind(d))

	dir, ok := d.(*format.DirectoryFormat)
	if !ok {
		return
	}

	for _, f := range dir.Fields() {
		fmt.Fprintf(out, "  %-16s %-10s %-32s %s\n", f.Name(), f.Kind(), f.Pattern(), f.Format().Name())
	}
}
