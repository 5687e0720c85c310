package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"viewcast/internal/format"
	"viewcast/internal/tmppath"
)

func newViewCommand(a *app) *cobra.Command {
	var (
		target  string
		outPath string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "view <format> <path>",
		Short: "Read stored data as a Go value or another format",
		Long: `Read a file or directory of a registered format and convert it.

The target is either a Go value type (int, []int, map[string]string), printed
as YAML, or another registered format, written to --out.

Examples:
  viewcast view IntSequenceFormat ints.txt --as '[]int'
  viewcast view IntSequenceFormat ints.txt --as IntSequenceDirectoryFormat --out ./ints
  viewcast view FourIntsDirectoryFormat ./ints --as '[]int' --explain`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.lookupFormat(args[0])
			if err != nil {
				return err
			}

			from := src.ViewType()

			to, isObject := objectTypes[target]
			if !isObject {
				dst, err := a.lookupFormat(target)
				if err != nil {
					return err
				}

				if outPath == "" {
					return errors.New("--out is required when converting to a format")
				}

				to = dst.ViewType()
			}

			if explain {
				plan, err := a.resolver.Explain(from, to)
				if err != nil {
					return err
				}

				infoColor.Fprintf(cmd.ErrOrStderr(), "plan: %s (%s)\n", plan, plan.Strategy)
			}

			result, err := a.resolver.Transform(args[1], from, to)
			if err != nil {
				return err
			}

			if isObject {
				data, err := yaml.Marshal(result)
				if err != nil {
					return err
				}

				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			return a.keep(cmd, result, outPath)
		},
	}

	cmd.Flags().StringVar(&target, "as", "", "Target Go value type or format name")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination path when the target is a format")
	cmd.Flags().BoolVar(&explain, "explain", false, "Print the resolved transformation")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

// keep moves a newly written format instance to dst.
func (a *app) keep(cmd *cobra.Command, result any, dst string) error {
	inst, ok := result.(format.Instance)
	if !ok {
		return fmt.Errorf("unexpected result %T", result)
	}

	out, ok := inst.Backing().(*tmppath.OutPath)
	if !ok || !out.Owned() {
		return fmt.Errorf("%s was not rewritten; the source already is a %s", inst.Path(), inst.Descriptor().Name())
	}

	if err := out.MoveTo(dst); err != nil {
		return err
	}

	a.logger.Debug("result moved", zap.String("path", dst))
	successColor.Fprintf(cmd.OutOrStdout(), "✓ wrote %s %s\n", inst.Descriptor().Name(), dst)

	return nil
}
