package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"viewcast/internal/archive"
	"viewcast/internal/format"
)

func newArchiveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Save and inspect zip archives of directory formats",
	}

	cmd.AddCommand(
		newArchiveSaveCommand(a),
		newArchivePeekCommand(),
		newArchiveExtractCommand(a),
	)

	return cmd
}

func newArchiveSaveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <format> <dir> <zip>",
		Short: "Validate a directory and save it as an archive",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.lookupFormat(args[0])
			if err != nil {
				return err
			}

			df, ok := d.(*format.DirectoryFormat)
			if !ok {
				return fmt.Errorf("%s is not a directory format", d.Name())
			}

			md, err := archive.Save(format.OpenDirectory(df, args[1], a.resolver), args[2])
			if err != nil {
				printProblems(cmd.ErrOrStderr(), err)
				return err
			}

			a.logger.Info("archive saved", zap.String("path", args[2]), zap.Stringer("uuid", md.UUID))
			successColor.Fprintf(cmd.OutOrStdout(), "✓ saved %s %s\n", md.Format, args[2])
			fmt.Fprintf(cmd.OutOrStdout(), "  uuid: %s\n", md.UUID)

			return nil
		},
	}
}

func newArchivePeekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "peek <zip>",
		Short: "Print the metadata of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := archive.Peek(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "uuid:    %s\n", md.UUID)
			fmt.Fprintf(out, "format:  %s\n", md.Format)
			fmt.Fprintf(out, "version: %s\n", archive.Version)

			return nil
		},
	}
}

func newArchiveExtractCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <zip> <dir>",
		Short: "Extract and validate an archive into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, md, err := archive.Load(args[0], a.registry.Format, a.resolver)
			if err != nil {
				printProblems(cmd.ErrOrStderr(), err)
				return err
			}

			if err := inst.MoveTo(args[1]); err != nil {
				return err
			}

			successColor.Fprintf(cmd.OutOrStdout(), "✓ extracted %s %s\n", md.Format, args[1])

			return nil
		},
	}
}
