package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"viewcast/internal/builtin"
	"viewcast/internal/config"
	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
	"viewcast/internal/registry"
	"viewcast/internal/tmppath"
	"viewcast/internal/transform"
)

var version = "dev"

// app is the state shared by every command once configuration is loaded.
type app struct {
	cfgFile  string
	cfg      *config.Config
	logger   *zap.Logger
	registry *registry.Registry
	resolver *transform.Resolver
}

// NewRootCommand creates the viewcast command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "viewcast",
		Short:         "Validate and convert data stored in declared formats",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./viewcast.yaml)")

	cmd.AddCommand(
		newFormatsCommand(a),
		newValidateCommand(a),
		newViewCommand(a),
		newArchiveCommand(a),
	)

	return cmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}

	tmppath.SetRoot(cfg.TempDir)

	reg, err := buildRegistry(cfg.Schemas)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.registry = reg
	a.resolver = transform.NewResolver(reg, transform.ResolutionConfig{Logger: logger.Named("resolver")})

	logger.Debug("configuration loaded",
		zap.String("temp_dir", cfg.TempDir),
		zap.String("schemas", cfg.Schemas),
		zap.Strings("plugins", reg.Plugins()),
	)

	return nil
}

// buildRegistry registers the builtin plugin and, when schemaFile is set, a
// "schemas" plugin declaring the directory formats of that file.
func buildRegistry(schemaFile string) (*registry.Registry, error) {
	base, err := registry.Build(builtin.Plugin())
	if err != nil || schemaFile == "" {
		return base, err
	}

	sf, err := format.LoadSchemaFile(schemaFile)
	if err != nil {
		return nil, err
	}

	dirs, err := sf.Build(base.FileFormat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schemaFile, err)
	}

	schemas := registry.NewPlugin("schemas", sf.Version)
	for _, d := range dirs {
		schemas.RegisterFormat(d)
	}

	return registry.Build(builtin.Plugin(), schemas)
}

// lookupFormat returns the registered format called name, suggesting close
// matches when there is none.
func (a *app) lookupFormat(name string) (format.Descriptor, error) {
	if d, ok := a.registry.Format(name); ok {
		return d, nil
	}

	err := fmt.Errorf("%w: unknown format %q", diagnostic.ErrConfiguration, name)
	if s := a.registry.Suggest(name, 3); len(s) > 0 {
		err = fmt.Errorf("%w (did you mean %s?)", err, joinQuoted(s))
	}

	return nil, err
}
