package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"debugctx-generator/internal/analyze"
	"debugctx-generator/internal/config"
	"debugctx-generator/internal/gen"
	"debugctx-generator/internal/logging"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Write generated formatting code",
		Long: `Load the packages (default ".") and write <pkg>_debugctx.go next to the
sources of every package with selected types.`,
		RunE: genExecution,
	}

	addGenerateFlags(cmd.Flags())

	return cmd
}

func addGenerateFlags(fs *pflag.FlagSet) {
	fs.String("missing-context", "", "policy for types without a context directive (fallback|error)")
	fs.StringSlice("type", nil, "select a type by name even without a directive (repeatable)")
	fs.String("output", "", "generated file name (default <pkg>"+config.DefaultSuffix+")")
	fs.Int("jobs", 0, "concurrent emission workers (default GOMAXPROCS)")
	fs.StringSlice("tags", nil, "build tags used to load packages")
}

func genExecution(cmd *cobra.Command, args []string) error {
	files, err := generate(cmd, args)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := gen.WriteFile(f); err != nil {
			return err
		}

		logging.Logger.Infow("wrote file", "path", f.Path, "units", f.Units)
	}

	if len(files) == 0 {
		logging.Logger.Infow("no types selected")
	}

	return nil
}

// generate runs the pipeline for the command's packages and prints its
// diagnostics.
func generate(cmd *cobra.Command, args []string) ([]*gen.File, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	tags, err := cmd.Flags().GetStringSlice("tags")
	if err != nil {
		return nil, err
	}

	g, err := gen.New(cfg)
	if err != nil {
		return nil, err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	opts := analyze.Options{Types: cfg.Types, BuildTags: tags}

	files, diags, err := g.Run(cmd.Context(), opts, patterns...)
	newReporter(cmd.ErrOrStderr()).Report(diags)

	if errors.Is(err, gen.ErrDiagnostics) {
		return nil, errors.Wrapf(err, "%d error(s)", len(diags.Errors))
	}

	return files, err
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	if path == "" {
		path = "."
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid configuration")
	}

	logging.Logger.Debugw("configuration loaded",
		"missing_context", cfg.MissingContext,
		"output", cfg.OutputName("<pkg>"),
		"jobs", cfg.Jobs,
		"types", cfg.Types)

	return cfg, nil
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("missing-context") {
		s, _ := fs.GetString("missing-context")

		p, err := config.ParsePolicy(s)
		if err != nil {
			return errors.Wrap(err, "--missing-context")
		}

		cfg.MissingContext = p
	}

	if fs.Changed("type") {
		types, _ := fs.GetStringSlice("type")
		cfg.Types = append(cfg.Types, types...)
	}

	if fs.Changed("output") {
		cfg.Output, _ = fs.GetString("output")
	}

	if fs.Changed("jobs") {
		cfg.Jobs, _ = fs.GetInt("jobs")
	}

	return nil
}
