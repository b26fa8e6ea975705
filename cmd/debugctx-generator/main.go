// Package main provides the CLI entrypoint for debugctx-generator.
//
// debugctx-generator writes context-aware debug formatting functions for Go
// types annotated with //debugctx: directives:
//   - gen writes <pkg>_debugctx.go next to the package sources
//   - check fails when a committed generated file is out of date
//   - version prints build information
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"debugctx-generator/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "debugctx-generator",
		Short: "Generate context-aware debug formatting for Go types",
		Long: `debugctx-generator reads //debugctx:context and //debugctx:derive directives
and writes one formatting function per type and context.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().String("config", "", "config file or directory (default: search the working directory)")
	root.PersistentFlags().Bool("json-log", false, "log as JSON lines")
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(newGenCmd(), newCheckCmd(), newVersionCmd())

	return root
}

func main() {
	err := newRootCmd().Execute()
	logging.Sync()

	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

// setup initializes logging and color output for every command.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	jsonLog, err := flags.GetBool("json-log")
	if err != nil {
		return err
	}

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}

	if err := logging.Initialize(jsonLog, verbose); err != nil {
		return errors.Wrap(err, "failed to initialize logging")
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return err
	}

	useColor, err := colorMode(colorFlag, isTerminal(os.Stderr))
	if err != nil {
		return err
	}

	color.NoColor = !useColor

	return nil
}

func colorMode(flag string, tty bool) (bool, error) {
	switch flag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return tty, nil
	default:
		return false, errors.WithHint(errors.Newf("invalid --color value %q", flag), "use auto, on or off")
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func printError(err error) {
	red := color.New(color.FgRed, color.Bold)
	fmt.Fprintf(os.Stderr, "%s %v\n", red.Sprint("error:"), err)

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(os.Stderr, "  %s %s\n", color.CyanString("hint:"), hint)
	}
}
