package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"debugctx-generator/internal/gen"
)

var errStale = errors.New("generated files are out of date")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Verify that generated files are up to date",
		Long: `Generate in memory and compare against the files on disk. Exits non-zero
when any file is missing or differs.`,
		RunE: checkExecution,
	}

	addGenerateFlags(cmd.Flags())

	return cmd
}

func checkExecution(cmd *cobra.Command, args []string) error {
	files, err := generate(cmd, args)
	if err != nil {
		return err
	}

	stale := 0

	for _, f := range files {
		ok, err := gen.UpToDate(f)
		if err != nil {
			return err
		}

		if !ok {
			stale++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.YellowString("stale:"), f.Path)
		}
	}

	if stale > 0 {
		return errors.WithHint(errors.Wrapf(errStale, "%d file(s)", stale), "run debugctx-generator gen")
	}

	return nil
}
