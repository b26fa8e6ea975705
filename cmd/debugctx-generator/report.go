package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"debugctx-generator/internal/diagnostic"
)

// reporter prints diagnostics, errors first.
type reporter struct {
	w        io.Writer
	severity map[diagnostic.DiagnosticSeverity]*color.Color
	hint     *color.Color
}

func newReporter(w io.Writer) *reporter {
	return &reporter{
		w: w,
		severity: map[diagnostic.DiagnosticSeverity]*color.Color{
			diagnostic.DiagnosticError:   color.New(color.FgRed, color.Bold),
			diagnostic.DiagnosticWarning: color.New(color.FgYellow, color.Bold),
			diagnostic.DiagnosticInfo:    color.New(color.FgCyan),
		},
		hint: color.New(color.FgCyan),
	}
}

// Report prints every diagnostic with its suggestions.
func (r *reporter) Report(diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		label := d.Severity.String() + ":"
		if c, ok := r.severity[d.Severity]; ok {
			label = c.Sprint(label)
		}

		fmt.Fprintf(r.w, "%s %s\n", label, d.String())

		for _, s := range d.Suggestions {
			fmt.Fprintf(r.w, "  %s %s\n", r.hint.Sprint("hint:"), s)
		}
	}
}
