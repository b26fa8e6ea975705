package debugctx

import (
	"fmt"
	"io"
	"strings"
)

// Wrapped pairs a value with a context so it can be handed to the fmt package.
type Wrapped[C any] struct {
	Value   any
	Context C
}

// Wrap pairs v with ctx. The result prints compact with %v and %s, and
// multi-line with %+v and %#v.
func Wrap[C any](v any, ctx C) Wrapped[C] {
	return Wrapped[C]{Value: v, Context: ctx}
}

// Format implements fmt.Formatter.
func (w Wrapped[C]) Format(s fmt.State, verb rune) {
	f := NewFormatter(s)
	if s.Flag('+') || s.Flag('#') {
		f = NewPrettyFormatter(s)
	}

	if err := Format(f, w.Value, w.Context); err != nil {
		fmt.Fprintf(s, "%%!%c(debugctx: %v)", verb, err)
	}
}

// String implements fmt.Stringer.
func (w Wrapped[C]) String() string {
	return Sprint(w.Value, w.Context)
}

// Fprint writes the compact rendering of v to w.
func Fprint[C any](w io.Writer, v any, ctx C) error {
	return Format(NewFormatter(w), v, ctx)
}

// Sprint returns the compact rendering of v. A rendering error is appended in
// fmt's %!v(...) style.
func Sprint[C any](v any, ctx C) string {
	var sb strings.Builder
	if err := Format(NewFormatter(&sb), v, ctx); err != nil {
		fmt.Fprintf(&sb, "%%!v(debugctx: %v)", err)
	}

	return sb.String()
}

// SprintPretty returns the multi-line rendering of v.
func SprintPretty[C any](v any, ctx C) string {
	var sb strings.Builder
	if err := Format(NewPrettyFormatter(&sb), v, ctx); err != nil {
		fmt.Fprintf(&sb, "%%!v(debugctx: %v)", err)
	}

	return sb.String()
}
