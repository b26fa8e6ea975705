package debugctx

// Debugger is implemented by values that render themselves with a context of
// type C. Implementations return only errors from the underlying writer.
type Debugger[C any] interface {
	FormatWithContext(f *Formatter, ctx C) error
}
