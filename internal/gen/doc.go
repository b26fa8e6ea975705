// Package gen turns analyzed declarations into Go source.
//
// Emitter produces one EmissionUnit per (declaration, context) pair: a
// top-level generic function rendering the value through the debugctx
// runtime. Route decides how values reach those functions at run time, either
// through a FormatWithContext method or a registration in a generated init
// function. Assemble lays units out in source order with text/template and
// go/format, and Generator drives the whole pipeline per package, emitting
// declarations concurrently.
package gen
