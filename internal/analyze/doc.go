// Package analyze loads Go packages and describes the selected type
// declarations in the shape model the planners consume.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. Key steps:
//   - select types carrying a //debugctx: directive, or named explicitly
//   - classify each as a record, an enum (an interface whose implementing
//     package types are its variants) or an unsupported union-like constraint
//   - render every type expression relative to the package, recording the
//     imports the expressions need
//
// Previously generated files are parsed for their package clause only, so a
// stale or broken output never affects the next run.
package analyze
