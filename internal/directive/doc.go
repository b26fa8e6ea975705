// Package directive extracts context bindings from //debugctx: comment
// directives attached to type declarations.
//
// Supported directives:
//
//	//debugctx:context Ctx        bind one context type
//	//debugctx:context A, B       bind several context types
//	//debugctx:derive             select the type without a context
//
// Directives follow the Go convention for machine-readable comments: no space
// between the slashes and the prefix.
package directive
