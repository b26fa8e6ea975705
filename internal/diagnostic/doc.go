// Package diagnostic provides structured errors, warnings and notes produced
// while scanning directives and emitting formatting code.
//
// Key capabilities:
//   - Stable diagnostic codes (MissingContext, MalformedBindingPayload, ...)
//   - Source positions for every finding
//   - Hints and did-you-mean suggestions
package diagnostic
