package diagnostic

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
)

// Diagnostic codes.
const (
	CodeMissingContext          = "MissingContext"
	CodeMalformedBindingPayload = "MalformedBindingPayload"
	CodeUnsupportedShape        = "UnsupportedShape"
	CodeEmptyEnum               = "EmptyEnum"
	CodeDuplicateContext        = "DuplicateContext"
	CodeUnknownDirective        = "UnknownDirective"
	CodeAliasSkipped            = "AliasSkipped"
	CodeMethodConflict          = "MethodConflict"
	CodeTypeNotFound            = "TypeNotFound"
	CodeNameCollision           = "NameCollision"
)

// Diagnostics holds all diagnostic information from a generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypeName identifies the declaration this relates to (if any).
	TypeName string
	// Pos is the source position, invalid when unknown.
	Pos token.Position
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName string, pos token.Position, suggestions ...string) {
	d.Errors = append(d.Errors, newDiagnostic(DiagnosticError, code, message, typeName, pos, suggestions))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName string, pos token.Position, suggestions ...string) {
	d.Warnings = append(d.Warnings, newDiagnostic(DiagnosticWarning, code, message, typeName, pos, suggestions))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName string, pos token.Position, suggestions ...string) {
	d.Infos = append(d.Infos, newDiagnostic(DiagnosticInfo, code, message, typeName, pos, suggestions))
}

func newDiagnostic(
	severity DiagnosticSeverity,
	code, message, typeName string,
	pos token.Position,
	suggestions []string,
) Diagnostic {
	return Diagnostic{
		Severity:    severity,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		Pos:         pos,
		Suggestions: suggestions,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasCode reports whether any diagnostic of any severity carries code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, diag := range d.All() {
		if diag.Code == code {
			return true
		}
	}

	return false
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	err := errors.New(strings.Join(parts, "; "))
	for _, e := range d.Errors {
		for _, s := range e.Suggestions {
			err = errors.WithHint(err, s)
		}
	}

	return err
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String())
	}

	if d.TypeName != "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
