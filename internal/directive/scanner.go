package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"debugctx-generator/internal/diagnostic"
	"debugctx-generator/internal/model"
)

// Prefix starts every directive comment.
const Prefix = "//debugctx:"

const (
	nameContext = "context"
	nameDerive  = "derive"
)

const msgNotIdentifier = "annotation payload is not a bare identifier"

// Result is what the scanner extracted for one declaration.
type Result struct {
	// Bindings lists the declared contexts in source order, duplicates removed.
	Bindings []model.ContextBinding
	// Selected is set when at least one recognized directive is present.
	Selected bool
}

// IsDirective reports whether a raw comment text is a debugctx directive.
func IsDirective(text string) bool {
	return strings.HasPrefix(text, Prefix)
}

// Collect returns the directive lines of the given comment groups in order,
// positioned with fset.
func Collect(fset *token.FileSet, groups ...*ast.CommentGroup) []model.Annotation {
	var out []model.Annotation

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if !IsDirective(c.Text) {
				continue
			}

			out = append(out, model.Annotation{Text: c.Text, Pos: fset.Position(c.Slash)})
		}
	}

	return out
}

// Scan extracts the context bindings of typeName from its annotations.
//
// Malformed payloads are reported as error diagnostics; the returned bindings
// must not be used when the diagnostics carry errors.
func Scan(typeName string, annotations []model.Annotation) (Result, diagnostic.Diagnostics) {
	var (
		res   Result
		diags diagnostic.Diagnostics
		seen  = make(map[string]token.Position)
	)

	for _, a := range annotations {
		name, payload := split(a.Text)

		switch name {
		case nameContext:
			res.Selected = true
			items, ok := parsePayload(payload)
			if !ok {
				diags.AddError(diagnostic.CodeMalformedBindingPayload, msgNotIdentifier, typeName, a.Pos,
					"use //debugctx:context Name with a type declared in this package")

				continue
			}

			for _, item := range items {
				if first, dup := seen[item]; dup {
					diags.AddWarning(diagnostic.CodeDuplicateContext,
						fmt.Sprintf("context %s is already bound at %s", item, first), typeName, a.Pos)

					continue
				}

				seen[item] = a.Pos
				res.Bindings = append(res.Bindings, model.ContextBinding{Name: item, Pos: a.Pos})
			}
		case nameDerive:
			res.Selected = true
			if payload != "" {
				diags.AddError(diagnostic.CodeMalformedBindingPayload,
					"derive directive takes no payload", typeName, a.Pos,
					"use //debugctx:context "+payload+" to bind a context")
			}
		default:
			diags.AddWarning(diagnostic.CodeUnknownDirective,
				fmt.Sprintf("unknown directive %q", strings.TrimPrefix(a.Text, "//")), typeName, a.Pos)
		}
	}

	return res, diags
}

// split separates "//debugctx:name payload" into name and trimmed payload.
func split(text string) (string, string) {
	rest := strings.TrimPrefix(text, Prefix)

	i := strings.IndexAny(rest, " \t")
	if i < 0 {
		return rest, ""
	}

	return rest[:i], strings.TrimSpace(rest[i+1:])
}

// parsePayload splits a comma-separated identifier list. Every item must be a
// bare identifier; "_" is rejected since it cannot name a type.
func parsePayload(payload string) ([]string, bool) {
	if payload == "" {
		return nil, false
	}

	parts := strings.Split(payload, ",")
	items := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !token.IsIdentifier(p) || p == "_" {
			return nil, false
		}

		items = append(items, p)
	}

	return items, true
}

// Selects reports whether annotations contain a recognized directive.
func Selects(annotations []model.Annotation) bool {
	for _, a := range annotations {
		if name, _ := split(a.Text); name == nameContext || name == nameDerive {
			return true
		}
	}

	return false
}
