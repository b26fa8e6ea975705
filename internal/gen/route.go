package gen

import (
	"fmt"

	"debugctx-generator/internal/common"
	"debugctx-generator/internal/diagnostic"
	"debugctx-generator/internal/model"
	"debugctx-generator/internal/plan"
)

// Adapter is a FormatWithContext method forwarding to a unit.
type Adapter struct {
	Receiver    string
	ContextType string
	FuncName    string
}

// Routes connect the units of one declaration to runtime dispatch.
type Routes struct {
	// Adapter is set for a non-generic record with a single unit.
	Adapter *Adapter
	// Registrations are statements for the generated init function.
	Registrations []string
}

// Route decides how values of decl reach its units at run time.
//
// Generic declarations get no routes: neither a method nor a registration can
// be instantiated for every type argument. A record with one unit gets a
// method; with more it is registered once per unit. An enum is registered per
// variant and unit, keyed by the variant's dynamic type.
func Route(decl model.TypeDeclaration, units []model.EmissionUnit) (Routes, diagnostic.Diagnostics) {
	var (
		r     Routes
		diags diagnostic.Diagnostics
	)

	if decl.IsGeneric() || common.IsEmpty(units) {
		return r, diags
	}

	if decl.Shape.Kind == model.ShapeEnum {
		for _, v := range decl.Shape.Variants {
			for _, u := range units {
				r.Registrations = append(r.Registrations, variantRegistration(v.TypeExpr, u))
			}
		}

		return r, diags
	}

	if adapted(decl, units) {
		u := units[0]

		ctxType := u.ContextType
		if u.Placeholder {
			ctxType = "any"
		}

		r.Adapter = &Adapter{Receiver: u.Receiver, ContextType: ctxType, FuncName: u.FuncName}

		return r, diags
	}

	if decl.HasFormatMethod {
		diags.AddWarning(diagnostic.CodeMethodConflict,
			decl.Name+" already has a FormatWithContext method; registering instead", decl.Name, decl.Pos)
	}

	for _, u := range units {
		if u.Placeholder {
			r.Registrations = append(r.Registrations,
				fmt.Sprintf("%s.RegisterAny(%s[any])", plan.RuntimeName, u.FuncName))

			continue
		}

		r.Registrations = append(r.Registrations, fmt.Sprintf("%s.Register(%s)", plan.RuntimeName, u.FuncName))
	}

	return r, diags
}

func variantRegistration(caseType string, u model.EmissionUnit) string {
	register, ctxType := "Register", u.ContextType
	if u.Placeholder {
		register, ctxType = "RegisterAny", "any"
	}

	return fmt.Sprintf("%s.%s(func(%s *%s.Formatter, %s %s, %s %s) error {\n\t\treturn %s(%s, %s, %s)\n\t})",
		plan.RuntimeName, register,
		plan.Formatter, plan.RuntimeName, plan.RecordValue, caseType, plan.ContextArg, ctxType,
		u.FuncName, plan.Formatter, plan.RecordValue, plan.ContextArg)
}

// adapted reports whether decl, emitted as the given units or contexts, gets a
// FormatWithContext method.
func adapted[S ~[]E, E any](decl model.TypeDeclaration, units S) bool {
	return !decl.IsGeneric() && decl.Shape.Kind != model.ShapeEnum && common.IsSingle(units) && !decl.HasFormatMethod
}

// Link records in links what the generated file provides for decl when it is
// emitted for contexts: units callable on generic instances, or the context
// type of its generated method.
func Link(links *plan.Links, decl model.TypeDeclaration, contexts []plan.Context) {
	switch {
	case common.IsEmpty(contexts):
	case decl.IsGeneric():
		links.AddUnits(decl.Name, contexts)
	case adapted(decl, contexts) && !contexts[0].Placeholder:
		links.AddMethod(decl.Name, contexts[0].TypeExpr())
	}
}
