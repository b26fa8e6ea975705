package gen

import (
	"fmt"
	"strings"

	"debugctx-generator/internal/config"
	"debugctx-generator/internal/diagnostic"
	"debugctx-generator/internal/model"
	"debugctx-generator/internal/plan"
)

const fieldFunc = "func(" + plan.Formatter + " *" + plan.RuntimeName + ".Formatter) error"

// Emitter turns one declaration and its context bindings into emission units.
// It does no I/O and keeps no state between calls.
type Emitter struct {
	policy config.Policy
	links  plan.Links
}

// NewEmitter creates an Emitter applying policy to declarations without a
// context binding. The policy must be set explicitly.
func NewEmitter(policy config.Policy) (*Emitter, error) {
	p, err := config.ParsePolicy(string(policy))
	if err != nil {
		return nil, err
	}

	return &Emitter{policy: p}, nil
}

// WithLinks returns a copy of the emitter that formats fields holding linked
// generic instances by calling their units directly.
func (e *Emitter) WithLinks(links plan.Links) *Emitter {
	cp := *e
	cp.links = links

	return &cp
}

// Contexts lists the contexts decl is emitted for: one per binding, or the
// placeholder under the fallback policy. It is empty when no unit would be
// produced.
func (e *Emitter) Contexts(decl model.TypeDeclaration, bindings []model.ContextBinding) []plan.Context {
	switch {
	case decl.Shape.Kind == model.ShapeUnion:
		return nil
	case len(bindings) > 0:
		contexts := make([]plan.Context, len(bindings))
		for i, b := range bindings {
			contexts[i] = plan.Concrete(b.Name)
		}

		return contexts
	case e.policy == config.PolicyFallback:
		return []plan.Context{plan.Placeholder(decl.Generics)}
	default:
		return nil
	}
}

// Emit produces one unit per binding in binding order, or a single unit
// generic over a synthesized context when there are none and the policy
// allows it. Error diagnostics mean no units were produced.
func (e *Emitter) Emit(decl model.TypeDeclaration, bindings []model.ContextBinding) ([]model.EmissionUnit, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	switch decl.Shape.Kind {
	case model.ShapeUnion:
		diags.AddError(diagnostic.CodeUnsupportedShape,
			"union-like constraint interfaces have no runtime values to format", decl.Name, decl.Pos)

		return nil, diags
	case model.ShapeEnum:
		if len(decl.Shape.Variants) == 0 {
			diags.AddInfo(diagnostic.CodeEmptyEnum,
				"no types in the package implement this interface", decl.Name, decl.Pos)
		}
	}

	contexts := e.Contexts(decl, bindings)
	if len(contexts) == 0 {
		diags.AddError(diagnostic.CodeMissingContext,
			"no context declared", decl.Name, decl.Pos,
			fmt.Sprintf("add //debugctx:context <Ctx> to the declaration of %s", decl.Name),
			"or run with --missing-context=fallback")

		return nil, diags
	}

	seen := make(map[string]string, len(contexts))
	units := make([]model.EmissionUnit, 0, len(contexts))

	for _, c := range contexts {
		name := plan.FuncName(decl.Name, c)
		if prev, dup := seen[name]; dup {
			diags.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("contexts %s and %s both produce %s", prev, c.Name, name), decl.Name, decl.Pos,
				"rename one of the context types")

			continue
		}

		seen[name] = c.Name

		units = append(units, model.EmissionUnit{
			TypeName:    decl.Name,
			Context:     c.Name,
			Placeholder: c.Placeholder,
			TypeParams:  plan.Bind(decl.Generics, c),
			FuncName:    name,
			Receiver:    decl.Instance(),
			ContextType: c.TypeExpr(),
			Body:        Body(decl, c, e.links),
		})
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return units, diags
}

// Body renders the statements of the unit of decl for the context c.
func Body(decl model.TypeDeclaration, c plan.Context, links plan.Links) string {
	var b strings.Builder

	if decl.Shape.Kind == model.ShapeEnum {
		arms := plan.PlanVariants(decl.Shape.Variants)
		for i, v := range decl.Shape.Variants {
			for j, f := range v.Fields.Fields {
				arms[i].Fields[j] = link(arms[i].Fields[j], f, c, links)
			}
		}

		writeSwitch(&b, arms)
	} else {
		writeRecord(&b, decl.Name, decl.Shape.Fields, c, links)
	}

	return b.String()
}

func link(fd model.FieldDescriptor, f model.Field, c plan.Context, links plan.Links) model.FieldDescriptor {
	if call, ok := links.Call(f, fd.Access, c); ok {
		fd.Call = call
	}

	return fd
}

func writeRecord(b *strings.Builder, name string, fs model.FieldSet, c plan.Context, links plan.Links) {
	fields := make([]model.FieldDescriptor, len(fs.Fields))
	for i, f := range fs.Fields {
		style := plan.StyleNamed
		if fs.Kind == model.FieldsPositional {
			style = plan.StyleUnnamed
		}

		fields[i] = link(plan.PlanField(f, i, plan.OwnerRecord, style), f, c, links)
	}

	switch fs.Kind {
	case model.FieldsNamed:
		writeChain(b, "\t", "DebugStruct", name, fields, true)
	case model.FieldsPositional:
		writeChain(b, "\t", "DebugTuple", name, fields, false)
	default:
		writeString(b, "\t", name)
	}
}

func writeSwitch(b *strings.Builder, arms []model.Arm) {
	bind := false
	for _, a := range arms {
		bind = bind || a.UsesSwitchValue()
	}

	if bind {
		fmt.Fprintf(b, "\tswitch %s := %s.(type) {\n", plan.SwitchValue, plan.RecordValue)
	} else {
		fmt.Fprintf(b, "\tswitch %s.(type) {\n", plan.RecordValue)
	}

	for _, a := range arms {
		fmt.Fprintf(b, "\tcase %s:\n", a.Case)

		if a.Pointer && a.UsesSwitchValue() {
			fmt.Fprintf(b, "\t\tif %s == nil {\n", plan.SwitchValue)
			writeString(b, "\t\t\t", "nil")
			b.WriteString("\t\t}\n\n")
		}

		switch a.Kind {
		case model.ArmStruct:
			writeChain(b, "\t\t", "DebugStruct", a.Name, a.Fields, true)
		case model.ArmTuple:
			names := make([]string, len(a.Bindings))
			values := make([]string, len(a.Bindings))
			for i, bd := range a.Bindings {
				names[i], values[i] = bd.Name, bd.Value
			}

			fmt.Fprintf(b, "\t\t%s := %s\n", strings.Join(names, ", "), strings.Join(values, ", "))
			writeChain(b, "\t\t", "DebugTuple", a.Name, a.Fields, false)
		default:
			writeString(b, "\t\t", a.Name)
		}
	}

	fmt.Fprintf(b, "\t}\n\n\treturn %s.Unmatched(%s, %s)\n", plan.RuntimeName, plan.Formatter, plan.RecordValue)
}

// writeChain writes one builder chain, a Field call per line.
func writeChain(b *strings.Builder, indent, builder, name string, fields []model.FieldDescriptor, labeled bool) {
	fmt.Fprintf(b, "%sreturn %s.%s(%q).\n", indent, plan.Formatter, builder, name)

	for _, fd := range fields {
		if labeled {
			fmt.Fprintf(b, "%s\tField(%q, %s { return %s }).\n", indent, fd.Label, fieldFunc, fd.Call)
		} else {
			fmt.Fprintf(b, "%s\tField(%s { return %s }).\n", indent, fieldFunc, fd.Call)
		}
	}

	fmt.Fprintf(b, "%s\tFinish()\n", indent)
}

func writeString(b *strings.Builder, indent, name string) {
	fmt.Fprintf(b, "%sreturn %s.WriteString(%q)\n", indent, plan.Formatter, name)
}
