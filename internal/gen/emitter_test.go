package gen

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debugctx-generator/internal/config"
	"debugctx-generator/internal/diagnostic"
	"debugctx-generator/internal/model"
	"debugctx-generator/internal/plan"
)

func named(name string) model.Field {
	return model.Field{Name: name, Type: "int", Access: model.Access{Kind: model.AccessSelector, Selector: name}}
}

func element(i int) model.Field {
	return model.Field{Type: "int", Access: model.Access{Kind: model.AccessIndex, Index: i}}
}

func record(name string, fields ...model.Field) model.TypeDeclaration {
	return model.TypeDeclaration{Name: name, Shape: model.RecordShape(model.NewFieldSet(fields))}
}

func contexts(names ...string) []model.ContextBinding {
	out := make([]model.ContextBinding, len(names))
	for i, n := range names {
		out[i] = model.ContextBinding{Name: n}
	}

	return out
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func fallbackEmitter(t *testing.T) *Emitter {
	t.Helper()

	e, err := NewEmitter(config.PolicyFallback)
	require.NoError(t, err)

	return e
}

func TestNewEmitter_PolicyMustBeSet(t *testing.T) {
	_, err := NewEmitter(config.PolicyUnset)
	require.ErrorIs(t, err, config.ErrPolicyUnset)

	_, err = NewEmitter("sometimes")
	require.ErrorIs(t, err, config.ErrUnknownPolicy)
}

func TestEmit_NamedRecord(t *testing.T) {
	units, diags := fallbackEmitter(t).Emit(record("Point", named("x"), named("y")), contexts("Ctx"))
	require.False(t, diags.HasErrors())
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, "DebugPointWithCtx", u.FuncName)
	assert.Equal(t, "Ctx", u.Context)
	assert.Equal(t, "*Ctx", u.ContextType)
	assert.Equal(t, "Point", u.Receiver)
	assert.Zero(t, u.TypeParams.Len())
	assert.Equal(t, lines(
		`	return f.DebugStruct("Point").`,
		`		Field("x", func(f *debugctx.Formatter) error { return debugctx.Format(f, v.x, ctx) }).`,
		`		Field("y", func(f *debugctx.Formatter) error { return debugctx.Format(f, v.y, ctx) }).`,
		`		Finish()`,
	), u.Body)
}

func TestEmit_PositionalRecord(t *testing.T) {
	units, _ := fallbackEmitter(t).Emit(record("Pair", element(0), element(1)), contexts("Ctx"))
	require.Len(t, units, 1)

	assert.Equal(t, lines(
		`	return f.DebugTuple("Pair").`,
		`		Field(func(f *debugctx.Formatter) error { return debugctx.Format(f, v[0], ctx) }).`,
		`		Field(func(f *debugctx.Formatter) error { return debugctx.Format(f, v[1], ctx) }).`,
		`		Finish()`,
	), units[0].Body)
}

func TestEmit_EmptyRecord(t *testing.T) {
	units, _ := fallbackEmitter(t).Emit(record("Unit"), contexts("Ctx"))
	require.Len(t, units, 1)

	assert.Equal(t, lines(`	return f.WriteString("Unit")`), units[0].Body)
}

func TestEmit_ContextFanOut(t *testing.T) {
	units, diags := fallbackEmitter(t).Emit(record("Point", named("x")), contexts("X", "Y"))
	require.False(t, diags.HasErrors())
	require.Len(t, units, 2)

	assert.Equal(t, "DebugPointWithX", units[0].FuncName)
	assert.Equal(t, "*X", units[0].ContextType)
	assert.Equal(t, "DebugPointWithY", units[1].FuncName)
	assert.Equal(t, "*Y", units[1].ContextType)

	for _, u := range units {
		assert.False(t, u.Placeholder)
		assert.Equal(t, units[0].Body, u.Body)
	}
}

func TestEmit_FallbackUnit(t *testing.T) {
	units, diags := fallbackEmitter(t).Emit(record("Point", named("x")), nil)
	require.False(t, diags.HasErrors())
	require.Len(t, units, 1)

	u := units[0]
	assert.True(t, u.Placeholder)
	assert.Equal(t, "DebugPoint", u.FuncName)
	assert.Equal(t, "C", u.ContextType)
	assert.Equal(t, "[C any]", u.TypeParams.String())
}

func TestEmit_ErrorPolicy(t *testing.T) {
	e, err := NewEmitter(config.PolicyError)
	require.NoError(t, err)

	units, diags := e.Emit(record("Point", named("x")), nil)
	assert.Empty(t, units)
	require.True(t, diags.HasErrors())

	missing := diags.Errors[0]
	assert.Equal(t, diagnostic.CodeMissingContext, missing.Code)
	assert.Equal(t, "Point", missing.TypeName)
	assert.Contains(t, missing.Suggestions[0], "//debugctx:context")

	units, diags = e.Emit(record("Point", named("x")), contexts("Ctx"))
	assert.False(t, diags.HasErrors())
	assert.Len(t, units, 1)
}

func TestEmit_GenericPropagation(t *testing.T) {
	decl := model.TypeDeclaration{
		Name:     "Pair",
		Generics: []model.GenericParam{{Name: "T", Constraint: "any"}, {Name: "A", Constraint: "fmt.Stringer"}},
		Shape: model.RecordShape(model.NewFieldSet([]model.Field{
			{Name: "first", Type: "T", TypeParam: true, Access: model.Access{Selector: "first"}},
			{Name: "second", Type: "[]A", Access: model.Access{Selector: "second"}},
		})),
	}

	e := fallbackEmitter(t)

	units, _ := e.Emit(decl, contexts("X", "Y"))
	require.Len(t, units, 2, spew.Sdump(units))

	assert.Equal(t, "[T debugctx.Debugger[*X], A interface{ fmt.Stringer; debugctx.Debugger[*X] }]",
		units[0].TypeParams.String())
	assert.Equal(t, "[T debugctx.Debugger[*Y], A interface{ fmt.Stringer; debugctx.Debugger[*Y] }]",
		units[1].TypeParams.String())
	assert.Equal(t, "Pair[T, A]", units[0].Receiver)
	assert.Contains(t, units[0].Body, `Field("first", func(f *debugctx.Formatter) error { return v.first.FormatWithContext(f, ctx) })`)
	assert.Contains(t, units[0].Body, `Field("second", func(f *debugctx.Formatter) error { return debugctx.Format(f, v.second, ctx) })`)

	units, _ = e.Emit(decl, nil)
	require.Len(t, units, 1)
	assert.Equal(t, "[C any, T debugctx.Debugger[C], A interface{ fmt.Stringer; debugctx.Debugger[C] }]",
		units[0].TypeParams.String())
}

func TestEmit_PlaceholderAvoidsCollision(t *testing.T) {
	decl := model.TypeDeclaration{
		Name:     "Box",
		Generics: []model.GenericParam{{Name: "C", Constraint: "any"}},
		Shape:    model.RecordShape(model.NewFieldSet(nil)),
	}

	units, _ := fallbackEmitter(t).Emit(decl, nil)
	require.Len(t, units, 1)
	assert.Equal(t, "C0", units[0].ContextType)
	assert.Equal(t, "[C0 any, C debugctx.Debugger[C0]]", units[0].TypeParams.String())
}

func TestEmit_Enum(t *testing.T) {
	embedded := model.Field{Type: "Base", Access: model.Access{Selector: "Base"}}

	decl := model.TypeDeclaration{
		Name: "Shape",
		Shape: model.EnumShape([]model.Variant{
			{Name: "Circle", TypeExpr: "Circle", Fields: model.NewFieldSet([]model.Field{named("r")})},
			{Name: "Mixed", TypeExpr: "*Mixed", Fields: model.NewFieldSet([]model.Field{embedded, named("n")})},
			{Name: "None", TypeExpr: "None", Fields: model.NewFieldSet(nil)},
		}),
	}

	units, diags := fallbackEmitter(t).Emit(decl, contexts("Ctx"))
	require.False(t, diags.HasErrors())
	require.Len(t, units, 1)

	assert.Equal(t, lines(
		`	switch x := v.(type) {`,
		`	case Circle:`,
		`		return f.DebugStruct("Circle").`,
		`			Field("r", func(f *debugctx.Formatter) error { return debugctx.Format(f, x.r, ctx) }).`,
		`			Finish()`,
		`	case *Mixed:`,
		`		if x == nil {`,
		`			return f.WriteString("nil")`,
		`		}`,
		``,
		`		arg0, arg1 := x.Base, x.n`,
		`		return f.DebugTuple("Mixed").`,
		`			Field(func(f *debugctx.Formatter) error { return debugctx.Format(f, arg0, ctx) }).`,
		`			Field(func(f *debugctx.Formatter) error { return debugctx.Format(f, arg1, ctx) }).`,
		`			Finish()`,
		`	case None:`,
		`		return f.WriteString("None")`,
		`	}`,
		``,
		`	return debugctx.Unmatched(f, v)`,
	), units[0].Body)
}

func TestEmit_UnitVariantsSkipBinding(t *testing.T) {
	decl := model.TypeDeclaration{
		Name: "Signal",
		Shape: model.EnumShape([]model.Variant{
			{Name: "On", TypeExpr: "On", Fields: model.NewFieldSet(nil)},
			{Name: "Off", TypeExpr: "Off", Fields: model.NewFieldSet(nil)},
		}),
	}

	units, _ := fallbackEmitter(t).Emit(decl, nil)
	require.Len(t, units, 1)
	assert.Equal(t, "DebugSignal", units[0].FuncName)
	assert.True(t, strings.HasPrefix(units[0].Body, "\tswitch v.(type) {\n"))
}

func TestEmit_EmptyEnum(t *testing.T) {
	decl := model.TypeDeclaration{Name: "Nothing", Shape: model.EnumShape(nil)}

	units, diags := fallbackEmitter(t).Emit(decl, contexts("Ctx"))
	require.Len(t, units, 1)
	assert.False(t, diags.HasErrors())
	assert.True(t, diags.HasCode(diagnostic.CodeEmptyEnum))
	assert.Equal(t, lines(
		`	switch v.(type) {`,
		`	}`,
		``,
		`	return debugctx.Unmatched(f, v)`,
	), units[0].Body)
}

func TestEmit_UnionUnsupported(t *testing.T) {
	decl := model.TypeDeclaration{Name: "Number", Shape: model.Shape{Kind: model.ShapeUnion}}

	units, diags := fallbackEmitter(t).Emit(decl, contexts("Ctx"))
	assert.Empty(t, units)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeUnsupportedShape, diags.Errors[0].Code)
}

func TestEmit_DoesNotMutateDeclaration(t *testing.T) {
	decl := record("Point", named("x"))
	before := spew.Sdump(decl)

	_, _ = fallbackEmitter(t).Emit(decl, contexts("A", "B"))

	assert.Equal(t, before, spew.Sdump(decl))
}

func TestEmit_PointerEmptyVariantNeedsNoGuard(t *testing.T) {
	decl := model.TypeDeclaration{
		Name: "Signal",
		Shape: model.EnumShape([]model.Variant{
			{Name: "On", TypeExpr: "On", Fields: model.NewFieldSet(nil)},
			{Name: "On", TypeExpr: "*On", Fields: model.NewFieldSet(nil)},
		}),
	}

	units, _ := fallbackEmitter(t).Emit(decl, nil)
	require.Len(t, units, 1)
	assert.Equal(t, lines(
		`	switch v.(type) {`,
		`	case On:`,
		`		return f.WriteString("On")`,
		`	case *On:`,
		`		return f.WriteString("On")`,
		`	}`,
		``,
		`	return debugctx.Unmatched(f, v)`,
	), units[0].Body)
}

func TestEmit_FuncNameCollision(t *testing.T) {
	units, diags := fallbackEmitter(t).Emit(record("Point", named("x")), contexts("x", "X"))

	assert.Empty(t, units)
	require.True(t, diags.HasCode(diagnostic.CodeNameCollision), spew.Sdump(diags))
	assert.Contains(t, diags.Errors[0].Message, "DebugPointWithX")
}

func TestEmit_LinkedGenericField(t *testing.T) {
	pair := model.Field{
		Name:   "P",
		Type:   "Pair[ID, ID]",
		Access: model.Access{Kind: model.AccessSelector, Selector: "P"},
		Instance: &model.Instance{Origin: "Pair", Args: []model.TypeArg{
			{Name: "ID", Context: "*Labels"},
			{Name: "ID", Context: "*Labels"},
		}},
	}

	var links plan.Links
	links.AddUnits("Pair", []plan.Context{plan.Concrete("Labels")})

	e := fallbackEmitter(t).WithLinks(links)

	units, diags := e.Emit(record("Holder", pair), contexts("Labels", "Units"))
	require.False(t, diags.HasErrors())
	require.Len(t, units, 2)

	assert.Contains(t, units[0].Body, `Field("P", func(f *debugctx.Formatter) error { return DebugPairWithLabels(f, v.P, ctx) })`)
	assert.Contains(t, units[1].Body, `Field("P", func(f *debugctx.Formatter) error { return debugctx.Format(f, v.P, ctx) })`,
		"no Pair unit exists for Units")

	units, _ = fallbackEmitter(t).Emit(record("Holder", pair), contexts("Labels"))
	assert.Contains(t, units[0].Body, "debugctx.Format(f, v.P, ctx)", "emitter without links")
}
