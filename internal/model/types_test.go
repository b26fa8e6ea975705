package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldSet(t *testing.T) {
	named := Field{Name: "x", Type: "int", Access: Access{Selector: "x"}}
	embedded := Field{Type: "Base", Access: Access{Selector: "Base"}}

	tests := []struct {
		name   string
		fields []Field
		want   FieldSetKind
	}{
		{"empty", nil, FieldsEmpty},
		{"named", []Field{named}, FieldsNamed},
		{"positional", []Field{embedded}, FieldsPositional},
		{"mixed forces positional", []Field{named, embedded}, FieldsPositional},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFieldSet(tt.fields)
			assert.Equal(t, tt.want, fs.Kind)
			assert.Len(t, fs.Fields, len(tt.fields))
		})
	}
}

func TestAccess_Expr(t *testing.T) {
	tests := []struct {
		access Access
		want   string
	}{
		{Access{Kind: AccessSelector, Selector: "x"}, "v.x"},
		{Access{Kind: AccessIndex, Index: 12}, "v[12]"},
		{Access{Kind: AccessConversion, Conversion: "float64"}, "float64(v)"},
		{Access{Kind: AccessConversion, Conversion: "*int"}, "(*int)(v)"},
		{Access{Kind: AccessConversion, Conversion: "func() error"}, "(func() error)(v)"},
		{Access{Kind: AccessConversion, Conversion: "<-chan int"}, "(<-chan int)(v)"},
		{Access{Kind: AccessConversion, Conversion: "[]string"}, "[]string(v)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.access.Expr("v"))
		})
	}
}

func TestField_Label(t *testing.T) {
	assert.Equal(t, "x", Field{Name: "x", Access: Access{Selector: "x"}}.Label())
	assert.Equal(t, "Base", Field{Access: Access{Selector: "Base"}}.Label())
	assert.Empty(t, Field{Access: Access{Kind: AccessIndex, Index: 1}}.Label())
}

func TestTypeDeclaration_Instance(t *testing.T) {
	decl := TypeDeclaration{Name: "Point"}
	assert.Equal(t, "Point", decl.Instance())
	assert.False(t, decl.IsGeneric())

	decl = TypeDeclaration{
		Name:     "Pair",
		Generics: []GenericParam{{Name: "T", Constraint: "any"}, {Name: "A", Constraint: "any"}},
	}
	assert.Equal(t, "Pair[T, A]", decl.Instance())
	assert.True(t, decl.HasParam("A"))
	assert.False(t, decl.HasParam("B"))
}

func TestConstraintSet_WithDoesNotShareStorage(t *testing.T) {
	base := ConstraintSet{}.With(Constraint{Param: "T", Bound: "any"})
	a := base.With(Constraint{Param: "A", Bound: "any"})
	b := base.With(Constraint{Param: "B", Bound: "any"})

	require.Equal(t, 1, base.Len())
	assert.Equal(t, "[T any, A any]", a.String())
	assert.Equal(t, "[T any, B any]", b.String())

	bound, ok := b.Bound("B")
	assert.True(t, ok)
	assert.Equal(t, "any", bound)

	_, ok = a.Bound("B")
	assert.False(t, ok)

	assert.Empty(t, ConstraintSet{}.String())
}

func TestKinds_String(t *testing.T) {
	assert.Equal(t, "Record", ShapeRecord.String())
	assert.Equal(t, "Union", ShapeUnion.String())
	assert.Equal(t, "Positional", FieldsPositional.String())
	assert.Equal(t, "Struct", ArmStruct.String())
	assert.Equal(t, "ArmKind(0)", ArmKind(0).String())
}
