package model

import (
	"go/token"
	"strconv"
	"strings"
)

// TypeDeclaration is the structural description of one selected Go type.
type TypeDeclaration struct {
	// Name is the declared type name, without type parameters.
	Name string
	// Generics lists the declared type parameters in declaration order.
	Generics []GenericParam
	// Shape is the record, enum or union-like body of the declaration.
	Shape Shape
	// Pos is the position of the type name.
	Pos token.Position
	// Annotations are the directive comment lines attached to the declaration.
	Annotations []Annotation
	// HasFormatMethod is set when the package already declares a
	// FormatWithContext method on the type outside generated code.
	HasFormatMethod bool
}

// IsGeneric reports whether the declaration has type parameters.
func (d TypeDeclaration) IsGeneric() bool {
	return len(d.Generics) > 0
}

// Instance returns the type expression naming the declaration instantiated
// with its own parameters, e.g. "Pair[T, A]".
func (d TypeDeclaration) Instance() string {
	if len(d.Generics) == 0 {
		return d.Name
	}

	names := make([]string, len(d.Generics))
	for i, g := range d.Generics {
		names[i] = g.Name
	}

	return d.Name + "[" + strings.Join(names, ", ") + "]"
}

// HasParam reports whether name is one of the declared type parameters.
func (d TypeDeclaration) HasParam(name string) bool {
	for _, g := range d.Generics {
		if g.Name == name {
			return true
		}
	}

	return false
}

// GenericParam is one declared type parameter with its constraint expression.
type GenericParam struct {
	Name string
	// Constraint is the pre-existing constraint as written, "any" when
	// unconstrained.
	Constraint string
}

// Shape is the tagged body of a declaration.
type Shape struct {
	Kind ShapeKind
	// Fields is set for ShapeRecord.
	Fields FieldSet
	// Variants is set for ShapeEnum, in source order.
	Variants []Variant
}

// RecordShape builds a record shape.
func RecordShape(fs FieldSet) Shape {
	return Shape{Kind: ShapeRecord, Fields: fs}
}

// EnumShape builds an enum shape.
func EnumShape(variants []Variant) Shape {
	return Shape{Kind: ShapeEnum, Variants: variants}
}

// FieldSet is an ordered field list with its naming kind.
type FieldSet struct {
	Kind   FieldSetKind
	Fields []Field
}

// NewFieldSet classifies fields: no fields is Empty, any unnamed field makes
// the whole set Positional, otherwise Named.
func NewFieldSet(fields []Field) FieldSet {
	if len(fields) == 0 {
		return FieldSet{Kind: FieldsEmpty}
	}

	for _, f := range fields {
		if f.Name == "" {
			return FieldSet{Kind: FieldsPositional, Fields: fields}
		}
	}

	return FieldSet{Kind: FieldsNamed, Fields: fields}
}

// Field is one component of a record or variant.
type Field struct {
	// Name is empty for positional components.
	Name string
	// Type is the Go type expression of the field.
	Type string
	// TypeParam is set when Type is exactly one of the declaration's type
	// parameters.
	TypeParam bool
	// Access tells how the value is reached from its owner.
	Access Access
	// Instance is set when Type instantiates a generic type declared in the
	// same package.
	Instance *Instance
}

// Instance describes an instantiation such as Pair[ID, T] of a generic type
// declared in the package being generated.
type Instance struct {
	// Origin is the generic type's name.
	Origin string
	Args   []TypeArg
}

// TypeArg is one type argument of an Instance.
type TypeArg struct {
	// Param is set when the argument is a type parameter of the enclosing
	// declaration.
	Param bool
	// Name is the argument's type name when it is a non-generic type of the
	// package, "" otherwise.
	Name string
	// Context is the ctx parameter type of the argument's own
	// FormatWithContext method, "" when it has none.
	Context string
}

// Access describes how a field value is read from its owner value.
type Access struct {
	Kind AccessKind
	// Selector is the field or embedded type name for AccessSelector.
	Selector string
	// Index is the element index for AccessIndex.
	Index int
	// Conversion is the underlying type expression for AccessConversion.
	Conversion string
}

// Expr renders the access against the owner expression.
func (a Access) Expr(owner string) string {
	switch a.Kind {
	case AccessIndex:
		return owner + "[" + strconv.Itoa(a.Index) + "]"
	case AccessConversion:
		conv := a.Conversion
		if needsParens(conv) {
			conv = "(" + conv + ")"
		}

		return conv + "(" + owner + ")"
	default:
		return owner + "." + a.Selector
	}
}

// Label is the name a field is known by in output, empty for array elements
// and converted values.
func (f Field) Label() string {
	if f.Name != "" {
		return f.Name
	}

	if f.Access.Kind == AccessSelector {
		return f.Access.Selector
	}

	return ""
}

// Variant is one alternative of an enum.
type Variant struct {
	// Name is the label written in output.
	Name string
	// TypeExpr is the case type of the type switch, e.g. "Circle", "*Node"
	// or "Some[T]".
	TypeExpr string
	Fields   FieldSet
}

// Pointer reports whether the case type is a pointer to the variant type.
func (v Variant) Pointer() bool {
	return strings.HasPrefix(v.TypeExpr, "*")
}

// Annotation is one raw directive comment line.
type Annotation struct {
	Text string
	Pos  token.Position
}

// ContextBinding is one declared context identifier.
type ContextBinding struct {
	Name string
	Pos  token.Position
}

// Import is a package referenced by expressions in a declaration.
type Import struct {
	Path string
	// Name is the identifier the expressions use for the package.
	Name string
}

func needsParens(typ string) bool {
	return strings.HasPrefix(typ, "*") ||
		strings.HasPrefix(typ, "func") ||
		strings.HasPrefix(typ, "<-")
}

// GeneratedHeader starts every generated file.
const GeneratedHeader = "// Code generated by debugctx-generator. DO NOT EDIT."
