package model

//go:generate go tool stringer -type=ShapeKind -trimprefix=Shape -output=shapekind_string.go
//go:generate go tool stringer -type=FieldSetKind -trimprefix=Fields -output=fieldsetkind_string.go
//go:generate go tool stringer -type=ArmKind -trimprefix=Arm -output=armkind_string.go

// ShapeKind tells records, enums and union-like declarations apart.
type ShapeKind int

const (
	_ ShapeKind = iota // zero value is invalid

	ShapeRecord
	ShapeEnum
	ShapeUnion
)

// FieldSetKind classifies how the fields of a record or variant are named.
type FieldSetKind int

const (
	_ FieldSetKind = iota // zero value is invalid

	FieldsNamed
	FieldsPositional
	FieldsEmpty
)

// ArmKind classifies one enum variant for emission.
type ArmKind int

const (
	_ ArmKind = iota // zero value is invalid

	ArmEmpty
	ArmTuple
	ArmStruct
)

// AccessKind tells how a field value is reached from its owner.
type AccessKind int

const (
	// AccessSelector reads a named or embedded field: v.name.
	AccessSelector AccessKind = iota
	// AccessIndex reads an array element: v[i].
	AccessIndex
	// AccessConversion converts a defined non-struct type to its underlying type: T(v).
	AccessConversion
)
