package plan

import (
	"strconv"

	"debugctx-generator/internal/model"
)

// RuntimeName is the package identifier generated code uses for the runtime.
const RuntimeName = "debugctx"

// Identifiers used by generated function bodies.
const (
	RecordValue = "v"
	SwitchValue = "x"
	Formatter   = "f"
	ContextArg  = "ctx"
)

// Owner tells where a field lives.
type Owner int

const (
	OwnerRecord Owner = iota
	OwnerVariantArm
)

// Style tells whether labels are written.
type Style int

const (
	StyleNamed Style = iota
	StyleUnnamed
)

// PlanField produces the descriptor of the index-th field of its owner.
func PlanField(field model.Field, index int, owner Owner, style Style) model.FieldDescriptor {
	var access string

	switch {
	case owner == OwnerRecord:
		access = field.Access.Expr(RecordValue)
	case style == StyleUnnamed:
		access = BindingName(index)
	default:
		access = field.Access.Expr(SwitchValue)
	}

	label := field.Label()
	if label == "" {
		label = BindingName(index)
	}

	return model.FieldDescriptor{
		Access: access,
		Label:  label,
		Call:   formatCall(access, field.TypeParam),
	}
}

// BindingName is the synthesized name of the index-th positional value.
func BindingName(index int) string {
	return "arg" + strconv.Itoa(index)
}

func formatCall(access string, typeParam bool) string {
	if typeParam {
		return access + ".FormatWithContext(" + Formatter + ", " + ContextArg + ")"
	}

	return RuntimeName + ".Format(" + Formatter + ", " + access + ", " + ContextArg + ")"
}
