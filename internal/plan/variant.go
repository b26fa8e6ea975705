package plan

import (
	"debugctx-generator/internal/model"
)

// PlanVariant classifies a variant and plans its type-switch arm.
//
// A variant without fields is Empty. Any unnamed field makes the whole variant
// a Tuple; its values are bound to arg0, arg1, ... before the builder chain.
// Otherwise the variant is a Struct whose fields are read from the switch
// value.
func PlanVariant(v model.Variant) model.Arm {
	arm := model.Arm{Name: v.Name, Case: v.TypeExpr, Pointer: v.Pointer()}

	switch v.Fields.Kind {
	case model.FieldsPositional:
		arm.Kind = model.ArmTuple
		for i, f := range v.Fields.Fields {
			arm.Bindings = append(arm.Bindings, model.Binding{
				Name:  BindingName(i),
				Value: f.Access.Expr(bindingOwner(v, f)),
			})
			arm.Fields = append(arm.Fields, PlanField(f, i, OwnerVariantArm, StyleUnnamed))
		}
	case model.FieldsNamed:
		arm.Kind = model.ArmStruct
		for i, f := range v.Fields.Fields {
			arm.Fields = append(arm.Fields, PlanField(f, i, OwnerVariantArm, StyleNamed))
		}
	default:
		arm.Kind = model.ArmEmpty
	}

	return arm
}

// PlanVariants plans every variant in declaration order.
func PlanVariants(variants []model.Variant) []model.Arm {
	arms := make([]model.Arm, len(variants))
	for i, v := range variants {
		arms[i] = PlanVariant(v)
	}

	return arms
}

// bindingOwner is the switch value as seen by a field access. A converted
// value cannot be reached through the pointer of a pointer variant.
func bindingOwner(v model.Variant, f model.Field) string {
	if f.Access.Kind == model.AccessConversion && v.Pointer() {
		return "*" + SwitchValue
	}

	return SwitchValue
}
