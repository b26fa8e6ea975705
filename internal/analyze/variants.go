package analyze

import (
	"go/types"

	"debugctx-generator/internal/model"
)

// variants discovers the enum's alternatives: every named non-interface type
// of the package that implements it, directly or through its pointer type, in
// source order. A type whose value implements the enum contributes itself and
// its pointer, since both can be stored in the interface. Generic candidates
// are instantiated with the enum's own type parameters and must have the same
// number of them.
func (a *Analyzer) variants(enum *types.Named, iface *types.Interface, entries []typeEntry) []model.Variant {
	if iface.NumMethods() == 0 {
		return nil
	}

	enumParams := enum.TypeParams()

	var out []model.Variant

	for _, e := range entries {
		if e.obj.IsAlias() || e.obj == enum.Obj() {
			continue
		}

		cand, ok := e.obj.Type().(*types.Named)
		if !ok || types.IsInterface(cand) {
			continue
		}

		typ := types.Type(cand)

		if n := cand.TypeParams().Len(); n > 0 {
			if n != enumParams.Len() {
				continue
			}

			args := make([]types.Type, n)
			for i := range n {
				args[i] = enumParams.At(i)
			}

			inst, err := types.Instantiate(nil, cand, args, true)
			if err != nil {
				continue
			}

			typ = inst
		}

		caseExpr := a.imports.typeString(typ)
		name := cand.Obj().Name()

		switch {
		case types.Implements(typ, iface):
			fields := a.fieldSet(typ.Underlying())
			out = append(out,
				model.Variant{Name: name, TypeExpr: caseExpr, Fields: fields},
				model.Variant{Name: name, TypeExpr: "*" + caseExpr, Fields: fields})
		case types.Implements(types.NewPointer(typ), iface):
			out = append(out, model.Variant{Name: name, TypeExpr: "*" + caseExpr, Fields: a.fieldSet(typ.Underlying())})
		}
	}

	return out
}
