package plan

import (
	"strconv"
	"strings"

	"debugctx-generator/internal/model"
)

// PlaceholderName is the preferred name of the synthesized context parameter.
const PlaceholderName = "C"

// Context is the context a unit is emitted for.
type Context struct {
	// Name is the context identifier or the placeholder parameter name.
	Name        string
	Placeholder bool
}

// Concrete returns the context bound by a directive.
func Concrete(name string) Context {
	return Context{Name: name}
}

// Placeholder returns the synthesized context parameter for params, renamed
// C0, C1, ... when C is already taken.
func Placeholder(params []model.GenericParam) Context {
	taken := make(map[string]bool, len(params))
	for _, p := range params {
		taken[p.Name] = true
	}

	name := PlaceholderName
	for i := 0; taken[name]; i++ {
		name = PlaceholderName + strconv.Itoa(i)
	}

	return Context{Name: name, Placeholder: true}
}

// TypeExpr is the type of the ctx parameter: a pointer to a concrete context,
// or the placeholder itself.
func (c Context) TypeExpr() string {
	if c.Placeholder {
		return c.Name
	}

	return "*" + c.Name
}

// DebuggerBound is the capability constraint for the context.
func (c Context) DebuggerBound() string {
	return RuntimeName + ".Debugger[" + c.TypeExpr() + "]"
}

// Bind builds the unit's type parameter list: the placeholder first when the
// context is synthesized, then every declared parameter with its constraint
// augmented by the capability bound.
func Bind(params []model.GenericParam, active Context) model.ConstraintSet {
	var set model.ConstraintSet

	if active.Placeholder {
		set = set.With(model.Constraint{Param: active.Name, Bound: "any"})
	}

	bound := active.DebuggerBound()
	for _, p := range params {
		set = set.With(model.Constraint{Param: p.Name, Bound: augment(p.Constraint, bound)})
	}

	return set
}

func augment(existing, bound string) string {
	switch strings.TrimSpace(existing) {
	case "", "any", "interface{}":
		return bound
	default:
		return "interface{ " + existing + "; " + bound + " }"
	}
}
