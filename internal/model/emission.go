package model

import "strings"

// Constraint binds one type parameter of an emission unit to its bound.
type Constraint struct {
	Param string
	Bound string
}

// String renders the constraint as it appears in a type parameter list.
func (c Constraint) String() string {
	return c.Param + " " + c.Bound
}

// ConstraintSet is the ordered type parameter list of one emission unit.
//
// The zero value is empty; With returns a new set and never modifies the
// receiver's backing array.
type ConstraintSet struct {
	items []Constraint
}

// With returns a copy of the set extended by c.
func (s ConstraintSet) With(c Constraint) ConstraintSet {
	items := make([]Constraint, 0, len(s.items)+1)
	items = append(items, s.items...)
	items = append(items, c)

	return ConstraintSet{items: items}
}

// Items returns a copy of the constraints in order.
func (s ConstraintSet) Items() []Constraint {
	return append([]Constraint(nil), s.items...)
}

// Len returns the number of constraints.
func (s ConstraintSet) Len() int {
	return len(s.items)
}

// Bound returns the bound of param, if present.
func (s ConstraintSet) Bound(param string) (string, bool) {
	for _, c := range s.items {
		if c.Param == param {
			return c.Bound, true
		}
	}

	return "", false
}

// String renders the bracketed type parameter list, or "" when empty.
func (s ConstraintSet) String() string {
	if len(s.items) == 0 {
		return ""
	}

	parts := make([]string, len(s.items))
	for i, c := range s.items {
		parts[i] = c.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// FieldDescriptor is the planned rendering of one field.
type FieldDescriptor struct {
	// Access is the expression reading the field value.
	Access string
	// Label is the resolved name, written only in named style.
	Label string
	// Call is the expression formatting the value, returning an error.
	Call string
}

// Arm is one planned case of an enum type switch.
type Arm struct {
	Kind ArmKind
	// Name is the variant label.
	Name string
	// Case is the case type expression.
	Case string
	// Pointer is set when Case is a pointer type; a nil pointer renders as
	// nil before any field is read.
	Pointer bool
	// Bindings are assigned before a tuple arm's chain.
	Bindings []Binding
	Fields   []FieldDescriptor
}

// Binding names one positional value of a tuple arm.
type Binding struct {
	Name  string
	Value string
}

// UsesSwitchValue reports whether the arm reads the switch binding.
func (a Arm) UsesSwitchValue() bool {
	return a.Kind != ArmEmpty
}

// EmissionUnit is one generated formatting function: one per
// (declaration, context) pair, or one per declaration under the fallback
// policy.
type EmissionUnit struct {
	TypeName string
	// Context is the concrete context identifier, or the placeholder
	// parameter name when Placeholder is set.
	Context     string
	Placeholder bool
	// TypeParams is the unit's complete type parameter list, placeholder
	// first.
	TypeParams ConstraintSet
	FuncName   string
	// Receiver is the formatted value's type expression, e.g. "Pair[T, A]".
	Receiver string
	// ContextType is the type of the ctx parameter, "*Ctx" or the placeholder.
	ContextType string
	// Body holds the statements of the function body.
	Body string
}
