package plan

import (
	"go/token"
	"unicode"
	"unicode/utf8"

	"debugctx-generator/internal/model"
)

// FuncName names the unit of typeName for the context: DebugPointWithNames,
// or DebugPoint for a placeholder. Unexported types get unexported functions.
func FuncName(typeName string, c Context) string {
	prefix := "Debug"
	if !token.IsExported(typeName) {
		prefix = "debug"
	}

	name := prefix + upperFirst(typeName)
	if !c.Placeholder {
		name += "With" + upperFirst(c.Name)
	}

	return name
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[n:]
}

// Links records what the generated file provides for the package's own
// declarations: the contexts of generic declarations' units, and the context
// type of generated FormatWithContext methods. A field holding an instance of
// a linked generic declaration is formatted by calling its unit directly,
// since no method or registration exists for generic types.
//
// The zero value links nothing.
type Links struct {
	units   map[string][]Context
	methods map[string]string
}

// AddUnits records the contexts the generic declaration name is emitted for.
func (l *Links) AddUnits(name string, contexts []Context) {
	if l.units == nil {
		l.units = make(map[string][]Context)
	}

	l.units[name] = contexts
}

// AddMethod records that name gets a generated FormatWithContext method taking
// a ctx of contextType.
func (l *Links) AddMethod(name, contextType string) {
	if l.methods == nil {
		l.methods = make(map[string]string)
	}

	l.methods[name] = contextType
}

// Call returns the direct call formatting the field read by access under the
// active context. It reports false when the field is not a linked instance or
// when a type argument would not satisfy the callee's constraints.
func (l Links) Call(f model.Field, access string, active Context) (string, bool) {
	if f.Instance == nil {
		return "", false
	}

	callee, ok := pick(l.units[f.Instance.Origin], active)
	if !ok {
		return "", false
	}

	for _, arg := range f.Instance.Args {
		if !l.satisfies(arg, active) {
			return "", false
		}
	}

	return FuncName(f.Instance.Origin, callee) + "(" + Formatter + ", " + access + ", " + ContextArg + ")", true
}

// pick chooses the callee unit: the one for the same concrete context, else
// the placeholder unit, which accepts any context.
func pick(contexts []Context, active Context) (Context, bool) {
	var (
		fallback Context
		found    bool
	)

	for _, c := range contexts {
		switch {
		case c.Placeholder:
			fallback, found = c, true
		case !active.Placeholder && c.Name == active.Name:
			return c, true
		}
	}

	return fallback, found
}

// satisfies reports whether arg meets the Debugger bound of the active
// context. Type parameters of the enclosing declaration carry the same bound;
// concrete arguments need a method for exactly that context type.
func (l Links) satisfies(arg model.TypeArg, active Context) bool {
	if arg.Param {
		return true
	}

	if active.Placeholder {
		return false
	}

	want := active.TypeExpr()

	return arg.Context == want || arg.Name != "" && l.methods[arg.Name] == want
}
