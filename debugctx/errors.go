package debugctx

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// ErrUnmatchedVariant is returned when an enum value holds a type that was not
// known when its formatting code was generated.
var ErrUnmatchedVariant = errors.New("unmatched variant")

// Unmatched handles an enum value no switch arm accepted: a nil value renders
// as "nil", anything else is an error naming the dynamic type.
func Unmatched(f *Formatter, v any) error {
	if isNil(v) {
		return f.WriteString(nilText)
	}

	return errors.Wrapf(ErrUnmatchedVariant, "%T", v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
