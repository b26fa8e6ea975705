package debugctx

import (
	"bytes"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var (
	formatterType = reflect.TypeFor[*Formatter]()
	errorType     = reflect.TypeFor[error]()
)

var spewConfig = spew.ConfigState{
	Indent:                  indent,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Format renders v with ctx. Resolution order:
//
//  1. v implements Debugger[C], or Debugger[any]
//  2. a function registered for v's type and ctx's dynamic type, then for any
//     context
//  3. a FormatWithContext method whose context parameter accepts ctx
//  4. pointers render their target, slices and arrays as [a, b], maps as
//     {k: v} ordered by rendered key
//  5. strings quoted, numbers and booleans as Go literals
//  6. anything else through go-spew
//
// nil values render as "nil"; a pointer met again while rendering itself
// renders as "<cycle>".
func Format[C any](f *Formatter, v any, ctx C) error {
	if v == nil {
		return f.WriteString(nilText)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return f.WriteString(nilText)
		}

		mark := visit{ptr: rv.Pointer(), typ: rv.Type()}
		if !f.enter(mark) {
			return f.WriteString(cycleText)
		}
		defer f.leave(mark)
	}

	if d, ok := v.(Debugger[C]); ok {
		return d.FormatWithContext(f, ctx)
	}

	if d, ok := v.(Debugger[any]); ok {
		return d.FormatWithContext(f, ctx)
	}

	if fn, ok := lookup(rv.Type(), reflect.TypeOf(any(ctx))); ok {
		return fn(f, v, ctx)
	}

	if ok, err := callMethod(f, rv, ctx); ok {
		return err
	}

	return formatValue(f, rv, ctx)
}

// callMethod invokes a FormatWithContext method of any context type when the
// dynamic type of ctx is assignable to it.
func callMethod(f *Formatter, rv reflect.Value, ctx any) (bool, error) {
	m := rv.MethodByName("FormatWithContext")
	if !m.IsValid() {
		return false, nil
	}

	mt := m.Type()
	if mt.NumIn() != 2 || mt.NumOut() != 1 || mt.In(0) != formatterType || mt.Out(0) != errorType {
		return false, nil
	}

	cv := reflect.ValueOf(ctx)
	if !cv.IsValid() || !cv.Type().AssignableTo(mt.In(1)) {
		return false, nil
	}

	out := m.Call([]reflect.Value{reflect.ValueOf(f), cv})
	if err, _ := out[0].Interface().(error); err != nil {
		return true, err
	}

	return true, nil
}

func formatValue[C any](f *Formatter, rv reflect.Value, ctx C) error {
	switch rv.Kind() {
	case reflect.Pointer:
		return Format(f, rv.Elem().Interface(), ctx)
	case reflect.Slice:
		if rv.IsNil() {
			return f.WriteString("[]")
		}

		return formatList(f, rv, ctx)
	case reflect.Array:
		return formatList(f, rv, ctx)
	case reflect.Map:
		return formatMap(f, rv, ctx)
	case reflect.String:
		return f.WriteString(strconv.Quote(rv.String()))
	case reflect.Bool:
		return f.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return f.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return f.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		return f.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
	case reflect.Float64:
		return f.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	default:
		return formatSpew(f, rv.Interface())
	}
}

func formatList[C any](f *Formatter, rv reflect.Value, ctx C) error {
	b := f.DebugList()
	for i := range rv.Len() {
		elem := rv.Index(i).Interface()
		b.Entry(func(f *Formatter) error { return Format(f, elem, ctx) })
	}

	return b.Finish()
}

func formatMap[C any](f *Formatter, rv reflect.Value, ctx C) error {
	if rv.IsNil() {
		return f.WriteString("{}")
	}

	type entry struct {
		key   string
		value any
	}

	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()

	for iter.Next() {
		var buf bytes.Buffer
		if err := Format(f.scratch(&buf), iter.Key().Interface(), ctx); err != nil {
			return err
		}

		entries = append(entries, entry{key: buf.String(), value: iter.Value().Interface()})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	b := f.DebugMap()
	for _, e := range entries {
		b.Entry(e.key, func(f *Formatter) error { return Format(f, e.value, ctx) })
	}

	return b.Finish()
}

func formatSpew(f *Formatter, v any) error {
	if f.pretty {
		return f.WriteString(strings.TrimSuffix(spewConfig.Sdump(v), "\n"))
	}

	return f.WriteString(spewConfig.Sprintf("%+v", v))
}
