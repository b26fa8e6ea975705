package debugctx

import (
	"reflect"
	"sync"
)

type formatFunc func(f *Formatter, v, ctx any) error

type registryKey struct {
	value   reflect.Type
	context reflect.Type
}

var anyType = reflect.TypeFor[any]()

var registry = struct {
	sync.RWMutex
	funcs map[registryKey]formatFunc
}{funcs: make(map[registryKey]formatFunc)}

// Register makes fn the rendering of values of type V under contexts of type
// C. Generated code calls it from init functions for types that cannot carry a
// FormatWithContext method for every context they support. A later
// registration for the same pair replaces the earlier one.
func Register[V, C any](fn func(f *Formatter, v V, ctx C) error) {
	store(reflect.TypeFor[V](), reflect.TypeFor[C](), func(f *Formatter, v, ctx any) error {
		c, _ := ctx.(C)
		return fn(f, v.(V), c)
	})
}

// RegisterAny makes fn the rendering of values of type V under any context.
func RegisterAny[V any](fn func(f *Formatter, v V, ctx any) error) {
	store(reflect.TypeFor[V](), anyType, func(f *Formatter, v, ctx any) error {
		return fn(f, v.(V), ctx)
	})
}

func store(vt, ct reflect.Type, fn formatFunc) {
	registry.Lock()
	defer registry.Unlock()

	registry.funcs[registryKey{value: vt, context: ct}] = fn
}

// lookup finds the function for a value type, preferring an exact context
// match over the wildcard.
func lookup(vt, ct reflect.Type) (formatFunc, bool) {
	registry.RLock()
	defer registry.RUnlock()

	if ct != nil {
		if fn, ok := registry.funcs[registryKey{value: vt, context: ct}]; ok {
			return fn, true
		}
	}

	fn, ok := registry.funcs[registryKey{value: vt, context: anyType}]

	return fn, ok
}
