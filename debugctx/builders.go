package debugctx

import "strings"

// FieldFunc renders one entry value into the formatter it is given.
type FieldFunc func(f *Formatter) error

// entries is the comma-separated sequence shared by all builders.
type entries struct {
	f   *Formatter
	err error
	n   int
}

// entry writes one entry. open is written before the first entry; in pretty
// mode it is followed by a newline and every entry sits on its own indented
// line with a trailing comma.
func (e *entries) entry(open, label string, fn FieldFunc) {
	if e.err != nil {
		return
	}

	if e.f.pretty {
		if e.n == 0 {
			e.err = e.f.WriteString(strings.TrimRight(open, " ") + "\n")
		}

		if e.err == nil {
			nf := e.f.nested()
			e.err = e.writeEntry(nf, label, fn)

			if e.err == nil {
				e.err = nf.WriteString(",\n")
			}
		}
	} else {
		sep := ", "
		if e.n == 0 {
			sep = open
		}

		if e.err = e.f.WriteString(sep); e.err == nil {
			e.err = e.writeEntry(e.f, label, fn)
		}
	}

	e.n++
}

func (e *entries) writeEntry(f *Formatter, label string, fn FieldFunc) error {
	if label != "" {
		if err := f.WriteString(label + ": "); err != nil {
			return err
		}
	}

	return fn(f)
}

// finish closes a non-empty sequence.
func (e *entries) finish(compactClose, prettyClose string) error {
	if e.err != nil || e.n == 0 {
		return e.err
	}

	if e.f.pretty {
		return e.f.WriteString(prettyClose)
	}

	return e.f.WriteString(compactClose)
}

// StructBuilder writes `Name { a: 1, b: 2 }`.
type StructBuilder struct {
	entries
}

// DebugStruct starts a struct-like rendering named name.
func (f *Formatter) DebugStruct(name string) *StructBuilder {
	b := &StructBuilder{entries{f: f}}
	b.err = f.WriteString(name)

	return b
}

// Field adds a labelled entry.
func (b *StructBuilder) Field(name string, fn FieldFunc) *StructBuilder {
	b.entry(" { ", name, fn)

	return b
}

// Finish closes the rendering and returns the first error.
func (b *StructBuilder) Finish() error {
	return b.finish(" }", "}")
}

// TupleBuilder writes `Name(1, 2)`.
type TupleBuilder struct {
	entries
}

// DebugTuple starts a tuple-like rendering named name.
func (f *Formatter) DebugTuple(name string) *TupleBuilder {
	b := &TupleBuilder{entries{f: f}}
	b.err = f.WriteString(name)

	return b
}

// Field adds a positional entry.
func (b *TupleBuilder) Field(fn FieldFunc) *TupleBuilder {
	b.entry("(", "", fn)

	return b
}

// Finish closes the rendering and returns the first error.
func (b *TupleBuilder) Finish() error {
	return b.finish(")", ")")
}

// ListBuilder writes `[a, b]`.
type ListBuilder struct {
	entries
}

// DebugList starts a list rendering.
func (f *Formatter) DebugList() *ListBuilder {
	return &ListBuilder{entries{f: f}}
}

// Entry adds one element.
func (b *ListBuilder) Entry(fn FieldFunc) *ListBuilder {
	b.entry("[", "", fn)

	return b
}

// Finish closes the list; an empty list renders as [].
func (b *ListBuilder) Finish() error {
	if b.n == 0 && b.err == nil {
		return b.f.WriteString("[]")
	}

	return b.finish("]", "]")
}

// MapBuilder writes `{k: v}`.
type MapBuilder struct {
	entries
}

// DebugMap starts a map rendering.
func (f *Formatter) DebugMap() *MapBuilder {
	return &MapBuilder{entries{f: f}}
}

// Entry adds one key/value pair with an already rendered key.
func (b *MapBuilder) Entry(key string, fn FieldFunc) *MapBuilder {
	b.entry("{", key, fn)

	return b
}

// Finish closes the map; an empty map renders as {}.
func (b *MapBuilder) Finish() error {
	if b.n == 0 && b.err == nil {
		return b.f.WriteString("{}")
	}

	return b.finish("}", "}")
}
