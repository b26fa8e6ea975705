package debugctx_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debugctx-generator/debugctx"
)

type symbols struct {
	names map[int]string
}

func newSymbols() *symbols {
	return &symbols{names: map[int]string{1: "one", 2: "two"}}
}

type symbol int

func (s symbol) FormatWithContext(f *debugctx.Formatter, ctx *symbols) error {
	if name, ok := ctx.names[int(s)]; ok {
		return f.WriteString(name)
	}

	return f.WriteString("?")
}

type point struct {
	x, y int
}

func (p point) FormatWithContext(f *debugctx.Formatter, ctx *symbols) error {
	return f.DebugStruct("Point").
		Field("x", func(f *debugctx.Formatter) error { return debugctx.Format(f, p.x, ctx) }).
		Field("y", func(f *debugctx.Formatter) error { return debugctx.Format(f, p.y, ctx) }).
		Finish()
}

type line struct {
	from, to point
}

func (l line) FormatWithContext(f *debugctx.Formatter, ctx *symbols) error {
	return f.DebugStruct("Line").
		Field("from", func(f *debugctx.Formatter) error { return debugctx.Format(f, l.from, ctx) }).
		Field("to", func(f *debugctx.Formatter) error { return debugctx.Format(f, l.to, ctx) }).
		Finish()
}

type pair [2]symbol

func (p pair) FormatWithContext(f *debugctx.Formatter, ctx *symbols) error {
	return f.DebugTuple("Pair").
		Field(func(f *debugctx.Formatter) error { return p[0].FormatWithContext(f, ctx) }).
		Field(func(f *debugctx.Formatter) error { return p[1].FormatWithContext(f, ctx) }).
		Finish()
}

type unit struct{}

func (unit) FormatWithContext(f *debugctx.Formatter, _ any) error {
	return f.DebugStruct("Unit").Finish()
}

type node struct {
	next *node
}

func (n node) FormatWithContext(f *debugctx.Formatter, ctx *symbols) error {
	return f.DebugStruct("Node").
		Field("next", func(f *debugctx.Formatter) error { return debugctx.Format(f, n.next, ctx) }).
		Finish()
}

func TestFormat_Struct(t *testing.T) {
	ctx := newSymbols()

	assert.Equal(t, "Point { x: 3, y: 4 }", debugctx.Sprint(point{x: 3, y: 4}, ctx))
	assert.Equal(t, "Point {\n    x: 3,\n    y: 4,\n}", debugctx.SprintPretty(point{x: 3, y: 4}, ctx))
}

func TestFormat_NestedPretty(t *testing.T) {
	want := strings.Join([]string{
		"Line {",
		"    from: Point {",
		"        x: 1,",
		"        y: 2,",
		"    },",
		"    to: Point {",
		"        x: 3,",
		"        y: 4,",
		"    },",
		"}",
	}, "\n")

	got := debugctx.SprintPretty(line{from: point{1, 2}, to: point{3, 4}}, newSymbols())
	assert.Equal(t, want, got)
}

func TestFormat_TupleThreadsContext(t *testing.T) {
	ctx := newSymbols()

	assert.Equal(t, "Pair(one, two)", debugctx.Sprint(pair{1, 2}, ctx))
	assert.Equal(t, "Pair(\n    one,\n    two,\n)", debugctx.SprintPretty(pair{1, 2}, ctx))
}

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "Unit", debugctx.Sprint(unit{}, newSymbols()))
	assert.Equal(t, "Unit", debugctx.SprintPretty(unit{}, 42))
}

func TestFormat_Containers(t *testing.T) {
	ctx := newSymbols()

	assert.Equal(t, "[one, two]", debugctx.Sprint([]symbol{1, 2}, ctx))
	assert.Equal(t, "[]", debugctx.Sprint([]symbol(nil), ctx))
	assert.Equal(t, "[]", debugctx.Sprint([]int{}, ctx))
	assert.Equal(t, "[1, 2, 3]", debugctx.Sprint([3]int{1, 2, 3}, ctx))
	assert.Equal(t, `{"a": one, "b": two}`, debugctx.Sprint(map[string]symbol{"b": 2, "a": 1}, ctx))
	assert.Equal(t, "{}", debugctx.Sprint(map[string]int(nil), ctx))
	assert.Equal(t, "[\n    1,\n    2,\n]", debugctx.SprintPretty([]int{1, 2}, ctx))
}

func TestFormat_Leaves(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"hi\n", `"hi\n"`},
		{true, "true"},
		{-7, "-7"},
		{uint8(200), "200"},
		{1.5, "1.5"},
		{float32(0.25), "0.25"},
		{nil, "nil"},
		{struct{ A int }{A: 1}, "{A:1}"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, debugctx.Sprint(tt.value, 0))
		})
	}
}

func TestFormat_Pointers(t *testing.T) {
	ctx := newSymbols()

	assert.Equal(t, "nil", debugctx.Sprint((*point)(nil), ctx))
	assert.Equal(t, "Point { x: 1, y: 0 }", debugctx.Sprint(&point{x: 1}, ctx))

	n := 5
	assert.Equal(t, "5", debugctx.Sprint(&n, ctx))
}

func TestFormat_Cycle(t *testing.T) {
	n := &node{}
	n.next = n

	assert.Equal(t, "Node { next: <cycle> }", debugctx.Sprint(n, newSymbols()))

	chain := &node{next: &node{}}
	assert.Equal(t, "Node { next: Node { next: nil } }", debugctx.Sprint(chain, newSymbols()))
}

type cell struct{ n int }

func (c cell) FormatWithContext(f *debugctx.Formatter, ctx *symbols) error {
	return f.DebugTuple("Cell").
		Field(func(f *debugctx.Formatter) error { return debugctx.Format(f, c.n, ctx) }).
		Finish()
}

type row struct {
	head cell
	ref  *cell
}

func (r row) FormatWithContext(f *debugctx.Formatter, ctx *symbols) error {
	return f.DebugStruct("Row").
		Field("head", func(f *debugctx.Formatter) error { return debugctx.Format(f, r.head, ctx) }).
		Field("ref", func(f *debugctx.Formatter) error { return debugctx.Format(f, r.ref, ctx) }).
		Finish()
}

func TestFormat_PointerToFirstFieldIsNotACycle(t *testing.T) {
	r := &row{head: cell{n: 7}}
	r.ref = &r.head

	assert.Equal(t, "Row { head: Cell(7), ref: Cell(7) }", debugctx.Sprint(r, newSymbols()))
}

func TestFormat_MethodWithOtherContextType(t *testing.T) {
	var ctx any = newSymbols()

	assert.Equal(t, "one", debugctx.Sprint(symbol(1), ctx))
	assert.Equal(t, "[one]", debugctx.Sprint([]symbol{1}, ctx))
}

type registered struct{ n int }

type otherContext struct{}

func TestRegister(t *testing.T) {
	debugctx.Register(func(f *debugctx.Formatter, v registered, ctx *symbols) error {
		return f.WriteString(fmt.Sprintf("exact(%d)", v.n))
	})
	debugctx.RegisterAny(func(f *debugctx.Formatter, v registered, _ any) error {
		return f.WriteString(fmt.Sprintf("any(%d)", v.n))
	})

	assert.Equal(t, "exact(1)", debugctx.Sprint(registered{1}, newSymbols()))
	assert.Equal(t, "any(2)", debugctx.Sprint(registered{2}, &otherContext{}))
	assert.Equal(t, "any(3)", debugctx.Sprint[any](registered{3}, nil))
}

func TestUnmatched(t *testing.T) {
	var sb strings.Builder
	f := debugctx.NewFormatter(&sb)

	require.NoError(t, debugctx.Unmatched(f, nil))
	assert.Equal(t, "nil", sb.String())

	err := debugctx.Unmatched(f, point{})
	require.ErrorIs(t, err, debugctx.ErrUnmatchedVariant)
	assert.Contains(t, err.Error(), "debugctx_test.point")
}

func TestWrap(t *testing.T) {
	w := debugctx.Wrap(point{x: 3, y: 4}, newSymbols())

	assert.Equal(t, "Point { x: 3, y: 4 }", fmt.Sprintf("%v", w))
	assert.Equal(t, "Point { x: 3, y: 4 }", w.String())
	assert.Equal(t, "Point {\n    x: 3,\n    y: 4,\n}", fmt.Sprintf("%+v", w))
	assert.Equal(t, "Point {\n    x: 3,\n    y: 4,\n}", fmt.Sprintf("%#v", w))
}

type failingWriter struct{ writes int }

var errSink = errors.New("sink closed")

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errSink
}

func TestFormat_WriteErrorIsSticky(t *testing.T) {
	w := &failingWriter{}

	err := debugctx.Fprint(w, line{}, newSymbols())
	require.ErrorIs(t, err, errSink)
	assert.Equal(t, 1, w.writes)
}

func TestFormatter_Write(t *testing.T) {
	var sb strings.Builder
	f := debugctx.NewFormatter(&sb)

	_, err := fmt.Fprintf(f, "%d-%s", 7, "x")
	require.NoError(t, err)
	assert.Equal(t, "7-x", sb.String())
	assert.False(t, f.Pretty())
	require.NoError(t, f.Err())
}
