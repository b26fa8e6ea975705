package debugctx

import (
	"bytes"
	"io"
	"reflect"
)

const (
	nilText   = "nil"
	cycleText = "<cycle>"
	indent    = "    "
)

// Formatter is the sink generated code writes to. It remembers the first write
// error and ignores every write after it.
type Formatter struct {
	w      io.Writer
	pretty bool
	st     *state
}

// state is shared by a formatter and the nested formatters derived from it.
type state struct {
	err      error
	visiting map[visit]bool
}

// visit identifies a pointer on the rendering path. The type is part of the
// key because a struct and its first field share an address.
type visit struct {
	ptr uintptr
	typ reflect.Type
}

// NewFormatter returns a compact single-line formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w, st: &state{}}
}

// NewPrettyFormatter returns a formatter printing one field per line, nested
// fields indented by four spaces.
func NewPrettyFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w, pretty: true, st: &state{}}
}

// Pretty reports whether the formatter prints multi-line output.
func (f *Formatter) Pretty() bool {
	return f.pretty
}

// Err returns the first write error, if any.
func (f *Formatter) Err() error {
	return f.st.err
}

// Write implements io.Writer so hand-written Debuggers can use fmt.Fprintf.
func (f *Formatter) Write(p []byte) (int, error) {
	if f.st.err != nil {
		return 0, f.st.err
	}

	n, err := f.w.Write(p)
	if err != nil {
		f.st.err = err
	}

	return n, err
}

// WriteString writes s verbatim.
func (f *Formatter) WriteString(s string) error {
	if f.st.err != nil {
		return f.st.err
	}

	if _, err := io.WriteString(f.w, s); err != nil {
		f.st.err = err
	}

	return f.st.err
}

// nested returns the formatter a pretty builder hands to its entries.
func (f *Formatter) nested() *Formatter {
	return &Formatter{w: &padWriter{w: f.w, onNewline: true}, pretty: true, st: f.st}
}

// scratch returns a compact formatter writing to buf that shares the cycle
// tracking of f.
func (f *Formatter) scratch(buf *bytes.Buffer) *Formatter {
	return &Formatter{w: buf, st: &state{visiting: f.st.marks()}}
}

// enter marks a pointer as being rendered; it reports false when the pointer is
// already on the rendering path.
func (f *Formatter) enter(v visit) bool {
	marks := f.st.marks()
	if marks[v] {
		return false
	}

	marks[v] = true

	return true
}

func (f *Formatter) leave(v visit) {
	delete(f.st.visiting, v)
}

func (s *state) marks() map[visit]bool {
	if s.visiting == nil {
		s.visiting = make(map[visit]bool)
	}

	return s.visiting
}

// padWriter indents every line written through it.
type padWriter struct {
	w         io.Writer
	onNewline bool
}

func (p *padWriter) Write(b []byte) (int, error) {
	written := 0

	for len(b) > 0 {
		if p.onNewline {
			if _, err := io.WriteString(p.w, indent); err != nil {
				return written, err
			}
		}

		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i+1]
			p.onNewline = true
		} else {
			p.onNewline = false
		}

		n, err := p.w.Write(line)
		written += n

		if err != nil {
			return written, err
		}

		b = b[len(line):]
	}

	return written, nil
}
