package doc

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

// cmd is an entry of the render work list.
type cmd struct {
	indent int
	mode   mode
	doc    Doc
}

// Render lays d out for the given maximum width and returns the text.
//
// Width is a target rather than a hard limit: text that cannot be broken is
// emitted past it. Lines never end with trailing whitespace.
func Render(d Doc, width int) string {
	var sb strings.Builder
	r := renderer{out: &sb, width: width}
	r.run(d)

	return sb.String()
}

// Fprint renders d and writes the result to w with a single write. Nothing is
// written if rendering is not complete.
func Fprint(w io.Writer, d Doc, width int) error {
	if _, err := io.WriteString(w, Render(d, width)); err != nil {
		return errors.Wrap(err, "failed to write document")
	}

	return nil
}

type renderer struct {
	out   *strings.Builder
	width int

	// col is the current output column. pending holds indentation owed by the
	// last newline that has not been written yet, so blank lines stay empty.
	col     int
	pending int
}

func (r *renderer) run(d Doc) {
	stack := []cmd{{indent: 0, mode: modeBreak, doc: d}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := c.doc.(type) {
		case nilDoc:
		case textDoc:
			r.text(d.s, d.width)
			if d.multiline {
				r.col = d.tail
			}
		case lineDoc:
			switch {
			case d.kind == hardLine || c.mode == modeBreak:
				r.newline(c.indent)
			case d.kind == softLine:
				r.text(" ", 1)
			}
		case concatDoc:
			for i := len(d.docs) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, mode: c.mode, doc: d.docs[i]})
			}
		case nestDoc:
			stack = append(stack, cmd{indent: c.indent + d.indent, mode: c.mode, doc: d.doc})
		case groupDoc:
			// A group inside a flat group is flat as well. Otherwise it decides
			// on its own, whatever its ancestors decided.
			m := c.mode
			if m == modeBreak && fits(r.width-r.col, r.width, c.indent, d.doc, stack) {
				m = modeFlat
			}

			stack = append(stack, cmd{indent: c.indent, mode: m, doc: d.doc})
		}
	}
}

func (r *renderer) text(s string, width int) {
	if r.pending > 0 {
		r.out.WriteString(strings.Repeat(" ", r.pending))
		r.pending = 0
	}

	r.out.WriteString(s)
	r.col += width
}

func (r *renderer) newline(indent int) {
	r.out.WriteByte('\n')
	r.col = indent
	r.pending = indent
}

// fits reports whether next, rendered flat, and the flat rendering of the
// content after it up to the next hard line, fit in budget columns. The content
// after next is taken from rest, the renderer's work list, which is only read.
//
// A line break that is already taken and returns to an indentation shallower
// than indent, the group's own, also ends the line. Breaks at the same or a
// deeper indentation count as spaces.
//
// The scan stops as soon as the budget is exhausted or the answer is known, so
// its cost is bounded by the budget rather than by the size of the document.
func fits(budget, width, indent int, next Doc, rest []cmd) bool {
	if next.hasHardLine() {
		return false
	}

	s := scanner{rest: rest}
	c := cmd{indent: indent, mode: modeFlat, doc: next}

	for ok := true; ok; c, ok = s.advance() {
		c = unwrap(c)

		switch d := c.doc.(type) {
		case textDoc:
			budget -= d.width
			if d.multiline && budget >= 0 {
				budget = width - d.tail
			}
		case lineDoc:
			switch {
			case d.kind == hardLine:
				return s.inRest
			case c.mode == modeBreak && c.indent < indent:
				return true
			case d.kind == softLine:
				budget--
			}
		case concatDoc:
			s.stack = append(s.stack, frame{docs: d.docs, indent: c.indent, mode: c.mode})
		}

		if budget < 0 {
			return false
		}
	}

	return true
}

// unwrap strips the nests and groups around c.doc. Groups met while scanning
// are simulated flat.
func unwrap(c cmd) cmd {
	for {
		switch d := c.doc.(type) {
		case nestDoc:
			c.indent += d.indent
			c.doc = d.doc
		case groupDoc:
			c.mode = modeFlat
			c.doc = d.doc
		default:
			return c
		}
	}
}

// frame is a concat being scanned. i is the index of the next child.
type frame struct {
	docs   []Doc
	i      int
	indent int
	mode   mode
}

// scanner walks documents in output order for fits without expanding a concat
// beyond the child it is looking at.
type scanner struct {
	stack  []frame
	rest   []cmd
	inRest bool
}

// advance returns the document that follows the last one scanned: the next
// child of the innermost open concat, or else the next entry of the work list.
func (s *scanner) advance() (cmd, bool) {
	for n := len(s.stack); n > 0; n = len(s.stack) {
		top := &s.stack[n-1]
		if top.i < len(top.docs) {
			top.i++
			return cmd{indent: top.indent, mode: top.mode, doc: top.docs[top.i-1]}, true
		}

		s.stack = s.stack[:n-1]
	}

	if len(s.rest) == 0 {
		return cmd{}, false
	}

	c := s.rest[len(s.rest)-1]
	s.rest = s.rest[:len(s.rest)-1]
	s.inRest = true

	return c, true
}
