package doc

import (
	"strings"

	"github.com/rivo/uniseg"
)

type (
	// Doc is a node of the layout tree. The set of node kinds is closed; values
	// are built with the constructors in this package.
	Doc interface {
		// hasHardLine reports whether a HardLine is reachable from this node.
		hasHardLine() bool
	}

	nilDoc struct{}

	// textDoc is a literal. For text spanning several lines, width covers the
	// first line and tail the last one.
	textDoc struct {
		s         string
		width     int
		tail      int
		multiline bool
	}

	lineDoc struct {
		kind lineKind
	}

	concatDoc struct {
		docs []Doc
		hard bool
	}

	nestDoc struct {
		indent int
		doc    Doc
	}

	groupDoc struct {
		doc Doc
	}
)

type lineKind int

const (
	softLine lineKind = iota
	zeroLine
	hardLine
)

var (
	empty  Doc = nilDoc{}
	line   Doc = lineDoc{kind: softLine}
	zero   Doc = lineDoc{kind: zeroLine}
	hard   Doc = lineDoc{kind: hardLine}
	space  Doc = Text(" ")
	comma  Doc = Text(",")
	lparen Doc = Text("(")
	rparen Doc = Text(")")
)

func (nilDoc) hasHardLine() bool      { return false }
func (textDoc) hasHardLine() bool     { return false }
func (l lineDoc) hasHardLine() bool   { return l.kind == hardLine }
func (c concatDoc) hasHardLine() bool { return c.hard }
func (n nestDoc) hasHardLine() bool   { return n.doc.hasHardLine() }
func (g groupDoc) hasHardLine() bool  { return g.doc.hasHardLine() }

// Nil returns the empty document.
func Nil() Doc { return empty }

// Text returns a literal whose width is its number of grapheme clusters. Line
// structure is expressed with Line, ZeroLine and HardLine. A newline inside s,
// as in a multi-line string literal, is written verbatim without indentation
// and the column restarts after it.
func Text(s string) Doc {
	if s == "" {
		return empty
	}

	first := strings.IndexByte(s, '\n')
	if first < 0 {
		return textDoc{s: s, width: uniseg.GraphemeClusterCount(s)}
	}

	return textDoc{
		s:         s,
		width:     uniseg.GraphemeClusterCount(s[:first]),
		tail:      uniseg.GraphemeClusterCount(s[strings.LastIndexByte(s, '\n')+1:]),
		multiline: true,
	}
}

// Line renders as a single space in flat mode and as a newline followed by the
// current indentation in break mode.
func Line() Doc { return line }

// ZeroLine renders as nothing in flat mode and as a newline followed by the
// current indentation in break mode.
func ZeroLine() Doc { return zero }

// HardLine always renders as a newline followed by the current indentation.
func HardLine() Doc { return hard }

// Space is the literal " ".
func Space() Doc { return space }

// SoftLine is a Line in a group of its own: it only breaks when the content that
// follows it does not fit on the current line.
func SoftLine() Doc { return groupDoc{doc: line} }

// SoftZeroLine is the ZeroLine counterpart of SoftLine.
func SoftZeroLine() Doc { return groupDoc{doc: zero} }

// Concat joins documents one after the other. Nil children are dropped.
func Concat(docs ...Doc) Doc {
	out := make([]Doc, 0, len(docs))
	hard := false

	for _, d := range docs {
		switch d := d.(type) {
		case nil, nilDoc:
			continue
		case concatDoc:
			out = append(out, d.docs...)
		default:
			out = append(out, d)
		}

		hard = hard || d.hasHardLine()
	}

	switch len(out) {
	case 0:
		return empty
	case 1:
		return out[0]
	}

	return concatDoc{docs: out, hard: hard}
}

// Nest increases the indentation of every line break inside d by indent columns.
// Nesting is additive.
func Nest(indent int, d Doc) Doc {
	if d == nil {
		return empty
	}

	if _, ok := d.(nilDoc); ok {
		return empty
	}

	return nestDoc{indent: indent, doc: d}
}

// Group marks d as a unit that is rendered flat when it fits the remaining width
// and broken otherwise.
func Group(d Doc) Doc {
	switch d := d.(type) {
	case nil, nilDoc:
		return empty
	case groupDoc:
		return d
	default:
		return groupDoc{doc: d}
	}
}

// Intersperse places sep between consecutive docs.
func Intersperse(docs []Doc, sep Doc) Doc {
	out := make([]Doc, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}

		out = append(out, d)
	}

	return Concat(out...)
}

// CommaSeparated intersperses docs with "," followed by a Line.
func CommaSeparated(docs []Doc) Doc {
	return Intersperse(docs, Concat(comma, line))
}

// Parenthesized wraps d in parentheses that either stay on the same line as the
// content, or open onto an indented block closed on a line of its own:
//
//	(a, b, c)
//
//	(
//	  a,
//	  b
//	)
func Parenthesized(d Doc) Doc {
	if d == nil || d == empty {
		return Concat(lparen, rparen)
	}

	return Group(Concat(
		lparen,
		Nest(nestFactor, Concat(zero, d)),
		zero,
		rparen,
	))
}

// nestFactor is the indentation used by Parenthesized.
const nestFactor = 2
