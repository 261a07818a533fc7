// Package doc implements a width-aware document layout algebra.
//
// A Doc describes layout abstractly: literal text, line breaks that may or may
// not be taken, indentation and groups. Render turns a Doc into text for a
// given maximum width by deciding, for every group, whether its content fits on
// the current line (flat) or must be broken across lines.
//
// Documents are immutable. The same sub-document can be shared by several
// parents, and a document can be rendered any number of times at any width.
//
// Basic usage:
//
//	d := doc.Group(doc.Concat(
//		doc.Text("select"),
//		doc.Nest(2, doc.Concat(doc.Line(), doc.Text("a,"), doc.Line(), doc.Text("b"))),
//	))
//
//	doc.Render(d, 100) // "select a, b"
//	doc.Render(d, 8)   // "select\n  a,\n  b"
//
// Line renders as a space when its group is flat, ZeroLine renders as nothing,
// and HardLine always breaks. A group containing a HardLine is never flat.
package doc
