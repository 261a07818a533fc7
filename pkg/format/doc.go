// Package format renders parsed SQL queries as canonical, width-aware text.
//
// Statements are turned into a layout document (see package doc) by a pair of
// transformers, one for scalar expressions and one for query clauses, and the
// document is laid out for the configured maximum width. Output is
// deterministic: the same statement and width always produce the same bytes.
//
// Conventions:
//   - Keywords are lower-case; identifiers keep their source casing. Function
//     names, type names and date/time fields are lower-cased.
//   - A clause that doesn't fit on one line puts its keyword on its own line and
//     indents its content by two spaces.
//   - AND / OR always start a new line, CASE arms are always one per line, and
//     set operators always sit on a line of their own.
//   - A block of common table expressions is separated from the main query by a
//     blank line.
//
// Usage:
//
//	// Single statement
//	out, err := format.Render(stmt, 100)
//
//	// Object-oriented API
//	formatter := format.New(format.Options{MaxWidth: 80})
//
//	var buf bytes.Buffer
//	err := formatter.Format(&buf, statements...)
//
//	// Straight from SQL text
//	stmts, err := format.FormatSQL("SELECT * FROM t1", format.Defaults)
//	// stmts[0] == "select * from t1;\n"
//
// Statements other than queries (INSERT, CREATE, ...) are rejected with
// ErrUnsupportedConstruct rather than approximated.
package format
