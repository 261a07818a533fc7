// Package parser provides a participle-based parser for SQL queries.
//
// This package implements a grammar using github.com/alecthomas/participle/v2
// and lowers the parse tree into the closed AST of package ast. It covers the
// query surface of common dialects: SELECT with joins, CTEs, set operations,
// VALUES, window functions, CASE, CAST, EXTRACT, INTERVAL, TOP, OFFSET/FETCH
// and LISTAGG.
//
// Key features:
//   - Keywords are case-insensitive and reserved, so an implicit alias never
//     swallows the start of the next clause
//   - Quoted identifiers in "double", [bracket] and `backtick` form
//   - Template identifiers such as {{date}}, @var and #tmp
//   - Comments are skipped
//   - Other statements (INSERT, UPDATE, CREATE, ...) are recognized by their
//     leading keyword and returned as ast.RawStatement
//   - Structured error messages with line and column information
//
// Basic usage:
//
//	stmts, err := parser.ParseString(`
//	    SELECT id, name FROM users WHERE active;
//	    WITH recent AS (SELECT * FROM orders WHERE placed_at > DATE '2024-01-01')
//	    SELECT count(*) FROM recent;
//	`)
//
//	// Parse from a reader
//	f, _ := os.Open("report.sql")
//	stmts, err := parser.Parse(f)
package parser
