// Package ast defines the syntax tree of SQL query statements.
//
// Every syntactic category is a closed set of variants: Statement, SetExpr,
// SelectItem, TableFactor, JoinConstraint and Expr are interfaces with an
// unexported marker method, so only the types declared here implement them.
// Consumers switch over the variants and treat anything else as unsupported.
//
// Trees are produced by the parser package and are read-only afterwards.
package ast
