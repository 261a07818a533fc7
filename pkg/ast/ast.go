package ast

import "strings"

type (
	// Statement is a top level SQL statement.
	Statement interface{ statementNode() }

	// SetExpr is the body of a query: a SELECT, a set operation, a parenthesized
	// query or a VALUES list.
	SetExpr interface{ setExprNode() }

	// SelectItem is an entry of a SELECT projection.
	SelectItem interface{ selectItemNode() }

	// TableFactor is an item of a FROM clause or the right side of a join.
	TableFactor interface{ tableFactorNode() }

	// JoinConstraint is the condition attached to a join.
	JoinConstraint interface{ joinConstraintNode() }

	// Query is a complete query expression, optionally preceded by common table
	// expressions and followed by ordering and row limiting clauses.
	Query struct {
		CTEs    []*CTE
		Body    SetExpr
		OrderBy []*OrderByExpr
		Limit   Expr
		Offset  *Offset
		Fetch   *Fetch
	}

	// RawStatement is a statement outside of the query grammar. Only its leading
	// keyword is retained.
	RawStatement struct {
		Keyword string
		Text    string
	}

	// CTE is a named sub-query of a WITH clause.
	CTE struct {
		Alias TableAlias
		Query *Query
	}

	// Select is a SELECT block.
	Select struct {
		Distinct   bool
		Top        *Top
		Projection []SelectItem
		From       []*TableWithJoins
		Selection  Expr
		GroupBy    []Expr
		Having     Expr
	}

	// SetOperation combines two query bodies with UNION, INTERSECT or EXCEPT.
	SetOperation struct {
		Op    SetOperator
		All   bool
		Left  SetExpr
		Right SetExpr
	}

	// Values is a VALUES list. Every row is a list of expressions.
	Values struct {
		Rows [][]Expr
	}

	// Top is the TOP clause of a SELECT.
	Top struct {
		Quantity Expr
		Percent  bool
		WithTies bool
	}

	// Offset is the OFFSET clause of a query.
	Offset struct {
		Value Expr
		Rows  OffsetRows
	}

	// Fetch is the FETCH FIRST clause of a query. Quantity is nil when omitted.
	Fetch struct {
		WithTies bool
		Percent  bool
		Quantity Expr
	}

	// OrderByExpr is an ORDER BY item. Asc and NullsFirst are nil when the
	// direction or null ordering is not specified.
	OrderByExpr struct {
		Expr       Expr
		Asc        *bool
		NullsFirst *bool
	}

	// UnnamedExpr is a projection item without an alias.
	UnnamedExpr struct {
		Expr Expr
	}

	// ExprWithAlias is a projection item with an alias.
	ExprWithAlias struct {
		Expr  Expr
		Alias Ident
	}

	// QualifiedWildcard is a projection item such as t.*.
	QualifiedWildcard struct {
		Name ObjectName
	}

	// Wildcard is the unqualified projection item *.
	Wildcard struct{}

	// TableWithJoins is a FROM item: a relation and the joins chained onto it.
	TableWithJoins struct {
		Relation TableFactor
		Joins    []*Join
	}

	// Table is a named table, optionally called with arguments (a table valued
	// function) and annotated with table hints.
	Table struct {
		Name      ObjectName
		Alias     *TableAlias
		Args      []Expr
		WithHints []Expr
	}

	// Derived is a sub-query in a FROM clause.
	Derived struct {
		Lateral  bool
		Subquery *Query
		Alias    *TableAlias
	}

	// NestedJoin is a parenthesized join, as in FROM (a JOIN b ON ...).
	NestedJoin struct {
		Table *TableWithJoins
	}

	// TableAlias names a relation and optionally its columns.
	TableAlias struct {
		Name    Ident
		Columns []Ident
	}

	// Join is a single join of a FROM item.
	Join struct {
		Relation TableFactor
		Operator JoinOperator
	}

	// JoinOperator is the kind of join with its constraint. Apply joins and
	// cross joins carry no constraint.
	JoinOperator struct {
		Kind       JoinKind
		Constraint JoinConstraint
	}

	// On is an ON join condition.
	On struct {
		Expr Expr
	}

	// Using is a USING (columns) join condition.
	Using struct {
		Columns []Ident
	}

	// Natural marks a NATURAL join.
	Natural struct{}
)

// ObjectName is a possibly qualified name such as db.schema.table.
type ObjectName []Ident

func (n ObjectName) String() string {
	parts := make([]string, len(n))
	for i, p := range n {
		parts[i] = p.String()
	}

	return strings.Join(parts, ".")
}

// Ident is an identifier. Quote is the quote character the identifier was
// written with, or zero for a bare identifier.
type Ident struct {
	Value string
	Quote rune
}

// NewIdent returns a bare identifier.
func NewIdent(v string) Ident { return Ident{Value: v} }

// String renders the identifier as written, including quotes.
func (i Ident) String() string {
	switch i.Quote {
	case 0:
		return i.Value
	case '[':
		return "[" + i.Value + "]"
	default:
		q := string(i.Quote)
		return q + strings.ReplaceAll(i.Value, q, q+q) + q
	}
}

// SetOperator is the operator of a SetOperation.
type SetOperator int

const (
	Union SetOperator = iota + 1
	Intersect
	Except
)

func (o SetOperator) String() string {
	switch o {
	case Union:
		return "UNION"
	case Intersect:
		return "INTERSECT"
	case Except:
		return "EXCEPT"
	default:
		return ""
	}
}

// JoinKind enumerates the join flavors.
type JoinKind int

const (
	InnerJoin JoinKind = iota + 1
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
	CrossApply
	OuterApply
)

// OffsetRows records which keyword, if any, followed an OFFSET value.
type OffsetRows int

const (
	OffsetRowsNone OffsetRows = iota
	OffsetRow
	OffsetRowsPlural
)

func (*Query) statementNode()        {}
func (*RawStatement) statementNode() {}

func (*Select) setExprNode()       {}
func (*SetOperation) setExprNode() {}
func (*Query) setExprNode()        {}
func (*Values) setExprNode()       {}

func (*UnnamedExpr) selectItemNode()       {}
func (*ExprWithAlias) selectItemNode()     {}
func (*QualifiedWildcard) selectItemNode() {}
func (*Wildcard) selectItemNode()          {}

func (*Table) tableFactorNode()      {}
func (*Derived) tableFactorNode()    {}
func (*NestedJoin) tableFactorNode() {}

func (*On) joinConstraintNode()      {}
func (*Using) joinConstraintNode()   {}
func (*Natural) joinConstraintNode() {}
