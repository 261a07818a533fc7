package ast

// Expr is a scalar expression.
type Expr interface{ exprNode() }

type (
	// Identifier is an unqualified column or variable reference.
	Identifier struct {
		Ident Ident
	}

	// CompoundIdentifier is a qualified reference such as t.col.
	CompoundIdentifier struct {
		Parts []Ident
	}

	// WildcardExpr is * used as an expression, as in count(*).
	WildcardExpr struct{}

	// QualifiedWildcardExpr is t.* used as an expression.
	QualifiedWildcardExpr struct {
		Name ObjectName
	}

	// Number is a numeric literal, kept as written.
	Number struct {
		Value string
	}

	// String is a single quoted string literal. Value is unescaped.
	String struct {
		Value string
	}

	// Boolean is TRUE or FALSE.
	Boolean struct {
		Value bool
	}

	// Null is the NULL literal.
	Null struct{}

	// Interval is an INTERVAL literal. Unit is empty when the unit is part of
	// the string.
	Interval struct {
		Value string
		Unit  string
	}

	// TypedString is a literal prefixed with its type, as in DATE '2020-01-01'.
	TypedString struct {
		DataType DataType
		Value    string
	}

	// UnaryOp applies a prefix operator.
	UnaryOp struct {
		Op   UnaryOperator
		Expr Expr
	}

	// BinaryOp applies an infix operator.
	BinaryOp struct {
		Left  Expr
		Op    BinaryOperator
		Right Expr
	}

	// Cast is CAST(expr AS type).
	Cast struct {
		Expr     Expr
		DataType DataType
	}

	// Extract is EXTRACT(field FROM expr).
	Extract struct {
		Field string
		Expr  Expr
	}

	// Collate is expr COLLATE collation.
	Collate struct {
		Expr      Expr
		Collation ObjectName
	}

	// Nested is a parenthesized expression.
	Nested struct {
		Expr Expr
	}

	// Between is expr [NOT] BETWEEN low AND high.
	Between struct {
		Expr    Expr
		Negated bool
		Low     Expr
		High    Expr
	}

	// Case is a CASE expression. Conditions and Results are parallel slices.
	Case struct {
		Operand    Expr
		Conditions []Expr
		Results    []Expr
		Else       Expr
	}

	// IsNull is expr IS NULL.
	IsNull struct {
		Expr Expr
	}

	// IsNotNull is expr IS NOT NULL.
	IsNotNull struct {
		Expr Expr
	}

	// InList is expr [NOT] IN (list).
	InList struct {
		Expr    Expr
		List    []Expr
		Negated bool
	}

	// InSubquery is expr [NOT] IN (subquery).
	InSubquery struct {
		Expr     Expr
		Subquery *Query
		Negated  bool
	}

	// Exists is EXISTS (subquery).
	Exists struct {
		Subquery *Query
	}

	// Subquery is a parenthesized query used as a scalar.
	Subquery struct {
		Query *Query
	}

	// Function is a function call, optionally a window function.
	Function struct {
		Name     ObjectName
		Args     []Expr
		Distinct bool
		Over     *WindowSpec
	}

	// ListAgg is LISTAGG with its overflow behavior and ordering.
	ListAgg struct {
		Distinct    bool
		Expr        Expr
		Separator   Expr
		OnOverflow  ListAggOnOverflow
		WithinGroup []*OrderByExpr
	}
)

// DataType is a type name with its parameters, as in varchar(10) or
// decimal(10, 2).
type DataType struct {
	Name   string
	Params []string
}

// WindowSpec is the OVER clause of a window function.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []*OrderByExpr
	Frame       *WindowFrame
}

// WindowFrame is the frame clause of a window specification. End is nil for
// the single bound form.
type WindowFrame struct {
	Units WindowFrameUnits
	Start WindowFrameBound
	End   *WindowFrameBound
}

// WindowFrameBound is one end of a window frame. Offset is nil for UNBOUNDED.
type WindowFrameBound struct {
	Kind   FrameBoundKind
	Offset *uint64
}

// ListAggOnOverflow is the ON OVERFLOW clause of LISTAGG. A nil value means the
// clause is absent.
type ListAggOnOverflow interface{ onOverflowNode() }

// OverflowError is ON OVERFLOW ERROR.
type OverflowError struct{}

// OverflowTruncate is ON OVERFLOW TRUNCATE [filler] WITH|WITHOUT COUNT.
type OverflowTruncate struct {
	Filler    Expr
	WithCount bool
}

type WindowFrameUnits int

const (
	FrameRows WindowFrameUnits = iota + 1
	FrameRange
	FrameGroups
)

func (u WindowFrameUnits) String() string {
	switch u {
	case FrameRows:
		return "ROWS"
	case FrameRange:
		return "RANGE"
	case FrameGroups:
		return "GROUPS"
	default:
		return ""
	}
}

type FrameBoundKind int

const (
	CurrentRow FrameBoundKind = iota + 1
	Preceding
	Following
)

// UnaryOperator is a prefix operator.
type UnaryOperator int

const (
	UnaryPlus UnaryOperator = iota + 1
	UnaryMinus
	Not
)

func (o UnaryOperator) String() string {
	switch o {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case Not:
		return "NOT"
	default:
		return ""
	}
}

// BinaryOperator is an infix operator.
type BinaryOperator int

const (
	Plus BinaryOperator = iota + 1
	Minus
	Multiply
	Divide
	Modulo
	StringConcat
	Gt
	Lt
	GtEq
	LtEq
	Eq
	NotEq
	And
	Or
	Like
	NotLike
	ILike
	NotILike
)

var binaryOperators = map[BinaryOperator]string{
	Plus:         "+",
	Minus:        "-",
	Multiply:     "*",
	Divide:       "/",
	Modulo:       "%",
	StringConcat: "||",
	Gt:           ">",
	Lt:           "<",
	GtEq:         ">=",
	LtEq:         "<=",
	Eq:           "=",
	NotEq:        "<>",
	And:          "AND",
	Or:           "OR",
	Like:         "LIKE",
	NotLike:      "NOT LIKE",
	ILike:        "ILIKE",
	NotILike:     "NOT ILIKE",
}

// String returns the SQL spelling of the operator, or "" for an unknown value.
func (o BinaryOperator) String() string { return binaryOperators[o] }

func (*Identifier) exprNode()            {}
func (*CompoundIdentifier) exprNode()    {}
func (*WildcardExpr) exprNode()          {}
func (*QualifiedWildcardExpr) exprNode() {}
func (*Number) exprNode()                {}
func (*String) exprNode()                {}
func (*Boolean) exprNode()               {}
func (*Null) exprNode()                  {}
func (*Interval) exprNode()              {}
func (*TypedString) exprNode()           {}
func (*UnaryOp) exprNode()               {}
func (*BinaryOp) exprNode()              {}
func (*Cast) exprNode()                  {}
func (*Extract) exprNode()               {}
func (*Collate) exprNode()               {}
func (*Nested) exprNode()                {}
func (*Between) exprNode()               {}
func (*Case) exprNode()                  {}
func (*IsNull) exprNode()                {}
func (*IsNotNull) exprNode()             {}
func (*InList) exprNode()                {}
func (*InSubquery) exprNode()            {}
func (*Exists) exprNode()                {}
func (*Subquery) exprNode()              {}
func (*Function) exprNode()              {}
func (*ListAgg) exprNode()               {}

func (*OverflowError) onOverflowNode()    {}
func (*OverflowTruncate) onOverflowNode() {}
