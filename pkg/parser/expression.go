package parser

// Expressions are layered by precedence, loosest first:
// OR, AND, NOT, comparison, additive, multiplicative, unary, postfix, primary.
type (
	Expression struct {
		Left *AndExpression   `parser:"@@"`
		Rest []*AndExpression `parser:"('OR' @@)*"`
	}

	AndExpression struct {
		Left *NotExpression   `parser:"@@"`
		Rest []*NotExpression `parser:"('AND' @@)*"`
	}

	NotExpression struct {
		Not  *NotExpression `parser:"  'NOT' @@"`
		Expr *Comparison    `parser:"| @@"`
	}

	Comparison struct {
		Left *Addition       `parser:"@@"`
		Rest *ComparisonRest `parser:"@@?"`
	}

	ComparisonRest struct {
		IsNull  *IsNullOp  `parser:"  @@"`
		Between *BetweenOp `parser:"| @@"`
		In      *InOp      `parser:"| @@"`
		Like    *LikeOp    `parser:"| @@"`
		Simple  *SimpleOp  `parser:"| @@"`
	}

	IsNullOp struct {
		Not bool `parser:"'IS' @'NOT'? 'NULL'"`
	}

	BetweenOp struct {
		Not  bool      `parser:"@'NOT'? 'BETWEEN'"`
		Low  *Addition `parser:"@@"`
		High *Addition `parser:"'AND' @@"`
	}

	InOp struct {
		Not      bool          `parser:"@'NOT'? 'IN' '('"`
		Subquery *Query        `parser:"( @@"`
		List     []*Expression `parser:"| @@ (',' @@)* ) ')'"`
	}

	LikeOp struct {
		Not   bool      `parser:"@'NOT'?"`
		Op    string    `parser:"@('LIKE' | 'ILIKE')"`
		Right *Addition `parser:"@@"`
	}

	SimpleOp struct {
		Op    string    `parser:"@('=' | '<>' | '!=' | '<=' | '>=' | '<' | '>')"`
		Right *Addition `parser:"@@"`
	}

	Addition struct {
		Left *Multiplication `parser:"@@"`
		Rest []*AdditionRest `parser:"@@*"`
	}

	AdditionRest struct {
		Op    string          `parser:"@('+' | '-' | '||')"`
		Right *Multiplication `parser:"@@"`
	}

	Multiplication struct {
		Left *Unary                `parser:"@@"`
		Rest []*MultiplicationRest `parser:"@@*"`
	}

	MultiplicationRest struct {
		Op    string `parser:"@('*' | '/' | '%')"`
		Right *Unary `parser:"@@"`
	}

	Unary struct {
		Op      string   `parser:"  @('-' | '+')"`
		Operand *Unary   `parser:"  @@"`
		Postfix *Postfix `parser:"| @@"`
	}

	Postfix struct {
		Primary *Primary `parser:"@@"`
		Collate []*Ident `parser:"('COLLATE' @@ ('.' @@)*)?"`
	}

	// Primary is an operand. Alternatives sharing a prefix are ordered so that
	// the longer form is tried first.
	Primary struct {
		Exists      *Query           `parser:"  'EXISTS' '(' @@ ')'"`
		Subquery    *Query           `parser:"| '(' @@ ')'"`
		Nested      *Expression      `parser:"| '(' @@ ')'"`
		Case        *CaseExpression  `parser:"| @@"`
		Cast        *CastExpression  `parser:"| @@"`
		Extract     *ExtractExpr     `parser:"| @@"`
		Interval    *IntervalLiteral `parser:"| @@"`
		ListAgg     *ListAggCall     `parser:"| @@"`
		Function    *FunctionCall    `parser:"| @@"`
		TypedString *TypedString     `parser:"| @@"`
		Literal     *Literal         `parser:"| @@"`
		Name        []*Ident         `parser:"| @@ ('.' @@)*"`
	}

	Literal struct {
		Number *string `parser:"  @Number"`
		String *string `parser:"| @String"`
		Bool   *string `parser:"| @('TRUE' | 'FALSE')"`
		Null   bool    `parser:"| @'NULL'"`
	}

	TypedString struct {
		Type  string `parser:"@Ident"`
		Value string `parser:"@String"`
	}

	IntervalLiteral struct {
		Value string `parser:"'INTERVAL' @String"`
		Unit  string `parser:"@('YEAR' | 'QUARTER' | 'MONTH' | 'WEEK' | 'DAY' | 'HOUR' | 'MINUTE' | 'SECOND' | 'MILLISECOND' | 'MICROSECOND')?"`
	}

	CaseExpression struct {
		Operand *Expression   `parser:"'CASE' @@?"`
		Whens   []*WhenClause `parser:"@@+"`
		Else    *Expression   `parser:"('ELSE' @@)?"`
		End     string        `parser:"'END'"`
	}

	WhenClause struct {
		Condition *Expression `parser:"'WHEN' @@"`
		Result    *Expression `parser:"'THEN' @@"`
	}

	CastExpression struct {
		Expr *Expression `parser:"'CAST' '(' @@ 'AS'"`
		Type *DataType   `parser:"@@ ')'"`
	}

	DataType struct {
		Words  []string `parser:"@Ident+"`
		Params []string `parser:"('(' @Number (',' @Number)* ')')?"`
		Zone   []string `parser:"(@'WITH' @'TIME' @'ZONE')?"`
	}

	ExtractExpr struct {
		Field string      `parser:"'EXTRACT' '(' @Ident"`
		Expr  *Expression `parser:"'FROM' @@ ')'"`
	}

	ListAggCall struct {
		Distinct    bool         `parser:"'LISTAGG' '(' @'DISTINCT'?"`
		Expr        *Expression  `parser:"@@"`
		Separator   *Expression  `parser:"(',' @@)?"`
		Overflow    *OnOverflow  `parser:"@@? ')'"`
		WithinGroup []*OrderItem `parser:"('WITHIN' 'GROUP' '(' 'ORDER' 'BY' @@ (',' @@)* ')')?"`
	}

	OnOverflow struct {
		Error     bool    `parser:"'ON' 'OVERFLOW' ( @'ERROR'"`
		Truncate  bool    `parser:"| @'TRUNCATE'"`
		Filler    *string `parser:"  @String?"`
		WithCount string  `parser:"  @('WITH' | 'WITHOUT') 'COUNT' )"`
	}

	FunctionCall struct {
		Name     []*FunctionName `parser:"@@ ('.' @@)*"`
		Distinct bool            `parser:"'(' @'DISTINCT'?"`
		Args     []*FunctionArg  `parser:"(@@ (',' @@)*)? ')'"`
		Over     *OverClause     `parser:"('OVER' @@)?"`
	}

	// FunctionName also admits LEFT and RIGHT, which are reserved for joins.
	FunctionName struct {
		Value string `parser:"@(Ident | QuotedIdent | BacktickIdent | 'LEFT' | 'RIGHT')"`
	}

	FunctionArg struct {
		Star bool        `parser:"  @'*'"`
		Expr *Expression `parser:"| @@"`
	}

	OverClause struct {
		PartitionBy []*Expression `parser:"'(' ('PARTITION' 'BY' @@ (',' @@)*)?"`
		OrderBy     []*OrderItem  `parser:"('ORDER' 'BY' @@ (',' @@)*)?"`
		Frame       *WindowFrame  `parser:"@@? ')'"`
	}

	WindowFrame struct {
		Units   string        `parser:"@('ROWS' | 'RANGE' | 'GROUPS')"`
		Between *FrameBetween `parser:"( @@"`
		Single  *FrameBound   `parser:"| @@ )"`
	}

	FrameBetween struct {
		Start *FrameBound `parser:"'BETWEEN' @@"`
		End   *FrameBound `parser:"'AND' @@"`
	}

	FrameBound struct {
		Unbounded bool    `parser:"( @'UNBOUNDED'"`
		Current   bool    `parser:"| @'CURRENT' 'ROW'"`
		Offset    *string `parser:"| @Number )"`
		Direction string  `parser:"@('PRECEDING' | 'FOLLOWING')?"`
	}

	// Ident is a bare, double quoted, bracketed or backticked identifier, kept
	// as written.
	Ident struct {
		Value string `parser:"@(Ident | QuotedIdent | BacktickIdent)"`
	}
)
