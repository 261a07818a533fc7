package parser

type (
	// Query is a full query expression: optional CTEs, a body, and the ordering
	// and row limiting clauses that apply to the whole body.
	Query struct {
		With    []*CTE        `parser:"('WITH' @@ (',' @@)*)?"`
		Body    *SetExpr      `parser:"@@"`
		OrderBy []*OrderItem  `parser:"('ORDER' 'BY' @@ (',' @@)*)?"`
		Limit   *Expression   `parser:"('LIMIT' ('ALL' | @@))?"`
		Offset  *OffsetClause `parser:"@@?"`
		Fetch   *FetchClause  `parser:"@@?"`
	}

	// CTE is a single common table expression.
	CTE struct {
		Name    *Ident   `parser:"@@"`
		Columns []*Ident `parser:"('(' @@ (',' @@)* ')')?"`
		Query   *Query   `parser:"'AS' '(' @@ ')'"`
	}

	// SetExpr is a chain of UNION / EXCEPT operations. INTERSECT binds tighter
	// and is handled by SetTerm.
	SetExpr struct {
		Left *SetTerm     `parser:"@@"`
		Rest []*SetOpRest `parser:"@@*"`
	}

	SetOpRest struct {
		Op    string   `parser:"@('UNION' | 'EXCEPT')"`
		All   bool     `parser:"@'ALL'? 'DISTINCT'?"`
		Right *SetTerm `parser:"@@"`
	}

	SetTerm struct {
		Left *SetPrimary      `parser:"@@"`
		Rest []*IntersectRest `parser:"@@*"`
	}

	IntersectRest struct {
		Op    string      `parser:"@'INTERSECT'"`
		All   bool        `parser:"@'ALL'? 'DISTINCT'?"`
		Right *SetPrimary `parser:"@@"`
	}

	SetPrimary struct {
		Select *SelectStatement `parser:"  @@"`
		Values *ValuesBody      `parser:"| @@"`
		Query  *Query           `parser:"| '(' @@ ')'"`
	}

	ValuesBody struct {
		Rows []*ValuesRow `parser:"'VALUES' @@ (',' @@)*"`
	}

	ValuesRow struct {
		Exprs []*Expression `parser:"'(' @@ (',' @@)* ')'"`
	}

	// SelectStatement is a single SELECT block.
	SelectStatement struct {
		Distinct bool          `parser:"'SELECT' ( @'DISTINCT' | 'ALL' )?"`
		Top      *TopClause    `parser:"@@?"`
		Columns  []*SelectItem `parser:"@@ (',' @@)*"`
		From     []*FromItem   `parser:"('FROM' @@ (',' @@)*)?"`
		Where    *Expression   `parser:"('WHERE' @@)?"`
		GroupBy  []*Expression `parser:"('GROUP' 'BY' @@ (',' @@)*)?"`
		Having   *Expression   `parser:"('HAVING' @@)?"`
	}

	TopClause struct {
		Quantity *Expression `parser:"'TOP' ( '(' @@ ')'"`
		Number   *string     `parser:"      | @Number )"`
		Percent  bool        `parser:"@'PERCENT'?"`
		WithTies bool        `parser:"@('WITH' 'TIES')?"`
	}

	// SelectItem is a projection entry. The alias keyword is optional.
	SelectItem struct {
		Star      bool        `parser:"  @'*'"`
		Qualified []*Ident    `parser:"| (@@ '.')+ '*'"`
		Expr      *Expression `parser:"| @@"`
		Alias     *Ident      `parser:"  ('AS'? @@)?"`
	}

	// FromItem is a relation followed by its joins.
	FromItem struct {
		Relation *TableFactor `parser:"@@"`
		Joins    []*JoinClause `parser:"@@*"`
	}

	TableFactor struct {
		Derived *DerivedTable `parser:"  @@"`
		Nested  *FromItem     `parser:"| '(' @@ ')'"`
		Table   *TableRef     `parser:"| @@"`
	}

	DerivedTable struct {
		Lateral bool      `parser:"@'LATERAL'? '('"`
		Query   *Query    `parser:"@@ ')'"`
		Alias   *AliasDef `parser:"@@?"`
	}

	// TableRef is a named table, or a table valued function when Args is set.
	TableRef struct {
		Name  []*Ident      `parser:"@@ ('.' @@)*"`
		Args  *TableArgs    `parser:"@@?"`
		Alias *AliasDef     `parser:"@@?"`
		Hints []*Expression `parser:"('WITH' '(' @@ (',' @@)* ')')?"`
	}

	TableArgs struct {
		Args []*Expression `parser:"'(' (@@ (',' @@)*)? ')'"`
	}

	AliasDef struct {
		Name    *Ident   `parser:"'AS'? @@"`
		Columns []*Ident `parser:"('(' @@ (',' @@)* ')')?"`
	}

	// JoinClause covers every join spelling: [NATURAL] [INNER | LEFT [OUTER] |
	// RIGHT [OUTER] | FULL [OUTER] | CROSS] JOIN, CROSS APPLY and OUTER APPLY.
	JoinClause struct {
		Natural  bool         `parser:"@'NATURAL'?"`
		Kind     string       `parser:"@('INNER' | 'LEFT' | 'RIGHT' | 'FULL' | 'CROSS' | 'OUTER')?"`
		Outer    bool         `parser:"@'OUTER'?"`
		Apply    bool         `parser:"( @'APPLY' | 'JOIN' )"`
		Relation *TableFactor `parser:"@@"`
		On       *Expression  `parser:"( 'ON' @@"`
		Using    []*Ident     `parser:"| 'USING' '(' @@ (',' @@)* ')' )?"`
	}

	OrderItem struct {
		Expr  *Expression `parser:"@@"`
		Dir   string      `parser:"@('ASC' | 'DESC')?"`
		Nulls string      `parser:"('NULLS' @('FIRST' | 'LAST'))?"`
	}

	OffsetClause struct {
		Value *Expression `parser:"'OFFSET' @@"`
		Rows  string      `parser:"@('ROW' | 'ROWS')?"`
	}

	FetchClause struct {
		Quantity *Expression `parser:"'FETCH' ('FIRST' | 'NEXT') @@?"`
		Percent  bool        `parser:"@'PERCENT'? ('ROW' | 'ROWS')"`
		WithTies bool        `parser:"( @('WITH' 'TIES') | 'ONLY' )"`
	}
)
