package parser_test

import (
	"strings"
	"testing"

	"github.com/pseudomuto/forma/pkg/ast"
	. "github.com/pseudomuto/forma/pkg/parser"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, sql string) *ast.Query {
	t.Helper()

	stmts, err := ParseString(sql)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	q, ok := stmts[0].(*ast.Query)
	require.True(t, ok, "expected a query, got %T", stmts[0])

	return q
}

func selectOf(t *testing.T, sql string) *ast.Select {
	t.Helper()

	s, ok := parseQuery(t, sql).Body.(*ast.Select)
	require.True(t, ok)

	return s
}

func TestParse(t *testing.T) {
	sql := `-- leading comment
SELECT a, b FROM t WHERE a > 1;
;;
/* a block
   comment */
INSERT INTO t VALUES (1);
select 1`

	stmts, err := Parse(strings.NewReader(sql))
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	require.IsType(t, &ast.Query{}, stmts[0])
	require.Equal(t, &ast.RawStatement{Keyword: "INSERT", Text: "INSERT INTO t VALUES ( 1 )"}, stmts[1])
	require.IsType(t, &ast.Query{}, stmts[2])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"missing projection", "SELECT FROM t"},
		{"dangling where", "SELECT a FROM t WHERE"},
		{"unknown statement", "EXPLAIN SELECT 1"},
		{"unterminated string", "SELECT 'abc"},
		{"apply with natural", "SELECT * FROM a NATURAL CROSS APPLY f(a.id)"},
		{"left apply", "SELECT * FROM a LEFT APPLY f(a.id)"},
		{"natural with on", "SELECT * FROM a NATURAL JOIN b ON a.id = b.id"},
		{"inner outer join", "SELECT * FROM a INNER OUTER JOIN b ON a.id = b.id"},
		{"current row direction", "SELECT sum(a) OVER (ROWS CURRENT ROW PRECEDING) FROM t"},
		{"bound without direction", "SELECT sum(a) OVER (ROWS 3) FROM t"},
		{"huge frame offset", "SELECT sum(a) OVER (ROWS 99999999999999999999 PRECEDING) FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := ParseString(tt.sql)
			require.Error(t, err)
			require.Nil(t, stmts)
			require.Contains(t, err.Error(), "failed to parse SQL")
		})
	}
}

func TestParse_Select(t *testing.T) {
	s := selectOf(t, "SELECT DISTINCT a, t.b AS bee, c cee, t.*, * FROM db.t WHERE a = 1 GROUP BY a, b HAVING count(*) > 1")

	require.True(t, s.Distinct)
	require.Equal(t, []ast.SelectItem{
		&ast.UnnamedExpr{Expr: &ast.Identifier{Ident: ast.NewIdent("a")}},
		&ast.ExprWithAlias{
			Expr:  &ast.CompoundIdentifier{Parts: []ast.Ident{ast.NewIdent("t"), ast.NewIdent("b")}},
			Alias: ast.NewIdent("bee"),
		},
		&ast.ExprWithAlias{Expr: &ast.Identifier{Ident: ast.NewIdent("c")}, Alias: ast.NewIdent("cee")},
		&ast.QualifiedWildcard{Name: ast.ObjectName{ast.NewIdent("t")}},
		&ast.Wildcard{},
	}, s.Projection)

	require.Len(t, s.From, 1)
	require.Equal(t, &ast.Table{Name: ast.ObjectName{ast.NewIdent("db"), ast.NewIdent("t")}}, s.From[0].Relation)
	require.Equal(t, &ast.BinaryOp{
		Left:  &ast.Identifier{Ident: ast.NewIdent("a")},
		Op:    ast.Eq,
		Right: &ast.Number{Value: "1"},
	}, s.Selection)
	require.Len(t, s.GroupBy, 2)
	require.IsType(t, &ast.BinaryOp{}, s.Having)
}

func TestParse_QueryClauses(t *testing.T) {
	q := parseQuery(t, "SELECT a FROM t ORDER BY a DESC NULLS FIRST, b LIMIT 10 OFFSET 5 ROW FETCH NEXT 3 PERCENT ROWS WITH TIES")

	asc, nullsFirst := false, true
	require.Equal(t, []*ast.OrderByExpr{
		{Expr: &ast.Identifier{Ident: ast.NewIdent("a")}, Asc: &asc, NullsFirst: &nullsFirst},
		{Expr: &ast.Identifier{Ident: ast.NewIdent("b")}},
	}, q.OrderBy)
	require.Equal(t, &ast.Number{Value: "10"}, q.Limit)
	require.Equal(t, &ast.Offset{Value: &ast.Number{Value: "5"}, Rows: ast.OffsetRow}, q.Offset)
	require.Equal(t, &ast.Fetch{Quantity: &ast.Number{Value: "3"}, Percent: true, WithTies: true}, q.Fetch)

	q = parseQuery(t, "SELECT a FROM t LIMIT ALL FETCH FIRST ROWS ONLY")
	require.Nil(t, q.Limit)
	require.Equal(t, &ast.Fetch{}, q.Fetch)
}

func TestParse_CTEs(t *testing.T) {
	q := parseQuery(t, "WITH a AS (SELECT 1), b (x, y) AS (SELECT 1, 2) SELECT * FROM a, b")

	require.Len(t, q.CTEs, 2)
	require.Equal(t, ast.NewIdent("a"), q.CTEs[0].Alias.Name)
	require.Empty(t, q.CTEs[0].Alias.Columns)
	require.Equal(t, []ast.Ident{ast.NewIdent("x"), ast.NewIdent("y")}, q.CTEs[1].Alias.Columns)
	require.IsType(t, &ast.Select{}, q.CTEs[1].Query.Body)
}

func TestParse_SetOperations(t *testing.T) {
	q := parseQuery(t, "SELECT 1 UNION ALL SELECT 2 INTERSECT SELECT 3 EXCEPT (SELECT 4)")

	// INTERSECT binds tighter than UNION and EXCEPT, which associate left.
	except, ok := q.Body.(*ast.SetOperation)
	require.True(t, ok)
	require.Equal(t, ast.Except, except.Op)
	require.IsType(t, &ast.Query{}, except.Right)

	union, ok := except.Left.(*ast.SetOperation)
	require.True(t, ok)
	require.Equal(t, ast.Union, union.Op)
	require.True(t, union.All)

	intersect, ok := union.Right.(*ast.SetOperation)
	require.True(t, ok)
	require.Equal(t, ast.Intersect, intersect.Op)
	require.False(t, intersect.All)
}

func TestParse_Values(t *testing.T) {
	q := parseQuery(t, "VALUES (1, 'a'), (2, NULL)")

	require.Equal(t, &ast.Values{Rows: [][]ast.Expr{
		{&ast.Number{Value: "1"}, &ast.String{Value: "a"}},
		{&ast.Number{Value: "2"}, &ast.Null{}},
	}}, q.Body)
}

func TestParse_Top(t *testing.T) {
	s := selectOf(t, "SELECT TOP 5 a FROM t")
	require.Equal(t, &ast.Top{Quantity: &ast.Number{Value: "5"}}, s.Top)

	s = selectOf(t, "SELECT TOP (n + 1) PERCENT WITH TIES a FROM t")
	require.True(t, s.Top.Percent)
	require.True(t, s.Top.WithTies)
	require.IsType(t, &ast.BinaryOp{}, s.Top.Quantity)
}

func TestParse_Joins(t *testing.T) {
	tests := []struct {
		sql        string
		kind       ast.JoinKind
		constraint ast.JoinConstraint
	}{
		{"SELECT * FROM a JOIN b ON x", ast.InnerJoin, &ast.On{Expr: &ast.Identifier{Ident: ast.NewIdent("x")}}},
		{"SELECT * FROM a INNER JOIN b USING (id, k)", ast.InnerJoin, &ast.Using{Columns: []ast.Ident{ast.NewIdent("id"), ast.NewIdent("k")}}},
		{"SELECT * FROM a LEFT JOIN b ON x", ast.LeftOuterJoin, &ast.On{Expr: &ast.Identifier{Ident: ast.NewIdent("x")}}},
		{"SELECT * FROM a RIGHT OUTER JOIN b ON x", ast.RightOuterJoin, &ast.On{Expr: &ast.Identifier{Ident: ast.NewIdent("x")}}},
		{"SELECT * FROM a FULL OUTER JOIN b ON x", ast.FullOuterJoin, &ast.On{Expr: &ast.Identifier{Ident: ast.NewIdent("x")}}},
		{"SELECT * FROM a CROSS JOIN b", ast.CrossJoin, nil},
		{"SELECT * FROM a NATURAL JOIN b", ast.InnerJoin, &ast.Natural{}},
		{"SELECT * FROM a NATURAL FULL JOIN b", ast.FullOuterJoin, &ast.Natural{}},
		{"SELECT * FROM a CROSS APPLY b", ast.CrossApply, nil},
		{"SELECT * FROM a OUTER APPLY b", ast.OuterApply, nil},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			s := selectOf(t, tt.sql)
			require.Len(t, s.From[0].Joins, 1)

			j := s.From[0].Joins[0]
			require.Equal(t, tt.kind, j.Operator.Kind)
			require.Equal(t, tt.constraint, j.Operator.Constraint)
			require.Equal(t, &ast.Table{Name: ast.ObjectName{ast.NewIdent("b")}}, j.Relation)
		})
	}
}

func TestParse_TableFactors(t *testing.T) {
	s := selectOf(t, "SELECT * FROM f() AS x (a, b) WITH (NOLOCK, INDEX(ix)), LATERAL (SELECT 1) d, (a JOIN b ON a.id = b.id)")
	require.Len(t, s.From, 3)

	require.Equal(t, &ast.Table{
		Name:  ast.ObjectName{ast.NewIdent("f")},
		Args:  []ast.Expr{},
		Alias: &ast.TableAlias{Name: ast.NewIdent("x"), Columns: []ast.Ident{ast.NewIdent("a"), ast.NewIdent("b")}},
		WithHints: []ast.Expr{
			&ast.Identifier{Ident: ast.NewIdent("NOLOCK")},
			&ast.Function{
				Name: ast.ObjectName{ast.NewIdent("INDEX")},
				Args: []ast.Expr{&ast.Identifier{Ident: ast.NewIdent("ix")}},
			},
		},
	}, s.From[0].Relation)

	derived, ok := s.From[1].Relation.(*ast.Derived)
	require.True(t, ok)
	require.True(t, derived.Lateral)
	require.Equal(t, &ast.TableAlias{Name: ast.NewIdent("d")}, derived.Alias)

	nested, ok := s.From[2].Relation.(*ast.NestedJoin)
	require.True(t, ok)
	require.Len(t, nested.Table.Joins, 1)
}

func TestParse_Identifiers(t *testing.T) {
	s := selectOf(t, "SELECT \"Quoted \"\"Name\"\"\", [Bracketed Name], `back``tick`, {{ds}}, @var, #tmp FROM t")

	idents := make([]ast.Ident, 0, len(s.Projection))
	for _, item := range s.Projection {
		idents = append(idents, item.(*ast.UnnamedExpr).Expr.(*ast.Identifier).Ident)
	}

	require.Equal(t, []ast.Ident{
		{Value: `Quoted "Name"`, Quote: '"'},
		{Value: "Bracketed Name", Quote: '['},
		{Value: "back`tick", Quote: '`'},
		ast.NewIdent("{{ds}}"),
		ast.NewIdent("@var"),
		ast.NewIdent("#tmp"),
	}, idents)
}

func TestParse_Expressions(t *testing.T) {
	col := func(name string) ast.Expr { return &ast.Identifier{Ident: ast.NewIdent(name)} }

	tests := []struct {
		sql      string
		expected ast.Expr
	}{
		{"a OR b AND c", &ast.BinaryOp{Left: col("a"), Op: ast.Or, Right: &ast.BinaryOp{Left: col("b"), Op: ast.And, Right: col("c")}}},
		{"NOT a = b", &ast.UnaryOp{Op: ast.Not, Expr: &ast.BinaryOp{Left: col("a"), Op: ast.Eq, Right: col("b")}}},
		{"NOT NOT a", &ast.UnaryOp{Op: ast.Not, Expr: &ast.UnaryOp{Op: ast.Not, Expr: col("a")}}},
		{"a + b * c", &ast.BinaryOp{Left: col("a"), Op: ast.Plus, Right: &ast.BinaryOp{Left: col("b"), Op: ast.Multiply, Right: col("c")}}},
		{"a != b", &ast.BinaryOp{Left: col("a"), Op: ast.NotEq, Right: col("b")}},
		{"a NOT ILIKE 'x'", &ast.BinaryOp{Left: col("a"), Op: ast.NotILike, Right: &ast.String{Value: "x"}}},
		{"- -1", &ast.UnaryOp{Op: ast.UnaryMinus, Expr: &ast.UnaryOp{Op: ast.UnaryMinus, Expr: &ast.Number{Value: "1"}}}},
		{"a IS NOT NULL", &ast.IsNotNull{Expr: col("a")}},
		{"a NOT BETWEEN 1 AND 2", &ast.Between{Expr: col("a"), Negated: true, Low: &ast.Number{Value: "1"}, High: &ast.Number{Value: "2"}}},
		{"a NOT IN (1)", &ast.InList{Expr: col("a"), List: []ast.Expr{&ast.Number{Value: "1"}}, Negated: true}},
		{"(a)", &ast.Nested{Expr: col("a")}},
		{"TRUE", &ast.Boolean{Value: true}},
		{"'it''s'", &ast.String{Value: "it's"}},
		{"DATE '2020-01-01'", &ast.TypedString{DataType: ast.DataType{Name: "DATE"}, Value: "2020-01-01"}},
		{"INTERVAL '3' HOUR", &ast.Interval{Value: "3", Unit: "HOUR"}},
		{"CAST(a AS NUMERIC(10, 2))", &ast.Cast{Expr: col("a"), DataType: ast.DataType{Name: "NUMERIC", Params: []string{"10", "2"}}}},
		{"CAST(a AS timestamp with time zone)", &ast.Cast{Expr: col("a"), DataType: ast.DataType{Name: "timestamp with time zone"}}},
		{"EXTRACT(MONTH FROM a)", &ast.Extract{Field: "MONTH", Expr: col("a")}},
		{`a COLLATE "de_DE"`, &ast.Collate{Expr: col("a"), Collation: ast.ObjectName{{Value: "de_DE", Quote: '"'}}}},
		{"count(DISTINCT a)", &ast.Function{Name: ast.ObjectName{ast.NewIdent("count")}, Args: []ast.Expr{col("a")}, Distinct: true}},
		{"count(*)", &ast.Function{Name: ast.ObjectName{ast.NewIdent("count")}, Args: []ast.Expr{&ast.WildcardExpr{}}}},
		{
			"CASE a WHEN 1 THEN 'x' ELSE 'y' END",
			&ast.Case{
				Operand:    col("a"),
				Conditions: []ast.Expr{&ast.Number{Value: "1"}},
				Results:    []ast.Expr{&ast.String{Value: "x"}},
				Else:       &ast.String{Value: "y"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			s := selectOf(t, "SELECT "+tt.sql)
			require.Len(t, s.Projection, 1)
			require.Equal(t, tt.expected, s.Projection[0].(*ast.UnnamedExpr).Expr)
		})
	}
}

func TestParse_WindowFunctions(t *testing.T) {
	s := selectOf(t, "SELECT sum(a) OVER (PARTITION BY b ORDER BY c ROWS BETWEEN UNBOUNDED PRECEDING AND 2 FOLLOWING) FROM t")
	fn := s.Projection[0].(*ast.UnnamedExpr).Expr.(*ast.Function)

	require.NotNil(t, fn.Over)
	require.Len(t, fn.Over.PartitionBy, 1)
	require.Len(t, fn.Over.OrderBy, 1)

	two := uint64(2)
	require.Equal(t, &ast.WindowFrame{
		Units: ast.FrameRows,
		Start: ast.WindowFrameBound{Kind: ast.Preceding},
		End:   &ast.WindowFrameBound{Kind: ast.Following, Offset: &two},
	}, fn.Over.Frame)

	s = selectOf(t, "SELECT rank() OVER (RANGE CURRENT ROW) FROM t")
	fn = s.Projection[0].(*ast.UnnamedExpr).Expr.(*ast.Function)
	require.Equal(t, &ast.WindowFrame{Units: ast.FrameRange, Start: ast.WindowFrameBound{Kind: ast.CurrentRow}}, fn.Over.Frame)
}

func TestParse_ListAgg(t *testing.T) {
	s := selectOf(t, "SELECT LISTAGG(DISTINCT name, '; ' ON OVERFLOW TRUNCATE '~' WITHOUT COUNT) WITHIN GROUP (ORDER BY name DESC) FROM t")
	agg := s.Projection[0].(*ast.UnnamedExpr).Expr.(*ast.ListAgg)

	require.True(t, agg.Distinct)
	require.Equal(t, &ast.String{Value: "; "}, agg.Separator)
	require.Equal(t, &ast.OverflowTruncate{Filler: &ast.String{Value: "~"}}, agg.OnOverflow)
	require.Len(t, agg.WithinGroup, 1)

	s = selectOf(t, "SELECT LISTAGG(name ON OVERFLOW ERROR) FROM t")
	agg = s.Projection[0].(*ast.UnnamedExpr).Expr.(*ast.ListAgg)
	require.Equal(t, &ast.OverflowError{}, agg.OnOverflow)
	require.Nil(t, agg.Separator)
}

func TestParse_OtherStatements(t *testing.T) {
	for _, kw := range []string{"INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER", "TRUNCATE", "GRANT", "REVOKE", "MERGE", "SET"} {
		t.Run(kw, func(t *testing.T) {
			stmts, err := ParseString(strings.ToLower(kw) + " something 'here' (1, 2)")
			require.NoError(t, err)
			require.Len(t, stmts, 1)

			raw, ok := stmts[0].(*ast.RawStatement)
			require.True(t, ok)
			require.Equal(t, kw, raw.Keyword)
		})
	}
}
