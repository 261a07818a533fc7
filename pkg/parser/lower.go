package parser

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/ast"
)

// lowerer converts the grammar structs into the ast package. The first
// semantic error is kept and everything after it is still walked but ignored.
type lowerer struct {
	err error
}

func (l *lowerer) fail(format string, args ...any) {
	if l.err == nil {
		l.err = errors.Errorf(format, args...)
	}
}

var (
	comparisonOps = map[string]ast.BinaryOperator{
		"=":  ast.Eq,
		"<>": ast.NotEq,
		"!=": ast.NotEq,
		"<":  ast.Lt,
		">":  ast.Gt,
		"<=": ast.LtEq,
		">=": ast.GtEq,
	}

	arithmeticOps = map[string]ast.BinaryOperator{
		"+":  ast.Plus,
		"-":  ast.Minus,
		"||": ast.StringConcat,
		"*":  ast.Multiply,
		"/":  ast.Divide,
		"%":  ast.Modulo,
	}

	frameUnits = map[string]ast.WindowFrameUnits{
		"ROWS":   ast.FrameRows,
		"RANGE":  ast.FrameRange,
		"GROUPS": ast.FrameGroups,
	}
)

func (s *SQL) lower() ([]ast.Statement, error) {
	l := &lowerer{}

	stmts := make([]ast.Statement, 0, len(s.Statements))
	for _, stmt := range s.Statements {
		stmts = append(stmts, l.statement(stmt))
	}

	if l.err != nil {
		return nil, l.err
	}

	return stmts, nil
}

func (l *lowerer) statement(s *Statement) ast.Statement {
	if o := s.Other; o != nil {
		words := append([]string{o.Keyword}, o.Tokens...)
		return &ast.RawStatement{
			Keyword: strings.ToUpper(o.Keyword),
			Text:    strings.Join(words, " "),
		}
	}

	return l.query(s.Query)
}

func (l *lowerer) query(q *Query) *ast.Query {
	out := &ast.Query{
		Body:    l.setExpr(q.Body),
		OrderBy: l.orderBy(q.OrderBy),
	}

	for _, c := range q.With {
		out.CTEs = append(out.CTEs, &ast.CTE{
			Alias: ast.TableAlias{Name: ident(c.Name), Columns: idents(c.Columns)},
			Query: l.query(c.Query),
		})
	}

	if q.Limit != nil {
		out.Limit = l.expr(q.Limit)
	}

	if o := q.Offset; o != nil {
		out.Offset = &ast.Offset{Value: l.expr(o.Value)}
		switch strings.ToUpper(o.Rows) {
		case "ROW":
			out.Offset.Rows = ast.OffsetRow
		case "ROWS":
			out.Offset.Rows = ast.OffsetRowsPlural
		}
	}

	if f := q.Fetch; f != nil {
		out.Fetch = &ast.Fetch{Percent: f.Percent, WithTies: f.WithTies}
		if f.Quantity != nil {
			out.Fetch.Quantity = l.expr(f.Quantity)
		}
	}

	return out
}

func (l *lowerer) setExpr(s *SetExpr) ast.SetExpr {
	out := l.setTerm(s.Left)
	for _, r := range s.Rest {
		op := ast.Union
		if strings.EqualFold(r.Op, "EXCEPT") {
			op = ast.Except
		}

		out = &ast.SetOperation{Op: op, All: r.All, Left: out, Right: l.setTerm(r.Right)}
	}

	return out
}

func (l *lowerer) setTerm(s *SetTerm) ast.SetExpr {
	out := l.setPrimary(s.Left)
	for _, r := range s.Rest {
		out = &ast.SetOperation{Op: ast.Intersect, All: r.All, Left: out, Right: l.setPrimary(r.Right)}
	}

	return out
}

func (l *lowerer) setPrimary(s *SetPrimary) ast.SetExpr {
	switch {
	case s.Select != nil:
		return l.selectStatement(s.Select)
	case s.Values != nil:
		v := &ast.Values{}
		for _, row := range s.Values.Rows {
			v.Rows = append(v.Rows, l.exprs(row.Exprs))
		}

		return v
	default:
		return l.query(s.Query)
	}
}

func (l *lowerer) selectStatement(s *SelectStatement) *ast.Select {
	out := &ast.Select{Distinct: s.Distinct}

	if t := s.Top; t != nil {
		out.Top = &ast.Top{Percent: t.Percent, WithTies: t.WithTies}
		if t.Number != nil {
			out.Top.Quantity = &ast.Number{Value: *t.Number}
		} else {
			out.Top.Quantity = l.expr(t.Quantity)
		}
	}

	for _, c := range s.Columns {
		out.Projection = append(out.Projection, l.selectItem(c))
	}

	for _, f := range s.From {
		out.From = append(out.From, l.fromItem(f))
	}

	if s.Where != nil {
		out.Selection = l.expr(s.Where)
	}

	out.GroupBy = l.exprs(s.GroupBy)

	if s.Having != nil {
		out.Having = l.expr(s.Having)
	}

	return out
}

func (l *lowerer) selectItem(c *SelectItem) ast.SelectItem {
	switch {
	case c.Star:
		return &ast.Wildcard{}
	case len(c.Qualified) > 0:
		return &ast.QualifiedWildcard{Name: idents(c.Qualified)}
	case c.Alias != nil:
		return &ast.ExprWithAlias{Expr: l.expr(c.Expr), Alias: ident(c.Alias)}
	default:
		return &ast.UnnamedExpr{Expr: l.expr(c.Expr)}
	}
}

func (l *lowerer) fromItem(f *FromItem) *ast.TableWithJoins {
	out := &ast.TableWithJoins{Relation: l.tableFactor(f.Relation)}
	for _, j := range f.Joins {
		out.Joins = append(out.Joins, l.join(j))
	}

	return out
}

func (l *lowerer) tableFactor(t *TableFactor) ast.TableFactor {
	switch {
	case t.Derived != nil:
		return &ast.Derived{
			Lateral:  t.Derived.Lateral,
			Subquery: l.query(t.Derived.Query),
			Alias:    alias(t.Derived.Alias),
		}
	case t.Nested != nil:
		return &ast.NestedJoin{Table: l.fromItem(t.Nested)}
	default:
		out := &ast.Table{
			Name:      idents(t.Table.Name),
			Alias:     alias(t.Table.Alias),
			WithHints: l.exprs(t.Table.Hints),
		}

		if t.Table.Args != nil {
			out.Args = l.exprs(t.Table.Args.Args)
			if out.Args == nil {
				out.Args = []ast.Expr{}
			}
		}

		return out
	}
}

func (l *lowerer) join(j *JoinClause) *ast.Join {
	out := &ast.Join{Relation: l.tableFactor(j.Relation)}
	kind := strings.ToUpper(j.Kind)

	if j.Apply {
		switch {
		case j.Outer || j.Natural:
			l.fail("unsupported join: %s APPLY", kind)
		case kind == "CROSS":
			out.Operator.Kind = ast.CrossApply
		case kind == "OUTER":
			out.Operator.Kind = ast.OuterApply
		default:
			l.fail("unsupported join: %s APPLY", kind)
		}

		return out
	}

	switch kind {
	case "", "INNER":
		out.Operator.Kind = ast.InnerJoin
	case "LEFT":
		out.Operator.Kind = ast.LeftOuterJoin
	case "RIGHT":
		out.Operator.Kind = ast.RightOuterJoin
	case "FULL":
		out.Operator.Kind = ast.FullOuterJoin
	case "CROSS":
		out.Operator.Kind = ast.CrossJoin
	default:
		l.fail("unsupported join: %s JOIN", kind)
	}

	if j.Outer && (kind == "" || kind == "INNER" || kind == "CROSS") {
		l.fail("unsupported join: %s OUTER JOIN", kind)
	}

	switch {
	case j.Natural && (j.On != nil || len(j.Using) > 0):
		l.fail("a NATURAL join can't have an ON or USING clause")
	case j.Natural:
		out.Operator.Constraint = &ast.Natural{}
	case j.On != nil:
		out.Operator.Constraint = &ast.On{Expr: l.expr(j.On)}
	case len(j.Using) > 0:
		out.Operator.Constraint = &ast.Using{Columns: idents(j.Using)}
	}

	return out
}

func (l *lowerer) orderBy(items []*OrderItem) []*ast.OrderByExpr {
	var out []*ast.OrderByExpr
	for _, o := range items {
		item := &ast.OrderByExpr{Expr: l.expr(o.Expr)}
		if o.Dir != "" {
			asc := strings.EqualFold(o.Dir, "ASC")
			item.Asc = &asc
		}

		if o.Nulls != "" {
			first := strings.EqualFold(o.Nulls, "FIRST")
			item.NullsFirst = &first
		}

		out = append(out, item)
	}

	return out
}

func (l *lowerer) exprs(list []*Expression) []ast.Expr {
	var out []ast.Expr
	for _, e := range list {
		out = append(out, l.expr(e))
	}

	return out
}

func (l *lowerer) expr(e *Expression) ast.Expr {
	out := l.and(e.Left)
	for _, r := range e.Rest {
		out = &ast.BinaryOp{Left: out, Op: ast.Or, Right: l.and(r)}
	}

	return out
}

func (l *lowerer) and(e *AndExpression) ast.Expr {
	out := l.not(e.Left)
	for _, r := range e.Rest {
		out = &ast.BinaryOp{Left: out, Op: ast.And, Right: l.not(r)}
	}

	return out
}

func (l *lowerer) not(e *NotExpression) ast.Expr {
	if e.Not != nil {
		return &ast.UnaryOp{Op: ast.Not, Expr: l.not(e.Not)}
	}

	return l.comparison(e.Expr)
}

func (l *lowerer) comparison(c *Comparison) ast.Expr {
	left := l.addition(c.Left)

	r := c.Rest
	switch {
	case r == nil:
		return left
	case r.IsNull != nil:
		if r.IsNull.Not {
			return &ast.IsNotNull{Expr: left}
		}

		return &ast.IsNull{Expr: left}
	case r.Between != nil:
		return &ast.Between{
			Expr:    left,
			Negated: r.Between.Not,
			Low:     l.addition(r.Between.Low),
			High:    l.addition(r.Between.High),
		}
	case r.In != nil:
		if r.In.Subquery != nil {
			return &ast.InSubquery{Expr: left, Subquery: l.query(r.In.Subquery), Negated: r.In.Not}
		}

		return &ast.InList{Expr: left, List: l.exprs(r.In.List), Negated: r.In.Not}
	case r.Like != nil:
		op := ast.Like
		ilike := strings.EqualFold(r.Like.Op, "ILIKE")

		switch {
		case ilike && r.Like.Not:
			op = ast.NotILike
		case ilike:
			op = ast.ILike
		case r.Like.Not:
			op = ast.NotLike
		}

		return &ast.BinaryOp{Left: left, Op: op, Right: l.addition(r.Like.Right)}
	default:
		return &ast.BinaryOp{Left: left, Op: comparisonOps[r.Simple.Op], Right: l.addition(r.Simple.Right)}
	}
}

func (l *lowerer) addition(a *Addition) ast.Expr {
	out := l.multiplication(a.Left)
	for _, r := range a.Rest {
		out = &ast.BinaryOp{Left: out, Op: arithmeticOps[r.Op], Right: l.multiplication(r.Right)}
	}

	return out
}

func (l *lowerer) multiplication(m *Multiplication) ast.Expr {
	out := l.unary(m.Left)
	for _, r := range m.Rest {
		out = &ast.BinaryOp{Left: out, Op: arithmeticOps[r.Op], Right: l.unary(r.Right)}
	}

	return out
}

func (l *lowerer) unary(u *Unary) ast.Expr {
	if u.Operand != nil {
		op := ast.UnaryPlus
		if u.Op == "-" {
			op = ast.UnaryMinus
		}

		return &ast.UnaryOp{Op: op, Expr: l.unary(u.Operand)}
	}

	out := l.primary(u.Postfix.Primary)
	if len(u.Postfix.Collate) > 0 {
		return &ast.Collate{Expr: out, Collation: idents(u.Postfix.Collate)}
	}

	return out
}

func (l *lowerer) primary(p *Primary) ast.Expr {
	switch {
	case p.Exists != nil:
		return &ast.Exists{Subquery: l.query(p.Exists)}
	case p.Subquery != nil:
		return &ast.Subquery{Query: l.query(p.Subquery)}
	case p.Nested != nil:
		return &ast.Nested{Expr: l.expr(p.Nested)}
	case p.Case != nil:
		return l.caseExpr(p.Case)
	case p.Cast != nil:
		return &ast.Cast{Expr: l.expr(p.Cast.Expr), DataType: dataType(p.Cast.Type)}
	case p.Extract != nil:
		return &ast.Extract{Field: p.Extract.Field, Expr: l.expr(p.Extract.Expr)}
	case p.Interval != nil:
		return &ast.Interval{Value: unquote(p.Interval.Value), Unit: p.Interval.Unit}
	case p.ListAgg != nil:
		return l.listAgg(p.ListAgg)
	case p.Function != nil:
		return l.function(p.Function)
	case p.TypedString != nil:
		return &ast.TypedString{
			DataType: ast.DataType{Name: p.TypedString.Type},
			Value:    unquote(p.TypedString.Value),
		}
	case p.Literal != nil:
		return literal(p.Literal)
	case len(p.Name) == 1:
		return &ast.Identifier{Ident: ident(p.Name[0])}
	default:
		return &ast.CompoundIdentifier{Parts: idents(p.Name)}
	}
}

func (l *lowerer) caseExpr(c *CaseExpression) ast.Expr {
	out := &ast.Case{}
	if c.Operand != nil {
		out.Operand = l.expr(c.Operand)
	}

	for _, w := range c.Whens {
		out.Conditions = append(out.Conditions, l.expr(w.Condition))
		out.Results = append(out.Results, l.expr(w.Result))
	}

	if c.Else != nil {
		out.Else = l.expr(c.Else)
	}

	return out
}

func (l *lowerer) listAgg(c *ListAggCall) ast.Expr {
	out := &ast.ListAgg{
		Distinct:    c.Distinct,
		Expr:        l.expr(c.Expr),
		WithinGroup: l.orderBy(c.WithinGroup),
	}

	if c.Separator != nil {
		out.Separator = l.expr(c.Separator)
	}

	if o := c.Overflow; o != nil {
		if o.Error {
			out.OnOverflow = &ast.OverflowError{}
		} else {
			t := &ast.OverflowTruncate{WithCount: strings.EqualFold(o.WithCount, "WITH")}
			if o.Filler != nil {
				t.Filler = &ast.String{Value: unquote(*o.Filler)}
			}

			out.OnOverflow = t
		}
	}

	return out
}

func (l *lowerer) function(f *FunctionCall) ast.Expr {
	out := &ast.Function{Distinct: f.Distinct}
	for _, n := range f.Name {
		out.Name = append(out.Name, parseIdent(n.Value))
	}

	for _, a := range f.Args {
		if a.Star {
			out.Args = append(out.Args, &ast.WildcardExpr{})
			continue
		}

		out.Args = append(out.Args, l.expr(a.Expr))
	}

	if o := f.Over; o != nil {
		out.Over = &ast.WindowSpec{
			PartitionBy: l.exprs(o.PartitionBy),
			OrderBy:     l.orderBy(o.OrderBy),
		}

		if o.Frame != nil {
			out.Over.Frame = l.frame(o.Frame)
		}
	}

	return out
}

func (l *lowerer) frame(w *WindowFrame) *ast.WindowFrame {
	out := &ast.WindowFrame{Units: frameUnits[strings.ToUpper(w.Units)]}
	if w.Between == nil {
		out.Start = l.frameBound(w.Single)
		return out
	}

	end := l.frameBound(w.Between.End)
	out.Start = l.frameBound(w.Between.Start)
	out.End = &end

	return out
}

func (l *lowerer) frameBound(b *FrameBound) ast.WindowFrameBound {
	dir := strings.ToUpper(b.Direction)

	switch {
	case b.Current && dir != "":
		l.fail("CURRENT ROW can't be followed by %s", dir)
		return ast.WindowFrameBound{}
	case b.Current:
		return ast.WindowFrameBound{Kind: ast.CurrentRow}
	case dir == "":
		l.fail("window frame bound requires PRECEDING or FOLLOWING")
		return ast.WindowFrameBound{}
	}

	out := ast.WindowFrameBound{Kind: ast.Preceding}
	if dir == "FOLLOWING" {
		out.Kind = ast.Following
	}

	if b.Unbounded {
		return out
	}

	n, err := strconv.ParseUint(*b.Offset, 10, 64)
	if err != nil {
		l.fail("invalid window frame offset: %s", *b.Offset)
		return out
	}

	out.Offset = &n

	return out
}

func literal(lit *Literal) ast.Expr {
	switch {
	case lit.Number != nil:
		return &ast.Number{Value: *lit.Number}
	case lit.String != nil:
		return &ast.String{Value: unquote(*lit.String)}
	case lit.Bool != nil:
		return &ast.Boolean{Value: strings.EqualFold(*lit.Bool, "TRUE")}
	default:
		return &ast.Null{}
	}
}

func dataType(d *DataType) ast.DataType {
	words := make([]string, 0, len(d.Words)+len(d.Zone))
	words = append(words, d.Words...)
	words = append(words, d.Zone...)

	return ast.DataType{Name: strings.Join(words, " "), Params: d.Params}
}

func alias(a *AliasDef) *ast.TableAlias {
	if a == nil {
		return nil
	}

	return &ast.TableAlias{Name: ident(a.Name), Columns: idents(a.Columns)}
}

func ident(i *Ident) ast.Ident { return parseIdent(i.Value) }

func idents(list []*Ident) []ast.Ident {
	var out []ast.Ident
	for _, i := range list {
		out = append(out, ident(i))
	}

	return out
}

// parseIdent strips the quotes from a quoted identifier and records which quote
// was used.
func parseIdent(raw string) ast.Ident {
	if len(raw) < 2 {
		return ast.Ident{Value: raw}
	}

	switch q := raw[0]; q {
	case '"', '`':
		s := string(q)
		return ast.Ident{Value: strings.ReplaceAll(raw[1:len(raw)-1], s+s, s), Quote: rune(q)}
	case '[':
		return ast.Ident{Value: raw[1 : len(raw)-1], Quote: '['}
	default:
		return ast.Ident{Value: raw}
	}
}

// unquote strips the quotes of a string literal and collapses doubled quotes.
func unquote(s string) string {
	return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
}
