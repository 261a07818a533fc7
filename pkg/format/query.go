package format

import (
	"github.com/pseudomuto/forma/pkg/ast"
	"github.com/pseudomuto/forma/pkg/doc"
)

// query renders a complete query. Every common table expression starts a line
// of its own and the block is separated from the main body by a blank line:
//
//	with a as (select 1),
//	  b as (select 2)
//
//	select * from a, b
func (p *printer) query(q *ast.Query) doc.Doc {
	if q == nil {
		return p.unsupported("query", q)
	}

	main := []doc.Doc{p.body(q.Body)}
	if len(q.OrderBy) > 0 {
		main = append(main, clause("order by", p.orderBy(q.OrderBy)))
	}

	if q.Limit != nil {
		main = append(main, doc.Line(), doc.Text("limit "), p.expr(q.Limit))
	}

	if q.Offset != nil {
		main = append(main, doc.Line(), p.offset(q.Offset))
	}

	if q.Fetch != nil {
		main = append(main, doc.Line(), p.fetch(q.Fetch))
	}

	if len(q.CTEs) == 0 {
		return doc.Group(doc.Concat(main...))
	}

	return doc.Concat(
		p.with(q.CTEs),
		doc.HardLine(),
		doc.HardLine(),
		doc.Group(doc.Concat(main...)),
	)
}

func (p *printer) with(ctes []*ast.CTE) doc.Doc {
	docs := make([]doc.Doc, len(ctes))
	for i, c := range ctes {
		if c == nil {
			docs[i] = p.unsupported("common table expression", c)
			continue
		}

		name := doc.Text(c.Alias.Name.String())
		if len(c.Alias.Columns) > 0 {
			name = doc.Concat(name, doc.Space(), doc.Parenthesized(p.identList(c.Alias.Columns)))
		}

		docs[i] = doc.Concat(name, doc.Text(" as "), doc.Parenthesized(p.query(c.Query)))
	}

	return doc.Concat(
		doc.Text("with "),
		doc.Nest(indent, doc.Intersperse(docs, doc.Concat(doc.Text(","), doc.HardLine()))),
	)
}

func (p *printer) body(b ast.SetExpr) doc.Doc {
	if missing(b) {
		return p.unsupported("query body", b)
	}

	switch b := b.(type) {
	case *ast.Select:
		return p.selectBody(b)
	case *ast.SetOperation:
		return p.setOperation(b)
	case *ast.Values:
		return p.values(b)
	case *ast.Query:
		return doc.Parenthesized(p.query(b))
	default:
		return p.unsupported("query body", b)
	}
}

// setOperation places the operator on a line of its own between the operands.
func (p *printer) setOperation(s *ast.SetOperation) doc.Doc {
	op := s.Op.String()
	if op == "" {
		return p.unsupported("set operator", s.Op)
	}

	op = p.keyword(op)
	if s.All {
		op += " all"
	}

	return doc.Concat(
		p.body(s.Left),
		doc.HardLine(),
		doc.Text(op),
		doc.HardLine(),
		p.body(s.Right),
	)
}

func (p *printer) values(v *ast.Values) doc.Doc {
	rows := make([]doc.Doc, len(v.Rows))
	for i, row := range v.Rows {
		rows[i] = doc.Parenthesized(doc.CommaSeparated(p.exprs(row)))
	}

	return doc.Group(doc.Concat(
		doc.Text("values"),
		doc.Nest(indent, doc.Line()),
		list(rows),
	))
}

func (p *printer) selectBody(s *ast.Select) doc.Doc {
	head := "select"
	if s.Distinct {
		head += " distinct"
	}

	parts := []doc.Doc{doc.Text(head)}
	if s.Top != nil {
		parts = append(parts, p.top(s.Top))
	}

	items := make([]doc.Doc, len(s.Projection))
	for i, item := range s.Projection {
		items[i] = p.selectItem(item)
	}

	parts = append(parts, doc.Nest(indent, doc.Line()), list(items))

	if len(s.From) > 0 {
		tables := make([]doc.Doc, len(s.From))
		for i, t := range s.From {
			tables[i] = p.tableWithJoins(t)
		}

		parts = append(parts, clause("from", tables))
	}

	if s.Selection != nil {
		parts = append(parts, predicate("where", p.expr(s.Selection)))
	}

	if len(s.GroupBy) > 0 {
		parts = append(parts, clause("group by", p.exprs(s.GroupBy)))
	}

	if s.Having != nil {
		parts = append(parts, predicate("having", p.expr(s.Having)))
	}

	return doc.Group(doc.Concat(parts...))
}

// predicate renders WHERE and HAVING. The condition is always indented below
// the keyword when the statement breaks.
func predicate(keyword string, cond doc.Doc) doc.Doc {
	return doc.Concat(
		doc.Line(),
		doc.Text(keyword),
		doc.Nest(indent, doc.Concat(doc.Line(), doc.Group(cond))),
	)
}

func (p *printer) top(t *ast.Top) doc.Doc {
	d := doc.Concat(doc.Text(" top "), doc.Parenthesized(p.expr(t.Quantity)))
	if t.Percent {
		d = doc.Concat(d, doc.Text(" percent"))
	}

	if t.WithTies {
		d = doc.Concat(d, doc.Text(" with ties"))
	}

	return d
}

func (p *printer) offset(o *ast.Offset) doc.Doc {
	d := doc.Concat(doc.Text("offset "), p.expr(o.Value))
	switch o.Rows {
	case ast.OffsetRowsNone:
	case ast.OffsetRow:
		d = doc.Concat(d, doc.Text(" row"))
	case ast.OffsetRowsPlural:
		d = doc.Concat(d, doc.Text(" rows"))
	default:
		return p.unsupported("offset rows", o.Rows)
	}

	return d
}

func (p *printer) fetch(f *ast.Fetch) doc.Doc {
	parts := []doc.Doc{doc.Text("fetch first")}
	if f.Quantity != nil {
		parts = append(parts, doc.Space(), p.expr(f.Quantity))
	}

	if f.Percent {
		parts = append(parts, doc.Text(" percent"))
	}

	parts = append(parts, doc.Text(" rows"))
	if f.WithTies {
		parts = append(parts, doc.Text(" with ties"))
	} else {
		parts = append(parts, doc.Text(" only"))
	}

	return doc.Concat(parts...)
}

func (p *printer) selectItem(item ast.SelectItem) doc.Doc {
	if missing(item) {
		return p.unsupported("select item", item)
	}

	switch item := item.(type) {
	case *ast.UnnamedExpr:
		return p.expr(item.Expr)
	case *ast.ExprWithAlias:
		return doc.Concat(p.expr(item.Expr), doc.Text(" as "+item.Alias.String()))
	case *ast.QualifiedWildcard:
		return doc.Text(item.Name.String() + ".*")
	case *ast.Wildcard:
		return doc.Text("*")
	default:
		return p.unsupported("select item", item)
	}
}

// tableWithJoins keeps a relation and its joins together on one line when they
// fit, otherwise every join starts a new line.
func (p *printer) tableWithJoins(t *ast.TableWithJoins) doc.Doc {
	if t == nil {
		return p.unsupported("table", t)
	}

	parts := []doc.Doc{p.relation(t.Relation)}
	for _, j := range t.Joins {
		parts = append(parts, doc.Line(), p.join(j))
	}

	return doc.Group(doc.Concat(parts...))
}

func (p *printer) relation(r ast.TableFactor) doc.Doc {
	if missing(r) {
		return p.unsupported("table factor", r)
	}

	switch r := r.(type) {
	case *ast.Table:
		d := doc.Text(r.Name.String())
		if r.Args != nil {
			d = doc.Concat(d, doc.Parenthesized(doc.CommaSeparated(p.exprs(r.Args))))
		}

		d = doc.Concat(d, p.alias(r.Alias))
		if len(r.WithHints) > 0 {
			d = doc.Concat(d, doc.Text(" with "), doc.Parenthesized(doc.CommaSeparated(p.exprs(r.WithHints))))
		}

		return d
	case *ast.Derived:
		d := doc.Concat(doc.Parenthesized(p.query(r.Subquery)), p.alias(r.Alias))
		if r.Lateral {
			d = doc.Concat(doc.Text("lateral "), d)
		}

		return d
	case *ast.NestedJoin:
		return doc.Parenthesized(p.tableWithJoins(r.Table))
	default:
		return p.unsupported("table factor", r)
	}
}

func (p *printer) alias(a *ast.TableAlias) doc.Doc {
	if a == nil {
		return doc.Nil()
	}

	d := doc.Text(" as " + a.Name.String())
	if len(a.Columns) > 0 {
		d = doc.Concat(d, doc.Space(), doc.Parenthesized(p.identList(a.Columns)))
	}

	return d
}

var joinKeywords = map[ast.JoinKind]string{
	ast.InnerJoin:      "inner join",
	ast.LeftOuterJoin:  "left join",
	ast.RightOuterJoin: "right join",
	ast.FullOuterJoin:  "full join",
	ast.CrossJoin:      "cross join",
	ast.CrossApply:     "cross apply",
	ast.OuterApply:     "outer apply",
}

func (p *printer) join(j *ast.Join) doc.Doc {
	if j == nil {
		return p.unsupported("join", j)
	}

	if c := j.Operator.Constraint; c != nil && missing(c) {
		return p.unsupported("join constraint", c)
	}

	kw, ok := joinKeywords[j.Operator.Kind]
	if !ok {
		return p.unsupported("join", j.Operator.Kind)
	}

	var constraint doc.Doc
	switch c := j.Operator.Constraint.(type) {
	case nil:
	case *ast.Natural:
		if j.Operator.Kind == ast.InnerJoin {
			kw = "join"
		}

		kw = "natural " + kw
	case *ast.On:
		constraint = doc.Group(doc.Nest(indent, doc.Concat(
			doc.Line(),
			doc.Text("on "),
			p.expr(c.Expr),
		)))
	case *ast.Using:
		constraint = doc.Concat(doc.Text(" using "), doc.Parenthesized(p.identList(c.Columns)))
	default:
		return p.unsupported("join constraint", c)
	}

	return doc.Concat(doc.Text(kw+" "), p.relation(j.Relation), constraint)
}
