package format

import (
	"strconv"

	"github.com/pseudomuto/forma/pkg/ast"
	"github.com/pseudomuto/forma/pkg/doc"
)

// expr maps a scalar expression to a document.
func (p *printer) expr(e ast.Expr) doc.Doc {
	if missing(e) {
		return p.unsupported("expression", e)
	}

	switch e := e.(type) {
	case *ast.Identifier:
		return doc.Text(e.Ident.String())
	case *ast.CompoundIdentifier:
		return doc.Text(ast.ObjectName(e.Parts).String())
	case *ast.WildcardExpr:
		return doc.Text("*")
	case *ast.QualifiedWildcardExpr:
		return doc.Text(e.Name.String() + ".*")
	case *ast.Number:
		return doc.Text(e.Value)
	case *ast.String:
		return doc.Text(quoteString(e.Value))
	case *ast.Boolean:
		return doc.Text(strconv.FormatBool(e.Value))
	case *ast.Null:
		return doc.Text("null")
	case *ast.Interval:
		s := "interval " + quoteString(e.Value)
		if e.Unit != "" {
			s += " " + p.keyword(e.Unit)
		}

		return doc.Text(s)
	case *ast.TypedString:
		return doc.Text(p.dataType(e.DataType) + " " + quoteString(e.Value))
	case *ast.UnaryOp:
		return p.unaryOp(e)
	case *ast.BinaryOp:
		return p.binaryOp(e)
	case *ast.Cast:
		return doc.Concat(
			doc.Text("cast("),
			p.expr(e.Expr),
			doc.Text(" as "+p.dataType(e.DataType)+")"),
		)
	case *ast.Extract:
		return doc.Concat(
			doc.Text("extract("+p.keyword(e.Field)+" from "),
			p.expr(e.Expr),
			doc.Text(")"),
		)
	case *ast.Collate:
		return doc.Concat(p.expr(e.Expr), doc.Text(" collate "+e.Collation.String()))
	case *ast.Nested:
		return doc.Concat(
			doc.Text("("),
			doc.Nest(indent, doc.Concat(doc.SoftZeroLine(), doc.Group(p.expr(e.Expr)))),
			doc.SoftZeroLine(),
			doc.Text(")"),
		)
	case *ast.Between:
		kw := "between "
		if e.Negated {
			kw = "not between "
		}

		return doc.Group(doc.Concat(
			p.expr(e.Expr),
			doc.Nest(indent, doc.Concat(
				doc.Line(),
				doc.Text(kw),
				p.expr(e.Low),
				doc.Line(),
				doc.Text("and "),
				p.expr(e.High),
			)),
		))
	case *ast.Case:
		return p.caseExpr(e)
	case *ast.IsNull:
		return doc.Concat(p.expr(e.Expr), doc.Text(" is null"))
	case *ast.IsNotNull:
		return doc.Concat(p.expr(e.Expr), doc.Text(" is not null"))
	case *ast.InList:
		items := make([]doc.Doc, len(e.List))
		for i, item := range e.List {
			items[i] = p.expr(item)
		}

		return doc.Concat(p.expr(e.Expr), in(e.Negated), doc.Parenthesized(doc.CommaSeparated(items)))
	case *ast.InSubquery:
		return doc.Concat(p.expr(e.Expr), in(e.Negated), doc.Parenthesized(p.query(e.Subquery)))
	case *ast.Exists:
		return doc.Concat(doc.Text("exists "), doc.Parenthesized(p.query(e.Subquery)))
	case *ast.Subquery:
		return doc.Parenthesized(p.query(e.Query))
	case *ast.Function:
		return p.function(e)
	case *ast.ListAgg:
		return p.listAgg(e)
	default:
		return p.unsupported("expression", e)
	}
}

func in(negated bool) doc.Doc {
	if negated {
		return doc.Text(" not in ")
	}

	return doc.Text(" in ")
}

func (p *printer) exprs(list []ast.Expr) []doc.Doc {
	docs := make([]doc.Doc, len(list))
	for i, e := range list {
		docs[i] = p.expr(e)
	}

	return docs
}

func (p *printer) unaryOp(e *ast.UnaryOp) doc.Doc {
	switch e.Op {
	case ast.Not:
		return doc.Concat(doc.Text("not "), p.expr(e.Expr))
	case ast.UnaryMinus, ast.UnaryPlus:
		op := e.Op.String()

		// "- -1" must not collapse into "--1", which starts a comment.
		if inner, ok := e.Expr.(*ast.UnaryOp); ok && inner.Op != ast.Not {
			op += " "
		}

		return doc.Concat(doc.Text(op), p.expr(e.Expr))
	default:
		return p.unsupported("unary operator", e.Op)
	}
}

// binaryOp keeps operators inline while they fit and otherwise moves them to the
// start of an indented line. AND and OR always start a new line so that
// predicate chains read top to bottom:
//
//	a > 1
//	and b < 2
//
//	price
//	  * quantity
//	  + shipping_cost
func (p *printer) binaryOp(e *ast.BinaryOp) doc.Doc {
	op := e.Op.String()
	if op == "" {
		return p.unsupported("binary operator", e.Op)
	}

	op = p.keyword(op)
	if e.Op == ast.And || e.Op == ast.Or {
		return doc.Concat(p.expr(e.Left), doc.HardLine(), doc.Text(op+" "), p.expr(e.Right))
	}

	return doc.Group(doc.Concat(
		p.expr(e.Left),
		doc.Nest(indent, doc.Concat(doc.Line(), doc.Text(op+" "), p.expr(e.Right))),
	))
}

// caseExpr puts every arm on its own line, whatever the width.
func (p *printer) caseExpr(e *ast.Case) doc.Doc {
	if len(e.Conditions) == 0 || len(e.Conditions) != len(e.Results) {
		return p.unsupported("case expression", e)
	}

	head := doc.Text("case")
	if e.Operand != nil {
		head = doc.Concat(head, doc.Space(), p.expr(e.Operand))
	}

	arms := make([]doc.Doc, 0, len(e.Conditions)+1)
	for i, cond := range e.Conditions {
		arms = append(arms, doc.Concat(
			doc.Text("when "),
			p.expr(cond),
			doc.Text(" then "),
			p.expr(e.Results[i]),
		))
	}

	if e.Else != nil {
		arms = append(arms, doc.Concat(doc.Text("else "), p.expr(e.Else)))
	}

	return doc.Concat(
		head,
		doc.Nest(indent, doc.Concat(doc.HardLine(), doc.Intersperse(arms, doc.HardLine()))),
		doc.HardLine(),
		doc.Text("end"),
	)
}

func (p *printer) function(e *ast.Function) doc.Doc {
	args := doc.CommaSeparated(p.exprs(e.Args))
	if e.Distinct {
		args = doc.Concat(doc.Text("distinct "), args)
	}

	name := p.name(e.Name)

	// A call on a single column or literal is kept whole, as in count(*).
	var d doc.Doc
	if len(e.Args) == 0 || (len(e.Args) == 1 && isAtom(e.Args[0])) {
		d = doc.Concat(doc.Text(name+"("), args, doc.Text(")"))
	} else {
		d = doc.Concat(doc.Text(name), doc.Parenthesized(args))
	}

	if e.Over == nil {
		return d
	}

	return doc.Concat(d, doc.Text(" over "), p.window(e.Over))
}

// isAtom reports whether e renders as a single word.
func isAtom(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.CompoundIdentifier, *ast.WildcardExpr, *ast.QualifiedWildcardExpr,
		*ast.Number, *ast.String, *ast.Boolean, *ast.Null:
		return true
	default:
		return false
	}
}

func (p *printer) window(w *ast.WindowSpec) doc.Doc {
	var parts []doc.Doc
	if len(w.PartitionBy) > 0 {
		parts = append(parts, doc.Concat(doc.Text("partition by "), list(p.exprs(w.PartitionBy))))
	}

	if len(w.OrderBy) > 0 {
		parts = append(parts, doc.Concat(doc.Text("order by "), list(p.orderBy(w.OrderBy))))
	}

	if w.Frame != nil {
		parts = append(parts, p.frame(w.Frame))
	}

	return doc.Parenthesized(doc.Intersperse(parts, doc.Line()))
}

// frame renders a window frame. Bounds of a BETWEEN frame move to lines of their
// own when the frame does not fit:
//
//	rows
//	  between unbounded preceding
//	  and current row
func (p *printer) frame(f *ast.WindowFrame) doc.Doc {
	units := p.keyword(f.Units.String())
	if units == "" {
		return p.unsupported("window frame units", f.Units)
	}

	if f.End == nil {
		return doc.Concat(doc.Text(units+" "), p.frameBound(f.Start))
	}

	return doc.Group(doc.Concat(
		doc.Text(units),
		doc.Nest(indent, doc.Concat(
			doc.Line(),
			doc.Text("between "),
			p.frameBound(f.Start),
			doc.Line(),
			doc.Text("and "),
			p.frameBound(*f.End),
		)),
	))
}

func (p *printer) frameBound(b ast.WindowFrameBound) doc.Doc {
	var dir string
	switch b.Kind {
	case ast.CurrentRow:
		return doc.Text("current row")
	case ast.Preceding:
		dir = " preceding"
	case ast.Following:
		dir = " following"
	default:
		return p.unsupported("window frame bound", b.Kind)
	}

	if b.Offset == nil {
		return doc.Text("unbounded" + dir)
	}

	return doc.Text(strconv.FormatUint(*b.Offset, 10) + dir)
}

func (p *printer) listAgg(e *ast.ListAgg) doc.Doc {
	arg := p.expr(e.Expr)
	if e.Distinct {
		arg = doc.Concat(doc.Text("distinct "), arg)
	}

	args := []doc.Doc{arg}
	if e.Separator != nil {
		args = append(args, p.expr(e.Separator))
	}

	inner := doc.CommaSeparated(args)

	if o := e.OnOverflow; o != nil && missing(o) {
		return p.unsupported("listagg overflow", o)
	}

	switch o := e.OnOverflow.(type) {
	case nil:
	case *ast.OverflowError:
		inner = doc.Concat(inner, doc.Text(" on overflow error"))
	case *ast.OverflowTruncate:
		inner = doc.Concat(inner, doc.Text(" on overflow truncate "))
		if o.Filler != nil {
			inner = doc.Concat(inner, p.expr(o.Filler), doc.Space())
		}

		if o.WithCount {
			inner = doc.Concat(inner, doc.Text("with count"))
		} else {
			inner = doc.Concat(inner, doc.Text("without count"))
		}
	default:
		return p.unsupported("listagg overflow", o)
	}

	d := doc.Concat(doc.Text("listagg"), doc.Parenthesized(inner))
	if len(e.WithinGroup) == 0 {
		return d
	}

	return doc.Group(doc.Concat(
		d,
		doc.Nest(indent, doc.Concat(
			doc.Line(),
			doc.Text("within group "),
			doc.Parenthesized(doc.Concat(doc.Text("order by "), list(p.orderBy(e.WithinGroup)))),
		)),
	))
}

func (p *printer) orderBy(items []*ast.OrderByExpr) []doc.Doc {
	docs := make([]doc.Doc, len(items))
	for i, o := range items {
		if o == nil {
			docs[i] = p.unsupported("order by item", o)
			continue
		}

		d := p.expr(o.Expr)
		if o.Asc != nil {
			if *o.Asc {
				d = doc.Concat(d, doc.Text(" asc"))
			} else {
				d = doc.Concat(d, doc.Text(" desc"))
			}
		}

		if o.NullsFirst != nil {
			if *o.NullsFirst {
				d = doc.Concat(d, doc.Text(" nulls first"))
			} else {
				d = doc.Concat(d, doc.Text(" nulls last"))
			}
		}

		docs[i] = d
	}

	return docs
}
