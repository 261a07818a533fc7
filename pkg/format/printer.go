package format

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/ast"
	"github.com/pseudomuto/forma/pkg/doc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// indent is the nesting applied to clause bodies and continuation lines.
const indent = 2

// printer turns a statement into a document. It lives for a single Render
// call. The first unsupported construct is recorded in err and the walk
// continues with empty documents in its place.
type printer struct {
	err   error
	lower cases.Caser
}

func newPrinter() *printer {
	return &printer{lower: cases.Lower(language.Und)}
}

func (p *printer) unsupported(construct string, v any) doc.Doc {
	if p.err == nil {
		p.err = errors.Wrapf(ErrUnsupportedConstruct, "unsupported %s: %T", construct, v)
	}

	return doc.Nil()
}

// missing reports whether v is nil, either as an interface or as a nil pointer
// stored in one.
func missing(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// keyword lower-cases words such as type names or date parts.
func (p *printer) keyword(s string) string {
	return p.lower.String(s)
}

// name renders a function name: bare parts are lower-cased, quoted parts are
// kept as written.
func (p *printer) name(n ast.ObjectName) string {
	parts := make([]string, len(n))
	for i, part := range n {
		if part.Quote == 0 {
			parts[i] = p.keyword(part.Value)
			continue
		}

		parts[i] = part.String()
	}

	return strings.Join(parts, ".")
}

func (p *printer) dataType(t ast.DataType) string {
	name := p.keyword(t.Name)
	if len(t.Params) == 0 {
		return name
	}

	return name + "(" + strings.Join(t.Params, ", ") + ")"
}

func (p *printer) identList(ids []ast.Ident) doc.Doc {
	docs := make([]doc.Doc, len(ids))
	for i, id := range ids {
		docs[i] = doc.Text(id.String())
	}

	return doc.CommaSeparated(docs)
}

// list renders a comma separated list that breaks one item per line, indented
// relative to the first item.
func list(items []doc.Doc) doc.Doc {
	return doc.Group(doc.Nest(indent, doc.CommaSeparated(items)))
}

// clause renders a clause keyword followed by a list: on the same line when it
// fits, otherwise with the list on the following lines.
//
//	order by
//	  a,
//	  b
func clause(keyword string, items []doc.Doc) doc.Doc {
	return doc.Concat(
		doc.Line(),
		doc.Text(keyword),
		doc.Nest(indent, doc.Line()),
		list(items),
	)
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
