package format

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/ast"
	"github.com/pseudomuto/forma/pkg/consts"
	"github.com/pseudomuto/forma/pkg/doc"
)

type (
	// Options controls the rendered output.
	Options struct {
		// MaxWidth is the line width to aim for. Content that can't be broken,
		// such as a long identifier, may still exceed it.
		MaxWidth int
	}

	// Formatter renders statements with a fixed set of options.
	Formatter struct {
		options Options
	}
)

// Defaults are the options used when nothing else is configured.
var Defaults = Options{MaxWidth: consts.DefaultMaxWidth}

// New returns a Formatter using opts.
func New(opts Options) *Formatter {
	return &Formatter{options: opts}
}

// Options returns the options the formatter was created with.
func (f *Formatter) Options() Options { return f.options }

// Render renders a single statement, without a terminating semicolon.
func (f *Formatter) Render(stmt ast.Statement) (string, error) {
	return Render(stmt, f.options.MaxWidth)
}

// Format renders every statement followed by ";\n" and writes the result to w.
// If any statement fails, nothing is written.
func (f *Formatter) Format(w io.Writer, stmts ...ast.Statement) error {
	var sb strings.Builder
	for _, stmt := range stmts {
		out, err := f.Render(stmt)
		if err != nil {
			return err
		}

		sb.WriteString(out)
		sb.WriteString(";\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "failed to write formatted SQL")
	}

	return nil
}

// Format is a convenience wrapper around New(opts).Format(w, stmts...).
func Format(w io.Writer, opts Options, stmts ...ast.Statement) error {
	return New(opts).Format(w, stmts...)
}

// Render renders stmt for the given maximum width.
//
// Only queries are supported; any other statement fails with an error wrapping
// ErrUnsupportedConstruct. Rendering is atomic: on error the returned string is
// empty.
//
// Example:
//
//	stmts, _ := parser.ParseString("SELECT a, b FROM t WHERE a > 1 AND b < 2")
//	out, _ := format.Render(stmts[0], 20)
//	// select
//	//   a,
//	//   b
//	// from
//	//   t
//	// where
//	//   a > 1
//	//   and b < 2
func Render(stmt ast.Statement, maxWidth int) (string, error) {
	if maxWidth < 1 {
		return "", errors.Wrapf(ErrInvalidWidth, "got %d", maxWidth)
	}

	if missing(stmt) {
		return "", errors.Wrapf(ErrUnsupportedConstruct, "unsupported statement: %T", stmt)
	}

	var d doc.Doc

	p := newPrinter()
	switch s := stmt.(type) {
	case *ast.Query:
		d = p.query(s)
	case *ast.RawStatement:
		return "", errors.Wrapf(ErrUnsupportedConstruct, "unsupported statement: %s", s.Keyword)
	default:
		return "", errors.Wrapf(ErrUnsupportedConstruct, "unsupported statement: %T", stmt)
	}

	if p.err != nil {
		return "", p.err
	}

	out := doc.Render(d, maxWidth)
	if !utf8.ValidString(out) {
		return "", errors.Wrap(ErrEncoding, "rendered statement")
	}

	return out, nil
}
