package format

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/parser"
)

// FormatSQL parses sql and renders every statement it contains. Each entry of
// the result is a rendered statement followed by ";\n".
//
// Either every statement is rendered or an error is returned and the result is
// nil.
func FormatSQL(sql string, opts Options) ([]string, error) {
	if !utf8.ValidString(sql) {
		return nil, errors.Wrap(ErrEncoding, "input")
	}

	stmts, err := parser.ParseString(sql)
	if err != nil {
		return nil, err
	}

	f := New(opts)

	out := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		s, err := f.Render(stmt)
		if err != nil {
			return nil, err
		}

		out = append(out, s+";\n")
	}

	return out, nil
}

// WouldFormat reports whether FormatSQL would change sql.
func WouldFormat(sql string, opts Options) (bool, error) {
	out, err := FormatSQL(sql, opts)
	if err != nil {
		return false, err
	}

	return strings.Join(out, "") != sql, nil
}
