package parser

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/ast"
)

var (
	// keywords are reserved: they never lex as identifiers, so an implicit
	// alias can't swallow the start of the next clause. Words that only have a
	// meaning in a specific position (FIRST, ROWS BETWEEN bounds, interval units,
	// ...) stay identifiers and are matched contextually.
	keywords = []string{
		"ALL", "ALTER", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CAST",
		"COLLATE", "CREATE", "CROSS", "DELETE", "DESC", "DISTINCT", "DROP", "ELSE",
		"END", "EXCEPT", "EXISTS", "EXTRACT", "FALSE", "FETCH", "FROM", "FULL",
		"GRANT", "GROUP", "HAVING", "ILIKE", "IN", "INNER", "INSERT", "INTERSECT",
		"INTERVAL", "IS", "JOIN", "LATERAL", "LEFT", "LIKE", "LIMIT", "MERGE",
		"NATURAL", "NOT", "NULL", "NULLS", "OFFSET", "ON", "OR", "ORDER", "OUTER",
		"OVER", "PARTITION", "REVOKE", "RIGHT", "ROW", "ROWS", "SELECT", "SET",
		"THEN", "TOP", "TRUE", "TRUNCATE", "UNION", "UPDATE", "USING", "VALUES",
		"WHEN", "WHERE", "WITH",
	}

	// sqlLexer tokenizes SQL text. Identifiers may contain the template
	// characters { } # @ $ so that {{date}}, @var and #tmp are plain identifiers.
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'(?:[^']|'')*'`},
		{Name: "QuotedIdent", Pattern: `"(?:[^"]|"")*"|\[[^\]]*\]`},
		{Name: "BacktickIdent", Pattern: "`(?:[^`]|``)*`"},
		{Name: "Number", Pattern: `(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Keyword", Pattern: `(?i:` + strings.Join(keywords, "|") + `)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_#@{][a-zA-Z0-9_#@${}]*`},
		{Name: "Operator", Pattern: `\|\||<>|!=|<=|>=|[-+*/%=<>]`},
		{Name: "Punct", Pattern: `[(),.;]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser = participle.MustBuild[SQL](
		participle.Lexer(sqlLexer),
		participle.Elide("Comment", "MultilineComment", "Whitespace"),
		participle.CaseInsensitive("Keyword", "Ident"),
		participle.UseLookahead(1024),
	)
)

type (
	// SQL is the root of the grammar: a sequence of statements separated by
	// semicolons.
	SQL struct {
		Statements []*Statement `parser:"';'* (@@ ';'*)*"`
	}

	// Statement is either a query or any other statement, which is kept only to
	// be reported as unsupported.
	Statement struct {
		Query *Query          `parser:"  @@"`
		Other *OtherStatement `parser:"| @@"`
	}

	OtherStatement struct {
		Keyword string   `parser:"@('INSERT' | 'UPDATE' | 'DELETE' | 'CREATE' | 'DROP' | 'ALTER' | 'TRUNCATE' | 'GRANT' | 'REVOKE' | 'MERGE' | 'SET')"`
		Tokens  []string `parser:"@(~';')*"`
	}
)

// GetLexer returns the SQL lexer so that parsers for parts of the grammar can
// be built, mostly in tests.
func GetLexer() lexer.Definition {
	return sqlLexer
}

// Parse reads SQL from r and returns its statements.
//
// Example:
//
//	stmts, err := parser.Parse(strings.NewReader("SELECT * FROM users; SELECT 1"))
//	if err != nil {
//		return err
//	}
func Parse(r io.Reader) ([]ast.Statement, error) {
	sql, err := parser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}

	stmts, err := sql.lower()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}

	return stmts, nil
}

// ParseString parses the statements in sql.
func ParseString(sql string) ([]ast.Statement, error) {
	return Parse(strings.NewReader(sql))
}
