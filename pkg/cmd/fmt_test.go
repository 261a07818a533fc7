package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/consts"
	"github.com/pseudomuto/forma/pkg/format"
	"github.com/stretchr/testify/require"
)

const (
	unformattedSQL = "SELECT id,name FROM users WHERE active = TRUE AND age > 21;SELECT COUNT(*) FROM orders"
	formattedSQL   = "select * from t1;\n"
)

// run executes the CLI with the given stdin and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := newApp(&Version{Version: "test"}, strings.NewReader(stdin), &buf)
	err := app.Run(context.Background(), append([]string{"forma"}, args...))
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), consts.ModeFile))
}

func expectedAt(t *testing.T, sql string, width int) string {
	t.Helper()

	out, err := format.FormatSQL(sql, format.Options{MaxWidth: width})
	require.NoError(t, err)
	return strings.Join(out, "")
}

func TestFmtCommand_Stdin(t *testing.T) {
	output, err := run(t, unformattedSQL)
	require.NoError(t, err)
	require.Equal(t, expectedAt(t, unformattedSQL, consts.DefaultMaxWidth), output)
	require.Contains(t, output, "select\n  id, name\nfrom\n  users\nwhere\n  active = true\n  and age > 21;\n")
	require.True(t, strings.HasSuffix(output, "select count(*) from orders;\n"))
}

func TestFmtCommand_StdinWriteBack(t *testing.T) {
	_, err := run(t, unformattedSQL, "-w")
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot use --write with standard input")
}

func TestFmtCommand_SingleFile(t *testing.T) {
	sqlFile := filepath.Join(t.TempDir(), "test.sql")
	writeFile(t, sqlFile, unformattedSQL)

	// Root command and explicit subcommand behave the same.
	for _, args := range [][]string{{sqlFile}, {"fmt", sqlFile}} {
		output, err := run(t, "", args...)
		require.NoError(t, err)
		require.Equal(t, expectedAt(t, unformattedSQL, consts.DefaultMaxWidth), output)
	}

	// The file itself is untouched.
	content, err := os.ReadFile(sqlFile)
	require.NoError(t, err)
	require.Equal(t, unformattedSQL, string(content))
}

func TestFmtCommand_SingleFileWriteBack(t *testing.T) {
	sqlFile := filepath.Join(t.TempDir(), "test.sql")
	writeFile(t, sqlFile, unformattedSQL)

	originalInfo, err := os.Stat(sqlFile)
	require.NoError(t, err)

	output, err := run(t, "", "-w", sqlFile)
	require.NoError(t, err)
	require.Empty(t, output)

	content, err := os.ReadFile(sqlFile)
	require.NoError(t, err)
	require.Equal(t, expectedAt(t, unformattedSQL, consts.DefaultMaxWidth), string(content))

	newInfo, err := os.Stat(sqlFile)
	require.NoError(t, err)
	require.Equal(t, originalInfo.Mode(), newInfo.Mode())
}

func TestFmtCommand_RecursiveDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, consts.ModeDir))

	writeFile(t, filepath.Join(tmpDir, "root.sql"), "SELECT root FROM a")
	writeFile(t, filepath.Join(subDir, "sub.SQL"), "SELECT sub FROM b")
	writeFile(t, filepath.Join(tmpDir, "readme.txt"), "Not SQL")

	output, err := run(t, "", tmpDir)
	require.NoError(t, err)
	require.Equal(t, "select root from a;\nselect sub from b;\n", output)
}

func TestFmtCommand_DirectoryWriteBack(t *testing.T) {
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "q1.sql")
	file2 := filepath.Join(tmpDir, "q2.sql")
	writeFile(t, file1, "SELECT 1")
	writeFile(t, file2, formattedSQL)

	_, err := run(t, "", "--write", tmpDir)
	require.NoError(t, err)

	content1, err := os.ReadFile(file1)
	require.NoError(t, err)
	require.Equal(t, "select 1;\n", string(content1))

	content2, err := os.ReadFile(file2)
	require.NoError(t, err)
	require.Equal(t, formattedSQL, string(content2))
}

func TestFmtCommand_Check(t *testing.T) {
	t.Run("formatted input passes", func(t *testing.T) {
		output, err := run(t, formattedSQL, "--check")
		require.NoError(t, err)
		require.Empty(t, output)
	})

	t.Run("unformatted input fails", func(t *testing.T) {
		output, err := run(t, unformattedSQL, "--check")
		require.Error(t, err)
		require.True(t, errors.Is(err, format.ErrWouldFormat))
		require.Contains(t, err.Error(), stdinName)
		require.Empty(t, output)
	})

	t.Run("names every changed file and writes nothing", func(t *testing.T) {
		tmpDir := t.TempDir()
		clean := filepath.Join(tmpDir, "clean.sql")
		dirty := filepath.Join(tmpDir, "dirty.sql")
		writeFile(t, clean, formattedSQL)
		writeFile(t, dirty, unformattedSQL)

		output, err := run(t, "", "--check", "-w", tmpDir)
		require.True(t, errors.Is(err, format.ErrWouldFormat))
		require.Contains(t, err.Error(), dirty)
		require.NotContains(t, err.Error(), clean)
		require.Empty(t, output)

		content, err := os.ReadFile(dirty)
		require.NoError(t, err)
		require.Equal(t, unformattedSQL, string(content))
	})
}

func TestFmtCommand_MaxWidth(t *testing.T) {
	sql := "SELECT first_name, last_name FROM people"

	wide, err := run(t, sql)
	require.NoError(t, err)
	require.Equal(t, "select first_name, last_name from people;\n", wide)

	narrow, err := run(t, sql, "--max-width", "20")
	require.NoError(t, err)
	require.Equal(t, expectedAt(t, sql, 20), narrow)
	require.NotEqual(t, wide, narrow)

	for _, l := range strings.Split(strings.TrimSuffix(narrow, "\n"), "\n") {
		require.LessOrEqual(t, len(l), 20, l)
	}

	_, err = run(t, sql, "--max-width", "0")
	require.True(t, errors.Is(err, format.ErrInvalidWidth))
}

func TestFmtCommand_ConfigFile(t *testing.T) {
	sql := "SELECT first_name, last_name FROM people"
	cfgFile := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, cfgFile, "max_width: 20\n")

	output, err := run(t, sql, "--config", cfgFile)
	require.NoError(t, err)
	require.Equal(t, expectedAt(t, sql, 20), output)

	// Flags win over the file.
	output, err = run(t, sql, "--config", cfgFile, "--max-width", "100")
	require.NoError(t, err)
	require.Equal(t, expectedAt(t, sql, 100), output)

	// An explicitly named file has to exist.
	_, err = run(t, sql, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open file")
}

func TestFmtCommand_Environment(t *testing.T) {
	sql := "SELECT first_name, last_name FROM people"

	t.Run("variable", func(t *testing.T) {
		t.Setenv("FORMA_MAX_WIDTH", "20")

		output, err := run(t, sql)
		require.NoError(t, err)
		require.Equal(t, expectedAt(t, sql, 20), output)
	})

	t.Run("env file", func(t *testing.T) {
		t.Setenv("FORMA_MAX_WIDTH", "")
		require.NoError(t, os.Unsetenv("FORMA_MAX_WIDTH"))

		envFile := filepath.Join(t.TempDir(), "forma.env")
		writeFile(t, envFile, "FORMA_MAX_WIDTH=20\n")

		output, err := run(t, sql, "--env-file", envFile)
		require.NoError(t, err)
		require.Equal(t, expectedAt(t, sql, 20), output)
	})
}

func TestFmtCommand_NonexistentPath(t *testing.T) {
	_, err := run(t, "", "/nonexistent/path")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to access path")
}

func TestFmtCommand_InvalidSQL(t *testing.T) {
	sqlFile := filepath.Join(t.TempDir(), "invalid.sql")
	writeFile(t, sqlFile, "INVALID SQL SYNTAX HERE;")

	_, err := run(t, "", sqlFile)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse SQL")
}

func TestFmtCommand_UnsupportedStatement(t *testing.T) {
	sqlFile := filepath.Join(t.TempDir(), "insert.sql")
	writeFile(t, sqlFile, "SELECT 1; INSERT INTO t VALUES (1)")

	output, err := run(t, "", sqlFile)
	require.True(t, errors.Is(err, format.ErrUnsupportedConstruct))
	require.Empty(t, output)
}

func TestFmtCommand_EmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "readme.txt"), "Not SQL")

	_, err := run(t, "", tmpDir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no SQL files found")
}

func TestFmtCommand_EmptyFile(t *testing.T) {
	sqlFile := filepath.Join(t.TempDir(), "empty.sql")
	writeFile(t, sqlFile, "")

	output, err := run(t, "", sqlFile)
	require.NoError(t, err)
	require.Empty(t, output)
}

func TestFmtCommand_MultipleArguments(t *testing.T) {
	_, err := run(t, "", "file1.sql", "file2.sql")
	require.Error(t, err)
	require.Contains(t, err.Error(), "at most one path argument is allowed")
}

func TestFmtCommand_Configuration(t *testing.T) {
	command := fmtCmd(new(settings))

	require.Equal(t, "fmt", command.Name)
	require.Equal(t, "Format SQL files", command.Usage)
	require.Equal(t, "[path]", command.ArgsUsage)
}

func TestRun(t *testing.T) {
	err := Run(context.Background(), &Version{Version: "test"}, []string{"forma", "/nonexistent/path"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to access path")
}
