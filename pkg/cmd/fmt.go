package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/consts"
	"github.com/pseudomuto/forma/pkg/format"
	"github.com/urfave/cli/v3"
)

// stdinName identifies standard input in logs and --check reports.
const stdinName = "<stdin>"

// fmtCmd creates the fmt subcommand. It behaves exactly like the root command
// and exists so scripts can spell out what they do.
//
// Path handling:
//   - No path: read standard input, write standard output
//   - File paths: format the specified SQL file directly
//   - Directory paths: recursively find and format all .sql files
//
// Examples:
//
//	# Format single file to stdout
//	forma fmt report.sql
//
//	# Format all SQL files in a directory tree in-place
//	forma -w fmt queries/
func fmtCmd(st *settings) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "[path]",
		Action:    formatAction(st),
	}
}

func formatAction(st *settings) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() > 1 {
			return errors.New("at most one path argument is allowed")
		}

		root := cmd.Root()
		r := &runner{
			opts:  st.opts,
			write: cmd.Bool("write"),
			check: cmd.Bool("check"),
			out:   root.Writer,
		}

		var err error
		if cmd.Args().Len() == 0 {
			err = r.formatStdin(root.Reader)
		} else {
			err = r.formatPath(cmd.Args().First())
		}

		if err != nil {
			return err
		}

		if len(r.changed) > 0 {
			return errors.Wrapf(format.ErrWouldFormat, "%s", strings.Join(r.changed, ", "))
		}

		return nil
	}
}

// runner formats inputs and records, in check mode, the ones that would change.
type runner struct {
	opts    format.Options
	write   bool
	check   bool
	out     io.Writer
	changed []string
}

func (r *runner) formatStdin(in io.Reader) error {
	if r.write {
		return errors.New("cannot use --write with standard input")
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "failed to read standard input")
	}

	formatted, err := r.format(stdinName, string(content))
	if err != nil {
		return err
	}

	return r.emit(stdinName, string(content), formatted)
}

// formatPath handles formatting of either a single file or directory recursively.
func (r *runner) formatPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return r.formatDirectory(path)
	}

	return r.formatFile(path)
}

// formatDirectory recursively walks through a directory and formats all .sql
// files, in lexical order.
func (r *runner) formatDirectory(dir string) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), consts.SQLExtension) {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := r.formatFile(sqlFile); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", sqlFile)
		}
	}

	return nil
}

func (r *runner) formatFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	formatted, err := r.format(path, string(content))
	if err != nil {
		return errors.Wrapf(err, "failed to format SQL in file: %s", path)
	}

	return r.emit(path, string(content), formatted)
}

func (r *runner) format(name, sql string) (string, error) {
	stmts, err := format.FormatSQL(sql, r.opts)
	if err != nil {
		return "", err
	}

	slog.Debug("Formatted SQL", "path", name, "statements", len(stmts), "width", r.opts.MaxWidth)
	return strings.Join(stmts, ""), nil
}

// emit writes formatted according to the output mode. Files are only rewritten
// when their content changes.
func (r *runner) emit(name, original, formatted string) error {
	switch {
	case r.check:
		if formatted != original {
			r.changed = append(r.changed, name)
		}
	case r.write:
		if formatted == original {
			return nil
		}

		if err := os.WriteFile(name, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", name)
		}
	default:
		if _, err := fmt.Fprint(r.out, formatted); err != nil {
			return errors.Wrap(err, "failed to write formatted content to output")
		}
	}

	return nil
}
