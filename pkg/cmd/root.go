package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/config"
	"github.com/pseudomuto/forma/pkg/consts"
	"github.com/pseudomuto/forma/pkg/format"
	"github.com/urfave/cli/v3"
)

type (
	// Version describes the build of the running binary.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	// settings is filled in by the root command before any action runs.
	settings struct {
		opts format.Options
	}
)

// Run creates and executes the forma CLI application with the given version
// and command-line arguments, reading from stdin and writing to stdout.
//
// Failures are logged with slog before being returned so callers only need to
// pick an exit status.
//
// Example usage:
//
//	# Format a file to stdout
//	err := Run(ctx, &Version{Version: "v1.0.0"}, []string{"forma", "query.sql"})
//
//	# Check a directory with a narrower width
//	err := Run(ctx, v, []string{"forma", "--max-width", "80", "--check", "queries/"})
func Run(ctx context.Context, v *Version, args []string) error {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Root().Writer, "Version:", v.Version)
		fmt.Fprintln(cmd.Root().Writer, "Commit:", v.Commit)
		fmt.Fprintln(cmd.Root().Writer, "Date:", v.Timestamp)
	}

	if err := newApp(v, os.Stdin, os.Stdout).Run(ctx, args); err != nil {
		slog.Error("Error running command", "err", err)
		return err
	}

	return nil
}

func newApp(v *Version, in io.Reader, out io.Writer) *cli.Command {
	st := new(settings)

	return &cli.Command{
		Name:      "forma",
		Usage:     "A width-aware SQL query formatter",
		ArgsUsage: "[path]",
		Description: `forma reformats SQL queries into a canonical layout that fits within a
maximum line width. Without a path it reads standard input and writes
standard output.`,
		Version: v.Version,
		Reader:  in,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "max-width",
				Usage:       "the maximum line width",
				DefaultText: "100",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the forma config file",
				Sources: cli.EnvVars("FORMA_CONFIG"),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load before reading FORMA_* variables",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Exit with an error if any input would be reformatted",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log every processed file",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return ctx, err
			}

			st.opts = cfg.Options()
			return ctx, nil
		},
		Action:   formatAction(st),
		Commands: []*cli.Command{fmtCmd(st)},
	}
}

// loadConfig layers the config file, the environment and the --max-width flag.
// A missing config file is only an error when --config was given explicitly.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) || cmd.IsSet("config") {
			return nil, err
		}

		cfg = config.Default()
	}

	if err := config.ApplyEnv(cfg, cmd.StringSlice("env-file")...); err != nil {
		return nil, err
	}

	if cmd.IsSet("max-width") {
		cfg.MaxWidth = cmd.Int("max-width")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
