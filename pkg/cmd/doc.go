// Package cmd provides the command-line interface for forma.
//
// The root command formats SQL read from standard input, a file, or every .sql
// file below a directory. The same behavior is available as the explicit fmt
// subcommand.
//
// # Global Options
//
//   - --max-width: the target line width (default 100)
//   - --config: the configuration file (default .forma.yaml, ignored when absent)
//   - --env-file: dotenv files loaded before reading FORMA_* variables
//   - --write, -w: rewrite files in place instead of printing them
//   - --check: print nothing and fail when any input would be reformatted
//   - --debug: log each processed file
//
// Settings are layered: config file, then environment, then flags.
//
// # Example Usage
//
//	cat query.sql | forma                # Format stdin to stdout
//	forma --max-width 80 queries/        # Format a directory tree to stdout
//	forma -w queries/                    # Format in place
//	forma --check queries/               # Exit with status 1 if anything changes
//	forma fmt report.sql                 # Explicit subcommand
package cmd
