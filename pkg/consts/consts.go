package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultMaxWidth is the line width used when none is configured.
	DefaultMaxWidth = 100

	// DefaultConfigFile is the configuration file looked up in the working
	// directory when no other path is given.
	DefaultConfigFile = ".forma.yaml"

	// SQLExtension is the extension of the files picked up when formatting a
	// directory.
	SQLExtension = ".sql"
)
