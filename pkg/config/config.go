package config

import (
	"io"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/pseudomuto/forma/pkg/consts"
	"github.com/pseudomuto/forma/pkg/format"
	"gopkg.in/yaml.v3"
)

// Config represents the formatter configuration.
//
// Values come from a YAML file (.forma.yaml by default) and can be overridden
// by environment variables, which in turn can be loaded from dotenv files.
type Config struct {
	// MaxWidth is the line width the formatter aims for
	MaxWidth int `yaml:"max_width" env:"FORMA_MAX_WIDTH"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{MaxWidth: consts.DefaultMaxWidth}
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// The reader is expected to contain YAML. An empty document yields the default
// configuration, and any setting left out keeps its default value.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader("max_width: 80"))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Max width: %d\n", cfg.MaxWidth)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.MaxWidth == 0 {
		cfg.MaxWidth = consts.DefaultMaxWidth
	}

	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile(".forma.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// ApplyEnv overrides cfg with values from the environment. The given dotenv
// files are loaded into the process environment first; variables that are
// already set are not replaced by them.
//
// Recognized variables:
//   - FORMA_MAX_WIDTH: the maximum line width
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return errors.Wrap(err, "failed to load env file")
		}
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Wrap(err, "failed to parse environment")
	}

	return nil
}

// Validate reports settings the formatter can't work with.
func (c *Config) Validate() error {
	if c.MaxWidth < 1 {
		return errors.Wrapf(format.ErrInvalidWidth, "max_width is %d", c.MaxWidth)
	}

	return nil
}

// Options returns the formatter options described by the configuration.
func (c *Config) Options() format.Options {
	return format.Options{MaxWidth: c.MaxWidth}
}
