// Package config holds the settings of the qdsa command line tool.
//
// Values are resolved in three layers: an optional YAML file, then the
// QDSA_* environment variables, then command line flags.
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"qdsa.mleku.dev/internal/encoding"
)

// Environment variables read by ApplyEnv.
const (
	EnvEncoding = "QDSA_ENCODING"
	EnvLogLevel = "QDSA_LOG_LEVEL"
)

// Log output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the CLI configuration.
type Config struct {
	// Encoding used for keys and signatures on input and output.
	Encoding string `yaml:"encoding"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
	// LogFormat is auto, console or json. Auto picks console when stderr
	// is a terminal.
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Encoding:  encoding.Hex,
		LogLevel:  "warn",
		LogFormat: FormatAuto,
	}
}

// Load reads the YAML file at path over the defaults and applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overrides fields from the environment through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvEncoding); ok && v != "" {
		c.Encoding = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Level returns the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// Validate checks that every field holds a known value.
func (c *Config) Validate() error {
	if !encoding.Valid(c.Encoding) {
		return fmt.Errorf("unknown encoding %q", c.Encoding)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.LogFormat {
	case FormatAuto, FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
