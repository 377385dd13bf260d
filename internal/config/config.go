// Package config defines highscores configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file, env vars and overrides.
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"github.com/okian/highscores/internal/adapters/render"
	"github.com/okian/highscores/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Format selects the report output: text, json or yaml.
	Format string `koanf:"format"`

	// Scores is used when no scores are passed on the command line.
	// Filled by Load through types.ParseScores, not by the koanf decoder.
	Scores []uint32 `koanf:"-"`

	// MetricsFile is a Prometheus textfile path written after each run.
	// Empty disables the write.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: logger.FormatText,
		Format:    render.FormatText,
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := render.New(c.Format); err != nil {
		return invalid("format must be one of text, json, yaml; got %q", c.Format)
	}
	switch c.LogFormat {
	case logger.FormatText, logger.FormatJSON:
	default:
		return invalid("log_format must be text or json; got %q", c.LogFormat)
	}
	return nil
}
