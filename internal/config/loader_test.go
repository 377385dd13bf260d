package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/highscores/internal/adapters/render"
	"github.com/okian/highscores/internal/config"
	"github.com/okian/highscores/internal/domain/types"
	"github.com/okian/highscores/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, logger.FormatText)
			convey.So(cfg.Format, convey.ShouldEqual, render.FormatText)
			convey.So(cfg.Scores, convey.ShouldBeEmpty)
			convey.So(cfg.MetricsFile, convey.ShouldEqual, "")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Format, convey.ShouldEqual, "text")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.Scores, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HIGHSCORES_FORMAT", "json")
			_ = os.Setenv("HIGHSCORES_LOG_LEVEL", "debug")
			_ = os.Setenv("HIGHSCORES_SCORES", "30,50 20, 70")
			_ = os.Setenv("HIGHSCORES_METRICS_FILE", "/tmp/highscores.prom")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Format, convey.ShouldEqual, "json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Scores, convey.ShouldResemble, []uint32{30, 50, 20, 70})
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/highscores.prom")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
format: yaml
log_format: json
scores: [100, 0, 90, 30]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HIGHSCORES_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Format, convey.ShouldEqual, "yaml")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info") // From defaults
				convey.So(cfg.Scores, convey.ShouldResemble, []uint32{100, 0, 90, 30})
			})
		})

		convey.Convey("When loading config with file, env and overrides", func() {
			yamlContent := `
format: yaml
log_level: warn
scores: [1, 2, 3]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HIGHSCORES_CONFIG", tmpFile)
			_ = os.Setenv("HIGHSCORES_FORMAT", "json") // overrides the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, map[string]any{
				"log_level": "error", // overrides the file
				"format":    "",      // ignored: empty flag value
			})

			convey.Convey("Then each layer wins over the one below it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Format, convey.ShouldEqual, "json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "error")
				convey.So(cfg.Scores, convey.ShouldResemble, []uint32{1, 2, 3})
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HIGHSCORES_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("HIGHSCORES_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown output format", func() {
			_ = os.Setenv("HIGHSCORES_FORMAT", "xml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "format must be one of")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown log format", func() {
			cfg, err := config.Load(ctx, map[string]any{"log_format": "logfmt"})

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-numeric score", func() {
			_ = os.Setenv("HIGHSCORES_SCORES", "10,ten")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with the yml output format", func() {
			cfg, err := config.Load(ctx, map[string]any{"format": "yml"})

			convey.Convey("Then it should accept every format the renderer accepts", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Format, convey.ShouldEqual, "yml")
			})
		})

		convey.Convey("When loading scores from a YAML file", func() {
			load := func(content string) (*config.Config, error) {
				tmpFile := createTempConfigFile(content)
				defer func() { _ = os.Remove(tmpFile) }()
				_ = os.Setenv("HIGHSCORES_CONFIG", tmpFile)
				defer clearConfigEnvVars()
				return config.Load(ctx, nil)
			}

			convey.Convey("Then valid scores are decoded in order", func() {
				cfg, err := load("scores: [10, 0, 4294967295]\n")
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Scores, convey.ShouldResemble, []uint32{10, 0, 4294967295})
			})

			convey.Convey("Then a negative score is rejected", func() {
				cfg, err := load("scores: [10, -5]\n")
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, types.ErrInvalidScore), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})

			convey.Convey("Then an out of range score is rejected", func() {
				cfg, err := load("scores: [4294967296]\n")
				convey.So(errors.Is(err, types.ErrInvalidScore), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading scores from the environment", func() {
			defer clearConfigEnvVars()

			convey.Convey("Then leading zeros are read as base 10", func() {
				_ = os.Setenv("HIGHSCORES_SCORES", "010, 7")
				cfg, err := config.Load(ctx, nil)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Scores, convey.ShouldResemble, []uint32{10, 7})
			})

			convey.Convey("Then hexadecimal scores are rejected", func() {
				_ = os.Setenv("HIGHSCORES_SCORES", "0x1F")
				cfg, err := config.Load(ctx, nil)
				convey.So(errors.Is(err, types.ErrInvalidScore), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			yamlContent := `
# This is a comment
format: json  # Inline comment
# Another comment
metrics_file: /var/lib/node_exporter/highscores.prom
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HIGHSCORES_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Format, convey.ShouldEqual, "json")
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/var/lib/node_exporter/highscores.prom")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"HIGHSCORES_CONFIG",
		"HIGHSCORES_FORMAT",
		"HIGHSCORES_LOG_LEVEL",
		"HIGHSCORES_LOG_FORMAT",
		"HIGHSCORES_SCORES",
		"HIGHSCORES_METRICS_FILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "highscores-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
