package main

import (
	"fmt"
	"io"
	"os"
	"time"

	app "github.com/okian/highscores/internal/app"
	"github.com/okian/highscores/internal/config"
	"github.com/okian/highscores/pkg/logger"
	"github.com/okian/highscores/pkg/metrics"
	"github.com/urfave/cli/v2"
)

const (
	name         = "highscores"
	appConfigKey = "app-config"

	flagFormat      = "format"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagMetricsFile = "metrics-file"
)

var (
	version = "v0.0.1-default"
	commit  = ""
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		os.Stderr.WriteString(name + ": " + err.Error() + "\n")
		os.Exit(1)
	}
}

// appConfig is the per-run state shared with command actions.
type appConfig struct {
	cfg *config.Config
	svc *app.Service
}

func getConfig(c *cli.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            name,
		Version:         fmt.Sprintf("%s (commit: %s)", version, commit),
		Compiled:        time.Now(),
		Usage:           "Summarize a list of scores: latest, personal best and top three",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagFormat,
				Aliases: []string{"o"},
				Usage:   "Output format [text, json, yaml]",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "Log level [debug, info, warn, error]",
			},
			&cli.StringFlag{
				Name:  flagLogFormat,
				Usage: "Log format on stderr [text, json]",
			},
			&cli.StringFlag{
				Name:  flagMetricsFile,
				Usage: "Write Prometheus metrics to this textfile after the run",
			},
		},
		Commands: newCommands(),
		Before:   before,
		After:    after,
	}
}

// before loads configuration (defaults -> optional file -> env -> flags)
// and initializes logging and the service.
func before(c *cli.Context) error {
	cfg, err := config.Load(c.Context, map[string]any{
		"format":       c.String(flagFormat),
		"log_level":    c.String(flagLogLevel),
		"log_format":   c.String(flagLogFormat),
		"metrics_file": c.String(flagMetricsFile),
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logger.InitWithWriter(c.App.ErrWriter, cfg.LogFormat); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(c.Context, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c.App.Metadata[appConfigKey] = &appConfig{
		cfg: cfg,
		svc: app.New(app.WithLogger(log.Named("service"))),
	}
	return nil
}

// after writes the metrics textfile when one is configured.
func after(c *cli.Context) error {
	ac, ok := c.App.Metadata[appConfigKey].(*appConfig)
	if !ok || ac.cfg.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(ac.cfg.MetricsFile, metrics.GetRegistry()); err != nil {
		return err
	}
	logger.Get().Debug(c.Context, "metrics written", logger.String("path", ac.cfg.MetricsFile))
	return nil
}
