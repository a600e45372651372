package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-batch/internal/collect"
	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/logging"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

type prompter interface {
	config.Prompter
	Close() error
}

type linkCollector interface {
	Collect(ctx context.Context, channelURL string) ([]model.Link, error)
}

type playlistLister interface {
	List(ctx context.Context, ref string) ([]model.Link, error)
}

// dependencies are the external capabilities commands are built from
type dependencies struct {
	stdout io.Writer
	stderr io.Writer

	newPrompter       func() prompter
	newDownloader     func(cfg config.Config, logger *slog.Logger) download.Downloader
	newCollector      func(opts collect.Options, logger *slog.Logger) linkCollector
	newPlaylistLister func(timeout time.Duration) playlistLister
}

func defaultDependencies() dependencies {
	return dependencies{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		newPrompter: func() prompter { return platform.NewReadlinePrompter() },
		newDownloader: func(cfg config.Config, logger *slog.Logger) download.Downloader {
			var backend download.Downloader
			switch cfg.Download.Backend {
			case config.BackendNative:
				backend = download.NewNative(logger)
			default:
				backend = download.NewYTDLP(
					download.WithAutoInstall(cfg.Download.AutoInstall),
					download.WithProgressInterval(cfg.Download.ProgressInterval.Std()),
					download.WithYTDLPLogger(logger),
				)
			}
			return download.WithRetry(backend, cfg.Download.Retries, cfg.Download.RetryDelay.Std(),
				download.WithRetryLogger(logger))
		},
		newCollector: func(opts collect.Options, logger *slog.Logger) linkCollector {
			return collect.New(opts, logger)
		},
		newPlaylistLister: func(timeout time.Duration) playlistLister {
			lister := platform.NewPlaylistLister()
			lister.SetTimeout(timeout)
			return lister
		},
	}
}

// commandContext holds state shared by all commands
type commandContext struct {
	deps dependencies

	configFlag    string
	logLevelFlag  string
	logFormatFlag string
}

func newCommandContext(deps dependencies) *commandContext {
	return &commandContext{deps: deps}
}

// configPath returns the --config flag or the environment fallback
func (c *commandContext) configPath() string {
	if path := strings.TrimSpace(c.configFlag); path != "" {
		return path
	}
	return strings.TrimSpace(os.Getenv(config.EnvConfigPath))
}

// loadConfig reads the config file and applies the global flags
func (c *commandContext) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.configPath())
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = c.logLevelFlag
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = c.logFormatFlag
	}
	return cfg, nil
}

// logger builds the structured logger on stderr plus the optional log file.
// The returned func closes the log file and must run when the command ends.
func (c *commandContext) logger(cfg config.Config) (*slog.Logger, func() error, error) {
	outputs := []string{"stderr"}
	if path := strings.TrimSpace(cfg.Logging.File); path != "" {
		outputs = append(outputs, path)
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}
