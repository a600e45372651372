package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/yt-batch/internal/collect"
	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/model"
)

// Backend selects the download implementation
type Backend string

const (
	BackendYTDLP  Backend = "yt-dlp"
	BackendNative Backend = "native"
)

// File defaults
const (
	DefaultInputFile      = "video_links.json"
	DefaultDownloadFolder = "downloads"
	DefaultFailureLog     = "failed_downloads.log"
	EnvConfigPath         = "YT_BATCH_CONFIG"
)

// Download defaults
const (
	DefaultBackend           = BackendYTDLP
	DefaultFormat            = download.DefaultFormat
	DefaultMergeOutputFormat = download.DefaultMergeOutputFormat
	DefaultRetries           = download.DefaultRetries
	DefaultRetryDelay        = download.DefaultRetryDelay
	DefaultAutoInstall       = true
	DefaultProgressInterval  = download.DefaultProgressInterval
	MaxRetries               = 10
)

// Collector defaults
const (
	DefaultCollectOutput  = DefaultInputFile
	DefaultScrollPause    = collect.DefaultScrollPause
	DefaultInitialWait    = collect.DefaultInitialWait
	DefaultMaxScrolls     = collect.DefaultMaxScrolls
	DefaultCollectTimeout = collect.DefaultTimeout
	DefaultHeadless       = true
)

// Logging defaults
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
)

// ErrInputNotFound is returned when the list file does not exist
var ErrInputNotFound = errors.New("input file not found")

// Duration is a time.Duration written as "2s" or "1m30s" in TOML
type Duration time.Duration

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration as a Go duration string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Download configures the processing capability
type Download struct {
	Backend           Backend  `toml:"backend"`
	Format            string   `toml:"format"`
	MergeOutputFormat string   `toml:"merge_output_format"`
	Retries           int      `toml:"retries"`
	RetryDelay        Duration `toml:"retry_delay"`
	AutoInstall       bool     `toml:"auto_install"`
	ProgressInterval  Duration `toml:"progress_interval"`
}

// Logging configures the structured logger
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Collector configures the channel listing collector
type Collector struct {
	Output      string   `toml:"output"`
	Headless    bool     `toml:"headless"`
	BrowserPath string   `toml:"browser_path"`
	ScrollPause Duration `toml:"scroll_pause"`
	InitialWait Duration `toml:"initial_wait"`
	MaxScrolls  int      `toml:"max_scrolls"`
	Timeout     Duration `toml:"timeout"`
}

// Config is the full run configuration
type Config struct {
	InputFile      string    `toml:"input_file"`
	DownloadFolder string    `toml:"download_folder"`
	FailureLog     string    `toml:"failure_log"`
	ArchivePath    string    `toml:"archive_path"`
	Download       Download  `toml:"download"`
	Logging        Logging   `toml:"logging"`
	Collector      Collector `toml:"collector"`

	// Range is resolved from arguments or prompts, never from the file
	Range model.Range `toml:"-"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		InputFile:      DefaultInputFile,
		DownloadFolder: DefaultDownloadFolder,
		FailureLog:     DefaultFailureLog,
		Download: Download{
			Backend:           DefaultBackend,
			Format:            DefaultFormat,
			MergeOutputFormat: DefaultMergeOutputFormat,
			Retries:           DefaultRetries,
			RetryDelay:        Duration(DefaultRetryDelay),
			AutoInstall:       DefaultAutoInstall,
			ProgressInterval:  Duration(DefaultProgressInterval),
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Collector: Collector{
			Output:      DefaultCollectOutput,
			Headless:    DefaultHeadless,
			ScrollPause: Duration(DefaultScrollPause),
			InitialWait: Duration(DefaultInitialWait),
			MaxScrolls:  DefaultMaxScrolls,
			Timeout:     Duration(DefaultCollectTimeout),
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that do not depend on the list file
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputFile) == "" {
		return errors.New("input_file must not be empty")
	}
	if strings.TrimSpace(c.DownloadFolder) == "" {
		return errors.New("download_folder must not be empty")
	}
	if strings.TrimSpace(c.FailureLog) == "" {
		return errors.New("failure_log must not be empty")
	}
	if err := c.Download.validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (d *Download) validate() error {
	switch d.Backend {
	case BackendYTDLP, BackendNative:
	default:
		return fmt.Errorf("download.backend: unsupported value %q (use %q or %q)", d.Backend, BackendYTDLP, BackendNative)
	}
	if strings.TrimSpace(d.Format) == "" {
		return errors.New("download.format must not be empty")
	}
	if d.Retries < 0 || d.Retries > MaxRetries {
		return fmt.Errorf("download.retries must be between 0 and %d", MaxRetries)
	}
	if d.RetryDelay < 0 {
		return errors.New("download.retry_delay must not be negative")
	}
	if d.ProgressInterval < 0 {
		return errors.New("download.progress_interval must not be negative")
	}
	return nil
}

// ValidateCollector checks the collector section
func (c *Config) ValidateCollector() error {
	if strings.TrimSpace(c.Collector.Output) == "" {
		return errors.New("collector.output must not be empty")
	}
	if c.Collector.ScrollPause <= 0 {
		return errors.New("collector.scroll_pause must be positive")
	}
	if c.Collector.InitialWait < 0 {
		return errors.New("collector.initial_wait must not be negative")
	}
	if c.Collector.MaxScrolls < 1 {
		return errors.New("collector.max_scrolls must be at least 1")
	}
	if c.Collector.Timeout <= 0 {
		return errors.New("collector.timeout must be positive")
	}
	return nil
}

// CheckInputFile verifies the list file exists
func (c *Config) CheckInputFile() error {
	info, err := os.Stat(c.InputFile)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: '%s'", ErrInputNotFound, c.InputFile)
	}
	return nil
}
