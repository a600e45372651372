package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-batch/internal/collect"
	"github.com/ytget/yt-batch/internal/download"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultInputFile, cfg.InputFile)
	assert.Equal(t, DefaultDownloadFolder, cfg.DownloadFolder)
	assert.Equal(t, DefaultFailureLog, cfg.FailureLog)
	assert.Equal(t, BackendYTDLP, cfg.Download.Backend)
	assert.Equal(t, DefaultFormat, cfg.Download.Format)
	assert.Equal(t, "mp4", cfg.Download.MergeOutputFormat)
	assert.Equal(t, DefaultRetryDelay, cfg.Download.RetryDelay.Std())
	assert.Equal(t, DefaultScrollPause, cfg.Collector.ScrollPause.Std())
	assert.True(t, cfg.Collector.Headless)
	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.ValidateCollector())
}

func TestDefault_MatchesPackageDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, download.DefaultFormat, cfg.Download.Format)
	assert.Equal(t, download.DefaultMergeOutputFormat, cfg.Download.MergeOutputFormat)
	assert.Equal(t, download.DefaultRetries, cfg.Download.Retries)
	assert.Equal(t, download.DefaultRetryDelay, cfg.Download.RetryDelay.Std())
	assert.Equal(t, download.DefaultProgressInterval, cfg.Download.ProgressInterval.Std())

	opts := collect.DefaultOptions()
	assert.Equal(t, opts.ScrollPause, cfg.Collector.ScrollPause.Std())
	assert.Equal(t, opts.InitialWait, cfg.Collector.InitialWait.Std())
	assert.Equal(t, opts.MaxScrolls, cfg.Collector.MaxScrolls)
	assert.Equal(t, opts.Timeout, cfg.Collector.Timeout.Std())
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yt-batch.toml")
	content := `
input_file = "links.json"
download_folder = "videos"
archive_path = "archive.db"

[download]
backend = "native"
retries = 3
retry_delay = "500ms"

[collector]
scroll_pause = "1s"
max_scrolls = 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "links.json", cfg.InputFile)
	assert.Equal(t, "videos", cfg.DownloadFolder)
	assert.Equal(t, "archive.db", cfg.ArchivePath)
	assert.Equal(t, DefaultFailureLog, cfg.FailureLog, "unset keys keep their defaults")
	assert.Equal(t, BackendNative, cfg.Download.Backend)
	assert.Equal(t, 3, cfg.Download.Retries)
	assert.Equal(t, 500*time.Millisecond, cfg.Download.RetryDelay.Std())
	assert.Equal(t, DefaultFormat, cfg.Download.Format)
	assert.Equal(t, time.Second, cfg.Collector.ScrollPause.Std())
	assert.Equal(t, 20, cfg.Collector.MaxScrolls)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("input_fiel = \"x\"\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[download]\nretry_delay = \"soon\"\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input", func(c *Config) { c.InputFile = " " }},
		{"empty folder", func(c *Config) { c.DownloadFolder = "" }},
		{"empty failure log", func(c *Config) { c.FailureLog = "" }},
		{"unknown backend", func(c *Config) { c.Download.Backend = "curl" }},
		{"empty format", func(c *Config) { c.Download.Format = "" }},
		{"negative retries", func(c *Config) { c.Download.Retries = -1 }},
		{"too many retries", func(c *Config) { c.Download.Retries = MaxRetries + 1 }},
		{"negative delay", func(c *Config) { c.Download.RetryDelay = Duration(-time.Second) }},
		{"negative progress interval", func(c *Config) { c.Download.ProgressInterval = Duration(-time.Second) }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateCollector(t *testing.T) {
	cfg := Default()
	cfg.Collector.ScrollPause = 0
	assert.Error(t, cfg.ValidateCollector())

	cfg = Default()
	cfg.Collector.MaxScrolls = 0
	assert.Error(t, cfg.ValidateCollector())

	cfg = Default()
	cfg.Collector.Output = ""
	assert.Error(t, cfg.ValidateCollector())
}

func TestCheckInputFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()

	cfg.InputFile = filepath.Join(dir, "missing.json")
	err := cfg.CheckInputFile()
	assert.True(t, errors.Is(err, ErrInputNotFound))

	cfg.InputFile = dir
	assert.True(t, errors.Is(cfg.CheckInputFile(), ErrInputNotFound))

	cfg.InputFile = filepath.Join(dir, "links.json")
	require.NoError(t, os.WriteFile(cfg.InputFile, []byte("[]"), 0o644))
	assert.NoError(t, cfg.CheckInputFile())
}

func TestDuration_MarshalText(t *testing.T) {
	text, err := Duration(90 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))
}
