package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-batch/internal/archive"
	"github.com/ytget/yt-batch/internal/batch"
	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/logging"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
	"github.com/ytget/yt-batch/internal/report"
)

// downloadFlags override the [download] config section for one run
type downloadFlags struct {
	failureLog  string
	backend     string
	format      string
	mergeFormat string
	retries     int
	archivePath string
}

func (f *downloadFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.failureLog, "log-file", config.DefaultFailureLog, "Failure log path")
	fs.StringVar(&f.backend, "backend", string(config.DefaultBackend), "Download backend (yt-dlp, native)")
	fs.StringVar(&f.format, "format", config.DefaultFormat, "yt-dlp format selector")
	fs.StringVar(&f.mergeFormat, "merge-format", config.DefaultMergeOutputFormat, "Container for merged streams")
	fs.IntVar(&f.retries, "retries", config.DefaultRetries, "Retries per video after the first attempt")
	fs.StringVar(&f.archivePath, "archive", "", "SQLite archive of completed downloads, enables skipping them")
}

func (f *downloadFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("log-file") {
		cfg.FailureLog = f.failureLog
	}
	if fs.Changed("backend") {
		cfg.Download.Backend = config.Backend(f.backend)
	}
	if fs.Changed("format") {
		cfg.Download.Format = f.format
	}
	if fs.Changed("merge-format") {
		cfg.Download.MergeOutputFormat = f.mergeFormat
	}
	if fs.Changed("retries") {
		cfg.Download.Retries = f.retries
	}
	if fs.Changed("archive") {
		cfg.ArchivePath = f.archivePath
	}
}

func runDownload(cmd *cobra.Command, cc *commandContext, flags *downloadFlags, args []string) error {
	ctx := cmd.Context()
	out := cc.deps.stdout

	base, err := cc.loadConfig(cmd)
	if err != nil {
		return err
	}
	flags.apply(cmd, &base)

	resolver := &config.Resolver{Out: out}
	if len(args) < 2 {
		p := cc.deps.newPrompter()
		defer p.Close()
		resolver.Prompter = p
	}
	cfg, err := resolver.Resolve(args, base)
	if err != nil {
		return err
	}

	logger, closeLogs, err := cc.logger(cfg)
	if err != nil {
		return err
	}
	defer closeLogs()

	links, err := platform.ReadLinks(cfg.InputFile)
	if err != nil {
		return err
	}
	items := model.NewWorkItems(links)
	if err := cfg.Range.Validate(len(items)); err != nil {
		return err
	}

	if err := platform.CreateDirectoryIfNotExists(cfg.DownloadFolder); err != nil {
		return fmt.Errorf("failed to create download folder: %w", err)
	}
	lock, err := platform.AcquireRunLock(cfg.DownloadFolder)
	if err != nil {
		return err
	}
	defer lock.Release()
	logger.Debug("download folder locked", "lock", lock.Path())

	failureLog := batch.NewFailureLog(cfg.FailureLog)
	defer failureLog.Close()

	console := report.NewConsole(out)
	opts := []batch.Option{batch.WithObserver(console), batch.WithLogger(logger)}

	var store *archive.Store
	if cfg.ArchivePath != "" {
		store, err = archive.Open(ctx, cfg.ArchivePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, batch.WithArchive(&archiveAdapter{store: store, folder: cfg.DownloadFolder, logger: logger}))
	}

	downloader := cc.deps.newDownloader(cfg, logger)
	processor := batch.NewProcessor(failureLog, opts...)

	report.PrintPlan(out, cfg.Range, cfg.DownloadFolder)
	fmt.Fprintln(out)

	result, err := processor.Process(ctx, items, cfg.Range, downloadItem(downloader, cfg))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(out, "\nInterrupted after %d of %d videos.\n", result.Visited(), cfg.Range.Len())
		}
		return err
	}

	fmt.Fprintf(out, "\nDownload completed! Check '%s' folder for downloaded videos.\n", cfg.DownloadFolder)
	fmt.Fprintf(out, "Failed downloads logged in '%s'\n", failureLog.Path())
	if store != nil {
		recorded, err := store.ListByRun(ctx, result.RunID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Archived %d videos from this run in '%s'\n", len(recorded), store.Path())
	}
	return nil
}

// downloadItem adapts a Downloader to the batch processor
func downloadItem(d download.Downloader, cfg config.Config) batch.ProcessFunc {
	return func(ctx context.Context, item model.WorkItem) error {
		_, err := d.Download(ctx, download.Request{
			URL:               item.TargetRef,
			Folder:            cfg.DownloadFolder,
			Label:             item.Label,
			Format:            cfg.Download.Format,
			MergeOutputFormat: cfg.Download.MergeOutputFormat,
		})
		return err
	}
}

// archiveAdapter keys archive rows by target ref and records where the file landed
type archiveAdapter struct {
	store  *archive.Store
	folder string
	logger *slog.Logger
}

func (a *archiveAdapter) Has(ctx context.Context, item model.WorkItem) (bool, error) {
	return a.store.Has(ctx, item.TargetRef)
}

func (a *archiveAdapter) Record(ctx context.Context, item model.WorkItem, runID string) error {
	path, err := platform.FindOutputFile(a.folder, item.Label)
	if err != nil && a.logger != nil {
		a.logger.Debug("output file not located for archive", logging.Label(item.Label), logging.Error(err))
	}
	return a.store.Record(ctx, archive.Entry{
		TargetRef:  item.TargetRef,
		Sequence:   item.Sequence,
		Label:      item.Label,
		OutputPath: path,
		RunID:      runID,
	})
}
