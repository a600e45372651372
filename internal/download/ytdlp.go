package download

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-batch/internal/logging"
	"github.com/ytget/yt-batch/internal/platform"
)

// Progress reporting
const (
	DefaultProgressInterval = 500 * time.Millisecond
)

type (
	runFunc     func(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.Result, error)
	installFunc func(ctx context.Context) error
)

// YTDLP downloads through the yt-dlp binary
type YTDLP struct {
	autoInstall      bool
	progressInterval time.Duration
	logger           *slog.Logger

	installOnce sync.Once
	installErr  error

	run     runFunc
	install installFunc
}

// YTDLPOption configures a YTDLP backend
type YTDLPOption func(*YTDLP)

// WithAutoInstall downloads the yt-dlp binary on first use when it is missing
func WithAutoInstall(enabled bool) YTDLPOption {
	return func(y *YTDLP) { y.autoInstall = enabled }
}

// WithProgressInterval sets how often progress updates are logged, zero disables them
func WithProgressInterval(d time.Duration) YTDLPOption {
	return func(y *YTDLP) { y.progressInterval = d }
}

// WithYTDLPLogger sets the structured logger
func WithYTDLPLogger(l *slog.Logger) YTDLPOption {
	return func(y *YTDLP) {
		if l != nil {
			y.logger = l
		}
	}
}

// NewYTDLP creates a yt-dlp backed downloader
func NewYTDLP(opts ...YTDLPOption) *YTDLP {
	y := &YTDLP{
		progressInterval: DefaultProgressInterval,
		logger:           logging.NewNop(),
		run:              runCommand,
		install:          installBinary,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Download runs yt-dlp for req and returns the produced file
func (y *YTDLP) Download(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	req = req.withDefaults()

	if err := platform.CreateDirectoryIfNotExists(req.Folder); err != nil {
		return Result{}, fmt.Errorf("failed to create download folder: %w", err)
	}
	if err := y.ensureInstalled(ctx); err != nil {
		return Result{}, err
	}

	logger := y.logger.With(logging.Backend("yt-dlp"), logging.Label(req.Label))
	cmd := y.command(req, logger)

	if _, err := y.run(ctx, cmd, req.URL); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return Result{}, fmt.Errorf("yt-dlp failed: %w", err)
	}

	path, err := platform.FindOutputFile(req.Folder, req.Label)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("download finished", logging.Path(path))
	return Result{OutputPath: path}, nil
}

// command builds the yt-dlp invocation for req
func (y *YTDLP) command(req Request, logger *slog.Logger) *ytdlp.Command {
	dl := ytdlp.New().
		Format(req.Format).
		MergeOutputFormat(req.MergeOutputFormat).
		Output(req.OutputTemplate()).
		NoPlaylist().
		Quiet().
		NoWarnings()

	if y.progressInterval > 0 {
		dl.ProgressFunc(y.progressInterval, func(update ytdlp.ProgressUpdate) {
			if update.TotalBytes <= 0 {
				return
			}
			percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
			logger.Debug("download progress",
				"percent", fmt.Sprintf("%.1f", percent),
				"eta", update.ETA().Round(time.Second).String())
		})
	}
	return dl
}

func (y *YTDLP) ensureInstalled(ctx context.Context) error {
	if !y.autoInstall {
		return nil
	}
	y.installOnce.Do(func() {
		y.logger.Debug("ensuring yt-dlp is installed")
		if err := y.install(ctx); err != nil {
			y.installErr = fmt.Errorf("failed to install yt-dlp: %w", err)
		}
	})
	return y.installErr
}

func runCommand(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.Result, error) {
	return cmd.Run(ctx, url)
}

func installBinary(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}
