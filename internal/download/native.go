package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/ytget/yt-batch/internal/logging"
	"github.com/ytget/yt-batch/internal/platform"
)

// Native client defaults
const (
	DefaultHTTPTimeout = 30 * time.Minute
	partialSuffix      = ".part"
)

// ErrNoProgressiveFormat is returned when a video has no combined audio+video stream
var ErrNoProgressiveFormat = errors.New("no progressive (audio+video) format available")

// videoSource is the subset of *youtube.Client used by Native
type videoSource interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// Native downloads progressive streams without external binaries
type Native struct {
	source videoSource
	logger *slog.Logger
}

// NewNative creates a native downloader with its own HTTP client
func NewNative(logger *slog.Logger) *Native {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Native{
		source: &youtube.Client{HTTPClient: &http.Client{Timeout: DefaultHTTPTimeout}},
		logger: logger,
	}
}

// Download fetches the best progressive format of req.URL, preferring mp4.
// Data goes to "<label>.<ext>.part" and is renamed once complete.
func (n *Native) Download(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	req = req.withDefaults()

	if err := platform.CreateDirectoryIfNotExists(req.Folder); err != nil {
		return Result{}, fmt.Errorf("failed to create download folder: %w", err)
	}

	video, err := n.source.GetVideoContext(ctx, req.URL)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	format, err := selectProgressive(video.Formats)
	if err != nil {
		return Result{}, err
	}

	target := filepath.Join(req.Folder, req.Label+"."+extensionFor(format.MimeType))
	logger := n.logger.With(logging.Backend("native"), logging.Label(req.Label))
	logger.Debug("selected format",
		"itag", format.ItagNo,
		"quality", format.QualityLabel,
		"mime", format.MimeType)

	stream, size, err := n.source.GetStreamContext(ctx, video, format)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open stream: %w", err)
	}
	defer stream.Close()

	written, err := writeAtomically(ctx, target, stream)
	if err != nil {
		return Result{}, err
	}
	if size > 0 && written != size {
		os.Remove(target)
		return Result{}, fmt.Errorf("incomplete download: got %d of %d bytes", written, size)
	}

	logger.Debug("download finished", logging.Path(target), "bytes", written)
	return Result{OutputPath: target}, nil
}

// selectProgressive picks the highest resolution format carrying both audio
// and video, mp4 first, then by bitrate
func selectProgressive(formats youtube.FormatList) (*youtube.Format, error) {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels == 0 || f.Width == 0 || f.Height == 0 {
			continue
		}
		if best == nil || betterFormat(f, best) {
			best = f
		}
	}
	if best == nil {
		return nil, ErrNoProgressiveFormat
	}
	return best, nil
}

func betterFormat(a, b *youtube.Format) bool {
	aMP4, bMP4 := isMP4(a.MimeType), isMP4(b.MimeType)
	if aMP4 != bMP4 {
		return aMP4
	}
	if a.Height != b.Height {
		return a.Height > b.Height
	}
	return a.Bitrate > b.Bitrate
}

func isMP4(mime string) bool {
	return extensionFor(mime) == "mp4"
}

// extensionFor maps a mime type such as `video/mp4; codecs="avc1"` to a file extension
func extensionFor(mime string) string {
	base := strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])
	switch strings.ToLower(base) {
	case "video/mp4", "audio/mp4":
		return "mp4"
	case "video/webm", "audio/webm":
		return "webm"
	case "video/3gpp":
		return "3gp"
	}
	if _, sub, ok := strings.Cut(base, "/"); ok && sub != "" {
		return strings.ToLower(sub)
	}
	return "bin"
}

// writeAtomically copies r to target via a partial file
func writeAtomically(ctx context.Context, target string, r io.Reader) (int64, error) {
	part := target + partialSuffix
	file, err := os.OpenFile(part, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, platform.DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", part, err)
	}

	written, copyErr := io.Copy(file, &contextReader{ctx: ctx, r: r})
	closeErr := file.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		os.Remove(part)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return written, ctxErr
		}
		return written, fmt.Errorf("failed to write stream: %w", copyErr)
	}

	if err := os.Rename(part, target); err != nil {
		os.Remove(part)
		return written, fmt.Errorf("failed to finalize %s: %w", target, err)
	}
	return written, nil
}

// contextReader stops reading once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
