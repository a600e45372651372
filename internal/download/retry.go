package download

import (
	"context"
	"log/slog"
	"time"

	"github.com/ytget/yt-batch/internal/logging"
)

// Retry defaults
const (
	DefaultRetries    = 1
	DefaultRetryDelay = 2 * time.Second
)

// Retrying re-runs a failed download a bounded number of times
type Retrying struct {
	next    Downloader
	retries int
	delay   time.Duration
	logger  *slog.Logger
	wait    func(ctx context.Context, d time.Duration) error
}

// RetryOption configures a Retrying downloader
type RetryOption func(*Retrying)

// WithRetryLogger sets the structured logger
func WithRetryLogger(l *slog.Logger) RetryOption {
	return func(r *Retrying) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRetry wraps d so that each download is attempted at most retries+1 times
func WithRetry(d Downloader, retries int, delay time.Duration, opts ...RetryOption) *Retrying {
	if retries < 0 {
		retries = 0
	}
	r := &Retrying{
		next:    d,
		retries: retries,
		delay:   delay,
		logger:  logging.NewNop(),
		wait:    sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Download attempts the download with retry logic
func (r *Retrying) Download(ctx context.Context, req Request) (Result, error) {
	var lastErr error

	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			if err := r.wait(ctx, r.delay); err != nil {
				return Result{}, err
			}
			r.logger.Info("retrying download",
				logging.Label(req.Label),
				logging.Attempt(attempt+1))
		}

		res, err := r.next.Download(ctx, req)
		if err == nil {
			return res, nil
		}

		lastErr = err
		r.logger.Warn("download attempt failed",
			logging.Label(req.Label),
			logging.Attempt(attempt+1),
			logging.Error(err))

		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
	}

	return Result{}, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
