package collect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ytget/yt-batch/internal/logging"
	"github.com/ytget/yt-batch/internal/model"
)

// Collector defaults
const (
	DefaultInitialWait = 3 * time.Second
	DefaultScrollPause = 2 * time.Second
	DefaultMaxScrolls  = 500
	DefaultTimeout     = 10 * time.Minute
)

// ErrNoVideos is returned when the page lists no video links
var ErrNoVideos = errors.New("no videos found")

// Options configures a Collector
type Options struct {
	Browser     BrowserOptions
	InitialWait time.Duration
	ScrollPause time.Duration
	MaxScrolls  int
	Timeout     time.Duration
}

// DefaultOptions returns headless settings matching the CLI defaults
func DefaultOptions() Options {
	return Options{
		Browser:     BrowserOptions{Headless: true},
		InitialWait: DefaultInitialWait,
		ScrollPause: DefaultScrollPause,
		MaxScrolls:  DefaultMaxScrolls,
		Timeout:     DefaultTimeout,
	}
}

type pageOpener func(ctx context.Context, opts BrowserOptions, logger *slog.Logger) (Page, context.CancelFunc, error)

// Collector gathers the video links of a channel
type Collector struct {
	opts   Options
	logger *slog.Logger
	open   pageOpener
	sleep  SleepFunc
}

// New creates a collector backed by Chrome
func New(opts Options, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Collector{
		opts:   opts,
		logger: logger,
		open:   openChrome,
		sleep:  sleepContext,
	}
}

// Collect loads the channel's listing, scrolls until every video is loaded
// and returns the title links in page order
func (c *Collector) Collect(ctx context.Context, channelURL string) ([]model.Link, error) {
	target, err := NormalizeChannelURL(channelURL)
	if err != nil {
		return nil, err
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	logger := c.logger.With(logging.URL(target))
	logger.Info("opening channel listing", "headless", c.opts.Browser.Headless)

	page, closePage, err := c.open(ctx, c.opts.Browser, c.logger)
	if err != nil {
		return nil, err
	}
	defer closePage()

	if err := page.Navigate(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", target, err)
	}
	if err := c.sleep(ctx, c.opts.InitialWait); err != nil {
		return nil, err
	}

	scrolls, err := ScrollUntilStable(ctx, page, c.opts.ScrollPause, c.opts.MaxScrolls, c.sleep)
	if err != nil {
		return nil, err
	}
	if c.opts.MaxScrolls > 0 && scrolls >= c.opts.MaxScrolls {
		logger.Warn("scroll limit reached, listing may be incomplete", "max_scrolls", c.opts.MaxScrolls)
	}

	anchors, err := page.VideoAnchors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read video links: %w", err)
	}

	links := ExtractLinks(anchors)
	logger.Info("collected video links", "anchors", len(anchors), "videos", len(links), "scrolls", scrolls)
	if len(links) == 0 {
		return nil, ErrNoVideos
	}
	return links, nil
}
