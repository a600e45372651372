package collect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chromedp/chromedp"
)

// Page is the browser surface the collector needs
type Page interface {
	Navigate(ctx context.Context, url string) error
	ScrollHeight(ctx context.Context) (int64, error)
	ScrollToBottom(ctx context.Context) error
	VideoAnchors(ctx context.Context) ([]Anchor, error)
}

// Page scripts
const (
	scrollHeightJS   = `document.documentElement.scrollHeight`
	scrollToBottomJS = `window.scrollTo(0, document.documentElement.scrollHeight)`
	videoAnchorsJS   = `Array.from(document.querySelectorAll('#video-title-link')).map(a => ({
  title: a.getAttribute('title') || '',
  href: a.getAttribute('href') ? a.href : ''
}))`
)

// BrowserOptions controls the Chrome instance
type BrowserOptions struct {
	Headless    bool
	BrowserPath string
}

// chromePage drives one tab through chromedp. Every call runs against the
// browser context, ctx arguments only bound the wait.
type chromePage struct {
	browserCtx context.Context
}

// openChrome starts a browser bound to parent. The returned cancel func
// shuts it down.
func openChrome(parent context.Context, opts BrowserOptions, logger *slog.Logger) (Page, context.CancelFunc, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("log-level", "3"),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.BrowserPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.BrowserPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	// start the browser now so a missing binary fails here
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &chromePage{browserCtx: browserCtx}, func() {
		cancelBrowser()
		cancelAlloc()
	}, nil
}

func (p *chromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, chromedp.Navigate(url))
}

func (p *chromePage) ScrollHeight(ctx context.Context) (int64, error) {
	var height float64
	if err := p.run(ctx, chromedp.Evaluate(scrollHeightJS, &height)); err != nil {
		return 0, err
	}
	return int64(height), nil
}

func (p *chromePage) ScrollToBottom(ctx context.Context) error {
	return p.run(ctx, chromedp.Evaluate(scrollToBottomJS, nil))
}

func (p *chromePage) VideoAnchors(ctx context.Context) ([]Anchor, error) {
	var anchors []Anchor
	if err := p.run(ctx, chromedp.Evaluate(videoAnchorsJS, &anchors)); err != nil {
		return nil, err
	}
	return anchors, nil
}
