package collect

import (
	"context"
	"fmt"
	"time"
)

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// ScrollUntilStable scrolls page to the bottom until the document height
// stops growing or maxScrolls is reached. It returns the number of scrolls.
func ScrollUntilStable(ctx context.Context, page Page, pause time.Duration, maxScrolls int, sleep SleepFunc) (int, error) {
	if sleep == nil {
		sleep = sleepContext
	}

	last, err := page.ScrollHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("read scroll height: %w", err)
	}

	scrolls := 0
	for maxScrolls <= 0 || scrolls < maxScrolls {
		if err := page.ScrollToBottom(ctx); err != nil {
			return scrolls, fmt.Errorf("scroll: %w", err)
		}
		scrolls++

		if err := sleep(ctx, pause); err != nil {
			return scrolls, err
		}

		height, err := page.ScrollHeight(ctx)
		if err != nil {
			return scrolls, fmt.Errorf("read scroll height: %w", err)
		}
		if height == last {
			break
		}
		last = height
	}
	return scrolls, nil
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
