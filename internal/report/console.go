package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/ytget/yt-batch/internal/model"
)

// Console markers
const (
	markSuccess = "✓"
	markFailure = "✗"
	markSkipped = "-"
)

// PrintPlan writes the pre-run summary
func PrintPlan(w io.Writer, rng model.Range, folder string) {
	fmt.Fprintf(w, "Downloading videos %d to %d (%d videos)\n", rng.Start, rng.End, rng.Len())
	fmt.Fprintf(w, "Files will be saved to: %s\n", folder)
	fmt.Fprintf(w, "Videos will be numbered from %03d to %03d\n", rng.Start, rng.End)
}

// Console reports run progress to a writer. On a terminal a progress bar
// is kept below the per-item lines.
type Console struct {
	mu          sync.Mutex
	w           io.Writer
	interactive bool
	bar         *progressbar.ProgressBar
	statuses    map[int]model.ItemStatus
}

// NewConsole creates a console reporter, enabling the progress bar when w is a terminal
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:           w,
		interactive: IsTerminal(w),
		statuses:    make(map[int]model.ItemStatus),
	}
}

// IsTerminal reports whether w is attached to a terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Status returns the last known status of the item with the given sequence
func (c *Console) Status(sequence int) model.ItemStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.statuses[sequence]; ok {
		return s
	}
	return model.ItemStatusPending
}

func (c *Console) RunStarted(rng model.Range, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.interactive {
		return
	}
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Starting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *Console) ItemStarted(item model.WorkItem, index, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[item.Sequence] = model.ItemStatusDownloading
	if c.bar != nil {
		c.bar.Describe(item.Label)
		return
	}
	fmt.Fprintf(c.w, "[%d/%d] Downloading: %s\n", index, total, item.Label)
}

func (c *Console) ItemSucceeded(item model.WorkItem) {
	c.finishItem(item.Sequence, model.ItemStatusCompleted,
		fmt.Sprintf("%s Downloaded video #%d: %s", markSuccess, item.Sequence, item.Label))
}

func (c *Console) ItemFailed(rec model.FailureRecord) {
	c.finishItem(rec.Sequence, model.ItemStatusError,
		fmt.Sprintf("%s Failed video #%d: %s", markFailure, rec.Sequence, rec.Label))
}

func (c *Console) ItemSkipped(item model.WorkItem) {
	c.finishItem(item.Sequence, model.ItemStatusSkipped,
		fmt.Sprintf("%s Skipped video #%d (already downloaded): %s", markSkipped, item.Sequence, item.Label))
}

func (c *Console) RunFinished(result model.RunResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bar != nil {
		_ = c.bar.Finish()
		c.bar = nil
	}
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, RenderSummary(result))
}

// finishItem prints line above the bar and advances it
func (c *Console) finishItem(sequence int, status model.ItemStatus, line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[sequence] = status
	if c.bar == nil {
		fmt.Fprintln(c.w, line)
		return
	}
	_ = c.bar.Clear()
	fmt.Fprintln(c.w, line)
	_ = c.bar.Add(1)
}
