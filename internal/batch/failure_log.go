package batch

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ytget/yt-batch/internal/model"
)

// FailureSink receives failure records as they happen
type FailureSink interface {
	Begin(rng model.Range) error
	Append(rec model.FailureRecord) error
	Close() error
}

// FailureLog is a plain text failure log. Every entry is written and synced
// before Append returns so an interrupted run keeps what it logged.
type FailureLog struct {
	path string
	mu   sync.Mutex
	file *os.File
}

// NewFailureLog creates a log that will be written to path on Begin
func NewFailureLog(path string) *FailureLog {
	return &FailureLog{path: path}
}

// Path returns the log location
func (l *FailureLog) Path() string {
	return l.path
}

// Begin truncates the log and writes the range header
func (l *FailureLog) Begin(rng model.Range) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return fmt.Errorf("failure log %s already open", l.path)
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open failure log: %w", err)
	}
	l.file = file
	return l.writeLocked(FormatHeader(rng))
}

// Append writes one failure line
func (l *FailureLog) Append(rec model.FailureRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return fmt.Errorf("failure log %s is not open", l.path)
	}
	return l.writeLocked(FormatFailure(rec))
}

// Close closes the underlying file
func (l *FailureLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *FailureLog) writeLocked(s string) error {
	if _, err := l.file.WriteString(s); err != nil {
		return fmt.Errorf("write failure log: %w", err)
	}
	return l.file.Sync()
}

// FormatHeader renders the header written once at run start
func FormatHeader(rng model.Range) string {
	return fmt.Sprintf("Failed Downloads (Range: %d-%d):\n\n", rng.Start, rng.End)
}

// FormatFailure renders one failure as a single line
func FormatFailure(rec model.FailureRecord) string {
	return fmt.Sprintf("Video #%d - \"%s\": \"%s\" - Error: %s\n",
		rec.Sequence, rec.Label, rec.TargetRef, flattenLines(rec.Error))
}

func flattenLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
