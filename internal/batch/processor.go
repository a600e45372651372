package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ytget/yt-batch/internal/logging"
	"github.com/ytget/yt-batch/internal/model"
)

// ProcessFunc materializes one work item. Any returned error, and any panic,
// is confined to that item.
type ProcessFunc func(ctx context.Context, item model.WorkItem) error

// Archive remembers completed items across runs
type Archive interface {
	Has(ctx context.Context, item model.WorkItem) (bool, error)
	Record(ctx context.Context, item model.WorkItem, runID string) error
}

// PanicError wraps a value recovered from a panicking ProcessFunc
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Processor runs a numbered window of work items one at a time
type Processor struct {
	sink     FailureSink
	observer Observer
	archive  Archive
	logger   *slog.Logger
	newRunID func() string
}

// Option configures a Processor
type Option func(*Processor)

// WithObserver sets the progress observer
func WithObserver(o Observer) Option {
	return func(p *Processor) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithArchive enables skipping items completed by earlier runs
func WithArchive(a Archive) Option {
	return func(p *Processor) { p.archive = a }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRunIDGenerator overrides run id generation
func WithRunIDGenerator(fn func() string) Option {
	return func(p *Processor) {
		if fn != nil {
			p.newRunID = fn
		}
	}
}

// NewProcessor creates a processor writing failures to sink
func NewProcessor(sink FailureSink, opts ...Option) *Processor {
	p := &Processor{
		sink:     sink,
		observer: NopObserver{},
		logger:   logging.NewNop(),
		newRunID: newRunID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process validates rng against items and, if valid, runs fn over the
// selected items in order. An *model.InvalidRangeError is returned before
// anything is written. Per-item failures never stop the run; they end up in
// the result and the failure sink. A cancelled ctx stops the run before the
// next item and the partial result is returned together with ctx.Err().
func (p *Processor) Process(ctx context.Context, items []model.WorkItem, rng model.Range, fn ProcessFunc) (model.RunResult, error) {
	if err := rng.Validate(len(items)); err != nil {
		return model.RunResult{Range: rng}, err
	}
	if fn == nil {
		return model.RunResult{Range: rng}, errors.New("process function is nil")
	}

	selected := Select(items, rng)
	result := model.NewRunResult(p.newRunID(), rng)
	logger := p.logger.With(logging.RunID(result.RunID))

	if err := p.sink.Begin(rng); err != nil {
		return *result, err
	}

	logger.Info("batch run started", "range", rng.String(), "items", len(selected))
	p.observer.RunStarted(rng, len(selected))

	var stopErr error
	for i, item := range selected {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}

		itemLogger := logger.With(logging.Sequence(item.Sequence), logging.Label(item.Label))

		if p.archived(ctx, item, itemLogger) {
			result.RecordSkip()
			itemLogger.Info("item already archived, skipping")
			p.observer.ItemSkipped(item)
			continue
		}

		p.observer.ItemStarted(item, i+1, len(selected))
		err := invoke(ctx, fn, item)

		if err == nil {
			result.RecordSuccess()
			itemLogger.Info("item processed")
			p.remember(ctx, item, result.RunID, itemLogger)
			p.observer.ItemSucceeded(item)
			continue
		}

		if ctx.Err() != nil {
			stopErr = ctx.Err()
			itemLogger.Warn("item interrupted", logging.Error(err))
			break
		}

		rec := model.FailureRecord{
			Sequence:  item.Sequence,
			Label:     item.Label,
			TargetRef: item.TargetRef,
			Error:     err.Error(),
		}
		result.RecordFailure(rec)
		itemLogger.Warn("item failed", logging.URL(item.TargetRef), logging.Error(err))
		if werr := p.sink.Append(rec); werr != nil {
			itemLogger.Error("failed to write failure log entry", logging.Error(werr))
		}
		p.observer.ItemFailed(rec)
	}

	result.Finish()
	logger.Info("batch run finished",
		"attempted", result.Attempted,
		"succeeded", result.Succeeded,
		"failed", len(result.Failures),
		"skipped", result.Skipped,
		"duration", result.Duration())
	p.observer.RunFinished(*result)

	return *result, stopErr
}

func (p *Processor) archived(ctx context.Context, item model.WorkItem, logger *slog.Logger) bool {
	if p.archive == nil {
		return false
	}
	ok, err := p.archive.Has(ctx, item)
	if err != nil {
		logger.Warn("archive lookup failed", logging.Error(err))
		return false
	}
	return ok
}

func (p *Processor) remember(ctx context.Context, item model.WorkItem, runID string, logger *slog.Logger) {
	if p.archive == nil {
		return
	}
	if err := p.archive.Record(ctx, item, runID); err != nil {
		logger.Warn("archive record failed", logging.Error(err))
	}
}

// invoke is the isolation boundary around a single item
func invoke(ctx context.Context, fn ProcessFunc, item model.WorkItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn(ctx, item)
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
