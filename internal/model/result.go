package model

import "time"

// FailureRecord describes one work item whose processing failed
type FailureRecord struct {
	Sequence  int
	Label     string
	TargetRef string
	Error     string
}

// RunResult accumulates the outcome of one batch run
type RunResult struct {
	RunID      string
	Range      Range
	Attempted  int
	Succeeded  int
	Skipped    int
	Failures   []FailureRecord
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRunResult creates an empty result for the given run
func NewRunResult(runID string, r Range) *RunResult {
	return &RunResult{
		RunID:     runID,
		Range:     r,
		Failures:  make([]FailureRecord, 0),
		StartedAt: time.Now(),
	}
}

// RecordSuccess counts a successfully processed item
func (r *RunResult) RecordSuccess() {
	r.Attempted++
	r.Succeeded++
}

// RecordFailure counts a failed item and keeps its record
func (r *RunResult) RecordFailure(rec FailureRecord) {
	r.Attempted++
	r.Failures = append(r.Failures, rec)
}

// RecordSkip counts an item that was not attempted
func (r *RunResult) RecordSkip() {
	r.Skipped++
}

// Finish stamps the completion time
func (r *RunResult) Finish() {
	r.FinishedAt = time.Now()
}

// Visited returns the number of items the run went through
func (r *RunResult) Visited() int {
	return r.Attempted + r.Skipped
}

// HasFailures checks if any item failed
func (r *RunResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// Duration returns how long the run took, zero while it is still running
func (r *RunResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
