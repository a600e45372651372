// Package batch implements the range-bounded batch processor: it selects a
// numbered window of work items, runs each one through a processing function
// strictly in order, isolates every per-item failure and records it in an
// append-only failure log before moving on.
package batch
