// Package report renders batch progress and results for humans: a live
// progress bar on terminals, plain lines elsewhere, and go-pretty tables
// for run summaries and list previews.
package report
