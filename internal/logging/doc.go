// Package logging assembles the structured slog loggers used by the CLI.
//
// It owns console and JSON handler construction, level parsing and output
// routing (stdout, stderr or files), plus a few attribute helpers so batch
// code tags log lines with the same keys everywhere.
package logging
