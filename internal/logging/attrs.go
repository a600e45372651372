package logging

import "log/slog"

// Attribute keys shared by batch components
const (
	FieldRunID    = "run_id"
	FieldSequence = "sequence"
	FieldLabel    = "label"
	FieldURL      = "url"
	FieldPath     = "path"
	FieldAttempt  = "attempt"
	FieldBackend  = "backend"
)

func RunID(id string) slog.Attr { return slog.String(FieldRunID, id) }

func Sequence(n int) slog.Attr { return slog.Int(FieldSequence, n) }

func Label(label string) slog.Attr { return slog.String(FieldLabel, label) }

func URL(u string) slog.Attr { return slog.String(FieldURL, u) }

func Path(p string) slog.Attr { return slog.String(FieldPath, p) }

func Attempt(n int) slog.Attr { return slog.Int(FieldAttempt, n) }

func Backend(name string) slog.Attr { return slog.String(FieldBackend, name) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
