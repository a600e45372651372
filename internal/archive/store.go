package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ytget/yt-batch/internal/platform"
)

// Entry is one completed download
type Entry struct {
	TargetRef   string
	Sequence    int
	Label       string
	OutputPath  string
	RunID       string
	CompletedAt time.Time
}

// Store persists completed downloads in SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the archive database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("archive path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return nil, fmt.Errorf("ensure archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Has reports whether targetRef was downloaded before
func (s *Store) Has(ctx context.Context, targetRef string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM downloads WHERE target_ref = ?", targetRef,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query archive: %w", err)
	}
	return count > 0, nil
}

// Record stores e, replacing any earlier row for the same target
func (s *Store) Record(ctx context.Context, e Entry) error {
	if strings.TrimSpace(e.TargetRef) == "" {
		return errors.New("target ref is empty")
	}
	if e.CompletedAt.IsZero() {
		e.CompletedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO downloads (target_ref, sequence, label, output_path, run_id, completed_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(target_ref) DO UPDATE SET
            sequence = excluded.sequence,
            label = excluded.label,
            output_path = excluded.output_path,
            run_id = excluded.run_id,
            completed_at = excluded.completed_at`,
		e.TargetRef,
		e.Sequence,
		e.Label,
		nullableString(e.OutputPath),
		e.RunID,
		e.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record download: %w", err)
	}
	return nil
}

// Get returns the entry for targetRef, or nil when there is none
func (s *Store) Get(ctx context.Context, targetRef string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT target_ref, sequence, label, output_path, run_id, completed_at
        FROM downloads WHERE target_ref = ?`, targetRef)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListByRun returns the entries written by runID ordered by sequence
func (s *Store) ListByRun(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT target_ref, sequence, label, output_path, run_id, completed_at
        FROM downloads WHERE run_id = ? ORDER BY sequence`, runID)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate downloads: %w", err)
	}
	return entries, nil
}

// Count returns the number of archived downloads
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM downloads").Scan(&count); err != nil {
		return 0, fmt.Errorf("count downloads: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e          Entry
		outputPath sql.NullString
		completed  string
	)
	if err := row.Scan(&e.TargetRef, &e.Sequence, &e.Label, &outputPath, &e.RunID, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan download: %w", err)
	}
	e.OutputPath = outputPath.String
	ts, err := time.Parse(time.RFC3339Nano, completed)
	if err != nil {
		return nil, fmt.Errorf("parse completed_at: %w", err)
	}
	e.CompletedAt = ts
	return &e, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
