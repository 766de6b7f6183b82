// Package history records successful ingestions in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS ingestions (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    rows INTEGER NOT NULL,
    columns TEXT NOT NULL,
    delimiter TEXT NOT NULL,
    index_name TEXT NOT NULL,
    null_timestamps INTEGER NOT NULL,
    ingested_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ingested_at ON ingestions(ingested_at);
`

// Entry is one recorded ingestion.
type Entry struct {
	ID             string
	Path           string
	Rows           int
	Columns        []string
	Delimiter      rune
	IndexName      string
	NullTimestamps int
	IngestedAt     time.Time
}

// Store wraps the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path. ":memory:" is
// accepted for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// A single connection keeps an in-memory database alive and serializes
	// writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record stores e, filling in its ID and timestamp when unset.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.IngestedAt.IsZero() {
		e.IngestedAt = s.now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingestions (
			id, path, rows, columns, delimiter, index_name, null_timestamps, ingested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Path,
		e.Rows,
		strings.Join(e.Columns, "\x1f"),
		string(e.Delimiter),
		e.IndexName,
		e.NullTimestamps,
		e.IngestedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record ingestion: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, rows, columns, delimiter, index_name, null_timestamps, ingested_at
		FROM ingestions
		ORDER BY ingested_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var cols, delim string
		if err := rows.Scan(&e.ID, &e.Path, &e.Rows, &cols, &delim, &e.IndexName, &e.NullTimestamps, &e.IngestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if cols != "" {
			e.Columns = strings.Split(cols, "\x1f")
		}
		for _, r := range delim {
			e.Delimiter = r
			break
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
