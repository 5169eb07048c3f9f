// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history.go
// Summary: SQLite store of launch counts used to rank launcher entries.
//
// Each mode keeps its own counts. The store records:
//   - how often an entry was accepted
//   - when it was last accepted

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texellaunch/internal/logging"
)

// Current schema version - increment this when the launches table changes.
const schemaVersion = 1

const schema = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS launches (
    mode      TEXT NOT NULL,
    name      TEXT NOT NULL,
    count     INTEGER NOT NULL DEFAULT 0,
    last_used INTEGER NOT NULL,       -- UnixNano
    PRIMARY KEY (mode, name)
);

CREATE INDEX IF NOT EXISTS idx_launches_last_used ON launches(mode, last_used);
`

// Entry is one history row.
type Entry struct {
	Name     string
	Count    int
	LastUsed time.Time
}

// Store records launches in a SQLite database.
type Store struct {
	db   *sql.DB
	mode string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMode scopes the store to a launcher mode. The default is "run".
func WithMode(mode string) Option {
	return func(s *Store) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens or creates the history database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}

	s := &Store{db: db, mode: "run", now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// checkSchema stamps fresh databases and rejects newer ones.
func checkSchema(ctx context.Context, db *sql.DB) error {
	var current int
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	switch {
	case current == schemaVersion:
		return nil
	case current > schemaVersion:
		return fmt.Errorf("database schema %d is newer than supported %d", current, schemaVersion)
	}

	log := logging.Component("history")
	log.Info().Int("from", current).Int("to", schemaVersion).Msg("migrating history schema")
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
	return err
}

// Mode returns the launcher mode the store is scoped to.
func (s *Store) Mode() string { return s.mode }

// Record bumps the launch count of name.
func (s *Store) Record(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO launches (mode, name, count, last_used) VALUES (?, ?, 1, ?)
ON CONFLICT(mode, name) DO UPDATE SET count = count + 1, last_used = excluded.last_used`,
		s.mode, name, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("record %q: %w", name, err)
	}
	return nil
}

// Counts returns the launch count of every recorded entry.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, count FROM launches WHERE mode = ?", s.mode)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan counts: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// Recent returns up to limit entries, most recently used first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT name, count, last_used FROM launches
WHERE mode = ? ORDER BY last_used DESC, name LIMIT ?`, s.mode, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.Name, &e.Count, &ts); err != nil {
			return nil, fmt.Errorf("scan recent: %w", err)
		}
		e.LastUsed = time.Unix(0, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Forget removes name from the history.
func (s *Store) Forget(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM launches WHERE mode = ? AND name = ?", s.mode, name); err != nil {
		return fmt.Errorf("forget %q: %w", name, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
