// Package recents provides the SQLite-backed history of files opened by
// code. Only open history is persisted; the path↔code index itself is
// rebuilt by rehashing on every load.
package recents

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/raido/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS recents (
	path      TEXT PRIMARY KEY,
	code      TEXT NOT NULL,
	opened_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_recents_opened_at ON recents(opened_at);
`

// Store wraps a sql.DB with recents-specific operations.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("recents: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("recents: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("recents: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// RecordOpen upserts an open action for path, refreshing its timestamp.
func (s *Store) RecordOpen(path, code string, openedAt time.Time) error {
	_, err := s.conn.Exec(`
		INSERT INTO recents (path, code, opened_at)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			code      = excluded.code,
			opened_at = excluded.opened_at
	`, path, code, openedAt)
	if err != nil {
		return fmt.Errorf("recents: record open: %w", err)
	}
	return nil
}

// List returns up to limit entries, most recently opened first.
func (s *Store) List(limit int) ([]models.RecentEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(`
		SELECT path, code, opened_at
		FROM recents
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recents: list: %w", err)
	}
	defer rows.Close()

	var out []models.RecentEntry
	for rows.Next() {
		var e models.RecentEntry
		if err := rows.Scan(&e.Path, &e.Code, &e.OpenedAt); err != nil {
			return nil, fmt.Errorf("recents: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Forget removes a path from the history, e.g. after a delete event.
func (s *Store) Forget(path string) error {
	_, err := s.conn.Exec(`DELETE FROM recents WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("recents: forget: %w", err)
	}
	return nil
}
