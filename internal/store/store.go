// Package store handles SQLite persistence.
package store

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/namehunt/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for hunt data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS hunts (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			url TEXT NOT NULL,
			length INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			available INTEGER NOT NULL,
			taken INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS found_usernames (
			id INTEGER PRIMARY KEY,
			hunt_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			found_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_hunts_ended_at ON hunts(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_found_usernames_found_at ON found_usernames(found_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertHunt stores a completed hunt and the usernames it found.
func (s *Store) InsertHunt(ctx context.Context, rec model.HuntRecord, found []model.FoundUsername) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO hunts (started_at, ended_at, url, length, attempts, available, taken)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.URL,
		rec.Length,
		rec.Attempts,
		rec.Available,
		rec.Taken,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(found) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO found_usernames (hunt_id, name, found_at) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, f := range found {
			if _, err := stmt.ExecContext(ctx, id, f.Name, f.FoundAt.Format(time.RFC3339Nano)); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListHunts returns all hunts ordered by end time.
func (s *Store) ListHunts(ctx context.Context) ([]model.HuntRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, url, length, attempts, available, taken
		 FROM hunts
		 ORDER BY ended_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var hunts []model.HuntRecord
	for rows.Next() {
		var rec model.HuntRecord
		var startedAt, endedAt string
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &rec.URL, &rec.Length, &rec.Attempts, &rec.Available, &rec.Taken); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		hunts = append(hunts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hunts, nil
}

// ListFound returns every recorded username ordered by discovery time.
func (s *Store) ListFound(ctx context.Context) ([]model.FoundUsername, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, found_at FROM found_usernames ORDER BY found_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var found []model.FoundUsername
	for rows.Next() {
		var f model.FoundUsername
		var foundAt string
		if err := rows.Scan(&f.Name, &foundAt); err != nil {
			return nil, err
		}
		if f.FoundAt, err = time.Parse(time.RFC3339Nano, foundAt); err != nil {
			return nil, err
		}
		found = append(found, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return found, nil
}

// ExportFound writes all recorded usernames to path, one per line, and
// returns how many were written. The file is replaced atomically.
func (s *Store) ExportFound(ctx context.Context, path string) (int, error) {
	found, err := s.ListFound(ctx)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "found-*.txt")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp export file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, f := range found {
		if _, err := fmt.Fprintln(writer, f.Name); err != nil {
			return 0, fmt.Errorf("failed to write export: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("failed to write export: %w", err)
	}
	return len(found), nil
}
