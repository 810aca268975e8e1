// Package sqlite implements the archive catalog on an embedded SQLite
// database. Timestamps are stored as RFC 3339 strings to keep the file
// readable with any sqlite shell.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"soundcore/internal/catalog/core"
)

// Store persists catalog entries in a single SQLite table.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the catalog database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "soundcore-catalog.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS archive_entries (
		key             TEXT PRIMARY KEY,
		collection_type TEXT NOT NULL,
		uuid            TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL DEFAULT '',
		version         TEXT NOT NULL,
		size_bytes      INTEGER NOT NULL,
		etag            TEXT NOT NULL DEFAULT '',
		created_on      TEXT NOT NULL,
		stored_at       TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create archive_entries table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverSQLite }

func (s *Store) Insert(ctx context.Context, e core.Entry) error {
	if e.Key == "" {
		return fmt.Errorf("empty catalog key")
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO archive_entries
		(key, collection_type, uuid, name, version, size_bytes, etag, created_on, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING`,
		e.Key, e.Kind, e.UUID, e.Name, e.Version, e.SizeBytes, e.ETag,
		formatTime(e.CreatedOn), formatTime(e.StoredAt))
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("catalog key %s: %w", e.Key, core.ErrExists)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (core.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT key, collection_type, uuid, name, version,
		size_bytes, etag, created_on, stored_at
		FROM archive_entries WHERE key = ?`, key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, fmt.Errorf("catalog key %s: %w", key, core.ErrNotFound)
	}
	return e, err
}

func (s *Store) List(ctx context.Context, f core.Filter) ([]core.Entry, error) {
	query := `SELECT key, collection_type, uuid, name, version,
		size_bytes, etag, created_on, stored_at
		FROM archive_entries WHERE 1=1`
	var args []any
	if f.Kind != "" {
		query += ` AND collection_type = ?`
		args = append(args, f.Kind)
	}
	if f.Prefix != "" {
		query += ` AND key LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(f.Prefix)+"%")
	}
	query += ` ORDER BY key`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []core.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM archive_entries WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (core.Entry, error) {
	var e core.Entry
	var createdOn, storedAt string
	if err := r.Scan(&e.Key, &e.Kind, &e.UUID, &e.Name, &e.Version,
		&e.SizeBytes, &e.ETag, &createdOn, &storedAt); err != nil {
		return core.Entry{}, err
	}
	var err error
	if e.CreatedOn, err = parseTime(createdOn); err != nil {
		return core.Entry{}, fmt.Errorf("decode created_on: %w", err)
	}
	if e.StoredAt, err = parseTime(storedAt); err != nil {
		return core.Entry{}, fmt.Errorf("decode stored_at: %w", err)
	}
	return e, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }

func escapeLike(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
