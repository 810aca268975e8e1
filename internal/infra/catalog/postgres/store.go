// Package postgres implements the archive catalog on a PostgreSQL database,
// for deployments where several archive hosts share one index.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"soundcore/internal/catalog/core"
)

// Store persists catalog entries in a single Postgres table.
type Store struct {
	db *sql.DB
}

// Open connects to the database named by dsn and bootstraps the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS archive_entries (
		key             TEXT PRIMARY KEY,
		collection_type TEXT NOT NULL,
		uuid            TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL DEFAULT '',
		version         TEXT NOT NULL,
		size_bytes      BIGINT NOT NULL,
		etag            TEXT NOT NULL DEFAULT '',
		created_on      TIMESTAMPTZ NOT NULL,
		stored_at       TIMESTAMPTZ NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create archive_entries table: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Driver() core.Driver { return core.DriverPostgres }

func (s *Store) Insert(ctx context.Context, e core.Entry) error {
	if e.Key == "" {
		return fmt.Errorf("empty catalog key")
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO archive_entries
		(key, collection_type, uuid, name, version, size_bytes, etag, created_on, stored_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (key) DO NOTHING`,
		e.Key, e.Kind, e.UUID, e.Name, e.Version, e.SizeBytes, e.ETag,
		e.CreatedOn.UTC(), e.StoredAt.UTC())
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
		FROM archive_entries WHERE key = $1`, key)
	var e core.Entry
	err := row.Scan(&e.Key, &e.Kind, &e.UUID, &e.Name, &e.Version,
		&e.SizeBytes, &e.ETag, &e.CreatedOn, &e.StoredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, fmt.Errorf("catalog key %s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return core.Entry{}, err
	}
	return e, nil
}

func (s *Store) List(ctx context.Context, f core.Filter) ([]core.Entry, error) {
	query := `SELECT key, collection_type, uuid, name, version,
		size_bytes, etag, created_on, stored_at
		FROM archive_entries WHERE ($1 = '' OR collection_type = $1)
		AND ($2 = '' OR key LIKE $2 || '%')
		ORDER BY key`
	rows, err := s.db.QueryContext(ctx, query, f.Kind, f.Prefix)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []core.Entry
	for rows.Next() {
		var e core.Entry
		if err := rows.Scan(&e.Key, &e.Kind, &e.UUID, &e.Name, &e.Version,
			&e.SizeBytes, &e.ETag, &e.CreatedOn, &e.StoredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM archive_entries WHERE key = $1`, key)
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
