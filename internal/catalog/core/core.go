// Package core defines the archive catalog abstraction: an index of archived
// exchange documents keyed by blob key, so listings and lookups do not need
// to download and parse every stored document.
package core

import (
	"context"
	"errors"
	"time"
)

// Driver identifies a concrete catalog backend.
type Driver string

const (
	// DriverMemory is the in-process backend used in tests.
	DriverMemory Driver = "memory"
	// DriverSQLite is the embedded single-file backend (default, dev).
	DriverSQLite Driver = "sqlite"
	// DriverPostgres is the shared server backend.
	DriverPostgres Driver = "postgres"
)

// Entry is one catalog row describing an archived document.
type Entry struct {
	Key       string    `json:"key"`
	Kind      string    `json:"collection_type"`
	UUID      string    `json:"uuid,omitempty"`
	Name      string    `json:"name,omitempty"`
	Version   string    `json:"version"`
	SizeBytes int64     `json:"size_bytes"`
	ETag      string    `json:"etag,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	StoredAt  time.Time `json:"stored_at"`
}

// Filter narrows List results. Zero value matches everything.
type Filter struct {
	Kind   string
	Prefix string
}

// Store is the interface every catalog backend implements. Insert must fail
// if the key is already cataloged.
type Store interface {
	Insert(ctx context.Context, e Entry) error
	Get(ctx context.Context, key string) (Entry, error)
	// List returns matching entries ordered by key.
	List(ctx context.Context, f Filter) ([]Entry, error)
	// Delete removes an entry. Returns (false, nil) if not found.
	Delete(ctx context.Context, key string) (bool, error)
	Close() error
	Driver() Driver
}

// ErrNotFound is the sentinel backends wrap when a key is not cataloged.
var ErrNotFound = errors.New("catalog: not found")

// ErrExists is the sentinel backends wrap when inserting a duplicate key.
var ErrExists = errors.New("catalog: entry already exists")
