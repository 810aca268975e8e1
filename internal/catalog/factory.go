package catalog

import (
	"context"
	"fmt"
	"os"

	memorystore "soundcore/internal/infra/catalog/memory"
	postgresstore "soundcore/internal/infra/catalog/postgres"
	sqlitestore "soundcore/internal/infra/catalog/sqlite"
)

// Open selects a Store implementation using environment variables.
//
//	SOUNDCORE_CATALOG_DRIVER: sqlite|postgres|memory (default sqlite)
//	SOUNDCORE_CATALOG_SQLITE_PATH: database file when driver=sqlite
//	SOUNDCORE_CATALOG_POSTGRES_DSN: connection string when driver=postgres
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("SOUNDCORE_CATALOG_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverSQLite:
		return NewSQLite(ctx, os.Getenv("SOUNDCORE_CATALOG_SQLITE_PATH"))
	case DriverPostgres:
		dsn := os.Getenv("SOUNDCORE_CATALOG_POSTGRES_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("SOUNDCORE_CATALOG_POSTGRES_DSN required for postgres driver")
		}
		return NewPostgres(ctx, dsn)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", driver)
	}
}

// NewMemory returns an in-memory catalog suitable for tests.
func NewMemory() Store { return memorystore.New() }

// NewSQLite returns a catalog backed by a SQLite database file.
func NewSQLite(ctx context.Context, path string) (Store, error) {
	return sqlitestore.Open(ctx, path)
}

// NewPostgres returns a catalog backed by a PostgreSQL database.
func NewPostgres(ctx context.Context, dsn string) (Store, error) {
	return postgresstore.Open(ctx, dsn)
}
