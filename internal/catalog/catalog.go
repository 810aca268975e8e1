// Package catalog re-exports the core catalog abstractions and selects
// backends.
package catalog

import "soundcore/internal/catalog/core"

type (
	// Driver identifies a catalog backend driver.
	Driver = core.Driver
	// Entry is one catalog row describing an archived document.
	Entry = core.Entry
	// Filter narrows List results.
	Filter = core.Filter
	// Store is the interface for catalog backends.
	Store = core.Store
)

const (
	// DriverMemory is the in-process test backend.
	DriverMemory = core.DriverMemory
	// DriverSQLite is the embedded single-file backend.
	DriverSQLite = core.DriverSQLite
	// DriverPostgres is the shared server backend.
	DriverPostgres = core.DriverPostgres
)

// ErrNotFound indicates a key with no catalog entry.
var ErrNotFound = core.ErrNotFound

// ErrExists indicates an Insert on an already cataloged key.
var ErrExists = core.ErrExists
