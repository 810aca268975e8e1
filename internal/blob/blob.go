// Package blob re-exports the core blob abstractions and selects backends.
package blob

import "soundcore/internal/blob/core"

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// SignedURLOptions configures URL pre-signing.
	SignedURLOptions = core.SignedURLOptions
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface for blob storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local directory backend.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible backend.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-process test backend.
	DriverMemory = core.DriverMemory
)

// ErrUnsupported indicates an operation a driver does not support.
var ErrUnsupported = core.ErrUnsupported

// ErrNotFound indicates a key with no stored blob.
var ErrNotFound = core.ErrNotFound
