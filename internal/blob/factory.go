package blob

import (
	"context"
	"fmt"
	"os"

	fsstore "soundcore/internal/infra/blob/fs"
	memorystore "soundcore/internal/infra/blob/memory"
	s3store "soundcore/internal/infra/blob/s3"
)

// Open selects a Store implementation using environment variables.
//
//	SOUNDCORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	SOUNDCORE_BLOB_FS_ROOT: directory root when driver=fs (default ./archive-data)
//	(S3 specific variables documented in the s3 backend)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("SOUNDCORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("SOUNDCORE_BLOB_FS_ROOT"))
	case DriverS3:
		return s3store.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", driver)
	}
}

// NewFilesystem returns a filesystem store rooted at dir.
func NewFilesystem(dir string) (Store, error) { return fsstore.New(dir) }

// NewMemory returns an in-memory store suitable for tests.
func NewMemory() Store { return memorystore.New() }

// S3Config re-exports the S3 backend configuration.
type S3Config = s3store.Config

// NewS3 constructs an S3-backed store from explicit configuration.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) { return s3store.New(ctx, cfg) }

// NewMockS3ForTests exposes the in-memory S3 fake for cross-package tests.
func NewMockS3ForTests() Store { return s3store.NewMockForTests() }
