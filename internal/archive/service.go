// Package archive stores encoded exchange documents in a blob store and
// indexes them in a catalog, so collections can be listed and fetched by key
// without re-parsing every stored file.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"soundcore/internal/aoef"
	"soundcore/internal/blob"
	"soundcore/internal/catalog"
	"soundcore/internal/metrics"
	"soundcore/pkg/domain"
)

// Service coordinates the blob store and the catalog. Both writes happen per
// Put; a failed catalog insert rolls the blob back so the two stay in sync.
type Service struct {
	blobs   blob.Store
	entries catalog.Store
	logger  *zap.Logger
	rec     metrics.Recorder
	codec   aoef.Options
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder. Defaults to a nop recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.rec = r
		}
	}
}

// WithCodecOptions sets the encode/decode options used by the collection
// helpers.
func WithCodecOptions(opts aoef.Options) Option {
	return func(s *Service) { s.codec = opts }
}

// New constructs a Service over the given stores.
func New(blobs blob.Store, entries catalog.Store, opts ...Option) *Service {
	s := &Service{
		blobs:   blobs,
		entries: entries,
		logger:  zap.NewNop(),
		rec:     metrics.NopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ErrExists reports a Put on an already archived key.
var ErrExists = catalog.ErrExists

// ErrNotFound reports a key with no archived document.
var ErrNotFound = catalog.ErrNotFound

func (s *Service) observe(ctx context.Context, op string, start time.Time, err error) {
	s.rec.Observe(ctx, op, err == nil, time.Since(start))
}

// Put validates and archives encoded document bytes under key. The document
// must carry the supported format version.
func (s *Service) Put(ctx context.Context, key string, doc []byte) (e catalog.Entry, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "put", start, err) }()

	info, err := aoef.Inspect(doc)
	if err != nil {
		return catalog.Entry{}, err
	}
	if info.Version != aoef.Version {
		return catalog.Entry{}, &aoef.VersionMismatchError{Got: info.Version, Want: aoef.Version}
	}
	if _, err := s.entries.Get(ctx, key); err == nil {
		return catalog.Entry{}, fmt.Errorf("archive key %s: %w", key, ErrExists)
	}

	blobInfo, err := s.blobs.Put(ctx, key, bytes.NewReader(doc), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"collection-type": string(info.Kind)},
	})
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("store blob %s: %w", key, err)
	}

	e = catalog.Entry{
		Key:       key,
		Kind:      string(info.Kind),
		Name:      info.Name,
		Version:   info.Version,
		SizeBytes: blobInfo.Size,
		ETag:      blobInfo.ETag,
		CreatedOn: info.CreatedOn,
		StoredAt:  time.Now().UTC(),
	}
	if info.UUID != uuid.Nil {
		e.UUID = info.UUID.String()
	}
	if err := s.entries.Insert(ctx, e); err != nil {
		if _, delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Error("orphaned blob after catalog failure",
				zap.String("key", key), zap.Error(delErr))
		}
		return catalog.Entry{}, fmt.Errorf("catalog %s: %w", key, err)
	}

	s.logger.Info("archived document",
		zap.String("key", key),
		zap.String("collection_type", e.Kind),
		zap.Int64("size_bytes", e.SizeBytes))
	return e, nil
}

// PutCollection encodes a collection and archives it under key.
func (s *Service) PutCollection(ctx context.Context, key string, c domain.Collection) (catalog.Entry, error) {
	doc, err := aoef.Encode(c, s.codec)
	if err != nil {
		return catalog.Entry{}, err
	}
	return s.Put(ctx, key, doc)
}

// Get returns the archived document bytes and catalog entry for key.
func (s *Service) Get(ctx context.Context, key string) (doc []byte, e catalog.Entry, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "get", start, err) }()

	e, err = s.entries.Get(ctx, key)
	if err != nil {
		return nil, catalog.Entry{}, err
	}
	_, rc, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, catalog.Entry{}, fmt.Errorf("fetch blob %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	doc, err = io.ReadAll(rc)
	if err != nil {
		return nil, catalog.Entry{}, fmt.Errorf("read blob %s: %w", key, err)
	}
	return doc, e, nil
}

// GetCollection fetches and decodes the archived document at key.
func (s *Service) GetCollection(ctx context.Context, key string) (domain.Collection, catalog.Entry, error) {
	doc, e, err := s.Get(ctx, key)
	if err != nil {
		return nil, catalog.Entry{}, err
	}
	c, err := aoef.Decode(doc, s.codec)
	if err != nil {
		return nil, catalog.Entry{}, err
	}
	return c, e, nil
}

// Info returns the catalog entry for key without touching the blob store.
func (s *Service) Info(ctx context.Context, key string) (e catalog.Entry, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "info", start, err) }()
	return s.entries.Get(ctx, key)
}

// List returns catalog entries matching the filter, ordered by key.
func (s *Service) List(ctx context.Context, f catalog.Filter) (entries []catalog.Entry, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "list", start, err) }()
	return s.entries.List(ctx, f)
}

// Delete removes the document and its catalog entry. Returns (false, nil)
// when the key is not archived.
func (s *Service) Delete(ctx context.Context, key string) (deleted bool, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "delete", start, err) }()

	deleted, err = s.entries.Delete(ctx, key)
	if err != nil {
		return false, err
	}
	if _, err := s.blobs.Delete(ctx, key); err != nil {
		return deleted, fmt.Errorf("delete blob %s: %w", key, err)
	}
	if deleted {
		s.logger.Info("removed archived document", zap.String("key", key))
	}
	return deleted, nil
}

// PresignURL returns a time-limited download URL for key when the blob
// backend supports it.
func (s *Service) PresignURL(ctx context.Context, key string, expiry time.Duration) (url string, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "presign", start, err) }()

	if _, err := s.entries.Get(ctx, key); err != nil {
		return "", err
	}
	return s.blobs.PresignURL(ctx, key, blob.SignedURLOptions{Expiry: expiry})
}

// Verify re-reads the blob at key and checks it still matches the catalog
// entry and still decodes.
func (s *Service) Verify(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "verify", start, err) }()

	e, err := s.entries.Get(ctx, key)
	if err != nil {
		return err
	}
	head, err := s.blobs.Head(ctx, key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return fmt.Errorf("blob missing for cataloged key %s: %w", key, ErrNotFound)
		}
		return err
	}
	if head.Size != e.SizeBytes {
		return fmt.Errorf("size mismatch for %s: blob %d, catalog %d", key, head.Size, e.SizeBytes)
	}
	if e.ETag != "" && head.ETag != "" && head.ETag != e.ETag {
		return fmt.Errorf("etag mismatch for %s", key)
	}
	doc, _, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if _, err := aoef.Decode(doc, s.codec); err != nil {
		return fmt.Errorf("archived document %s no longer decodes: %w", key, err)
	}
	return nil
}
