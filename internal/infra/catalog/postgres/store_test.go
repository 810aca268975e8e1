package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"soundcore/internal/catalog/core"
)

// Integration test against a live database. Set
// SOUNDCORE_CATALOG_POSTGRES_DSN to run it, e.g. in CI with a postgres
// service container.
func openLive(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("SOUNDCORE_CATALOG_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SOUNDCORE_CATALOG_POSTGRES_DSN not set")
	}
	s, err := Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLiveInsertGetListDelete(t *testing.T) {
	ctx := context.Background()
	s := openLive(t)

	key := fmt.Sprintf("test/%d.json", time.Now().UnixNano())
	e := core.Entry{
		Key:       key,
		Kind:      "annotation_project",
		Version:   "1.1.0",
		SizeBytes: 256,
		CreatedOn: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		StoredAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.Insert(ctx, e); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	t.Cleanup(func() { _, _ = s.Delete(ctx, key) })

	if err := s.Insert(ctx, e); !errors.Is(err, core.ErrExists) {
		t.Fatalf("duplicate Insert = %v, want ErrExists", err)
	}

	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Kind != e.Kind || got.SizeBytes != e.SizeBytes || !got.CreatedOn.Equal(e.CreatedOn) {
		t.Fatalf("Get = %+v, want %+v", got, e)
	}

	entries, err := s.List(ctx, core.Filter{Prefix: "test/", Kind: "annotation_project"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var found bool
	for _, le := range entries {
		if le.Key == key {
			found = true
		}
	}
	if !found {
		t.Fatalf("List did not return %s: %+v", key, entries)
	}

	deleted, err := s.Delete(ctx, key)
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}
