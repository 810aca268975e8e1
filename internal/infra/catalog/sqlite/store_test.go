package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"soundcore/internal/catalog/core"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entry(key, kind string) core.Entry {
	return core.Entry{
		Key:       key,
		Kind:      kind,
		UUID:      "7bd4a5f0-6f96-4f8b-9c3c-0c2f1e1f5a11",
		Name:      "spring survey",
		Version:   "1.1.0",
		SizeBytes: 1024,
		ETag:      "abc123",
		CreatedOn: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		StoredAt:  time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC),
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	want := entry("sets/survey.json", "dataset")
	if err := s.Insert(ctx, want); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got, err := s.Get(ctx, "sets/survey.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}
}

func TestInsertDuplicate(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if err := s.Insert(ctx, entry("k.json", "dataset")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Insert(ctx, entry("k.json", "dataset")); !errors.Is(err, core.ErrExists) {
		t.Fatalf("duplicate Insert = %v, want ErrExists", err)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Get(context.Background(), "absent.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Get = %v, want ErrNotFound", err)
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	for _, e := range []core.Entry{
		entry("sets/b.json", "dataset"),
		entry("runs/x.json", "model_run"),
		entry("sets/a.json", "recording_set"),
	} {
		if err := s.Insert(ctx, e); err != nil {
			t.Fatalf("Insert %s: %v", e.Key, err)
		}
	}

	all, err := s.List(ctx, core.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Key != "runs/x.json" || all[1].Key != "sets/a.json" || all[2].Key != "sets/b.json" {
		t.Fatalf("List = %+v", all)
	}

	sets, err := s.List(ctx, core.Filter{Prefix: "sets/", Kind: "dataset"})
	if err != nil {
		t.Fatalf("List(filter): %v", err)
	}
	if len(sets) != 1 || sets[0].Key != "sets/b.json" {
		t.Fatalf("List(filter) = %+v", sets)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if err := s.Insert(ctx, entry("k.json", "dataset")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	deleted, err := s.Delete(ctx, "k.json")
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	deleted, err = s.Delete(ctx, "k.json")
	if err != nil || deleted {
		t.Fatalf("second Delete = %v, %v", deleted, err)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Insert(ctx, entry("k.json", "dataset")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()
	if _, err := s2.Get(ctx, "k.json"); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
}
