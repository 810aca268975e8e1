package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"soundcore/internal/blob/core"
)

func TestPutGetHeadDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	info, err := s.Put(ctx, "docs/dataset.json", strings.NewReader(`{"version":"1.1.0"}`), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if info.Size != 19 || info.ContentType != "application/json" {
		t.Fatalf("Put info = %+v", info)
	}
	if info.ETag == "" {
		t.Fatal("Put returned empty etag")
	}

	if _, err := s.Put(ctx, "docs/dataset.json", strings.NewReader("x"), core.PutOptions{}); err == nil {
		t.Fatal("second Put on the same key succeeded")
	}

	got, rc, err := s.Get(ctx, "docs/dataset.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"version":"1.1.0"}` {
		t.Fatalf("Get body = %s", body)
	}
	if got.ETag != info.ETag {
		t.Fatalf("Get etag = %s, want %s", got.ETag, info.ETag)
	}

	if _, err := s.Head(ctx, "docs/dataset.json"); err != nil {
		t.Fatalf("Head: %v", err)
	}
	if _, err := s.Head(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Head(missing) = %v, want ErrNotFound", err)
	}

	deleted, err := s.Delete(ctx, "docs/dataset.json")
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	deleted, err = s.Delete(ctx, "docs/dataset.json")
	if err != nil || deleted {
		t.Fatalf("second Delete = %v, %v", deleted, err)
	}
}

func TestListOrdersByKey(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, key := range []string{"b/two.json", "a/one.json", "b/one.json"} {
		if _, err := s.Put(ctx, key, strings.NewReader("{}"), core.PutOptions{}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}
	infos, err := s.List(ctx, "b/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "b/one.json" || infos[1].Key != "b/two.json" {
		t.Fatalf("List = %+v", infos)
	}
}

func TestPresignUnsupported(t *testing.T) {
	if _, err := New().PresignURL(context.Background(), "k", core.SignedURLOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("PresignURL = %v, want ErrUnsupported", err)
	}
}
