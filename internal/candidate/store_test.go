package candidate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/storage"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestPutAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	c := Candidate{
		ID: "cand-1", Version: 1, SubmitterID: "user-1",
		Title: "Ten Kubernetes Pitfalls", Content: "body", Category: "devops",
	}
	if err := s.Put(ctx, c); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "cand-1", 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != c.Title || got.Content != c.Content || got.Category != c.Category {
		t.Fatalf("got %+v, want %+v", got, c)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not backfilled")
	}
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "missing", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestVersionsAreDistinct(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	v1 := Candidate{ID: "cand-1", Version: 1, SubmitterID: "u", Title: "first", Content: "a"}
	v2 := Candidate{ID: "cand-1", Version: 2, SubmitterID: "u", Title: "second", Content: "b"}
	if err := s.Put(ctx, v1); err != nil {
		t.Fatalf("put v1: %v", err)
	}
	if err := s.Put(ctx, v2); err != nil {
		t.Fatalf("put v2: %v", err)
	}

	got, err := s.Get(ctx, "cand-1", 2)
	if err != nil {
		t.Fatalf("get v2: %v", err)
	}
	if got.Title != "second" {
		t.Fatalf("got %q, want second", got.Title)
	}

	// A version is immutable once written.
	if err := s.Put(ctx, v1); err == nil {
		t.Fatal("overwriting an existing version should fail")
	}
}

func TestEmptyCategoryRoundTrips(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	c := Candidate{ID: "cand-1", Version: 1, SubmitterID: "u", Title: "t", Content: "c"}
	if err := s.Put(ctx, c); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "cand-1", 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Category != "" {
		t.Fatalf("category = %q, want empty", got.Category)
	}
}
