package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestNewsCache(t *testing.T) *NewsCache {
	t.Helper()
	c, err := NewNewsCache(":memory:")
	if err != nil {
		t.Fatalf("failed to create news cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewsCache_GetMissing(t *testing.T) {
	c := newTestNewsCache(t)
	_, _, err := c.GetNews(context.Background(), "france-pres-2027")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewsCache_PutThenGet(t *testing.T) {
	c := newTestNewsCache(t)
	ctx := context.Background()
	fetched := time.UnixMilli(1767225600000)

	if err := c.PutNews(ctx, "e1", []byte(`[{"id":"a"}]`), fetched); err != nil {
		t.Fatalf("PutNews failed: %v", err)
	}
	payload, at, err := c.GetNews(ctx, "e1")
	if err != nil {
		t.Fatalf("GetNews failed: %v", err)
	}
	if string(payload) != `[{"id":"a"}]` {
		t.Errorf("unexpected payload %s", payload)
	}
	if !at.Equal(fetched) {
		t.Errorf("expected %v, got %v", fetched, at)
	}
}

func TestNewsCache_PutReplaces(t *testing.T) {
	c := newTestNewsCache(t)
	ctx := context.Background()

	_ = c.PutNews(ctx, "e1", []byte(`[]`), time.UnixMilli(1))
	if err := c.PutNews(ctx, "e1", []byte(`[1]`), time.UnixMilli(2)); err != nil {
		t.Fatalf("PutNews failed: %v", err)
	}
	payload, at, _ := c.GetNews(ctx, "e1")
	if string(payload) != `[1]` || at.UnixMilli() != 2 {
		t.Errorf("expected replaced entry, got %s at %d", payload, at.UnixMilli())
	}

	// Other elections are independent
	if _, _, err := c.GetNews(ctx, "e2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for e2, got %v", err)
	}
}

func TestNewNewsCache_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cache", "news.db")
	c, err := NewNewsCache(path)
	if err != nil {
		t.Fatalf("NewNewsCache failed: %v", err)
	}
	defer c.Close()

	if err := c.PutNews(context.Background(), "e1", []byte(`[]`), time.Now()); err != nil {
		t.Errorf("PutNews on file cache failed: %v", err)
	}
}
