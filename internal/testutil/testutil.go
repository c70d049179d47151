package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/abrezinsky/electiondash/internal/models"
	"github.com/abrezinsky/electiondash/internal/repository"
)

// NewTestStore creates a FileStore rooted in a fresh temporary data directory.
// The directory is removed when the test ends.
func NewTestStore(t *testing.T) *repository.FileStore {
	t.Helper()

	store, err := repository.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

// NewTestNewsCache creates an in-memory news cache closed at test end
func NewTestNewsCache(t *testing.T) *repository.NewsCache {
	t.Helper()

	cache, err := repository.NewNewsCache(":memory:")
	if err != nil {
		t.Fatalf("failed to create news cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

// WriteFile writes raw content below the store root, bypassing the store
func WriteFile(t *testing.T, store *repository.FileStore, rel, content string) {
	t.Helper()

	full := filepath.Join(store.Root(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// WriteJSON marshals v below the store root
func WriteJSON(t *testing.T, store *repository.FileStore, rel string, v interface{}) {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %s: %v", rel, err)
	}
	WriteFile(t, store, rel, string(data))
}

// WriteRegistry writes elections.json
func WriteRegistry(t *testing.T, store *repository.FileStore, elections ...models.Election) {
	t.Helper()
	WriteJSON(t, store, repository.RegistryFile, elections)
}

// FileExists reports whether a root-relative path exists on disk
func FileExists(t *testing.T, store *repository.FileStore, rel string) bool {
	t.Helper()

	_, err := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(rel)))
	return err == nil
}

// Score returns a pointer to v, for building poll fixtures
func Score(v float64) *float64 {
	return &v
}
