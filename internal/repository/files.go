package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abrezinsky/electiondash/internal/models"
)

// RegistryFile is the name of the elections registry under the data root
const RegistryFile = "elections.json"

// FileStore is the file-system-backed data store. Every path it touches is
// contained in root.
type FileStore struct {
	root string
}

// New creates a FileStore rooted at dataDir, creating the directory if needed
func New(dataDir string) (*FileStore, error) {
	root, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{root: filepath.Clean(root)}, nil
}

// Root returns the absolute data root
func (s *FileStore) Root() string {
	return s.root
}

// resolve maps a root-relative path to an absolute one. Absolute inputs and
// anything that escapes the root after cleaning are rejected.
func (s *FileStore) resolve(relPath string) (string, error) {
	if relPath == "" || filepath.IsAbs(relPath) || strings.HasPrefix(relPath, "/") || strings.HasPrefix(relPath, `\`) {
		return "", ErrAccessDenied
	}
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", ErrAccessDenied
	}
	return full, nil
}

// ==================== Registry ====================

// LoadElections reads elections.json. ErrNotFound when the file is absent.
func (s *FileStore) LoadElections(ctx context.Context) ([]models.Election, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, RegistryFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var elections []models.Election
	if err := json.Unmarshal(data, &elections); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, RegistryFile, err)
	}
	return elections, nil
}

// SaveElections rewrites elections.json in full
func (s *FileStore) SaveElections(ctx context.Context, elections []models.Election) error {
	if elections == nil {
		elections = []models.Election{}
	}
	data, err := json.MarshalIndent(elections, "", "    ")
	if err != nil {
		return err
	}
	return s.WriteFile(ctx, RegistryFile, string(data))
}

// ==================== Raw files ====================

// ListFiles returns every file under the root as sorted slash-separated relative paths
func (s *FileStore) ListFiles(ctx context.Context) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile returns the content of a root-relative file
func (s *FileStore) ReadFile(ctx context.Context, relPath string) (string, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile overwrites a root-relative file, creating parent directories.
// The write is not atomic; the last writer wins.
func (s *FileStore) WriteFile(ctx context.Context, relPath, content string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(content), 0o644)
}

// MakeDir creates a root-relative directory and its parents
func (s *FileStore) MakeDir(ctx context.Context, relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(full, 0o755)
}

// Exists reports whether a root-relative path exists
func (s *FileStore) Exists(ctx context.Context, relPath string) (bool, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
