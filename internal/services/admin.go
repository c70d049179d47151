package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/abrezinsky/electiondash/internal/errors"
	"github.com/abrezinsky/electiondash/internal/logger"
	"github.com/abrezinsky/electiondash/internal/repository"
)

// AdminService handles raw data file management behind the admin token
type AdminService struct {
	log         logger.Logger
	repo        repository.FileRepository
	broadcaster Broadcaster
}

// NewAdminService creates a new AdminService
func NewAdminService(log logger.Logger, repo repository.FileRepository) *AdminService {
	return &AdminService{log: log, repo: repo}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *AdminService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ListFiles returns every file of the data root
func (s *AdminService) ListFiles(ctx context.Context) ([]string, error) {
	files, err := s.repo.ListFiles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to list files")
	}
	return files, nil
}

// ReadFile returns the content of a data file
func (s *AdminService) ReadFile(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", errors.InvalidInput("Missing path")
	}
	content, err := s.repo.ReadFile(ctx, path)
	if err != nil {
		return "", fileError(path, err)
	}
	return content, nil
}

// WriteFile overwrites a data file. content is required but may be empty.
func (s *AdminService) WriteFile(ctx context.Context, path string, content *string) error {
	if path == "" || content == nil {
		return ErrMissingPathOrContent
	}
	if err := s.repo.WriteFile(ctx, path, *content); err != nil {
		return fileError(path, err)
	}

	s.log.Info("Data file written", "path", path, "bytes", len(*content))
	if s.broadcaster != nil {
		s.broadcaster.BroadcastDataUpdate(ElectionOfPath(path), path)
	}
	return nil
}

// ElectionOfPath returns the election directory a data file belongs to, or ""
// for files at the root such as elections.json.
func ElectionOfPath(path string) string {
	dir, _, found := strings.Cut(strings.TrimPrefix(path, "./"), "/")
	if !found {
		return ""
	}
	return dir
}

// fileError classifies a repository error for the admin surface
func fileError(path string, err error) error {
	switch {
	case stderrors.Is(err, repository.ErrAccessDenied):
		return errors.AccessDenied(path)
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.NotFoundf("file not found: %s", path)
	default:
		return errors.Wrap(err, errors.ErrInternal, "file operation failed")
	}
}
