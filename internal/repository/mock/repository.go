package mock

import (
	"context"
	"time"

	"github.com/abrezinsky/electiondash/internal/models"
	"github.com/abrezinsky/electiondash/internal/repository"
)

// Repository wraps a real data repository and allows injecting errors for testing.
//
// Usage:
//
//	store := testutil.NewTestStore(t)
//	mockRepo := mock.NewRepository(store)
//	mockRepo.ReadPollsError = errors.New("disk error")
//	svc := services.NewDataService(log, mockRepo, elections)
type Repository struct {
	repository.DataRepository

	// ===== Registry Errors =====
	LoadElectionsError error
	SaveElectionsError error

	// ===== Cache Errors =====
	ReadPollsError         error
	ReadSecondRoundError   error
	ReadCandidatesError    error
	ReadDetailedPollsError error
	ReadMapError           error
	ReadProgramsError      error

	// ===== File Errors =====
	ListFilesError error
	ReadFileError  error
	WriteFileError error
	MakeDirError   error
	ExistsError    error

	// Writes records every successful WriteFile path, in order
	Writes []string
}

// NewRepository creates a new mock repository wrapping the given repository
func NewRepository(repo repository.DataRepository) *Repository {
	return &Repository{DataRepository: repo}
}

func (m *Repository) LoadElections(ctx context.Context) ([]models.Election, error) {
	if m.LoadElectionsError != nil {
		return nil, m.LoadElectionsError
	}
	return m.DataRepository.LoadElections(ctx)
}

func (m *Repository) SaveElections(ctx context.Context, elections []models.Election) error {
	if m.SaveElectionsError != nil {
		return m.SaveElectionsError
	}
	return m.DataRepository.SaveElections(ctx, elections)
}

func (m *Repository) ReadPolls(ctx context.Context, electionID string) (*models.PollCache, error) {
	if m.ReadPollsError != nil {
		return nil, m.ReadPollsError
	}
	return m.DataRepository.ReadPolls(ctx, electionID)
}

func (m *Repository) ReadSecondRound(ctx context.Context, electionID string) (*models.SecondRoundCache, error) {
	if m.ReadSecondRoundError != nil {
		return nil, m.ReadSecondRoundError
	}
	return m.DataRepository.ReadSecondRound(ctx, electionID)
}

func (m *Repository) ReadCandidates(ctx context.Context, electionID string) (*models.CandidateCache, error) {
	if m.ReadCandidatesError != nil {
		return nil, m.ReadCandidatesError
	}
	return m.DataRepository.ReadCandidates(ctx, electionID)
}

func (m *Repository) ReadDetailedPolls(ctx context.Context, electionID string) (*models.DetailedPollCache, error) {
	if m.ReadDetailedPollsError != nil {
		return nil, m.ReadDetailedPollsError
	}
	return m.DataRepository.ReadDetailedPolls(ctx, electionID)
}

func (m *Repository) ReadMap(ctx context.Context, electionID string) (*models.MapCache, time.Time, error) {
	if m.ReadMapError != nil {
		return nil, time.Time{}, m.ReadMapError
	}
	return m.DataRepository.ReadMap(ctx, electionID)
}

func (m *Repository) ReadPrograms(ctx context.Context, country string) (*models.ProgramCache, error) {
	if m.ReadProgramsError != nil {
		return nil, m.ReadProgramsError
	}
	return m.DataRepository.ReadPrograms(ctx, country)
}

func (m *Repository) ListFiles(ctx context.Context) ([]string, error) {
	if m.ListFilesError != nil {
		return nil, m.ListFilesError
	}
	return m.DataRepository.ListFiles(ctx)
}

func (m *Repository) ReadFile(ctx context.Context, relPath string) (string, error) {
	if m.ReadFileError != nil {
		return "", m.ReadFileError
	}
	return m.DataRepository.ReadFile(ctx, relPath)
}

func (m *Repository) WriteFile(ctx context.Context, relPath, content string) error {
	if m.WriteFileError != nil {
		return m.WriteFileError
	}
	if err := m.DataRepository.WriteFile(ctx, relPath, content); err != nil {
		return err
	}
	m.Writes = append(m.Writes, relPath)
	return nil
}

func (m *Repository) MakeDir(ctx context.Context, relPath string) error {
	if m.MakeDirError != nil {
		return m.MakeDirError
	}
	return m.DataRepository.MakeDir(ctx, relPath)
}

func (m *Repository) Exists(ctx context.Context, relPath string) (bool, error) {
	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	return m.DataRepository.Exists(ctx, relPath)
}

// Ensure Repository implements DataRepository
var _ repository.DataRepository = (*Repository)(nil)
