package repository

import (
	"context"
	"time"

	"github.com/abrezinsky/electiondash/internal/models"
)

// RegistryRepository defines access to the elections registry (elections.json)
type RegistryRepository interface {
	LoadElections(ctx context.Context) ([]models.Election, error)
	SaveElections(ctx context.Context, elections []models.Election) error
}

// CacheRepository defines typed reads of the per-election cache files.
// Every method returns ErrNotFound when no alias of the cache exists.
type CacheRepository interface {
	ReadPolls(ctx context.Context, electionID string) (*models.PollCache, error)
	ReadSecondRound(ctx context.Context, electionID string) (*models.SecondRoundCache, error)
	ReadCandidates(ctx context.Context, electionID string) (*models.CandidateCache, error)
	ReadDetailedPolls(ctx context.Context, electionID string) (*models.DetailedPollCache, error)
	ReadMap(ctx context.Context, electionID string) (*models.MapCache, time.Time, error)
	ReadPrograms(ctx context.Context, country string) (*models.ProgramCache, error)
}

// FileRepository defines raw, root-contained access used by the admin gateway
type FileRepository interface {
	ListFiles(ctx context.Context) ([]string, error)
	ReadFile(ctx context.Context, relPath string) (string, error)
	WriteFile(ctx context.Context, relPath, content string) error
	MakeDir(ctx context.Context, relPath string) error
	Exists(ctx context.Context, relPath string) (bool, error)
}

// NewsCacheRepository stores the aggregated headlines of each election
type NewsCacheRepository interface {
	GetNews(ctx context.Context, electionID string) ([]byte, time.Time, error)
	PutNews(ctx context.Context, electionID string, payload []byte, fetchedAt time.Time) error
}

// DataRepository combines every file-backed interface
type DataRepository interface {
	RegistryRepository
	CacheRepository
	FileRepository
}

// Ensure implementations satisfy their interfaces
var (
	_ DataRepository      = (*FileStore)(nil)
	_ NewsCacheRepository = (*NewsCache)(nil)
)
