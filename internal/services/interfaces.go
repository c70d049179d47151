package services

import (
	"context"

	"github.com/abrezinsky/electiondash/internal/models"
)

// ElectionServicer defines the interface for election registry operations
type ElectionServicer interface {
	ListElections(ctx context.Context) ([]models.Election, error)
	DefaultElection(ctx context.Context) (*models.Election, error)
	GetElection(ctx context.Context, id string) (*models.Election, error)
	CreateElection(ctx context.Context, election models.Election) error
	GenerateShareQR(ctx context.Context, id, baseURL string) ([]byte, error)
}

// DataServicer defines the interface for per-election cache reads
type DataServicer interface {
	Polls(ctx context.Context, electionID string) (*models.PollCache, error)
	SecondRound(ctx context.Context, electionID string) (*models.SecondRoundCache, error)
	Candidates(ctx context.Context, electionID string) (*models.CandidateCache, error)
	DetailedPolls(ctx context.Context, electionID string) (*models.DetailedPollCache, error)
	Map(ctx context.Context, electionID string) (*models.MapCache, error)
	Programs(ctx context.Context, country, electionID string) (*models.ProgramCache, error)
}

// DashboardServicer defines the interface for the aggregated dashboard view
type DashboardServicer interface {
	Dashboard(ctx context.Context, electionID string) (*Dashboard, error)
}

// NewsServicer defines the interface for news aggregation
type NewsServicer interface {
	News(ctx context.Context, electionID string) ([]models.NewsItem, error)
}

// AdminServicer defines the interface for raw data file management
type AdminServicer interface {
	ListFiles(ctx context.Context) ([]string, error)
	ReadFile(ctx context.Context, path string) (string, error)
	WriteFile(ctx context.Context, path string, content *string) error
}

// Broadcaster defines the interface for notifying dashboards of data changes
type Broadcaster interface {
	BroadcastDataUpdate(electionID, path string)
}

// Ensure implementations satisfy their interfaces
var (
	_ ElectionServicer  = (*ElectionService)(nil)
	_ DataServicer      = (*DataService)(nil)
	_ DashboardServicer = (*DashboardService)(nil)
	_ NewsServicer      = (*NewsService)(nil)
	_ AdminServicer     = (*AdminService)(nil)
)
