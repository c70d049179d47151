package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/abrezinsky/electiondash/internal/logger"
	"github.com/abrezinsky/electiondash/internal/models"
	"github.com/abrezinsky/electiondash/internal/repository"
)

// DefaultCountry is used for programs when neither country nor election gives one
const DefaultCountry = "FR"

// MapTimeLayout formats the map cache modification time ("14/03/2026 à 09:30")
const MapTimeLayout = "02/01/2006 à 15:04"

// DataServiceRepository defines the repository methods needed by DataService
type DataServiceRepository interface {
	repository.RegistryRepository
	repository.CacheRepository
}

// DataService serves the per-election caches. Missing or unreadable caches
// degrade to defaults and are never reported to the caller.
type DataService struct {
	log  logger.Logger
	repo DataServiceRepository
}

// NewDataService creates a new DataService
func NewDataService(log logger.Logger, repo DataServiceRepository) *DataService {
	return &DataService{log: log, repo: repo}
}

// degraded logs why a cache read fell back to its default. It returns the
// error when the caller must still fail (canceled request).
func (s *DataService) degraded(electionID, kind string, err error) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, repository.ErrNotFound):
		s.log.Debug("Cache missing, serving default", "election", electionID, "kind", kind)
	default:
		s.log.Warn("Cache unreadable, serving default", "election", electionID, "kind", kind, "error", err)
	}
	return nil
}

// Polls returns the first-round polls of an election
func (s *DataService) Polls(ctx context.Context, electionID string) (*models.PollCache, error) {
	if !models.ValidIdentifier(electionID) {
		return nil, ErrInvalidElectionID
	}
	cache, err := s.repo.ReadPolls(ctx, electionID)
	if err != nil {
		if err := s.degraded(electionID, string(repository.KindPolls), err); err != nil {
			return nil, err
		}
		return defaultPolls(electionID), nil
	}
	return cache, nil
}

// SecondRound returns the runoff polls of an election
func (s *DataService) SecondRound(ctx context.Context, electionID string) (*models.SecondRoundCache, error) {
	if !models.ValidIdentifier(electionID) {
		return nil, ErrInvalidElectionID
	}
	cache, err := s.repo.ReadSecondRound(ctx, electionID)
	if err != nil {
		if err := s.degraded(electionID, string(repository.KindSecondRound), err); err != nil {
			return nil, err
		}
		return defaultSecondRound(electionID), nil
	}
	return cache, nil
}

// Candidates returns the declared candidates, parties or cities of an election
func (s *DataService) Candidates(ctx context.Context, electionID string) (*models.CandidateCache, error) {
	if !models.ValidIdentifier(electionID) {
		return nil, ErrInvalidElectionID
	}
	cache, err := s.repo.ReadCandidates(ctx, electionID)
	if err != nil {
		if err := s.degraded(electionID, string(repository.KindCandidates), err); err != nil {
			return nil, err
		}
		return defaultCandidates(electionID), nil
	}
	return cache, nil
}

// DetailedPolls returns the historical poll archive of an election
func (s *DataService) DetailedPolls(ctx context.Context, electionID string) (*models.DetailedPollCache, error) {
	if !models.ValidIdentifier(electionID) {
		return nil, ErrInvalidElectionID
	}
	cache, err := s.repo.ReadDetailedPolls(ctx, electionID)
	if err != nil {
		if err := s.degraded(electionID, string(repository.KindDetailedPolls), err); err != nil {
			return nil, err
		}
		return emptyDetailedPolls(), nil
	}
	return cache, nil
}

// Map returns the city markers of a municipal election. LastUpdate is the
// cache file modification time.
func (s *DataService) Map(ctx context.Context, electionID string) (*models.MapCache, error) {
	if !models.ValidIdentifier(electionID) {
		return nil, ErrInvalidElectionID
	}
	cache, modTime, err := s.repo.ReadMap(ctx, electionID)
	if err != nil {
		if err := s.degraded(electionID, string(repository.KindMap), err); err != nil {
			return nil, err
		}
		return emptyMap(), nil
	}
	cache.LastUpdate = FormatMapTime(modTime)
	return cache, nil
}

// FormatMapTime renders a modification time in local time, "Jamais" when zero
func FormatMapTime(t time.Time) string {
	if t.IsZero() {
		return neverLabel
	}
	return t.Local().Format(MapTimeLayout)
}

// Programs returns the party programs of a country. The country comes from
// the country argument, else from the registry entry of electionID, else FR.
func (s *DataService) Programs(ctx context.Context, country, electionID string) (*models.ProgramCache, error) {
	if country != "" && !models.ValidIdentifier(country) {
		return nil, ErrInvalidCountry
	}
	if electionID != "" && !models.ValidIdentifier(electionID) {
		return nil, ErrInvalidElectionID
	}

	if country == "" && electionID != "" {
		country = s.countryOf(ctx, electionID)
	}
	if country == "" {
		country = DefaultCountry
	}

	cache, err := s.repo.ReadPrograms(ctx, country)
	if err != nil {
		if err := s.degraded(electionID, "programs/"+country, err); err != nil {
			return nil, err
		}
		return emptyPrograms(), nil
	}

	for i := range cache.Programs {
		for j := range cache.Programs[i].Categories {
			cat := &cache.Programs[i].Categories[j]
			if cat.Icon == "" {
				cat.Icon = CategoryIcon(cat.Name)
			}
			if cat.Measures == nil {
				cat.Measures = []models.ProgramMeasure{}
			}
		}
	}
	return cache, nil
}

// countryOf looks up the country of a registered election; "" when unknown
func (s *DataService) countryOf(ctx context.Context, electionID string) string {
	elections, err := s.repo.LoadElections(ctx)
	if err != nil {
		if !stderrors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Failed to look up election country", "election", electionID, "error", err)
		}
		return ""
	}
	for _, e := range elections {
		if e.ID == electionID {
			return e.Country
		}
	}
	return ""
}
