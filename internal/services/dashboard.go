package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrezinsky/electiondash/internal/errors"
	"github.com/abrezinsky/electiondash/internal/logger"
	"github.com/abrezinsky/electiondash/internal/models"
)

// SecondRoundView is the runoff block of the dashboard
type SecondRoundView struct {
	LastUpdate string        `json:"lastUpdate"`
	Duel       string        `json:"duel"`
	Title      string        `json:"title"`
	Candidates []models.Poll `json:"candidates"`
}

// Dashboard is the aggregated view model of one election
type Dashboard struct {
	Election         models.Election           `json:"election"`
	Config           ElectionConfig            `json:"config"`
	DaysRemaining    int                       `json:"daysRemaining"`
	FlagURL          string                    `json:"flagUrl,omitempty"`
	Polls            *models.PollCache         `json:"polls"`
	SecondRound      SecondRoundView           `json:"secondRound"`
	Candidates       []models.Candidate        `json:"candidates"`
	CandidatesUpdate string                    `json:"candidatesUpdate"`
	DetailedPolls    *models.DetailedPollCache `json:"detailedPolls"`
	Map              *models.MapCache          `json:"map,omitempty"`
	Programs         *models.ProgramCache      `json:"programs"`
}

// DashboardService aggregates every cache of an election into one view
type DashboardService struct {
	log       logger.Logger
	elections ElectionServicer
	data      DataServicer
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(log logger.Logger, elections ElectionServicer, data DataServicer) *DashboardService {
	return &DashboardService{log: log, elections: elections, data: data, now: time.Now}
}

// Dashboard builds the view of an election; the registry default when
// electionID is empty. Sources are read concurrently and a failing source
// leaves its block empty. Only when every source fails is an error returned.
func (s *DashboardService) Dashboard(ctx context.Context, electionID string) (*Dashboard, error) {
	election, err := s.resolveElection(ctx, electionID)
	if err != nil {
		return nil, err
	}

	cfg := ConfigFor(election.Type)
	view := &Dashboard{
		Election:      *election,
		Config:        cfg,
		DaysRemaining: DaysRemaining(election.TargetDate, s.now()),
		FlagURL:       FlagURL(election.Country),
		Polls:         &models.PollCache{Candidates: []models.Poll{}},
		SecondRound:   SecondRoundView{Candidates: []models.Poll{}},
		Candidates:    []models.Candidate{},
		DetailedPolls: emptyDetailedPolls(),
		Programs:      emptyPrograms(),
	}

	var (
		polls      *models.PollCache
		r2         *models.SecondRoundCache
		candidates *models.CandidateCache
		sources    int32
		failures   atomic.Int32
	)
	id := election.ID

	// Each source logs its own failure and returns nil so the others finish.
	var g errgroup.Group
	fetch := func(kind string, fn func() error) {
		sources++
		g.Go(func() error {
			if err := fn(); err != nil {
				failures.Add(1)
				s.log.Warn("Dashboard source failed", "election", id, "kind", kind, "error", err)
			}
			return nil
		})
	}

	fetch("polls", func() (err error) {
		polls, err = s.data.Polls(ctx, id)
		return err
	})
	fetch("polls-r2", func() (err error) {
		r2, err = s.data.SecondRound(ctx, id)
		return err
	})
	fetch("candidates", func() (err error) {
		candidates, err = s.data.Candidates(ctx, id)
		return err
	})
	fetch("detailed-polls", func() error {
		detailed, err := s.data.DetailedPolls(ctx, id)
		if err == nil {
			view.DetailedPolls = detailed
		}
		return err
	})
	fetch("programs", func() error {
		programs, err := s.data.Programs(ctx, election.Country, id)
		if err == nil {
			view.Programs = programs
		}
		return err
	})
	if election.Type == models.Municipal {
		fetch("map", func() error {
			m, err := s.data.Map(ctx, id)
			if err == nil {
				view.Map = m
			}
			return err
		})
	}

	_ = g.Wait()
	if failures.Load() == sources {
		return nil, ErrAllSourcesFailed
	}

	if polls != nil {
		view.Polls = polls
	}
	if r2 != nil {
		view.SecondRound = SecondRoundView{
			LastUpdate: r2.LastUpdate,
			Duel:       r2.Duel,
			Title:      SecondRoundTitle(r2.Duel),
			Candidates: SortPollsByScore(r2.Candidates),
		}
	} else {
		view.SecondRound.Title = SecondRoundTitle("")
	}
	if candidates != nil {
		pollSource := cfg.EnrichmentPolls(view.Polls.Candidates, view.SecondRound.Candidates)
		view.Candidates = EnrichCandidates(candidates.Candidates, pollSource)
		view.CandidatesUpdate = candidates.LastUpdate
	}
	return view, nil
}

// resolveElection finds the election to display. Ids missing from the
// registry are still served, with presidential settings.
func (s *DashboardService) resolveElection(ctx context.Context, electionID string) (*models.Election, error) {
	if electionID == "" {
		return s.elections.DefaultElection(ctx)
	}
	if !models.ValidIdentifier(electionID) {
		return nil, ErrInvalidElectionID
	}
	election, err := s.elections.GetElection(ctx, electionID)
	if err == nil {
		return election, nil
	}
	if errors.Is(err, errors.ErrNotFound) {
		return &models.Election{ID: electionID, Name: electionID, Type: models.Presidential}, nil
	}
	return nil, err
}

// SecondRoundTitle is the heading of the runoff chart
func SecondRoundTitle(duel string) string {
	if duel == "" {
		duel = "Simulation Duel"
	}
	return "Second Tour – " + duel
}

// DaysRemaining counts whole days, rounded up, until a YYYY-MM-DD date.
// Past, empty or invalid dates give 0.
func DaysRemaining(targetDate string, now time.Time) int {
	if targetDate == "" {
		return 0
	}
	target, err := time.Parse("2006-01-02", targetDate)
	if err != nil {
		target, err = time.Parse(time.RFC3339, targetDate)
		if err != nil {
			return 0
		}
	}
	days := math.Ceil(target.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// FlagURL returns a flag image URL for an ISO 3166-1 alpha-2 country code
func FlagURL(country string) string {
	if country == "" {
		return ""
	}
	return fmt.Sprintf("https://flagcdn.com/24x18/%s.png", strings.ToLower(country))
}
