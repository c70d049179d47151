package services

import (
	"github.com/abrezinsky/electiondash/internal/models"
)

const (
	defaultDataLabel = "Données par défaut"
	awaitingLabel    = "En attente de données"
	neverLabel       = "Jamais"
	noProgramsLabel  = "N/A"
)

func ptr(v float64) *float64 {
	return &v
}

// defaultPolls is the first-round fallback. Only the seed election gets data.
func defaultPolls(electionID string) *models.PollCache {
	if electionID != models.SeedElectionID {
		return &models.PollCache{LastUpdate: awaitingLabel, Candidates: []models.Poll{}}
	}
	return &models.PollCache{
		LastUpdate: defaultDataLabel,
		Candidates: []models.Poll{
			{Name: "J. Bardella", FullName: "Jordan Bardella", Score: ptr(35), Color: "#800080"},
			{Name: "G. Attal", FullName: "Gabriel Attal", Score: ptr(20), Color: "#ffcc00"},
			{Name: "E. Philippe", FullName: "Édouard Philippe", Score: ptr(18), Color: "#1e40af"},
			{Name: "J.L. Mélenchon", FullName: "Jean-Luc Mélenchon", Score: ptr(15), Color: "#cc2443"},
			{Name: "X. Bertrand", FullName: "Xavier Bertrand", Score: ptr(6), Color: "#0066cc"},
			{Name: "M. Tondelier", FullName: "Marine Tondelier", Score: ptr(6), Color: "#00b25d"},
		},
	}
}

// defaultSecondRound is the runoff fallback
func defaultSecondRound(electionID string) *models.SecondRoundCache {
	if electionID != models.SeedElectionID {
		return &models.SecondRoundCache{LastUpdate: awaitingLabel, Candidates: []models.Poll{}}
	}
	return &models.SecondRoundCache{
		LastUpdate: defaultDataLabel,
		Duel:       "Bardella / Philippe",
		Candidates: []models.Poll{
			{Name: "J. Bardella", FullName: "Jordan Bardella", Score: ptr(53), Color: "#800080"},
			{Name: "E. Philippe", FullName: "Édouard Philippe", Score: ptr(47), Color: "#1e40af"},
		},
	}
}

// defaultCandidates is the declared-candidates fallback
func defaultCandidates(electionID string) *models.CandidateCache {
	if electionID != models.SeedElectionID {
		return &models.CandidateCache{LastUpdate: awaitingLabel, Candidates: []models.Candidate{}}
	}
	return &models.CandidateCache{
		LastUpdate: defaultDataLabel,
		Candidates: []models.Candidate{
			{FullName: "Édouard Philippe", Party: "Horizons", DateOfAnnouncement: "03/09/2024", Status: "Officiel", Color: "#1e40af"},
			{FullName: "Jordan Bardella", Party: "RN", DateOfAnnouncement: "Année 2026", Status: "Pressenti", Color: "#800080"},
		},
	}
}

func emptyDetailedPolls() *models.DetailedPollCache {
	return &models.DetailedPollCache{Polls: []models.DetailedPoll{}}
}

func emptyMap() *models.MapCache {
	return &models.MapCache{Cities: []models.MapCity{}, LastUpdate: neverLabel}
}

func emptyPrograms() *models.ProgramCache {
	return &models.ProgramCache{LastUpdate: noProgramsLabel, Programs: []models.Program{}}
}
