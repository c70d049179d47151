package services

import (
	"github.com/abrezinsky/electiondash/internal/models"
)

// PollSource selects which poll list feeds candidate enrichment
type PollSource string

const (
	FirstRound  PollSource = "first_round"
	SecondRound PollSource = "second_round"
)

// TabConfig describes the candidates tab of the dashboard
type TabConfig struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PollsTabConfig describes the polls tab of the dashboard
type PollsTabConfig struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	MaxDomain   int    `json:"maxDomain"`
	ValueSuffix string `json:"valueSuffix,omitempty"`
}

// ElectionConfig holds the per-type presentation settings of the dashboard
type ElectionConfig struct {
	DashboardCountdownTitle string         `json:"dashboardCountdownTitle"`
	PollsTabNavTitle        string         `json:"pollsTabNavTitle"`
	CandidatesTabNavTitle   string         `json:"candidatesTabNavTitle"`
	CandidatesTab           TabConfig      `json:"candidatesTab"`
	PollsTab                PollsTabConfig `json:"pollsTab"`
	PollSource              PollSource     `json:"pollSource"`
}

var electionConfigs = map[models.ElectionType]ElectionConfig{
	models.Legislative: {
		DashboardCountdownTitle: "COMPTE À REBOURS",
		PollsTabNavTitle:        "Intentions & Sièges",
		CandidatesTabNavTitle:   "Partis & Groupes",
		CandidatesTab: TabConfig{
			Title:       "Observatoire des Partis",
			Description: "Analyse des forces politiques et coalitions.",
		},
		PollsTab: PollsTabConfig{
			Title:       "Projections par Institut",
			Description: "Historique des estimations de sièges à l'Assemblée.",
			Unit:        "Sièges",
			MaxDomain:   300,
		},
		PollSource: SecondRound,
	},
	models.Presidential: {
		DashboardCountdownTitle: "COMPTE À REBOURS",
		PollsTabNavTitle:        "Sondages",
		CandidatesTabNavTitle:   "Personnalités",
		CandidatesTab: TabConfig{
			Title:       "Observatoire des Candidats",
			Description: "Analyse détaillée des profils et positionnements.",
		},
		PollsTab: PollsTabConfig{
			Title:       "Détail des Sondages",
			Description: "Historique et comparatif par institut de sondage.",
			Unit:        "Intentions (%)",
			MaxDomain:   45,
			ValueSuffix: "%",
		},
		PollSource: FirstRound,
	},
	models.Municipal: {
		DashboardCountdownTitle: "COMPTE À REBOURS",
		PollsTabNavTitle:        "Villes & Tendances",
		CandidatesTabNavTitle:   "Carte Interactive",
		CandidatesTab: TabConfig{
			Title:       "Cartographie des Enjeux",
			Description: "Visualisation géographique des points de bascule et rapports de force.",
		},
		PollsTab: PollsTabConfig{
			Title:       "Tendances Municipales",
			Description: "Analyse des rapports de force à l'échelle nationale.",
			Unit:        "Villes",
			MaxDomain:   100,
		},
		PollSource: FirstRound,
	},
}

// ConfigFor returns the dashboard settings of an election type. Unknown and
// empty types fall back to presidential.
func ConfigFor(t models.ElectionType) ElectionConfig {
	if cfg, ok := electionConfigs[t]; ok {
		return cfg
	}
	return electionConfigs[models.Presidential]
}

// EnrichmentPolls picks the poll list used to score candidates
func (c ElectionConfig) EnrichmentPolls(firstRound, secondRound []models.Poll) []models.Poll {
	if c.PollSource == SecondRound {
		return secondRound
	}
	return firstRound
}
