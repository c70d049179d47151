package services

import (
	"sort"
	"strings"

	"github.com/abrezinsky/electiondash/internal/models"
)

// NeutralColor is used when neither the candidate nor its poll carries a color
const NeutralColor = "#94a3b8"

// CityOrientation tags municipal city entries
const CityOrientation = "Ville"

var (
	defaultOrientation = "Centre"
	defaultThemes      = []string{"Économie", "Éducation", "Santé"}
	cityThemes         = []string{"Logement", "Transports", "Sécurité"}
)

// orientationRule maps party name keywords to a political leaning. Rules are
// checked in order and the first match wins.
type orientationRule struct {
	keywords    []string
	orientation string
	themes      []string
}

var orientationRules = []orientationRule{
	{[]string{"républicains"}, "Droite", []string{"Sécurité", "Économie", "Justice"}},
	{[]string{"national"}, "Extrême-Droite", []string{"Sécurité", "Immigration", "Pouvoir d'achat"}},
	{[]string{"écologiste", "écologie"}, "Écologie", []string{"Écologie", "Social", "Climat"}},
	{[]string{"socialiste", "l'après", "debout !"}, "Gauche", []string{"Social", "Pouvoir d'achat", "Services publics"}},
	{[]string{"ouvrière", "unitaire"}, "Extrême-Gauche", []string{"Salaire", "Services publics", "Social"}},
}

// MatchCandidateToPoll returns the first poll entry whose name matches the
// candidate, or nil. Names are compared lowercased without accent folding:
// full names match when either contains the other, and a short poll name
// matches when the candidate's party contains it. Only when no entry matches
// that way is an abbreviated name such as "J. Bardella" matched on its last word.
func MatchCandidateToPoll(c models.Candidate, polls []models.Poll) *models.Poll {
	cFull := strings.ToLower(c.FullName)
	cParty := strings.ToLower(c.Party)

	for i := range polls {
		p := &polls[i]
		pFull := strings.ToLower(p.Label())
		pShort := strings.ToLower(p.Name)

		if pFull != "" && cFull != "" && (strings.Contains(pFull, cFull) || strings.Contains(cFull, pFull)) {
			return p
		}
		if pShort != "" && cParty != "" && strings.Contains(cParty, pShort) {
			return p
		}
	}

	if cFull == "" {
		return nil
	}
	for i := range polls {
		if surnameMatches(strings.ToLower(polls[i].Label()), cFull) {
			return &polls[i]
		}
	}
	return nil
}

// surnameMatches reports whether the last word of pollName is a whole word of fullName
func surnameMatches(pollName, fullName string) bool {
	words := strings.Fields(pollName)
	if len(words) < 2 {
		return false
	}
	last := words[len(words)-1]
	if len([]rune(last)) < 3 {
		return false
	}
	for _, w := range strings.Fields(fullName) {
		if w == last {
			return true
		}
	}
	return false
}

// InferOrientation returns the orientation and themes of a candidate. An
// explicit orientation is kept; otherwise the party name is classified.
func InferOrientation(c models.Candidate) (string, []string) {
	if c.Orientation != "" {
		if c.Themes != nil {
			return c.Orientation, c.Themes
		}
		return c.Orientation, cloneStrings(defaultThemes)
	}

	party := strings.ToLower(c.Party)
	for _, rule := range orientationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(party, kw) {
				return rule.orientation, cloneStrings(rule.themes)
			}
		}
	}

	if c.Themes != nil {
		return defaultOrientation, c.Themes
	}
	return defaultOrientation, cloneStrings(defaultThemes)
}

// ProjectCity re-shapes a municipal city entry as a candidate
func ProjectCity(c models.Candidate) models.Candidate {
	out := c
	out.FullName = c.CityName
	out.Party = c.Region
	if out.Party == "" {
		out.Party = "France"
	}

	var top *models.CityScore
	if len(c.Scores) > 0 {
		top = &c.Scores[0]
	}

	switch {
	case c.Favorite != "":
		out.Status = "Favori: " + strings.TrimSpace(strings.SplitN(c.Favorite, "(", 2)[0])
	case top != nil && top.Label != "":
		out.Status = "Favori: " + strings.TrimSpace(strings.SplitN(top.Label, "(", 2)[0])
	default:
		out.Status = "En attente"
	}

	score := 0.0
	out.Color = NeutralColor
	if top != nil {
		score = top.Value
		if top.Color != "" {
			out.Color = top.Color
		}
	}
	out.Score = &score
	out.Orientation = CityOrientation
	out.Themes = cloneStrings(cityThemes)
	return out
}

// EnrichCandidate attaches the matched poll score, a resolved color and the
// orientation tags to a candidate.
func EnrichCandidate(c models.Candidate, polls []models.Poll) models.Candidate {
	if c.IsCity() {
		return ProjectCity(c)
	}

	out := c
	poll := MatchCandidateToPoll(c, polls)

	out.Score = nil
	out.Color = c.Color
	if poll != nil {
		if poll.Score != nil {
			score := *poll.Score
			out.Score = &score
		}
		if out.Color == "" {
			out.Color = poll.Color
		}
	}
	if out.Color == "" {
		out.Color = NeutralColor
	}

	out.Orientation, out.Themes = InferOrientation(c)
	return out
}

// EnrichCandidates enriches every candidate and sorts the result by score,
// highest first. Missing scores count as zero; ties keep input order.
func EnrichCandidates(candidates []models.Candidate, polls []models.Poll) []models.Candidate {
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, EnrichCandidate(c, polls))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return scoreOf(out[i].Score) > scoreOf(out[j].Score)
	})
	return out
}

// SortPollsByScore returns a copy of polls sorted by score, highest first
func SortPollsByScore(polls []models.Poll) []models.Poll {
	out := append([]models.Poll{}, polls...)
	sort.SliceStable(out, func(i, j int) bool {
		return scoreOf(out[i].Score) > scoreOf(out[j].Score)
	})
	return out
}

func scoreOf(score *float64) float64 {
	if score == nil {
		return 0
	}
	return *score
}

func cloneStrings(s []string) []string {
	return append([]string{}, s...)
}
