package services

import (
	"sort"

	"github.com/abrezinsky/electiondash/internal/models"
)

// emptyList is the content of a freshly provisioned JSON cache
const emptyList = "[]"

var seedManifests = map[models.ElectionType]map[string]string{
	models.Presidential: {
		"candidates_cache.json":                emptyList,
		"poll_cache.json":                      emptyList,
		"poll_cache_r2.json":                   emptyList,
		"detailed_polls_cache.json":            emptyList,
		"prompt_perplexity_candidates.txt":     "Default prompt for candidates",
		"prompt_perplexity_r1.txt":             "Default prompt for R1",
		"prompt_perplexity_r2.txt":             "Default prompt for R2",
		"prompt_perplexity_detailed_polls.txt": "Default prompt for detailed polls",
	},
	models.Legislative: {
		"partis_cache.json":                    emptyList,
		"sondages_cache.json":                  emptyList,
		"detailed_polls_cache.json":            emptyList,
		"prompt_perplexity_partis.txt":         "Default prompt for partis",
		"prompt_perplexity_sieges.txt":         "Default prompt for sieges",
		"prompt_perplexity_detailed_polls.txt": "Default prompt for detailed polls",
	},
	models.Municipal: {
		"cities_cache.json":                    emptyList,
		"maires_cache.json":                    emptyList,
		"map_cache.json":                       emptyList,
		"detailed_polls_cache.json":            emptyList,
		"prompt_perplexity_cities.txt":         "Prompt pour les tendances par ville (top villes)",
		"prompt_perplexity_maires.txt":         "Prompt pour les profils des candidats maires",
		"prompt_perplexity_map.txt":            "Prompt pour peupler la carte interactive avec les latitudes et longitudes",
		"prompt_perplexity_detailed_polls.txt": "Prompt pour les sondages historiques",
	},
}

// SeedFile is one placeholder file provisioned for a new election
type SeedFile struct {
	Name    string
	Content string
}

// SeedManifest returns the placeholder files of an election type sorted by
// name. Unknown types get no files.
func SeedManifest(t models.ElectionType) []SeedFile {
	files := make([]SeedFile, 0, len(seedManifests[t]))
	for name, content := range seedManifests[t] {
		files = append(files, SeedFile{Name: name, Content: content})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files
}
