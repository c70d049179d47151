package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/abrezinsky/electiondash/internal/models"
)

// Kind names a logical per-election cache
type Kind string

const (
	KindPolls         Kind = "polls"
	KindSecondRound   Kind = "polls-r2"
	KindCandidates    Kind = "candidates"
	KindDetailedPolls Kind = "detailed-polls"
	KindMap           Kind = "map"
)

// citiesCache is shared by municipal elections for polls, candidates and map
const citiesCache = "cities_cache.json"

// cacheAliases lists, in resolution order, the descriptive name, the
// technical name and the shared fallback of each cache kind.
var cacheAliases = map[Kind][]string{
	KindPolls:         {"intentions_cache.json", "poll_cache.json", citiesCache},
	KindSecondRound:   {"sieges_cache.json", "poll_cache_r2.json"},
	KindCandidates:    {"partis_cache.json", "candidates_cache.json", citiesCache},
	KindDetailedPolls: {"sondages_cache.json", "detailed_polls_cache.json"},
	KindMap:           {"map_cache.json", citiesCache},
}

// Aliases returns the file names tried for kind, in order
func Aliases(kind Kind) []string {
	return append([]string(nil), cacheAliases[kind]...)
}

// CacheFile is a resolved cache file and its raw content
type CacheFile struct {
	Path    string
	Data    []byte
	ModTime time.Time
}

// ResolveCache returns the absolute path of the first existing alias of kind
func (s *FileStore) ResolveCache(electionID string, kind Kind) (string, error) {
	if !models.ValidIdentifier(electionID) {
		return "", ErrInvalidIdentifier
	}
	aliases, ok := cacheAliases[kind]
	if !ok {
		return "", fmt.Errorf("unknown cache kind %q", kind)
	}
	dir := filepath.Join(s.root, electionID)
	for _, name := range aliases {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// ReadCache resolves and reads the raw content of a cache
func (s *FileStore) ReadCache(ctx context.Context, electionID string, kind Kind) (*CacheFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.ResolveCache(electionID, kind)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// removed between resolution and read
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &CacheFile{Path: path, Data: data, ModTime: info.ModTime()}, nil
}

// readTyped reads a cache and decodes it into T
func readTyped[T any](ctx context.Context, s *FileStore, electionID string, kind Kind) (*T, *CacheFile, error) {
	file, err := s.ReadCache(ctx, electionID, kind)
	if err != nil {
		return nil, nil, err
	}
	var v T
	if err := json.Unmarshal(file.Data, &v); err != nil {
		return nil, file, fmt.Errorf("%w: %s: %v", ErrMalformed, file.Path, err)
	}
	return &v, file, nil
}

// ReadPolls reads the first-round poll cache
func (s *FileStore) ReadPolls(ctx context.Context, electionID string) (*models.PollCache, error) {
	v, _, err := readTyped[models.PollCache](ctx, s, electionID, KindPolls)
	return v, err
}

// ReadSecondRound reads the runoff cache
func (s *FileStore) ReadSecondRound(ctx context.Context, electionID string) (*models.SecondRoundCache, error) {
	v, _, err := readTyped[models.SecondRoundCache](ctx, s, electionID, KindSecondRound)
	return v, err
}

// ReadCandidates reads the declared candidates cache
func (s *FileStore) ReadCandidates(ctx context.Context, electionID string) (*models.CandidateCache, error) {
	v, _, err := readTyped[models.CandidateCache](ctx, s, electionID, KindCandidates)
	return v, err
}

// ReadDetailedPolls reads the historical poll archive
func (s *FileStore) ReadDetailedPolls(ctx context.Context, electionID string) (*models.DetailedPollCache, error) {
	v, _, err := readTyped[models.DetailedPollCache](ctx, s, electionID, KindDetailedPolls)
	return v, err
}

// ReadMap reads the map cache along with its modification time
func (s *FileStore) ReadMap(ctx context.Context, electionID string) (*models.MapCache, time.Time, error) {
	v, file, err := readTyped[models.MapCache](ctx, s, electionID, KindMap)
	if err != nil {
		return nil, time.Time{}, err
	}
	return v, file.ModTime, nil
}

// ==================== Programs ====================

// ReadPrograms reads the program catalog of a country: one JSON file per
// party under programs/<country>/, else the legacy programs/<country>.json.
func (s *FileStore) ReadPrograms(ctx context.Context, country string) (*models.ProgramCache, error) {
	if !models.ValidIdentifier(country) {
		return nil, ErrInvalidIdentifier
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cache, dirErr := s.readProgramDir(country)
	if dirErr == nil {
		return cache, nil
	}

	legacy, err := s.readProgramFile(country)
	if err == nil {
		return legacy, nil
	}
	if !errors.Is(dirErr, ErrNotFound) {
		return nil, dirErr
	}
	return nil, err
}

// noUpdate is the lastUpdate of a catalog whose files carry none
const noUpdate = "N/A"

func (s *FileStore) readProgramDir(country string) (*models.ProgramCache, error) {
	dir := filepath.Join(s.root, "programs", country)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	cache := &models.ProgramCache{LastUpdate: noUpdate, Programs: []models.Program{}}
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var p models.Program
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
		}
		if p.Categories == nil {
			p.Categories = []models.ProgramCategory{}
		}
		cache.Programs = append(cache.Programs, p)
		if p.LastUpdate != "" && (cache.LastUpdate == noUpdate || p.LastUpdate > cache.LastUpdate) {
			cache.LastUpdate = p.LastUpdate
		}
	}

	if len(cache.Programs) == 0 {
		return nil, ErrNotFound
	}
	return cache, nil
}

func (s *FileStore) readProgramFile(country string) (*models.ProgramCache, error) {
	path := filepath.Join(s.root, "programs", country+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var cache models.ProgramCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &cache, nil
}
