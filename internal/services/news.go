package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrezinsky/electiondash/internal/logger"
	"github.com/abrezinsky/electiondash/internal/models"
	"github.com/abrezinsky/electiondash/internal/repository"
	"github.com/abrezinsky/electiondash/pkg/feeds"
)

// News aggregation limits
const (
	DefaultNewsTTL   = 10 * time.Minute
	itemsPerFeed     = 15
	maxNewsItems     = 10
	newsTimeTemplate = "%dh%02d"
)

// ElectionKeywords mark a headline as election related
var ElectionKeywords = []string{
	"élection", "présidentielle", "scrutin", "sondage", "candidat", "campagne",
	"vote", "ballotage", "enquêtes", "intentions de vote", "2027", "2026",
	"municipales", "premier tour", "second tour", "parrainages",
}

// NewsService aggregates election headlines from the political feeds
type NewsService struct {
	log     logger.Logger
	repo    repository.CacheRepository
	cache   repository.NewsCacheRepository
	client  feeds.Client
	sources []feeds.Source
	ttl     time.Duration
	now     func() time.Time
}

// NewNewsService creates a new NewsService. cache may be nil to disable caching.
func NewNewsService(log logger.Logger, repo repository.CacheRepository, cache repository.NewsCacheRepository, client feeds.Client) *NewsService {
	return &NewsService{
		log:     log,
		repo:    repo,
		cache:   cache,
		client:  client,
		sources: feeds.DefaultSources,
		ttl:     DefaultNewsTTL,
		now:     time.Now,
	}
}

// SetTTL changes how long aggregated headlines are served from the cache
func (s *NewsService) SetTTL(ttl time.Duration) {
	s.ttl = ttl
}

// SetSources replaces the polled feeds
func (s *NewsService) SetSources(sources []feeds.Source) {
	s.sources = sources
}

// News returns up to ten recent election headlines, newest first
func (s *NewsService) News(ctx context.Context, electionID string) ([]models.NewsItem, error) {
	if !models.ValidIdentifier(electionID) {
		return nil, ErrInvalidElectionID
	}

	if items, ok := s.cached(ctx, electionID); ok {
		return items, nil
	}

	names := s.candidateNames(ctx, electionID)

	perSource := make([][]models.NewsItem, len(s.sources))
	var failures atomic.Int32
	var g errgroup.Group
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			items, err := s.client.Fetch(ctx, src.URL)
			if err != nil {
				failures.Add(1)
				s.log.Warn("Could not fetch feed", "source", src.Name, "error", err)
				return nil
			}
			perSource[i] = s.relevant(src, items, names)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []models.NewsItem
	for _, items := range perSource {
		all = append(all, items...)
	}
	result := TopNews(all, maxNewsItems)

	if len(s.sources) > 0 && int(failures.Load()) == len(s.sources) {
		return result, nil
	}
	s.store(ctx, electionID, result)
	return result, nil
}

// relevant converts the first feed items to headlines, keeping election-related ones
func (s *NewsService) relevant(src feeds.Source, items []feeds.Item, names []string) []models.NewsItem {
	var out []models.NewsItem
	for index, item := range items {
		if index >= itemsPerFeed {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		if !IsElectionRelated(item.Title, item.Snippet, names) {
			continue
		}

		published := item.Published
		if published.IsZero() {
			published = s.now()
		}
		published = published.Local()
		ms := published.UnixMilli()
		out = append(out, models.NewsItem{
			ID:          fmt.Sprintf("%s-%d-%d", src.Name, index, ms),
			Source:      src.Name,
			SourceColor: src.Color,
			Title:       item.Title,
			Link:        item.Link,
			Time:        fmt.Sprintf(newsTimeTemplate, published.Hour(), published.Minute()),
			PubDateUnix: ms,
		})
	}
	return out
}

// IsElectionRelated reports whether a headline mentions an election keyword or
// one of the lowercased candidate names.
func IsElectionRelated(title, snippet string, names []string) bool {
	t := strings.ToLower(title)
	c := strings.ToLower(snippet)
	for _, kw := range ElectionKeywords {
		if strings.Contains(t, kw) || strings.Contains(c, kw) {
			return true
		}
	}
	for _, name := range names {
		if strings.Contains(t, name) || strings.Contains(c, name) {
			return true
		}
	}
	return false
}

// TopNews sorts headlines newest first, drops repeated titles and keeps limit
func TopNews(items []models.NewsItem, limit int) []models.NewsItem {
	sorted := append([]models.NewsItem{}, items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PubDateUnix > sorted[j].PubDateUnix
	})

	seen := make(map[string]bool, len(sorted))
	out := make([]models.NewsItem, 0, limit)
	for _, item := range sorted {
		if seen[item.Title] {
			continue
		}
		seen[item.Title] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

// candidateNames returns the lowercased full names of the declared candidates
func (s *NewsService) candidateNames(ctx context.Context, electionID string) []string {
	cache, err := s.repo.ReadCandidates(ctx, electionID)
	if err != nil {
		s.log.Debug("No candidates for news filtering", "election", electionID, "error", err)
		return nil
	}
	names := make([]string, 0, len(cache.Candidates))
	for _, c := range cache.Candidates {
		if c.FullName != "" {
			names = append(names, strings.ToLower(c.FullName))
		}
	}
	return names
}

func (s *NewsService) cached(ctx context.Context, electionID string) ([]models.NewsItem, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, fetchedAt, err := s.cache.GetNews(ctx, electionID)
	if err != nil || s.now().Sub(fetchedAt) >= s.ttl {
		return nil, false
	}
	var items []models.NewsItem
	if err := json.Unmarshal(payload, &items); err != nil {
		s.log.Debug("Ignoring unreadable news cache", "election", electionID, "error", err)
		return nil, false
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	return items, true
}

func (s *NewsService) store(ctx context.Context, electionID string, items []models.NewsItem) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.PutNews(ctx, electionID, payload, s.now()); err != nil {
		s.log.Debug("Failed to cache news", "election", electionID, "error", err)
	}
}
