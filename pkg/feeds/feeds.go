// Package feeds provides a client for reading political news RSS and Atom feeds.
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/abrezinsky/electiondash/internal/logger"
)

// Source is a news outlet polled for headlines
type Source struct {
	Name  string
	URL   string
	Color string // badge color name
}

// DefaultSources are the French political feeds aggregated by the dashboard
var DefaultSources = []Source{
	{Name: "Le Monde", URL: "https://www.lemonde.fr/politique/rss_full.xml", Color: "blue-600"},
	{Name: "Le Figaro", URL: "https://www.lefigaro.fr/rss/figaro_politique.xml", Color: "blue-800"},
	{Name: "France Info", URL: "https://www.francetvinfo.fr/politique.rss", Color: "yellow-500"},
	{Name: "Mediapart", URL: "https://www.mediapart.fr/articles/feed", Color: "red-600"},
}

// Item is one entry of a feed. Snippet is plain text.
type Item struct {
	Title     string
	Link      string
	Snippet   string
	Published time.Time // zero when the feed gives no usable date
}

// Client defines the interface for feed operations
type Client interface {
	// Fetch retrieves and parses the feed at url, in feed order
	Fetch(ctx context.Context, url string) ([]Item, error)
}

// userAgent is sent with every request; some outlets reject the Go default
const userAgent = "Mozilla/5.0 (compatible; electiondash/1.0; +https://github.com/abrezinsky/electiondash)"

// HTTPClient is a real HTTP feed client
type HTTPClient struct {
	httpClient *http.Client
	log        logger.Logger
}

// NewHTTPClient creates a new feed client with a 15 second timeout
func NewHTTPClient(log logger.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// NewHTTPClientWithHTTPClient creates a new feed client with a custom http.Client
func NewHTTPClientWithHTTPClient(httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: httpClient,
		log:        log,
	}
}

// Fetch retrieves and parses a feed
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]Item, error) {
	c.log.Debug("Feed request", "method", "GET", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		if fi == nil {
			continue
		}
		item := Item{
			Title: strings.TrimSpace(fi.Title),
			Link:  strings.TrimSpace(fi.Link),
		}
		snippet := fi.Description
		if snippet == "" {
			snippet = fi.Content
		}
		item.Snippet = StripHTML(snippet)
		switch {
		case fi.PublishedParsed != nil:
			item.Published = *fi.PublishedParsed
		case fi.UpdatedParsed != nil:
			item.Published = *fi.UpdatedParsed
		}
		items = append(items, item)
	}

	c.log.Debug("Feed response", "url", url, "items", len(items))
	return items, nil
}

// StripHTML returns the text content of an HTML fragment with whitespace collapsed
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
