package feeds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abrezinsky/electiondash/internal/logger"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Politique</title>
  <item>
    <title>Présidentielle 2027 : un nouveau sondage</title>
    <link>https://example.com/a</link>
    <description><![CDATA[<p>Les <b>intentions de vote</b> bougent.</p>]]></description>
    <pubDate>Mon, 02 Mar 2026 08:15:00 +0000</pubDate>
  </item>
  <item>
    <title>Sans date</title>
    <link>https://example.com/b</link>
    <description>Texte brut</description>
  </item>
</channel>
</rss>`

func TestHTTPClient_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if !strings.Contains(r.Header.Get("User-Agent"), "electiondash") {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	client := NewHTTPClient(logger.Discard())
	items, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Présidentielle 2027 : un nouveau sondage" {
		t.Errorf("unexpected title %q", items[0].Title)
	}
	if items[0].Snippet != "Les intentions de vote bougent." {
		t.Errorf("expected HTML stripped snippet, got %q", items[0].Snippet)
	}
	if items[0].Published.IsZero() || items[0].Published.Hour() != 8 {
		t.Errorf("unexpected published time %v", items[0].Published)
	}
	if !items[1].Published.IsZero() {
		t.Errorf("expected zero time for undated item, got %v", items[1].Published)
	}
}

func TestHTTPClient_Fetch_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewHTTPClientWithHTTPClient(server.Client(), logger.Discard())
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected error for 403 response")
	}
}

func TestHTTPClient_Fetch_InvalidFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a feed"))
	}))
	defer server.Close()

	client := NewHTTPClient(logger.Discard())
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected parse error")
	}
}

func TestHTTPClient_Fetch_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHTTPClient(logger.Discard())
	if _, err := client.Fetch(ctx, server.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain  text\n here", "plain text here"},
		{"<p>Hello <em>world</em></p>", "Hello world"},
		{"Fish &amp; chips", "Fish & chips"},
		{"<div><p>a</p>\n<p>b</p></div>", "a b"},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMockClient(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockClient(
		WithItems("a", []Item{{Title: "x", Link: "l"}}),
		WithFeedError("b", boom),
	)

	items, err := m.Fetch(context.Background(), "a")
	if err != nil || len(items) != 1 {
		t.Errorf("expected 1 item, got %v %v", items, err)
	}
	if _, err := m.Fetch(context.Background(), "b"); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if _, err := m.Fetch(context.Background(), "c"); err == nil {
		t.Error("expected error for unknown url")
	}
	if m.Calls() != 3 {
		t.Errorf("expected 3 calls, got %d", m.Calls())
	}
}
