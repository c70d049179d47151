package feeds

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a mock feed client for testing
type MockClient struct {
	mu       sync.Mutex
	items    map[string][]Item
	errs     map[string]error
	fetchErr error
	calls    []string
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithItems sets the items returned for a feed URL
func WithItems(url string, items []Item) MockOption {
	return func(m *MockClient) {
		m.items[url] = items
	}
}

// WithFeedError sets an error to return for one feed URL
func WithFeedError(url string, err error) MockOption {
	return func(m *MockClient) {
		m.errs[url] = err
	}
}

// WithFetchError sets an error to return for every feed
func WithFetchError(err error) MockOption {
	return func(m *MockClient) {
		m.fetchErr = err
	}
}

// NewMockClient creates a new mock client with the given options
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		items: make(map[string][]Item),
		errs:  make(map[string]error),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fetch returns the configured items for url. Unknown URLs yield an error.
func (m *MockClient) Fetch(ctx context.Context, url string) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	items, ok := m.items[url]
	if !ok {
		return nil, fmt.Errorf("no feed configured for %s", url)
	}
	return items, nil
}

// Calls returns the number of Fetch invocations
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
