package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/electiondash/internal/auth"
	"github.com/abrezinsky/electiondash/internal/handlers"
	"github.com/abrezinsky/electiondash/internal/logger"
	"github.com/abrezinsky/electiondash/internal/repository"
	"github.com/abrezinsky/electiondash/internal/services"
	"github.com/abrezinsky/electiondash/internal/testutil"
	"github.com/abrezinsky/electiondash/pkg/feeds"
)

const testToken = "test-token"

// testSetup creates all the dependencies needed for testing handlers
type testSetup struct {
	store    *repository.FileStore
	feeds    *feeds.MockClient
	handlers *handlers.Handlers
	router   chi.Router
}

// newTestSetup wires real services over a temporary data root
func newTestSetup(t *testing.T) *testSetup {
	t.Helper()

	store := testutil.NewTestStore(t)
	log := logger.Discard()
	client := feeds.NewMockClient(feeds.WithFetchError(io.ErrUnexpectedEOF))

	electionService := services.NewElectionService(log, store)
	dataService := services.NewDataService(log, store)
	dashboardService := services.NewDashboardService(log, electionService, dataService)
	newsService := services.NewNewsService(log, store, nil, client)
	adminService := services.NewAdminService(log, store)

	h := handlers.New(
		electionService,
		dataService,
		dashboardService,
		newsService,
		adminService,
		auth.NewGateway(testToken),
		nil,
		log,
		"",
	)

	return &testSetup{
		store:    store,
		feeds:    client,
		handlers: h,
		router:   h.Router(),
	}
}

// do sends a request through the router. A non-nil body is JSON encoded
// unless it is already a string.
func (s *testSetup) do(t *testing.T, method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.HeaderName, token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

