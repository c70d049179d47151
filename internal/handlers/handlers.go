package handlers

import (
	"github.com/abrezinsky/electiondash/internal/auth"
	"github.com/abrezinsky/electiondash/internal/services"
	"github.com/abrezinsky/electiondash/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Elections services.ElectionServicer
	Data      services.DataServicer
	Dashboard services.DashboardServicer
	News      services.NewsServicer
	Admin     services.AdminServicer
	Gateway   *auth.Gateway
	Hub       *websocket.Hub
	Log       HTTPLogger
	BaseURL   string
}

// HTTPLogger is the logger used by the handlers, with HTTP logging control
type HTTPLogger interface {
	Error(msg string, args ...any)
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies. An empty
// baseURL makes share links use the request host.
func New(
	elections services.ElectionServicer,
	data services.DataServicer,
	dashboard services.DashboardServicer,
	news services.NewsServicer,
	admin services.AdminServicer,
	gateway *auth.Gateway,
	hub *websocket.Hub,
	log HTTPLogger,
	baseURL string,
) *Handlers {
	return &Handlers{
		Elections: elections,
		Data:      data,
		Dashboard: dashboard,
		News:      news,
		Admin:     admin,
		Gateway:   gateway,
		Hub:       hub,
		Log:       log,
		BaseURL:   baseURL,
	}
}

// NoopHTTPLogger is a test logger that discards everything
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) Error(msg string, args ...any) {}
func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool  { return false }
