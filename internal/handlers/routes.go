package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)

	// WebSocket connections outlive the request timeout
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Public data
		r.Get("/elections", h.handleElections)
		r.Get("/elections/{id}/qr", h.handleElectionQR)
		r.Get("/polls", h.handlePolls)
		r.Get("/polls-r2", h.handleSecondRound)
		r.Get("/candidates", h.handleCandidates)
		r.Get("/detailed-polls", h.handleDetailedPolls)
		r.Get("/map", h.handleMap)
		r.Get("/programs", h.handlePrograms)
		r.Get("/news", h.handleNews)
		r.Get("/dashboard", h.handleDashboard)

		// Token check (public)
		r.Post("/admin/verify", h.handleVerify)

		// Admin API (protected)
		r.Group(func(r chi.Router) {
			r.Use(h.Gateway.RequireToken)

			r.Get("/admin/files", h.handleGetFiles)
			r.Post("/admin/files", h.handleWriteFile)
			r.Post("/admin/elections", h.handleCreateElection)
		})
	})

	return r
}
