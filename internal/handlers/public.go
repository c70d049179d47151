package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/electiondash/internal/models"
)

// electionParam returns the election query parameter, the seed election when absent
func electionParam(r *http.Request) string {
	if id := r.URL.Query().Get("election"); id != "" {
		return id
	}
	return models.SeedElectionID
}

func (h *Handlers) handleElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.Elections.ListElections(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, elections)
}

func (h *Handlers) handlePolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.Data.Polls(r.Context(), electionParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, polls)
}

func (h *Handlers) handleSecondRound(w http.ResponseWriter, r *http.Request) {
	r2, err := h.Data.SecondRound(r.Context(), electionParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, r2)
}

func (h *Handlers) handleCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.Data.Candidates(r.Context(), electionParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, candidates)
}

func (h *Handlers) handleDetailedPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.Data.DetailedPolls(r.Context(), electionParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, polls)
}

// handleMap has no default election
func (h *Handlers) handleMap(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("election")
	if !models.ValidIdentifier(id) {
		h.respondError(w, r, Validation("Missing or invalid election ID"))
		return
	}

	m, err := h.Data.Map(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, m)
}

func (h *Handlers) handlePrograms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	programs, err := h.Data.Programs(r.Context(), q.Get("country"), q.Get("election"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, programs)
}

func (h *Handlers) handleNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.News.News(r.Context(), electionParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, news)
}

// handleDashboard serves the aggregated view; the registry default when no election is given
func (h *Handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.Dashboard.Dashboard(r.Context(), r.URL.Query().Get("election"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, view)
}

func (h *Handlers) handleElectionQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Elections.GenerateShareQR(r.Context(), chi.URLParam(r, "id"), h.baseURL(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondPNG(w, png)
}

// baseURL is the configured public URL, else the one the request came in on
func (h *Handlers) baseURL(r *http.Request) string {
	if h.BaseURL != "" {
		return h.BaseURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
