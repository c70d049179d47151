package handlers

import (
	"net/http"
)

// handleVerify checks an admin token without requiring one
func (h *Handlers) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if !h.Gateway.Verify(req.Token) {
		respondJSON(w, http.StatusUnauthorized, SuccessResponse{Success: false})
		return
	}
	respondSuccess(w)
}

// ==================== Files ====================

// handleGetFiles lists the data files, or returns one when path is given
func (h *Handlers) handleGetFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if path := r.URL.Query().Get("path"); path != "" {
		content, err := h.Admin.ReadFile(ctx, path)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		respondOK(w, FileContentResponse{Content: content})
		return
	}

	files, err := h.Admin.ListFiles(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, FilesResponse{Files: files})
}

func (h *Handlers) handleWriteFile(w http.ResponseWriter, r *http.Request) {
	var req FileWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.Admin.WriteFile(r.Context(), req.Path, req.Content); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondSuccess(w)
}

// ==================== Elections ====================

func (h *Handlers) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	var req ElectionCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.Elections.CreateElection(r.Context(), req.Election()); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondSuccess(w)
}
