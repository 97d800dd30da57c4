package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/medatlas/hospital-discovery/internal/application/services"
)

// MatchFinder runs the matching pipeline for a raw patient request
type MatchFinder interface {
	Match(ctx context.Context, req services.MatchRequest) (*services.MatchResponse, error)
}

// MatchHandler handles hospital matching HTTP requests
type MatchHandler struct {
	matcher MatchFinder
	timeout time.Duration
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matcher MatchFinder, timeout time.Duration) *MatchHandler {
	return &MatchHandler{
		matcher: matcher,
		timeout: timeout,
	}
}

// MatchHospitals handles POST /api/hospitals/match
func (h *MatchHandler) MatchHospitals(w http.ResponseWriter, r *http.Request) {
	var req services.MatchRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.matcher.Match(ctx, req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
