package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/medatlas/hospital-discovery/internal/application/services"
	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
)

// ConditionSuggester answers typeahead queries
type ConditionSuggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]services.Suggestion, error)
}

// ConditionHandler handles condition catalog HTTP requests
type ConditionHandler struct {
	catalog   repositories.ConditionCatalog
	suggester ConditionSuggester
}

// NewConditionHandler creates a new condition handler
func NewConditionHandler(catalog repositories.ConditionCatalog, suggester ConditionSuggester) *ConditionHandler {
	return &ConditionHandler{
		catalog:   catalog,
		suggester: suggester,
	}
}

// ListConditions handles GET /api/conditions
func (h *ConditionHandler) ListConditions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if entries == nil {
		entries = []*entities.ConditionCatalogEntry{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"conditions": entries,
		"count":      len(entries),
	})
}

// SuggestConditions handles GET /api/conditions/suggest
func (h *ConditionHandler) SuggestConditions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	suggestions, err := h.suggester.Suggest(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}
