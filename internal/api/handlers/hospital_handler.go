package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
)

// HospitalBrowser serves hospital browse and detail reads
type HospitalBrowser interface {
	Browse(ctx context.Context, filter repositories.BrowseFilter) (*repositories.BrowseResult, error)
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)
}

// HospitalHandler handles hospital-related HTTP requests
type HospitalHandler struct {
	browser HospitalBrowser
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(browser HospitalBrowser) *HospitalHandler {
	return &HospitalHandler{browser: browser}
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	hospital, err := h.browser.GetByID(r.Context(), hospitalID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}

// BrowseHospitals handles GET /api/hospitals
func (h *HospitalHandler) BrowseHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.BrowseFilter{
		City:      strings.TrimSpace(query.Get("city")),
		Specialty: strings.TrimSpace(query.Get("specialty")),
		Condition: strings.TrimSpace(query.Get("condition")),
		PriceMin:  parsePriceParam(query.Get("price_min")),
		PriceMax:  parsePriceParam(query.Get("price_max")),
		Page:      parseIntParam(query.Get("page"), 1),
		Limit:     parseIntParam(query.Get("limit"), 0),
		Sort:      parseSortParam(query.Get("sort")),
	}

	result, err := h.browser.Browse(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if result.Hospitals == nil {
		result.Hospitals = []*entities.Hospital{}
	}
	respondWithJSON(w, http.StatusOK, result)
}

func parsePriceParam(raw string) *int64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func parseSortParam(raw string) string {
	switch raw {
	case repositories.SortByOutcomes, repositories.SortByPrice:
		return raw
	default:
		return repositories.SortByRating
	}
}
