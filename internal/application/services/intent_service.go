package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

// MatchRequest is the raw, untrusted body of the matching endpoint. Budget
// fields accept any JSON type so malformed values can be dropped instead of
// failing the whole request.
type MatchRequest struct {
	Condition         string `json:"condition"`
	BudgetMin         any    `json:"budget_min,omitempty"`
	BudgetMax         any    `json:"budget_max,omitempty"`
	PreferredLocation string `json:"preferred_location,omitempty"`
	PreferredCountry  string `json:"preferred_country,omitempty"`
	Timeline          string `json:"timeline,omitempty"`
	TravelType        string `json:"travel_type,omitempty"`
}

// NormalizeIntent validates and canonicalizes a raw match request. The only
// hard precondition is a non-empty condition; every other field degrades to
// its default when missing or malformed.
func NormalizeIntent(req MatchRequest) (entities.Intent, error) {
	condition := strings.TrimSpace(req.Condition)
	if condition == "" {
		return entities.Intent{}, apperrors.NewValidationError("condition is required")
	}

	intent := entities.Intent{
		Condition:         condition,
		BudgetMin:         coerceBudget(req.BudgetMin),
		BudgetMax:         coerceBudget(req.BudgetMax),
		PreferredLocation: strings.TrimSpace(req.PreferredLocation),
		PreferredCountry:  strings.TrimSpace(req.PreferredCountry),
		Timeline:          normalizeTimeline(req.Timeline),
		TravelType:        normalizeTravelType(req.TravelType),
	}

	// Inverted budgets are swapped rather than rejected
	if intent.BudgetMin != nil && intent.BudgetMax != nil && *intent.BudgetMin > *intent.BudgetMax {
		intent.BudgetMin, intent.BudgetMax = intent.BudgetMax, intent.BudgetMin
	}

	return intent, nil
}

// coerceBudget converts a user-supplied budget value to currency minor units.
// Non-numeric or negative inputs are treated as absent.
func coerceBudget(v any) *int64 {
	var amount int64

	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		amount = int64(val)
	case int64:
		amount = val
	case int:
		amount = int64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil
		}
		amount = int64(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		amount = int64(f)
	default:
		return nil
	}

	if amount < 0 {
		return nil
	}
	return &amount
}

func normalizeTimeline(raw string) entities.Timeline {
	switch entities.Timeline(strings.ToLower(strings.TrimSpace(raw))) {
	case entities.TimelineImmediate:
		return entities.TimelineImmediate
	case entities.TimelineOneMonth:
		return entities.TimelineOneMonth
	case entities.TimelineThreeMonths:
		return entities.TimelineThreeMonths
	default:
		return entities.TimelineFlexible
	}
}

func normalizeTravelType(raw string) entities.TravelType {
	switch entities.TravelType(strings.ToLower(strings.TrimSpace(raw))) {
	case entities.TravelInternational:
		return entities.TravelInternational
	default:
		return entities.TravelDomestic
	}
}
