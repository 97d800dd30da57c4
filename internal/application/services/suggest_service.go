package services

import (
	"context"
	"sort"
	"strings"

	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

const (
	defaultSuggestLimit = 10
	maxSuggestLimit     = 25
)

// Suggestion is a single typeahead result
type Suggestion struct {
	Condition string `json:"condition"`
	Specialty string `json:"specialty"`
	Category  string `json:"category"`
}

// SuggestService answers typeahead queries over the condition catalog. Every
// call recomputes from the current catalog snapshot, so results never go
// stale and stay fully deterministic.
type SuggestService struct {
	catalog repositories.ConditionCatalog
}

// NewSuggestService creates a new suggest service
func NewSuggestService(catalog repositories.ConditionCatalog) *SuggestService {
	return &SuggestService{catalog: catalog}
}

// Suggest returns, for a non-blank query, the catalog entries whose condition
// name contains it (case-insensitive). Exact-prefix matches rank before other
// substring matches; each group is alphabetical.
func (s *SuggestService) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Suggestion{}, nil
	}

	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	if limit > maxSuggestLimit {
		limit = maxSuggestLimit
	}

	entries, err := s.catalog.List(ctx)
	if err != nil {
		return nil, apperrors.NewCatalogUnavailableError("failed to read condition catalog", err)
	}

	var prefixed, contained []Suggestion
	for _, entry := range entries {
		if entry == nil || entry.Condition == "" {
			continue
		}
		lowered := strings.ToLower(entry.Condition)
		suggestion := Suggestion{
			Condition: entry.Condition,
			Specialty: entry.Specialty,
			Category:  entry.Category,
		}
		switch {
		case strings.HasPrefix(lowered, query):
			prefixed = append(prefixed, suggestion)
		case strings.Contains(lowered, query):
			contained = append(contained, suggestion)
		}
	}

	byCondition := func(group []Suggestion) func(i, j int) bool {
		return func(i, j int) bool {
			return strings.ToLower(group[i].Condition) < strings.ToLower(group[j].Condition)
		}
	}
	sort.SliceStable(prefixed, byCondition(prefixed))
	sort.SliceStable(contained, byCondition(contained))

	suggestions := append(prefixed, contained...)
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
