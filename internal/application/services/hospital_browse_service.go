package services

import (
	"context"
	"sort"
	"strings"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

const (
	defaultBrowsePageSize = 20
	maxBrowsePageSize     = 50
)

// HospitalBrowseService serves the plain catalog browse endpoint. It shares
// the matching pipeline's eligibility rule but, unlike matching, its filters
// are hard: a hospital outside the requested city, specialty or price range
// is excluded, not down-scored.
type HospitalBrowseService struct {
	catalog repositories.HospitalCatalog
	scorer  *MatchScoringService
}

// NewHospitalBrowseService creates a new browse service
func NewHospitalBrowseService(catalog repositories.HospitalCatalog, scorer *MatchScoringService) *HospitalBrowseService {
	return &HospitalBrowseService{catalog: catalog, scorer: scorer}
}

// Browse filters, sorts and paginates the hospital catalog
func (s *HospitalBrowseService) Browse(ctx context.Context, filter repositories.BrowseFilter) (*repositories.BrowseResult, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.NewCatalogUnavailableError("failed to read hospital catalog", err)
	}

	hospitals := applyBrowseFilter(FilterCandidates(snapshot), filter)
	s.sortHospitals(hospitals, filter.Sort)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultBrowsePageSize
	}
	if limit > maxBrowsePageSize {
		limit = maxBrowsePageSize
	}

	total := len(hospitals)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &repositories.BrowseResult{
		Hospitals:  hospitals[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// GetByID retrieves a single publicly listed hospital
func (s *HospitalBrowseService) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	hospital, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hospital.IsPublicListed {
		return nil, apperrors.NewNotFoundError("hospital not found")
	}
	return hospital, nil
}

func applyBrowseFilter(hospitals []*entities.Hospital, filter repositories.BrowseFilter) []*entities.Hospital {
	filtered := make([]*entities.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if filter.City != "" && !containsFold(h.Address.City, filter.City) {
			continue
		}
		if filter.Specialty != "" && !anyContainsFold(h.Specialties, filter.Specialty) {
			continue
		}
		if filter.Condition != "" && !offersCondition(h, filter.Condition) {
			continue
		}
		if filter.PriceMin != nil && (h.PriceRangeMax == nil || *h.PriceRangeMax < *filter.PriceMin) {
			continue
		}
		if filter.PriceMax != nil && (h.PriceRangeMin == nil || *h.PriceRangeMin > *filter.PriceMax) {
			continue
		}
		filtered = append(filtered, h)
	}
	return filtered
}

func (s *HospitalBrowseService) sortHospitals(hospitals []*entities.Hospital, order string) {
	less := func(i, j int) bool {
		return browseTieBreak(hospitals[i], hospitals[j])
	}

	switch order {
	case repositories.SortByOutcomes:
		less = func(i, j int) bool {
			oi, oj := s.scorer.OutcomeScore(hospitals[i]), s.scorer.OutcomeScore(hospitals[j])
			if oi != oj {
				return oi > oj
			}
			return browseTieBreak(hospitals[i], hospitals[j])
		}
	case repositories.SortByPrice:
		less = func(i, j int) bool {
			pi, pj := priceOrMax(hospitals[i]), priceOrMax(hospitals[j])
			if pi != pj {
				return pi < pj
			}
			return browseTieBreak(hospitals[i], hospitals[j])
		}
	}

	sort.SliceStable(hospitals, less)
}

// browseTieBreak is the default rating ordering: rating desc, reviews desc,
// then ID ascending so pagination is reproducible.
func browseTieBreak(a, b *entities.Hospital) bool {
	ra, rb := ratingOrZero(a), ratingOrZero(b)
	if ra != rb {
		return ra > rb
	}
	if a.TotalReviews != b.TotalReviews {
		return a.TotalReviews > b.TotalReviews
	}
	return a.ID < b.ID
}

func priceOrMax(h *entities.Hospital) int64 {
	if h.PriceRangeMin == nil {
		// unpriced records sort last in ascending price order
		return int64(^uint64(0) >> 1)
	}
	return *h.PriceRangeMin
}

func offersCondition(h *entities.Hospital, condition string) bool {
	for tracked := range h.SuccessRates {
		if containsFold(tracked, condition) {
			return true
		}
	}
	return anyContainsFold(h.TreatmentsOffered, condition)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(entries []string, needle string) bool {
	for _, entry := range entries {
		if containsFold(entry, needle) {
			return true
		}
	}
	return false
}
