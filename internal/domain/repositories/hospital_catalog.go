package repositories

import (
	"context"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
)

// HospitalCatalog is the read-only view of hospital records the matching and
// browse engines consume. The engine never mutates persisted state.
type HospitalCatalog interface {
	// GetByID retrieves a single hospital record
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// Snapshot returns all hospital records as of now. Eligibility filtering
	// (public listing, structural validity) is applied by the caller, not here.
	Snapshot(ctx context.Context) ([]*entities.Hospital, error)
}

// ConditionCatalog is the read-only view of the condition/specialty catalog
type ConditionCatalog interface {
	// List returns every catalog entry
	List(ctx context.Context) ([]*entities.ConditionCatalogEntry, error)
}

// HospitalSearchIndex is the write side of the external search index
// (e.g. Typesense), kept in sync by the indexer binary.
type HospitalSearchIndex interface {
	// InitSchema ensures the index collection exists
	InitSchema(ctx context.Context) error

	// Index upserts a hospital document
	Index(ctx context.Context, hospital *entities.Hospital) error

	// Delete removes a hospital from the index
	Delete(ctx context.Context, id string) error
}

// Sort orders accepted by the browse endpoint
const (
	SortByRating   = "rating"
	SortByOutcomes = "outcomes"
	SortByPrice    = "price"
)

// BrowseFilter defines the hard filters of the browse endpoint. Unlike the
// matching endpoint, every populated field excludes non-matching hospitals
// outright (containment match, case-insensitive).
type BrowseFilter struct {
	City      string
	Specialty string
	Condition string
	PriceMin  *int64
	PriceMax  *int64
	Page      int
	Limit     int
	Sort      string
}

// BrowseResult is a paginated browse response
type BrowseResult struct {
	Hospitals  []*entities.Hospital `json:"hospitals"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}
