package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
	tsclient "github.com/medatlas/hospital-discovery/internal/infrastructure/clients/typesense"
)

const collectionName = "hospitals"

// TypesenseAdapter maintains the hospital search index in Typesense. The
// indexer binary keeps it in sync with the catalog; the matching engine
// itself never reads from it.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements HospitalSearchIndex
var _ repositories.HospitalSearchIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "city", Type: "string", Facet: pointer.True()},
			{Name: "country", Type: "string", Facet: pointer.True()},
			{Name: "specialties", Type: "string[]", Optional: pointer.True()},
			{Name: "treatments_offered", Type: "string[]", Optional: pointer.True()},
			{Name: "rating_avg", Type: "float", Optional: pointer.True()},
			{Name: "total_reviews", Type: "int32"},
			{Name: "is_public_listed", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a hospital document
func (a *TypesenseAdapter) Index(ctx context.Context, hospital *entities.Hospital) error {
	document := map[string]interface{}{
		"id":                 hospital.ID,
		"name":               hospital.Name,
		"city":               hospital.Address.City,
		"country":            hospital.Address.Country,
		"specialties":        hospital.Specialties,
		"treatments_offered": hospital.TreatmentsOffered,
		"total_reviews":      hospital.TotalReviews,
		"is_public_listed":   hospital.IsPublicListed,
		"created_at":         hospital.CreatedAt.Unix(),
	}
	if hospital.RatingAvg != nil {
		document["rating_avg"] = *hospital.RatingAvg
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index hospital: %w", err)
	}

	return nil
}

// Delete removes a hospital from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete hospital from index: %w", err)
	}
	return nil
}

// Drop deletes the whole collection, used by the indexer's reset flag
func (a *TypesenseAdapter) Drop(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to drop hospital collection: %w", err)
	}
	return nil
}
