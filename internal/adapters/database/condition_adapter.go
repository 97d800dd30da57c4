package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

// ConditionAdapter implements the ConditionCatalog interface over PostgreSQL
type ConditionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewConditionAdapter creates a new condition catalog adapter
func NewConditionAdapter(client *postgres.Client) repositories.ConditionCatalog {
	return &ConditionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List returns every condition catalog entry
func (a *ConditionAdapter) List(ctx context.Context) ([]*entities.ConditionCatalogEntry, error) {
	query, args, err := a.db.From("condition_catalog").
		Select("condition", "specialty", "category").
		Order(goqu.C("condition").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build condition query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewCatalogUnavailableError("failed to read condition catalog", err)
	}
	defer rows.Close()

	var entries []*entities.ConditionCatalogEntry
	for rows.Next() {
		entry := &entities.ConditionCatalogEntry{}
		if err := rows.Scan(&entry.Condition, &entry.Specialty, &entry.Category); err != nil {
			return nil, apperrors.NewInternalError("failed to scan condition row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCatalogUnavailableError("failed to read condition catalog", err)
	}

	return entries, nil
}
