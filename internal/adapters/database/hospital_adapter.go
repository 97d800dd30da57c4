package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

// errMalformedRecord marks rows that cannot be mapped into a Hospital
var errMalformedRecord = errors.New("malformed hospital record")

var hospitalColumns = []any{
	"id", "name", "street", "city", "state", "country",
	"phone_number", "email", "website", "description",
	"specialties", "treatments_offered",
	"price_range_min", "price_range_max",
	"rating_avg", "total_reviews", "success_rates",
	"patient_volume", "completion_rate", "patient_satisfaction",
	"response_time_hours", "is_public_listed",
	"created_at", "updated_at",
}

// HospitalAdapter implements the HospitalCatalog interface over PostgreSQL
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital catalog adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalCatalog {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a hospital by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	query, args, err := a.db.From("hospitals").
		Select(hospitalColumns...).
		Where(goqu.C("id").Eq(id), goqu.C("deleted_at").IsNull()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hospital query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	hospital, err := scanHospital(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewCatalogUnavailableError("failed to get hospital", err)
	}

	return hospital, nil
}

// Snapshot returns all non-deleted hospital records. Eligibility (public
// listing) is decided by the candidate filter, not the query.
func (a *HospitalAdapter) Snapshot(ctx context.Context) ([]*entities.Hospital, error) {
	query, args, err := a.db.From("hospitals").
		Select(hospitalColumns...).
		Where(goqu.C("deleted_at").IsNull()).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build snapshot query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewCatalogUnavailableError("failed to read hospital catalog", err)
	}
	defer rows.Close()

	var hospitals []*entities.Hospital
	for rows.Next() {
		hospital, err := scanHospital(rows)
		if errors.Is(err, errMalformedRecord) {
			// one bad record never aborts the whole snapshot
			log.Warn().Err(err).Msg("skipping malformed hospital record")
			continue
		}
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital row", err)
		}
		hospitals = append(hospitals, hospital)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCatalogUnavailableError("failed to read hospital catalog", err)
	}

	return hospitals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanHospital maps one catalog row, coercing the JSONB success_rates column
// into a plain map at the storage boundary so the engine never sees raw
// database representations.
func scanHospital(row rowScanner) (*entities.Hospital, error) {
	hospital := &entities.Hospital{}
	var (
		street, state, phone, email, website, description sql.NullString
		priceMin, priceMax                                sql.NullInt64
		ratingAvg, completion, satisfaction, responseTime sql.NullFloat64
		successRates                                      []byte
	)

	err := row.Scan(
		&hospital.ID,
		&hospital.Name,
		&street,
		&hospital.Address.City,
		&state,
		&hospital.Address.Country,
		&phone,
		&email,
		&website,
		&description,
		pq.Array(&hospital.Specialties),
		pq.Array(&hospital.TreatmentsOffered),
		&priceMin,
		&priceMax,
		&ratingAvg,
		&hospital.TotalReviews,
		&successRates,
		&hospital.PatientVolume,
		&completion,
		&satisfaction,
		&responseTime,
		&hospital.IsPublicListed,
		&hospital.CreatedAt,
		&hospital.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	hospital.Address.Street = street.String
	hospital.Address.State = state.String
	hospital.PhoneNumber = phone.String
	hospital.Email = email.String
	hospital.Website = website.String
	hospital.Description = description.String
	hospital.PriceRangeMin = nullInt64Ptr(priceMin)
	hospital.PriceRangeMax = nullInt64Ptr(priceMax)
	hospital.RatingAvg = nullFloat64Ptr(ratingAvg)
	hospital.CompletionRate = nullFloat64Ptr(completion)
	hospital.PatientSatisfaction = nullFloat64Ptr(satisfaction)
	hospital.ResponseTimeHours = nullFloat64Ptr(responseTime)

	if len(successRates) > 0 {
		rates := map[string]float64{}
		if err := json.Unmarshal(successRates, &rates); err != nil {
			return nil, fmt.Errorf("%w: success_rates for hospital %s: %v", errMalformedRecord, hospital.ID, err)
		}
		hospital.SuccessRates = rates
	}

	return hospital, nil
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	value := v.Int64
	return &value
}

func nullFloat64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	value := v.Float64
	return &value
}
