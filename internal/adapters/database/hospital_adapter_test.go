package database

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medatlas/hospital-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

var hospitalTestColumns = []string{
	"id", "name", "street", "city", "state", "country",
	"phone_number", "email", "website", "description",
	"specialties", "treatments_offered",
	"price_range_min", "price_range_max",
	"rating_avg", "total_reviews", "success_rates",
	"patient_volume", "completion_rate", "patient_satisfaction",
	"response_time_hours", "is_public_listed",
	"created_at", "updated_at",
}

func fullHospitalRow(id string, successRates interface{}) []driver.Value {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "Fortune Heart & Ortho Institute",
		"12 MG Road", "Delhi", "DL", "India",
		"+91-11-5550100", "care@fortune.example", "https://fortune.example", "Tertiary care hospital",
		"{Orthopedics,Cardiology}", "{\"Knee Replacement\",\"Hip Replacement\"}",
		int64(250000), int64(450000),
		4.5, 812, successRates,
		1200, 97.0, 91.0,
		12.0, true,
		now, now,
	}
}

func newMockedAdapter(t *testing.T) (*HospitalAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adapter := NewHospitalAdapter(postgres.NewClientFromRaw(db)).(*HospitalAdapter)
	return adapter, mock
}

func TestHospitalAdapterGetByID(t *testing.T) {
	adapter, mock := newMockedAdapter(t)

	rows := sqlmock.NewRows(hospitalTestColumns).
		AddRow(fullHospitalRow("hosp-1", []byte(`{"Knee Replacement": 92}`))...)
	mock.ExpectQuery(`SELECT .+ FROM "hospitals"`).WillReturnRows(rows)

	hospital, err := adapter.GetByID(context.Background(), "hosp-1")
	require.NoError(t, err)

	assert.Equal(t, "hosp-1", hospital.ID)
	assert.Equal(t, "Fortune Heart & Ortho Institute", hospital.Name)
	assert.Equal(t, "Delhi", hospital.Address.City)
	assert.Equal(t, "India", hospital.Address.Country)
	assert.Equal(t, []string{"Orthopedics", "Cardiology"}, hospital.Specialties)
	assert.Equal(t, []string{"Knee Replacement", "Hip Replacement"}, hospital.TreatmentsOffered)
	require.NotNil(t, hospital.PriceRangeMin)
	assert.Equal(t, int64(250000), *hospital.PriceRangeMin)
	require.NotNil(t, hospital.RatingAvg)
	assert.Equal(t, 4.5, *hospital.RatingAvg)
	assert.Equal(t, 812, hospital.TotalReviews)
	assert.Equal(t, map[string]float64{"Knee Replacement": 92}, hospital.SuccessRates)
	require.NotNil(t, hospital.ResponseTimeHours)
	assert.Equal(t, 12.0, *hospital.ResponseTimeHours)
	assert.True(t, hospital.IsPublicListed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapterGetByIDNotFound(t *testing.T) {
	adapter, mock := newMockedAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "hospitals"`).
		WillReturnRows(sqlmock.NewRows(hospitalTestColumns))

	_, err := adapter.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestHospitalAdapterSnapshotSkipsMalformedRows(t *testing.T) {
	adapter, mock := newMockedAdapter(t)

	rows := sqlmock.NewRows(hospitalTestColumns).
		AddRow(fullHospitalRow("hosp-1", []byte(`{"Knee Replacement": 92}`))...).
		AddRow(fullHospitalRow("hosp-2", []byte(`not json at all`))...).
		AddRow(fullHospitalRow("hosp-3", nil)...)
	mock.ExpectQuery(`SELECT .+ FROM "hospitals"`).WillReturnRows(rows)

	hospitals, err := adapter.Snapshot(context.Background())
	require.NoError(t, err)

	// The unparseable success_rates row is dropped, not fatal
	require.Len(t, hospitals, 2)
	assert.Equal(t, "hosp-1", hospitals[0].ID)
	assert.Equal(t, "hosp-3", hospitals[1].ID)
	assert.Nil(t, hospitals[1].SuccessRates)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapterSnapshotQueryError(t *testing.T) {
	adapter, mock := newMockedAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "hospitals"`).
		WillReturnError(assert.AnError)

	_, err := adapter.Snapshot(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeCatalogUnavailable, apperrors.TypeOf(err))
}
