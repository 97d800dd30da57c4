package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

type stubBrowser struct {
	result   *repositories.BrowseResult
	hospital *entities.Hospital
	err      error

	gotFilter repositories.BrowseFilter
	gotID     string
}

func (b *stubBrowser) Browse(ctx context.Context, filter repositories.BrowseFilter) (*repositories.BrowseResult, error) {
	b.gotFilter = filter
	if b.err != nil {
		return nil, b.err
	}
	return b.result, nil
}

func (b *stubBrowser) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	b.gotID = id
	if b.err != nil {
		return nil, b.err
	}
	return b.hospital, nil
}

func TestBrowseHospitalsParsesQuery(t *testing.T) {
	browser := &stubBrowser{result: &repositories.BrowseResult{
		Hospitals:  []*entities.Hospital{{ID: "hosp-1", Name: "Fortune"}},
		Total:      1,
		Page:       2,
		TotalPages: 1,
	}}
	handler := NewHospitalHandler(browser)

	req := httptest.NewRequest(http.MethodGet,
		"/api/hospitals?city=Delhi&specialty=ortho&condition=knee&price_min=100000&price_max=500000&page=2&limit=10&sort=price", nil)
	rec := httptest.NewRecorder()
	handler.BrowseHospitals(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delhi", browser.gotFilter.City)
	assert.Equal(t, "ortho", browser.gotFilter.Specialty)
	assert.Equal(t, "knee", browser.gotFilter.Condition)
	require.NotNil(t, browser.gotFilter.PriceMin)
	assert.Equal(t, int64(100000), *browser.gotFilter.PriceMin)
	require.NotNil(t, browser.gotFilter.PriceMax)
	assert.Equal(t, int64(500000), *browser.gotFilter.PriceMax)
	assert.Equal(t, 2, browser.gotFilter.Page)
	assert.Equal(t, 10, browser.gotFilter.Limit)
	assert.Equal(t, repositories.SortByPrice, browser.gotFilter.Sort)
}

func TestBrowseHospitalsIgnoresJunkParams(t *testing.T) {
	browser := &stubBrowser{result: &repositories.BrowseResult{}}
	handler := NewHospitalHandler(browser)

	req := httptest.NewRequest(http.MethodGet,
		"/api/hospitals?price_min=cheap&page=-3&sort=alphabet", nil)
	rec := httptest.NewRecorder()
	handler.BrowseHospitals(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, browser.gotFilter.PriceMin)
	assert.Equal(t, 1, browser.gotFilter.Page)
	assert.Equal(t, repositories.SortByRating, browser.gotFilter.Sort)
}

func TestBrowseHospitalsEmptyResultIsAnArray(t *testing.T) {
	browser := &stubBrowser{result: &repositories.BrowseResult{Page: 1}}
	handler := NewHospitalHandler(browser)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	rec := httptest.NewRecorder()
	handler.BrowseHospitals(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.JSONEq(t, `[]`, string(payload["hospitals"]))
}

func TestBrowseHospitalsCatalogUnavailable(t *testing.T) {
	browser := &stubBrowser{err: apperrors.NewCatalogUnavailableError("db down", nil)}
	handler := NewHospitalHandler(browser)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	rec := httptest.NewRecorder()
	handler.BrowseHospitals(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetHospital(t *testing.T) {
	browser := &stubBrowser{hospital: &entities.Hospital{ID: "hosp-1", Name: "Fortune"}}
	handler := NewHospitalHandler(browser)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/hosp-1", nil)
	req.SetPathValue("id", "hosp-1")
	rec := httptest.NewRecorder()
	handler.GetHospital(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hosp-1", browser.gotID)
	assert.Contains(t, rec.Body.String(), "Fortune")
}

func TestGetHospitalNotFound(t *testing.T) {
	browser := &stubBrowser{err: apperrors.NewNotFoundError("hospital not found")}
	handler := NewHospitalHandler(browser)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	handler.GetHospital(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
