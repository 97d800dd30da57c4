package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medatlas/hospital-discovery/internal/application/services"
	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

type stubConditions struct {
	entries []*entities.ConditionCatalogEntry
	err     error
}

func (c *stubConditions) List(ctx context.Context) ([]*entities.ConditionCatalogEntry, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.entries, nil
}

type stubSuggester struct {
	suggestions []services.Suggestion
	err         error

	gotQuery string
	gotLimit int
}

func (s *stubSuggester) Suggest(ctx context.Context, query string, limit int) ([]services.Suggestion, error) {
	s.gotQuery = query
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}

func TestListConditions(t *testing.T) {
	catalog := &stubConditions{entries: []*entities.ConditionCatalogEntry{
		{Condition: "Knee Replacement", Specialty: "Orthopedics", Category: "Surgery"},
		{Condition: "IVF", Specialty: "Fertility", Category: "Treatment"},
	}}
	handler := NewConditionHandler(catalog, &stubSuggester{})

	req := httptest.NewRequest(http.MethodGet, "/api/conditions", nil)
	rec := httptest.NewRecorder()
	handler.ListConditions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Conditions []entities.ConditionCatalogEntry `json:"conditions"`
		Count      int                              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 2, payload.Count)
	assert.Len(t, payload.Conditions, 2)
}

func TestListConditionsEmptyCatalog(t *testing.T) {
	handler := NewConditionHandler(&stubConditions{}, &stubSuggester{})

	req := httptest.NewRequest(http.MethodGet, "/api/conditions", nil)
	rec := httptest.NewRecorder()
	handler.ListConditions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.JSONEq(t, `[]`, string(payload["conditions"]))
}

func TestSuggestConditionsPassesQueryAndLimit(t *testing.T) {
	suggester := &stubSuggester{suggestions: []services.Suggestion{
		{Condition: "Knee Replacement", Specialty: "Orthopedics", Category: "Surgery"},
	}}
	handler := NewConditionHandler(&stubConditions{}, suggester)

	req := httptest.NewRequest(http.MethodGet, "/api/conditions/suggest?q=knee&limit=5", nil)
	rec := httptest.NewRecorder()
	handler.SuggestConditions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "knee", suggester.gotQuery)
	assert.Equal(t, 5, suggester.gotLimit)
	assert.Contains(t, rec.Body.String(), "Knee Replacement")
}

func TestSuggestConditionsNonNumericLimit(t *testing.T) {
	suggester := &stubSuggester{suggestions: []services.Suggestion{}}
	handler := NewConditionHandler(&stubConditions{}, suggester)

	req := httptest.NewRequest(http.MethodGet, "/api/conditions/suggest?q=knee&limit=all", nil)
	rec := httptest.NewRecorder()
	handler.SuggestConditions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, suggester.gotLimit)
}

func TestSuggestConditionsCatalogUnavailable(t *testing.T) {
	suggester := &stubSuggester{err: apperrors.NewCatalogUnavailableError("db down", nil)}
	handler := NewConditionHandler(&stubConditions{}, suggester)

	req := httptest.NewRequest(http.MethodGet, "/api/conditions/suggest?q=knee", nil)
	rec := httptest.NewRecorder()
	handler.SuggestConditions(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
