package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medatlas/hospital-discovery/internal/adapters/cache"
	redisclient "github.com/medatlas/hospital-discovery/internal/infrastructure/clients/redis"
)

func newCacheMiddleware(t *testing.T) *CacheMiddleware {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { raw.Close() })
	return NewCacheMiddleware(cache.NewRedisAdapter(redisclient.NewClientFromRaw(raw)))
}

func TestCacheMiddlewareServesSecondReadFromCache(t *testing.T) {
	mw := newCacheMiddleware(t)

	hits := 0
	handler := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"conditions":[],"count":0}`))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/conditions", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/conditions", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	assert.Equal(t, 1, hits)
}

func TestCacheMiddlewareKeysOnQueryString(t *testing.T) {
	mw := newCacheMiddleware(t)

	handler := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.RawQuery))
	}))

	knee := httptest.NewRecorder()
	handler.ServeHTTP(knee, httptest.NewRequest(http.MethodGet, "/api/conditions/suggest?q=knee", nil))
	hip := httptest.NewRecorder()
	handler.ServeHTTP(hip, httptest.NewRequest(http.MethodGet, "/api/conditions/suggest?q=hip", nil))

	assert.Equal(t, "q=knee", knee.Body.String())
	assert.Equal(t, "q=hip", hip.Body.String())
	assert.Equal(t, "MISS", hip.Header().Get("X-Cache"))
}

func TestCacheMiddlewareNeverCachesMatching(t *testing.T) {
	mw := newCacheMiddleware(t)

	hits := 0
	handler := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"hospitals":[]}`))
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/hospitals/match", nil))
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, hits)
}

func TestCacheMiddlewareSkipsErrorResponses(t *testing.T) {
	mw := newCacheMiddleware(t)

	hits := 0
	handler := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"hospital catalog is temporarily unavailable"}`))
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hospitals", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	}
	assert.Equal(t, 2, hits)
}
