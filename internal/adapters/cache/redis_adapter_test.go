package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medatlas/hospital-discovery/internal/domain/providers"
	redisclient "github.com/medatlas/hospital-discovery/internal/infrastructure/clients/redis"
)

func newTestAdapter(t *testing.T) (providers.CacheProvider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { raw.Close() })
	return NewRedisAdapter(redisclient.NewClientFromRaw(raw)), mr
}

func TestRedisAdapterRoundTrip(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "match:abc", []byte(`{"score":93}`), 60))

	value, err := adapter.Get(ctx, "match:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"score":93}`), value)

	exists, err := adapter.Exists(ctx, "match:abc")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisAdapterGetMissingKey(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key not found")
}

func TestRedisAdapterDelete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "doomed", []byte("x"), 60))
	require.NoError(t, adapter.Delete(ctx, "doomed"))

	exists, err := adapter.Exists(ctx, "doomed")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisAdapterExpiry(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "short-lived", []byte("x"), 30))

	mr.FastForward(31 * time.Second)

	exists, err := adapter.Exists(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, exists)
}
