package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (outbound.MetricsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewMetricsCache(client, ttl), mr
}

var snapshot = domain.MetricsSnapshot{
	TotalSuppliers:         12,
	TotalStores:            800,
	OpenTickets:            7,
	ResolvedTickets:        21,
	CompletedInstallations: 560,
	NonCompletedStores:     240,
}

func TestMetricsCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
}

func TestMetricsCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, snapshot))
	assert.True(t, mr.Exists(MetricsKey))
	assert.Equal(t, time.Minute, mr.TTL(MetricsKey))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestMetricsCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, snapshot))
	mr.FastForward(31 * time.Second)

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
}

func TestMetricsCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, snapshot))
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(MetricsKey))
}

func TestMetricsCache_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(MetricsKey, "not json"))

	_, err := c.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, outbound.ErrCacheMiss)
}

func TestMetricsCache_DefaultTTL(t *testing.T) {
	c, mr := newTestCache(t, 0)
	require.NoError(t, c.Set(context.Background(), snapshot))
	assert.Equal(t, DefaultMetricsTTL, mr.TTL(MetricsKey))
}

func TestNewMetricsCache_NilClientIsNoop(t *testing.T) {
	c := NewMetricsCache(nil, time.Minute)
	ctx := context.Background()

	assert.IsType(t, NoopMetricsCache{}, c)
	assert.NoError(t, c.Set(ctx, snapshot))
	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "://bad")
	assert.Error(t, err)
}
