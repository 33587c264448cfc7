package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain"
)

// MetricsKey holds the JSON encoded dashboard snapshot.
const MetricsKey = "dashboard:metrics"

const DefaultMetricsTTL = 30 * time.Second

type redisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMetricsCache returns a Redis backed cache, or a no-op cache when client
// is nil.
func NewMetricsCache(client *redis.Client, ttl time.Duration) outbound.MetricsCache {
	if client == nil {
		return NoopMetricsCache{}
	}
	if ttl <= 0 {
		ttl = DefaultMetricsTTL
	}
	return &redisMetricsCache{client: client, ttl: ttl}
}

func (c *redisMetricsCache) Get(ctx context.Context) (domain.MetricsSnapshot, error) {
	raw, err := c.client.Get(ctx, MetricsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.MetricsSnapshot{}, outbound.ErrCacheMiss
		}
		return domain.MetricsSnapshot{}, fmt.Errorf("failed to read metrics cache: %w", err)
	}

	var snapshot domain.MetricsSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.MetricsSnapshot{}, fmt.Errorf("failed to decode cached metrics: %w", err)
	}
	return snapshot, nil
}

func (c *redisMetricsCache) Set(ctx context.Context, snapshot domain.MetricsSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	if err := c.client.Set(ctx, MetricsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write metrics cache: %w", err)
	}
	return nil
}

func (c *redisMetricsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, MetricsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate metrics cache: %w", err)
	}
	return nil
}

// NoopMetricsCache never holds anything.
type NoopMetricsCache struct{}

func (NoopMetricsCache) Get(context.Context) (domain.MetricsSnapshot, error) {
	return domain.MetricsSnapshot{}, outbound.ErrCacheMiss
}

func (NoopMetricsCache) Set(context.Context, domain.MetricsSnapshot) error { return nil }

func (NoopMetricsCache) Invalidate(context.Context) error { return nil }
