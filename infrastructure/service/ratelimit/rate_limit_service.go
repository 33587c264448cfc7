package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/franquianet/portal/application/port/inbound"
)

const keyPrefix = "ratelimit:"

// RateLimitConfig configuration for rate limiting
type RateLimitConfig struct {
	Enabled bool
}

// rateLimitService implements inbound.RateLimitService on Redis
type rateLimitService struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

// NewRateLimitService returns a Redis backed limiter, or a no-op one when
// disabled or when no client is available.
func NewRateLimitService(config RateLimitConfig, client *redis.Client, logger *logrus.Logger) inbound.RateLimitService {
	if !config.Enabled || client == nil {
		logger.Info("Rate limiting disabled")
		return NoopRateLimitService{}
	}

	logger.Info("Rate limiting service initialized")
	return &rateLimitService{
		redisClient: client,
		logger:      logger,
	}
}

// CheckLimit reports whether key is still under limit
func (s *rateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	currentCount, err := s.GetAttempts(ctx, key)
	if err != nil {
		return false, err
	}

	isUnderLimit := currentCount < limit

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"key":         key,
		"current":     currentCount,
		"limit":       limit,
		"under_limit": isUnderLimit,
	}).Debug("Rate limit check")

	return isUnderLimit, nil
}

// Increment bumps the counter for key, starting the window on first use
func (s *rateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	counterKey := keyPrefix + key

	count, err := s.redisClient.Incr(ctx, counterKey).Result()
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to increment rate limit counter")
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		if err := s.redisClient.Expire(ctx, counterKey, window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"key":    key,
		"count":  count,
		"window": window,
	}).Debug("Rate limit incremented")

	return nil
}

// Block rejects key for duration
func (s *rateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	blockKey := blockedKey(key)

	blockData := map[string]interface{}{
		"reason":     reason,
		"blocked_at": time.Now().Unix(),
		"duration":   duration.Seconds(),
	}

	pipeline := s.redisClient.TxPipeline()
	pipeline.HSet(ctx, blockKey, blockData)
	pipeline.Expire(ctx, blockKey, duration)

	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to block key")
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"key":      key,
		"duration": duration,
		"reason":   reason,
	}).Warn("Key blocked due to rate limit exceeded")

	return nil
}

// IsBlocked reports whether key is currently blocked
func (s *rateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, blockedKey(key)).Result()
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to check block status")
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return exists > 0, nil
}

// GetAttempts returns the attempts recorded for key in the current window
func (s *rateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	count, err := s.redisClient.Get(ctx, keyPrefix+key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		s.logger.WithContext(ctx).WithError(err).Error("Failed to get attempts count")
		return 0, fmt.Errorf("failed to get attempts: %w", err)
	}
	return count, nil
}

// Reset clears the counter for key. Blocks stay until they expire.
func (s *rateLimitService) Reset(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset attempts: %w", err)
	}
	return nil
}

func blockedKey(key string) string {
	return keyPrefix + "blocked:" + key
}

// NoopRateLimitService allows everything. Used when rate limiting is disabled.
type NoopRateLimitService struct{}

func (NoopRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (NoopRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (NoopRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	return nil
}

func (NoopRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (NoopRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	return 0, nil
}

func (NoopRateLimitService) Reset(ctx context.Context, key string) error {
	return nil
}
