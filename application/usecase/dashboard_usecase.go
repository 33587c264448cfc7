package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

// MetricsInvalidator drops cached dashboard metrics after a write.
type MetricsInvalidator interface {
	Invalidate(ctx context.Context)
}

// DashboardUseCase serves the aggregate counts, reading through the cache.
// It also satisfies outbound.MetricsSource for the report exporter.
type DashboardUseCase struct {
	repo   outbound.MetricsRepository
	cache  outbound.MetricsCache
	logger logger.Logger
}

func NewDashboardUseCase(repo outbound.MetricsRepository, cache outbound.MetricsCache, log logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, cache: cache, logger: log}
}

func (uc *DashboardUseCase) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	snapshot, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	metrics := domain.NewDashboardMetrics(snapshot)
	return &metrics, nil
}

// Snapshot returns cached counts when present and queries the database
// otherwise. Cache failures never fail the request.
func (uc *DashboardUseCase) Snapshot(ctx context.Context) (domain.MetricsSnapshot, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, outbound.ErrCacheMiss) {
			uc.logger.Warn(ctx, "Metrics cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	start := time.Now()
	snapshot, err := uc.repo.Snapshot(ctx)
	if err != nil {
		uc.logger.Error(ctx, "Failed to compute metrics snapshot", err, nil)
		return domain.MetricsSnapshot{}, fmt.Errorf("compute metrics: %w", err)
	}
	logger.LogPerformance(ctx, uc.logger, "metrics_snapshot", time.Since(start), nil)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, snapshot); err != nil {
			uc.logger.Warn(ctx, "Metrics cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return snapshot, nil
}

func (uc *DashboardUseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn(ctx, "Metrics cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

func invalidatorOrNoop(inv MetricsInvalidator) MetricsInvalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}
