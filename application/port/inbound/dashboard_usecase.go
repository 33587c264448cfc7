package inbound

import (
	"context"

	"github.com/franquianet/portal/domain"
)

type DashboardUseCase interface {
	Metrics(ctx context.Context) (*domain.DashboardMetrics, error)
	// Invalidate drops any cached metrics after a write.
	Invalidate(ctx context.Context)
}
