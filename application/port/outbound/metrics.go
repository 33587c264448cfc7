package outbound

import (
	"context"
	"errors"

	"github.com/franquianet/portal/domain"
)

// ErrCacheMiss is returned by MetricsCache.Get when nothing is cached.
var ErrCacheMiss = errors.New("metrics cache miss")

// MetricsSource yields a fresh snapshot for a report. The server reads it from
// the database; the CLI reads it over HTTP.
type MetricsSource interface {
	Snapshot(ctx context.Context) (domain.MetricsSnapshot, error)
}

// MetricsRepository computes the snapshot from stored entities.
type MetricsRepository interface {
	MetricsSource
}

type MetricsCache interface {
	Get(ctx context.Context) (domain.MetricsSnapshot, error)
	Set(ctx context.Context, snapshot domain.MetricsSnapshot) error
	Invalidate(ctx context.Context) error
}
