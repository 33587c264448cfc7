package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain"
	"github.com/franquianet/portal/domain/entity"
)

// MetricsRepositoryAdapter computes the dashboard counts in one round trip so
// every value in a snapshot comes from the same statement.
type MetricsRepositoryAdapter struct {
	db *sql.DB
}

func NewMetricsRepositoryAdapter(db *sql.DB) outbound.MetricsRepository {
	return &MetricsRepositoryAdapter{db: db}
}

const snapshotQuery = `
	SELECT
		(SELECT COUNT(*) FROM suppliers),
		(SELECT COUNT(*) FROM stores),
		(SELECT COUNT(*) FROM tickets WHERE status IN ($1, $2)),
		(SELECT COUNT(*) FROM tickets WHERE status = $3),
		(SELECT COUNT(*) FROM stores WHERE installation_status = $4),
		(SELECT COUNT(*) FROM stores WHERE installation_status <> $4)
`

func (r *MetricsRepositoryAdapter) Snapshot(ctx context.Context) (domain.MetricsSnapshot, error) {
	var s domain.MetricsSnapshot
	err := r.db.QueryRowContext(ctx, snapshotQuery,
		string(entity.TicketStatusOpen),
		string(entity.TicketStatusInProgress),
		string(entity.TicketStatusResolved),
		string(entity.InstallationCompleted),
	).Scan(
		&s.TotalSuppliers,
		&s.TotalStores,
		&s.OpenTickets,
		&s.ResolvedTickets,
		&s.CompletedInstallations,
		&s.NonCompletedStores,
	)
	if err != nil {
		return domain.MetricsSnapshot{}, fmt.Errorf("failed to compute metrics snapshot: %w", err)
	}
	return s, nil
}
