package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
)

const ticketColumns = `id, store_id, title, description, priority, status, created_by, created_at, updated_at, resolved_at`

// TicketRepositoryAdapter implements TicketRepository using PostgreSQL.
type TicketRepositoryAdapter struct {
	db *sql.DB
}

func NewTicketRepositoryAdapter(db *sql.DB) outbound.TicketRepository {
	return &TicketRepositoryAdapter{db: db}
}

func scanTicket(row interface{ Scan(...interface{}) error }) (*entity.Ticket, error) {
	var t entity.Ticket
	var resolvedAt sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.StoreID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.Status,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}
	if resolvedAt.Valid {
		t.ResolvedAt = &resolvedAt.Time
	}
	return &t, nil
}

func (r *TicketRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return ticket, nil
}

func (r *TicketRepositoryAdapter) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.StoreID,
		ticket.Title,
		ticket.Description,
		string(ticket.Priority),
		string(ticket.Status),
		ticket.CreatedBy,
		ticket.CreatedAt,
		ticket.UpdatedAt,
		ticket.ResolvedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return outbound.ErrStoreNotFound
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepositoryAdapter) Update(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		UPDATE tickets
		SET title = $2, description = $3, priority = $4, status = $5, updated_at = $6, resolved_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		string(ticket.Priority),
		string(ticket.Status),
		ticket.UpdatedAt,
		ticket.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return expectAffected(result, outbound.ErrTicketNotFound)
}

func (r *TicketRepositoryAdapter) FindAll(ctx context.Context, offset, limit int, filters outbound.TicketFilters) ([]*entity.Ticket, int, error) {
	where := newWhere()
	if filters.Status != "" {
		where.add("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		where.add("priority = ?", filters.Priority)
	}
	if filters.StoreID != "" {
		where.add("store_id = ?", filters.StoreID)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tickets %s", where.clause())
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	pageClause, args := where.page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM tickets %s ORDER BY created_at DESC %s`, ticketColumns, where.clause(), pageClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	tickets := []*entity.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, total, nil
}
