package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

type TicketUseCase struct {
	tickets outbound.TicketRepository
	stores  outbound.StoreRepository
	metrics MetricsInvalidator
	logger  logger.Logger
}

func NewTicketUseCase(
	tickets outbound.TicketRepository,
	stores outbound.StoreRepository,
	metrics MetricsInvalidator,
	log logger.Logger,
) *TicketUseCase {
	return &TicketUseCase{tickets: tickets, stores: stores, metrics: invalidatorOrNoop(metrics), logger: log}
}

func (uc *TicketUseCase) Create(ctx context.Context, req inbound.CreateTicketRequest) (*entity.Ticket, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < 3 {
		return nil, invalid("title must have at least 3 characters")
	}

	priority := entity.TicketPriority(req.Priority)
	if priority == "" {
		priority = entity.TicketPriorityMedium
	}
	if !entity.ValidPriority(priority) {
		return nil, invalid(entity.ErrInvalidPriority.Error())
	}

	if _, err := uc.stores.FindByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, outbound.ErrStoreNotFound) {
			return nil, invalid("store does not exist")
		}
		return nil, fmt.Errorf("find store: %w", err)
	}

	ticket := entity.NewTicket(uuid.New().String(), req.StoreID, title, strings.TrimSpace(req.Description), priority, req.CreatedBy)
	if err := uc.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	uc.metrics.Invalidate(ctx)
	uc.logger.Info(ctx, "Ticket opened", map[string]interface{}{
		"ticket_id": ticket.ID,
		"store_id":  ticket.StoreID,
		"priority":  string(ticket.Priority),
	})
	return ticket, nil
}

func (uc *TicketUseCase) Get(ctx context.Context, id string) (*entity.Ticket, error) {
	ticket, err := uc.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return ticket, nil
}

func (uc *TicketUseCase) List(ctx context.Context, req inbound.ListTicketsRequest) (*inbound.ListTicketsResponse, error) {
	offset := req.Normalize()
	tickets, total, err := uc.tickets.FindAll(ctx, offset, req.Limit, outbound.TicketFilters{
		Status:   req.Status,
		Priority: req.Priority,
		StoreID:  req.StoreID,
	})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	if tickets == nil {
		tickets = []*entity.Ticket{}
	}
	return &inbound.ListTicketsResponse{Tickets: tickets, Pagination: req.Info(total)}, nil
}

func (uc *TicketUseCase) Start(ctx context.Context, id string) (*entity.Ticket, error) {
	return uc.transition(ctx, id, "start", (*entity.Ticket).Start)
}

func (uc *TicketUseCase) Resolve(ctx context.Context, id string) (*entity.Ticket, error) {
	return uc.transition(ctx, id, "resolve", (*entity.Ticket).Resolve)
}

func (uc *TicketUseCase) Reopen(ctx context.Context, id string) (*entity.Ticket, error) {
	return uc.transition(ctx, id, "reopen", (*entity.Ticket).Reopen)
}

func (uc *TicketUseCase) transition(ctx context.Context, id, action string, apply func(*entity.Ticket) error) (*entity.Ticket, error) {
	ticket, err := uc.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}

	from := ticket.Status
	if err := apply(ticket); err != nil {
		return nil, fmt.Errorf("%s ticket from %s: %w", action, from, err)
	}
	if err := uc.tickets.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	// open and in_progress both count as open, so only resolve/reopen move the metrics
	if ticket.IsOpen() != (from != entity.TicketStatusResolved) {
		uc.metrics.Invalidate(ctx)
	}
	uc.logger.Info(ctx, "Ticket status changed", map[string]interface{}{
		"ticket_id": ticket.ID,
		"from":      string(from),
		"to":        string(ticket.Status),
	})
	return ticket, nil
}
