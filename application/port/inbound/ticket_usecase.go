package inbound

import (
	"context"

	"github.com/franquianet/portal/domain/entity"
)

type CreateTicketRequest struct {
	StoreID     string `json:"store_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	CreatedBy   string `json:"-"`
}

type ListTicketsRequest struct {
	PageRequest
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	StoreID  string `json:"store_id,omitempty"`
}

type ListTicketsResponse struct {
	Tickets    []*entity.Ticket `json:"tickets"`
	Pagination PaginationInfo   `json:"pagination"`
}

type TicketUseCase interface {
	Create(ctx context.Context, req CreateTicketRequest) (*entity.Ticket, error)
	Get(ctx context.Context, id string) (*entity.Ticket, error)
	List(ctx context.Context, req ListTicketsRequest) (*ListTicketsResponse, error)
	Start(ctx context.Context, id string) (*entity.Ticket, error)
	Resolve(ctx context.Context, id string) (*entity.Ticket, error)
	Reopen(ctx context.Context, id string) (*entity.Ticket, error)
}
