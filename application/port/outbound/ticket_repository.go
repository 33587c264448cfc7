package outbound

import (
	"context"
	"errors"

	"github.com/franquianet/portal/domain/entity"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Ticket, error)
	Create(ctx context.Context, ticket *entity.Ticket) error
	Update(ctx context.Context, ticket *entity.Ticket) error
	FindAll(ctx context.Context, offset, limit int, filters TicketFilters) ([]*entity.Ticket, int, error)
}

type TicketFilters struct {
	Status   string
	Priority string
	StoreID  string
}
