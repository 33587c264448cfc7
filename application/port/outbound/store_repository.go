package outbound

import (
	"context"
	"errors"

	"github.com/franquianet/portal/domain/entity"
)

var ErrStoreNotFound = errors.New("store not found")

// StoreRepository persists stores together with their installation checklist.
type StoreRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Store, error)
	Create(ctx context.Context, store *entity.Store) error
	Update(ctx context.Context, store *entity.Store) error
	// UpdateChecklist locks the store row, applies fn to the current state and
	// persists the result in the same transaction.
	UpdateChecklist(ctx context.Context, id string, fn func(store *entity.Store) error) (*entity.Store, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context, offset, limit int, filters StoreFilters) ([]*entity.Store, int, error)
}

type StoreFilters struct {
	SupplierID         string
	InstallationStatus string
	State              string
}
