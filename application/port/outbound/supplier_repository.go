package outbound

import (
	"context"
	"errors"

	"github.com/franquianet/portal/domain/entity"
)

var (
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrSupplierAlreadyExists = errors.New("supplier document already exists")
)

type SupplierRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Supplier, error)
	Create(ctx context.Context, supplier *entity.Supplier) error
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context, offset, limit int, filters SupplierFilters) ([]*entity.Supplier, int, error)
}

type SupplierFilters struct {
	Search string
	Status string
}

// ErrSupplierHasStores is returned when deleting a supplier that still owns stores.
var ErrSupplierHasStores = errors.New("supplier still has stores")
