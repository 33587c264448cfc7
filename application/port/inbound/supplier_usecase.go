package inbound

import (
	"context"

	"github.com/franquianet/portal/domain/entity"
)

type CreateSupplierRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type UpdateSupplierRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Status *string `json:"status,omitempty"`
}

type ListSuppliersRequest struct {
	PageRequest
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
}

type ListSuppliersResponse struct {
	Suppliers  []*entity.Supplier `json:"suppliers"`
	Pagination PaginationInfo     `json:"pagination"`
}

type SupplierUseCase interface {
	Create(ctx context.Context, req CreateSupplierRequest) (*entity.Supplier, error)
	Get(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context, req ListSuppliersRequest) (*ListSuppliersResponse, error)
	Update(ctx context.Context, id string, req UpdateSupplierRequest) (*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
