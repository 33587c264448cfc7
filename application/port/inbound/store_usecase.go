package inbound

import (
	"context"

	"github.com/franquianet/portal/domain/entity"
)

type CreateStoreRequest struct {
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
	City       string `json:"city"`
	State      string `json:"state"`
	Address    string `json:"address"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Address *string `json:"address,omitempty"`
}

type ListStoresRequest struct {
	PageRequest
	SupplierID         string `json:"supplier_id,omitempty"`
	InstallationStatus string `json:"installation_status,omitempty"`
	State              string `json:"state,omitempty"`
}

type ListStoresResponse struct {
	Stores     []*entity.Store `json:"stores"`
	Pagination PaginationInfo  `json:"pagination"`
}

type UpdateChecklistItemRequest struct {
	Done bool `json:"done"`
}

type ChecklistResponse struct {
	StoreID            string                    `json:"store_id"`
	InstallationStatus entity.InstallationStatus `json:"installation_status"`
	Done               int                       `json:"done"`
	Total              int                       `json:"total"`
	Items              []entity.ChecklistItem    `json:"items"`
}

type StoreUseCase interface {
	Create(ctx context.Context, req CreateStoreRequest) (*entity.Store, error)
	Get(ctx context.Context, id string) (*entity.Store, error)
	List(ctx context.Context, req ListStoresRequest) (*ListStoresResponse, error)
	Update(ctx context.Context, id string, req UpdateStoreRequest) (*entity.Store, error)
	Delete(ctx context.Context, id string) error
	Checklist(ctx context.Context, id string) (*ChecklistResponse, error)
	SetChecklistItem(ctx context.Context, id, key string, req UpdateChecklistItemRequest) (*ChecklistResponse, error)
}
