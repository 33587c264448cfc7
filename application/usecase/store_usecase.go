package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/domain/valueobject"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

type StoreUseCase struct {
	stores    outbound.StoreRepository
	suppliers outbound.SupplierRepository
	metrics   MetricsInvalidator
	logger    logger.Logger
}

func NewStoreUseCase(
	stores outbound.StoreRepository,
	suppliers outbound.SupplierRepository,
	metrics MetricsInvalidator,
	log logger.Logger,
) *StoreUseCase {
	return &StoreUseCase{stores: stores, suppliers: suppliers, metrics: invalidatorOrNoop(metrics), logger: log}
}

func (uc *StoreUseCase) Create(ctx context.Context, req inbound.CreateStoreRequest) (*entity.Store, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, invalid("name must have at least 2 characters")
	}
	state, err := valueobject.NormalizeState(req.State)
	if err != nil {
		return nil, invalid(err.Error())
	}
	if _, err := uc.suppliers.FindByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, outbound.ErrSupplierNotFound) {
			return nil, invalid("supplier does not exist")
		}
		return nil, fmt.Errorf("find supplier: %w", err)
	}

	store := entity.NewStore(
		uuid.New().String(),
		req.SupplierID,
		name,
		strings.TrimSpace(req.City),
		state,
		strings.TrimSpace(req.Address),
	)
	if err := uc.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	uc.metrics.Invalidate(ctx)
	uc.logger.Info(ctx, "Store created", map[string]interface{}{"store_id": store.ID, "supplier_id": store.SupplierID})
	return store, nil
}

func (uc *StoreUseCase) Get(ctx context.Context, id string) (*entity.Store, error) {
	store, err := uc.stores.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	return store, nil
}

func (uc *StoreUseCase) List(ctx context.Context, req inbound.ListStoresRequest) (*inbound.ListStoresResponse, error) {
	offset := req.Normalize()
	filters := outbound.StoreFilters{
		SupplierID:         req.SupplierID,
		InstallationStatus: req.InstallationStatus,
	}
	if req.State != "" {
		state, err := valueobject.NormalizeState(req.State)
		if err != nil {
			return nil, invalid(err.Error())
		}
		filters.State = state
	}

	stores, total, err := uc.stores.FindAll(ctx, offset, req.Limit, filters)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if stores == nil {
		stores = []*entity.Store{}
	}
	return &inbound.ListStoresResponse{Stores: stores, Pagination: req.Info(total)}, nil
}

func (uc *StoreUseCase) Update(ctx context.Context, id string, req inbound.UpdateStoreRequest) (*entity.Store, error) {
	store, err := uc.stores.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return nil, invalid("name must have at least 2 characters")
		}
		store.Name = name
	}
	if req.City != nil {
		store.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		state, err := valueobject.NormalizeState(*req.State)
		if err != nil {
			return nil, invalid(err.Error())
		}
		store.State = state
	}
	if req.Address != nil {
		store.Address = strings.TrimSpace(*req.Address)
	}
	store.UpdatedAt = time.Now()

	if err := uc.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	return store, nil
}

func (uc *StoreUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.stores.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	uc.metrics.Invalidate(ctx)
	return nil
}

func (uc *StoreUseCase) Checklist(ctx context.Context, id string) (*inbound.ChecklistResponse, error) {
	store, err := uc.stores.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	return checklistResponse(store), nil
}

func (uc *StoreUseCase) SetChecklistItem(ctx context.Context, id, key string, req inbound.UpdateChecklistItemRequest) (*inbound.ChecklistResponse, error) {
	var previous entity.InstallationStatus
	store, err := uc.stores.UpdateChecklist(ctx, id, func(store *entity.Store) error {
		previous = store.InstallationStatus
		return store.SetChecklistItem(key, req.Done)
	})
	if err != nil {
		return nil, fmt.Errorf("update checklist: %w", err)
	}

	if store.InstallationStatus != previous {
		uc.metrics.Invalidate(ctx)
		uc.logger.Info(ctx, "Store installation status changed", map[string]interface{}{
			"store_id": store.ID,
			"from":     string(previous),
			"to":       string(store.InstallationStatus),
		})
	}
	return checklistResponse(store), nil
}

func checklistResponse(store *entity.Store) *inbound.ChecklistResponse {
	done, total := store.Progress()
	return &inbound.ChecklistResponse{
		StoreID:            store.ID,
		InstallationStatus: store.InstallationStatus,
		Done:               done,
		Total:              total,
		Items:              store.Checklist,
	}
}
