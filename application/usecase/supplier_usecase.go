package usecase

import (
	"context"
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

type SupplierUseCase struct {
	repo    outbound.SupplierRepository
	metrics MetricsInvalidator
	logger  logger.Logger
}

func NewSupplierUseCase(repo outbound.SupplierRepository, metrics MetricsInvalidator, log logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, metrics: invalidatorOrNoop(metrics), logger: log}
}

func (uc *SupplierUseCase) Create(ctx context.Context, req inbound.CreateSupplierRequest) (*entity.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, invalid("name must have at least 2 characters")
	}
	document, err := valueobject.NormalizeCNPJ(req.Document)
	if err != nil {
		return nil, invalid(err.Error())
	}
	email, err := valueobject.NormalizeEmail(req.Email)
	if err != nil {
		return nil, invalid(err.Error())
	}

	supplier := entity.NewSupplier(uuid.New().String(), name, document, email, strings.TrimSpace(req.Phone))
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}

	uc.metrics.Invalidate(ctx)
	uc.logger.Info(ctx, "Supplier created", map[string]interface{}{"supplier_id": supplier.ID})
	return supplier, nil
}

func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find supplier: %w", err)
	}
	return supplier, nil
}

func (uc *SupplierUseCase) List(ctx context.Context, req inbound.ListSuppliersRequest) (*inbound.ListSuppliersResponse, error) {
	offset := req.Normalize()
	suppliers, total, err := uc.repo.FindAll(ctx, offset, req.Limit, outbound.SupplierFilters{
		Search: strings.TrimSpace(req.Search),
		Status: req.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	if suppliers == nil {
		suppliers = []*entity.Supplier{}
	}
	return &inbound.ListSuppliersResponse{Suppliers: suppliers, Pagination: req.Info(total)}, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, req inbound.UpdateSupplierRequest) (*entity.Supplier, error) {
	supplier, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find supplier: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return nil, invalid("name must have at least 2 characters")
		}
		supplier.Name = name
	}
	if req.Email != nil {
		email, err := valueobject.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, invalid(err.Error())
		}
		supplier.Email = email
	}
	if req.Phone != nil {
		supplier.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Status != nil {
		if err := supplier.SetStatus(entity.SupplierStatus(*req.Status)); err != nil {
			return nil, invalid(err.Error())
		}
	}
	supplier.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return supplier, nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	uc.metrics.Invalidate(ctx)
	uc.logger.Info(ctx, "Supplier deleted", map[string]interface{}{"supplier_id": id})
	return nil
}
