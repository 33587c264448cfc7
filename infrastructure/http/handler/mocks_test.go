package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/application/report"
	"github.com/franquianet/portal/domain"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/infrastructure/http/middleware"
)

const (
	adminToken = "admin-token"
	storeToken = "store-token"
)

// stubTokenService accepts two fixed tokens.
type stubTokenService struct{}

func (stubTokenService) GenerateAccessToken(outbound.TokenClaims) (string, error) {
	return "", nil
}

func (stubTokenService) GenerateRefreshToken() (string, error) {
	return "", nil
}

func (stubTokenService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	switch token {
	case adminToken:
		return &outbound.TokenClaims{UserID: "admin-1", Email: "admin@rede.com", Role: entity.RoleAdmin}, nil
	case storeToken:
		return &outbound.TokenClaims{UserID: "store-1", Email: "loja@rede.com", Role: entity.RoleStore}, nil
	}
	return nil, errors.New("invalid token")
}

func testAuthMiddleware() *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(stubTokenService{})
}

type routeRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

func serve(h routeRegistrar, method, target, token string, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type MockSupplierUseCase struct {
	mock.Mock
}

func (m *MockSupplierUseCase) Create(ctx context.Context, req inbound.CreateSupplierRequest) (*entity.Supplier, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Supplier), args.Error(1)
}

func (m *MockSupplierUseCase) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Supplier), args.Error(1)
}

func (m *MockSupplierUseCase) List(ctx context.Context, req inbound.ListSuppliersRequest) (*inbound.ListSuppliersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ListSuppliersResponse), args.Error(1)
}

func (m *MockSupplierUseCase) Update(ctx context.Context, id string, req inbound.UpdateSupplierRequest) (*entity.Supplier, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Supplier), args.Error(1)
}

func (m *MockSupplierUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockStoreUseCase struct {
	mock.Mock
}

func (m *MockStoreUseCase) Create(ctx context.Context, req inbound.CreateStoreRequest) (*entity.Store, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreUseCase) Get(ctx context.Context, id string) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreUseCase) List(ctx context.Context, req inbound.ListStoresRequest) (*inbound.ListStoresResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ListStoresResponse), args.Error(1)
}

func (m *MockStoreUseCase) Update(ctx context.Context, id string, req inbound.UpdateStoreRequest) (*entity.Store, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStoreUseCase) Checklist(ctx context.Context, id string) (*inbound.ChecklistResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ChecklistResponse), args.Error(1)
}

func (m *MockStoreUseCase) SetChecklistItem(ctx context.Context, id, key string, req inbound.UpdateChecklistItemRequest) (*inbound.ChecklistResponse, error) {
	args := m.Called(ctx, id, key, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ChecklistResponse), args.Error(1)
}

type MockTicketUseCase struct {
	mock.Mock
}

func (m *MockTicketUseCase) ticket(args mock.Arguments) (*entity.Ticket, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) Create(ctx context.Context, req inbound.CreateTicketRequest) (*entity.Ticket, error) {
	return m.ticket(m.Called(ctx, req))
}

func (m *MockTicketUseCase) Get(ctx context.Context, id string) (*entity.Ticket, error) {
	return m.ticket(m.Called(ctx, id))
}

func (m *MockTicketUseCase) List(ctx context.Context, req inbound.ListTicketsRequest) (*inbound.ListTicketsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ListTicketsResponse), args.Error(1)
}

func (m *MockTicketUseCase) Start(ctx context.Context, id string) (*entity.Ticket, error) {
	return m.ticket(m.Called(ctx, id))
}

func (m *MockTicketUseCase) Resolve(ctx context.Context, id string) (*entity.Ticket, error) {
	return m.ticket(m.Called(ctx, id))
}

func (m *MockTicketUseCase) Reopen(ctx context.Context, id string) (*entity.Ticket, error) {
	return m.ticket(m.Called(ctx, id))
}

type MockUploadUseCase struct {
	mock.Mock
}

func (m *MockUploadUseCase) Upload(ctx context.Context, req inbound.UploadRequest) (*entity.Attachment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attachment), args.Error(1)
}

func (m *MockUploadUseCase) Download(ctx context.Context, id string) (*inbound.Download, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Download), args.Error(1)
}

func (m *MockUploadUseCase) ListByOwner(ctx context.Context, ownerType, ownerID string) ([]*entity.Attachment, error) {
	args := m.Called(ctx, ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Attachment), args.Error(1)
}

type MockDashboardUseCase struct {
	mock.Mock
}

func (m *MockDashboardUseCase) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardMetrics), args.Error(1)
}

func (m *MockDashboardUseCase) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) Export(ctx context.Context, format report.Format) (*inbound.Artifact, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Artifact), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.LoginResponse), args.Error(1)
}

func (m *MockAuthUseCase) Refresh(ctx context.Context, req inbound.RefreshRequest) (*inbound.RefreshResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RefreshResponse), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, req inbound.LogoutRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthUseCase) Me(ctx context.Context, userID string) (*inbound.MeResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.MeResponse), args.Error(1)
}
