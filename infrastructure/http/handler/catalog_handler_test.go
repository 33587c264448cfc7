package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
	apperror "github.com/franquianet/portal/pkg/error"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestSupplierHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		body           string
		setup          func(m *MockSupplierUseCase)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:  "admin creates supplier",
			token: adminToken,
			body:  `{"name":"Acme","document":"11.222.333/0001-81","email":"contato@acme.com"}`,
			setup: func(m *MockSupplierUseCase) {
				m.On("Create", mock.Anything, inbound.CreateSupplierRequest{
					Name: "Acme", Document: "11.222.333/0001-81", Email: "contato@acme.com",
				}).Return(&entity.Supplier{ID: "sup-1", Name: "Acme"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Supplier created successfully",
		},
		{
			name:           "missing token",
			body:           `{}`,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Authorization header required",
		},
		{
			name:           "non admin",
			token:          storeToken,
			body:           `{}`,
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Admin access required",
		},
		{
			name:           "malformed body",
			token:          adminToken,
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
		{
			name:  "validation failure",
			token: adminToken,
			body:  `{"name":"Acme"}`,
			setup: func(m *MockSupplierUseCase) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, apperror.NewUnprocessable("document is invalid"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "document is invalid",
		},
		{
			name:  "duplicate document",
			token: adminToken,
			body:  `{"name":"Acme","document":"11.222.333/0001-81","email":"contato@acme.com"}`,
			setup: func(m *MockSupplierUseCase) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, outbound.ErrSupplierAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Supplier document already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockSupplierUseCase)
			if tt.setup != nil {
				tt.setup(uc)
			}
			h := NewSupplierHandler(uc, testAuthMiddleware())

			rec := serve(h, http.MethodPost, "/api/suppliers", tt.token, tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedMsg, decodeEnvelope(t, rec.Body.Bytes()).Message)
			uc.AssertExpectations(t)
		})
	}
}

func TestSupplierHandler_ListPassesFilters(t *testing.T) {
	uc := new(MockSupplierUseCase)
	uc.On("List", mock.Anything, inbound.ListSuppliersRequest{
		PageRequest: inbound.PageRequest{Page: 2, Limit: 5},
		Search:      "acme",
		Status:      "active",
	}).Return(&inbound.ListSuppliersResponse{
		Suppliers:  []*entity.Supplier{{ID: "sup-1"}},
		Pagination: inbound.PaginationInfo{Page: 2, Limit: 5, Total: 6},
	}, nil)
	h := NewSupplierHandler(uc, testAuthMiddleware())

	rec := serve(h, http.MethodGet, "/api/suppliers?page=2&limit=5&search=acme&status=active", storeToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var data inbound.ListSuppliersResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec.Body.Bytes()).Data, &data))
	assert.Equal(t, 6, data.Pagination.Total)
	assert.Len(t, data.Suppliers, 1)
	uc.AssertExpectations(t)
}

func TestSupplierHandler_GetAndDelete(t *testing.T) {
	uc := new(MockSupplierUseCase)
	uc.On("Get", mock.Anything, "missing").Return(nil, outbound.ErrSupplierNotFound)
	uc.On("Delete", mock.Anything, "sup-1").Return(outbound.ErrSupplierHasStores)
	h := NewSupplierHandler(uc, testAuthMiddleware())

	rec := serve(h, http.MethodGet, "/api/suppliers/missing", storeToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodDelete, "/api/suppliers/sup-1", adminToken, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Supplier still has stores", decodeEnvelope(t, rec.Body.Bytes()).Message)

	rec = serve(h, http.MethodDelete, "/api/suppliers/sup-1", storeToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	uc.AssertExpectations(t)
}

func TestStoreHandler_ListPassesFilters(t *testing.T) {
	uc := new(MockStoreUseCase)
	uc.On("List", mock.Anything, inbound.ListStoresRequest{
		SupplierID:         "sup-1",
		InstallationStatus: "in_progress",
		State:              "SP",
	}).Return(&inbound.ListStoresResponse{Stores: []*entity.Store{}}, nil)
	h := NewStoreHandler(uc, testAuthMiddleware())

	rec := serve(h, http.MethodGet, "/api/stores?supplier_id=sup-1&installation_status=in_progress&state=SP", storeToken, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestStoreHandler_SetChecklistItem(t *testing.T) {
	uc := new(MockStoreUseCase)
	uc.On("SetChecklistItem", mock.Anything, "store-1", "network", inbound.UpdateChecklistItemRequest{Done: true}).
		Return(&inbound.ChecklistResponse{
			StoreID:            "store-1",
			InstallationStatus: entity.InstallationInProgress,
			Done:               1,
			Total:              5,
		}, nil)
	uc.On("SetChecklistItem", mock.Anything, "store-1", "bogus", mock.Anything).
		Return(nil, entity.ErrChecklistItemNotFound)
	h := NewStoreHandler(uc, testAuthMiddleware())

	rec := serve(h, http.MethodPatch, "/api/stores/store-1/checklist/network", storeToken, `{"done":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var data inbound.ChecklistResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec.Body.Bytes()).Data, &data))
	assert.Equal(t, 1, data.Done)
	assert.Equal(t, entity.InstallationInProgress, data.InstallationStatus)

	rec = serve(h, http.MethodPatch, "/api/stores/store-1/checklist/bogus", storeToken, `{"done":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	uc.AssertExpectations(t)
}

func TestStoreHandler_CreateRequiresAdmin(t *testing.T) {
	uc := new(MockStoreUseCase)
	h := NewStoreHandler(uc, testAuthMiddleware())

	rec := serve(h, http.MethodPost, "/api/stores", storeToken, `{"name":"Loja Centro"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTicketHandler_CreateUsesCaller(t *testing.T) {
	uc := new(MockTicketUseCase)
	uc.On("Create", mock.Anything, inbound.CreateTicketRequest{
		StoreID:   "store-1",
		Title:     "Impressora parada",
		Priority:  "high",
		CreatedBy: "store-1",
	}).Return(&entity.Ticket{ID: "t-1", Status: entity.TicketStatusOpen}, nil)
	h := NewTicketHandler(uc, testAuthMiddleware())

	rec := serve(h, http.MethodPost, "/api/tickets", storeToken,
		`{"store_id":"store-1","title":"Impressora parada","priority":"high","created_by":"someone-else"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestTicketHandler_Transitions(t *testing.T) {
	tests := []struct {
		name           string
		action         string
		method         string
		err            error
		expectedStatus int
	}{
		{"start", "start", "Start", nil, http.StatusOK},
		{"resolve", "resolve", "Resolve", nil, http.StatusOK},
		{"reopen open ticket", "reopen", "Reopen", entity.ErrInvalidTransition, http.StatusConflict},
		{"start missing ticket", "start", "Start", outbound.ErrTicketNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockTicketUseCase)
			if tt.err != nil {
				uc.On(tt.method, mock.Anything, "t-1").Return(nil, tt.err)
			} else {
				uc.On(tt.method, mock.Anything, "t-1").Return(&entity.Ticket{ID: "t-1"}, nil)
			}
			h := NewTicketHandler(uc, testAuthMiddleware())

			rec := serve(h, http.MethodPost, "/api/tickets/t-1/"+tt.action, storeToken, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_ListPassesFilters(t *testing.T) {
	uc := new(MockTicketUseCase)
	uc.On("List", mock.Anything, inbound.ListTicketsRequest{
		PageRequest: inbound.PageRequest{Page: 1},
		Status:      "open",
		Priority:    "high",
		StoreID:     "store-1",
	}).Return(&inbound.ListTicketsResponse{Tickets: []*entity.Ticket{}}, nil)
	h := NewTicketHandler(uc, testAuthMiddleware())

	rec := serve(h, http.MethodGet, "/api/tickets?page=1&status=open&priority=high&store_id=store-1", adminToken, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}
