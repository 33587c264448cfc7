package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
)

type StoreHandler struct {
	storeUseCase   inbound.StoreUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewStoreHandler(storeUseCase inbound.StoreUseCase, authMiddleware *middleware.AuthMiddleware) *StoreHandler {
	return &StoreHandler{
		storeUseCase:   storeUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *StoreHandler) RegisterRoutes(router *mux.Router) {
	auth, admin := h.authMiddleware.RequireAuth, h.authMiddleware.RequireAdmin
	router.HandleFunc("/api/stores", auth(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/api/stores", admin(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/api/stores/{id}", auth(h.Get)).Methods(http.MethodGet)
	router.HandleFunc("/api/stores/{id}", admin(h.Update)).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc("/api/stores/{id}", admin(h.Delete)).Methods(http.MethodDelete)
	router.HandleFunc("/api/stores/{id}/checklist", auth(h.Checklist)).Methods(http.MethodGet)
	router.HandleFunc("/api/stores/{id}/checklist/{key}", auth(h.SetChecklistItem)).Methods(http.MethodPatch)
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateStoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	store, err := h.storeUseCase.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Store created successfully", store)
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeUseCase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", store)
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.storeUseCase.List(r.Context(), inbound.ListStoresRequest{
		PageRequest:        pageRequest(r),
		SupplierID:         q.Get("supplier_id"),
		InstallationStatus: q.Get("installation_status"),
		State:              q.Get("state"),
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", result)
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateStoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	store, err := h.storeUseCase.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Store updated successfully", store)
}

func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.storeUseCase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Store deleted successfully", nil)
}

func (h *StoreHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.storeUseCase.Checklist(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", checklist)
}

func (h *StoreHandler) SetChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateChecklistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vars := mux.Vars(r)
	checklist, err := h.storeUseCase.SetChecklistItem(r.Context(), vars["id"], vars["key"], req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Checklist updated successfully", checklist)
}
