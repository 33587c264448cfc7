package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
)

type SupplierHandler struct {
	supplierUseCase inbound.SupplierUseCase
	authMiddleware  *middleware.AuthMiddleware
}

func NewSupplierHandler(supplierUseCase inbound.SupplierUseCase, authMiddleware *middleware.AuthMiddleware) *SupplierHandler {
	return &SupplierHandler{
		supplierUseCase: supplierUseCase,
		authMiddleware:  authMiddleware,
	}
}

func (h *SupplierHandler) RegisterRoutes(router *mux.Router) {
	auth, admin := h.authMiddleware.RequireAuth, h.authMiddleware.RequireAdmin
	router.HandleFunc("/api/suppliers", auth(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/api/suppliers", admin(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/api/suppliers/{id}", auth(h.Get)).Methods(http.MethodGet)
	router.HandleFunc("/api/suppliers/{id}", admin(h.Update)).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc("/api/suppliers/{id}", admin(h.Delete)).Methods(http.MethodDelete)
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateSupplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	supplier, err := h.supplierUseCase.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Supplier created successfully", supplier)
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.supplierUseCase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", supplier)
}

// List supports ?search= on name or document and ?status=.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.supplierUseCase.List(r.Context(), inbound.ListSuppliersRequest{
		PageRequest: pageRequest(r),
		Search:      q.Get("search"),
		Status:      q.Get("status"),
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", result)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateSupplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	supplier, err := h.supplierUseCase.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Supplier updated successfully", supplier)
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.supplierUseCase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Supplier deleted successfully", nil)
}
