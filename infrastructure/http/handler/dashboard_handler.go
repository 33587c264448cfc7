package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
)

type DashboardHandler struct {
	dashboardUseCase inbound.DashboardUseCase
	authMiddleware   *middleware.AuthMiddleware
}

func NewDashboardHandler(dashboardUseCase inbound.DashboardUseCase, authMiddleware *middleware.AuthMiddleware) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
		authMiddleware:   authMiddleware,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/dashboard/metrics", h.authMiddleware.RequireAuth(h.Metrics)).Methods(http.MethodGet)
}

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardUseCase.Metrics(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", metrics)
}
