package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
)

// TicketHandler handles HTTP requests for tickets
type TicketHandler struct {
	ticketUseCase  inbound.TicketUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewTicketHandler(ticketUseCase inbound.TicketUseCase, authMiddleware *middleware.AuthMiddleware) *TicketHandler {
	return &TicketHandler{
		ticketUseCase:  ticketUseCase,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers ticket routes
func (h *TicketHandler) RegisterRoutes(router *mux.Router) {
	auth := h.authMiddleware.RequireAuth
	router.HandleFunc("/api/tickets", auth(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/api/tickets", auth(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/api/tickets/{id}", auth(h.Get)).Methods(http.MethodGet)
	router.HandleFunc("/api/tickets/{id}/start", auth(h.transition(h.ticketUseCase.Start, "Ticket started"))).Methods(http.MethodPost)
	router.HandleFunc("/api/tickets/{id}/resolve", auth(h.transition(h.ticketUseCase.Resolve, "Ticket resolved"))).Methods(http.MethodPost)
	router.HandleFunc("/api/tickets/{id}/reopen", auth(h.transition(h.ticketUseCase.Reopen, "Ticket reopened"))).Methods(http.MethodPost)
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if claims := middleware.GetUserClaims(r.Context()); claims != nil {
		req.CreatedBy = claims.UserID
	}

	ticket, err := h.ticketUseCase.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Ticket created successfully", ticket)
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.ticketUseCase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", ticket)
}

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.ticketUseCase.List(r.Context(), inbound.ListTicketsRequest{
		PageRequest: pageRequest(r),
		Status:      q.Get("status"),
		Priority:    q.Get("priority"),
		StoreID:     q.Get("store_id"),
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", result)
}

func (h *TicketHandler) transition(apply func(context.Context, string) (*entity.Ticket, error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticket, err := apply(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.Success(w, http.StatusOK, message, ticket)
	}
}
