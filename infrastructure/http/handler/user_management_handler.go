package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
)

type UserManagementHandler struct {
	userManagementUseCase inbound.UserManagementUseCase
	authMiddleware        *middleware.AuthMiddleware
}

func NewUserManagementHandler(
	userManagementUseCase inbound.UserManagementUseCase,
	authMiddleware *middleware.AuthMiddleware,
) *UserManagementHandler {
	return &UserManagementHandler{
		userManagementUseCase: userManagementUseCase,
		authMiddleware:        authMiddleware,
	}
}

// RegisterRoutes registers user management routes; all of them are admin only.
func (h *UserManagementHandler) RegisterRoutes(router *mux.Router) {
	admin := h.authMiddleware.RequireAdmin
	router.HandleFunc("/api/admin/users", admin(h.ListUsers)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/users", admin(h.CreateUser)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/users/{id}", admin(h.GetUserDetail)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/users/{id}", admin(h.UpdateUser)).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc("/api/admin/users/{id}", admin(h.DeleteUser)).Methods(http.MethodDelete)
}

// CreateUser creates a new user
func (h *UserManagementHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userManagementUseCase.CreateUser(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

// UpdateUser changes name, role or status
func (h *UserManagementHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userManagementUseCase.UpdateUser(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

// DeleteUser soft deletes a user
func (h *UserManagementHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if claims := middleware.GetUserClaims(r.Context()); claims != nil && claims.UserID == userID {
		response.UnprocessableEntity(w, "You cannot delete your own account")
		return
	}

	if err := h.userManagementUseCase.DeleteUser(r.Context(), userID); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}

func (h *UserManagementHandler) GetUserDetail(w http.ResponseWriter, r *http.Request) {
	userDetail, err := h.userManagementUseCase.GetUserDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", userDetail)
}

// ListUsers retrieves a list of users with pagination and filters
func (h *UserManagementHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := inbound.ListUsersRequest{
		PageRequest: pageRequest(r),
		Filter: inbound.ListUsersFilter{
			Name:   q.Get("name"),
			Role:   q.Get("role"),
			Status: q.Get("status"),
		},
	}

	result, err := h.userManagementUseCase.ListUsers(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", result)
}
