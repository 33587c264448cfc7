package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
	"github.com/franquianet/portal/infrastructure/http/validator"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/auth"
	refreshHeader     = "Refresh-Token"
)

type AuthHandler struct {
	authUseCase    inbound.AuthUseCase
	authMiddleware *middleware.AuthMiddleware
	secureCookies  bool
}

func NewAuthHandler(
	authUseCase inbound.AuthUseCase,
	authMiddleware *middleware.AuthMiddleware,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		authUseCase:    authUseCase,
		authMiddleware: authMiddleware,
		secureCookies:  secureCookies,
	}
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type TokenResponse struct {
	AccessToken string              `json:"access_token"`
	ExpiresIn   int                 `json:"expires_in"`
	User        *inbound.MeResponse `json:"user,omitempty"`
}

// RegisterRoutes registers the auth routes. Login and refresh are throttled by
// the router-wide rate limiter, which applies its stricter rules to them.
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", h.Refresh).Methods(http.MethodPost)
	auth.HandleFunc("/logout", h.authMiddleware.RequireAuth(h.Logout)).Methods(http.MethodPost)
	auth.HandleFunc("/me", h.authMiddleware.RequireAuth(h.Me)).Methods(http.MethodGet)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !validator.ValidateEmail(req.Email) {
		response.UnprocessableEntity(w, "Invalid email format")
		return
	}
	if !validator.ValidateRequired(req.Password) {
		response.UnprocessableEntity(w, "Password is required")
		return
	}

	loginRes, err := h.authUseCase.Login(r.Context(), inbound.LoginRequest{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
		ClientIP:   middleware.ClientIP(r),
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	h.setRefreshCookie(w, loginRes.RefreshToken, loginRes.RefreshExpiresIn)
	user := loginRes.User
	response.Success(w, http.StatusOK, "success", TokenResponse{
		AccessToken: loginRes.AccessToken,
		ExpiresIn:   loginRes.ExpiresIn,
		User:        &user,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := refreshTokenFrom(r)
	if refreshToken == "" {
		response.Unauthorized(w, "Refresh token required")
		return
	}

	refreshRes, err := h.authUseCase.Refresh(r.Context(), inbound.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		response.FromError(w, err)
		return
	}

	h.setRefreshCookie(w, refreshRes.RefreshToken, refreshRes.RefreshExpiresIn)
	response.Success(w, http.StatusOK, "success", TokenResponse{
		AccessToken: refreshRes.AccessToken,
		ExpiresIn:   refreshRes.ExpiresIn,
	})
}

// Logout revokes the presented refresh token, or every session of the
// caller when none is presented.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil || claims.UserID == "" {
		response.Unauthorized(w, "Authorization header required")
		return
	}

	err := h.authUseCase.Logout(r.Context(), inbound.LogoutRequest{
		RefreshToken: refreshTokenFrom(r),
		UserID:       claims.UserID,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	h.setRefreshCookie(w, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	meRes, err := h.authUseCase.Me(r.Context(), claims.UserID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", meRes)
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func refreshTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get(refreshHeader)
}
