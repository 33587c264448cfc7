package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/domain/valueobject"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrTooManyAttempts     = errors.New("too many login attempts, try again later")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInactiveUser        = errors.New("user account is inactive")
)

// LoginLimits configures brute-force protection on login.
type LoginLimits struct {
	IPAttempts    int
	IPWindow      time.Duration
	UserAttempts  int
	UserWindow    time.Duration
	BlockDuration time.Duration
}

func DefaultLoginLimits() LoginLimits {
	return LoginLimits{
		IPAttempts:    5,
		IPWindow:      15 * time.Minute,
		UserAttempts:  10,
		UserWindow:    time.Hour,
		BlockDuration: 30 * time.Minute,
	}
}

type AuthUseCase struct {
	userRepository         outbound.UserRepository
	refreshTokenRepository outbound.RefreshTokenRepository
	tokenService           outbound.TokenService
	passwordService        outbound.PasswordService
	rateLimitService       inbound.RateLimitService
	logger                 logger.Logger
	limits                 LoginLimits
	accessTokenTTL         time.Duration
	refreshTokenTTL        time.Duration
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	refreshTokenRepo outbound.RefreshTokenRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	rateLimitService inbound.RateLimitService,
	log logger.Logger,
	limits LoginLimits,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepository:         userRepo,
		refreshTokenRepository: refreshTokenRepo,
		tokenService:           tokenService,
		passwordService:        passwordService,
		rateLimitService:       rateLimitService,
		logger:                 log,
		limits:                 limits,
		accessTokenTTL:         accessTokenTTL,
		refreshTokenTTL:        refreshTokenTTL,
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	ip := req.ClientIP
	if ip == "" {
		ip = logger.ClientIP(ctx)
	}

	credentials, err := valueobject.NewCredentials(req.Email, req.Password)
	if err != nil {
		logger.LogAuthEvent(ctx, uc.logger, "login_validation_failed", "", ip, false, map[string]interface{}{
			"error": err.Error(),
		})
		return nil, invalid(err.Error())
	}

	ipKey := fmt.Sprintf("ip:%s", ip)
	if err := uc.checkLimit(ctx, ipKey, uc.limits.IPAttempts, uc.limits.IPWindow); err != nil {
		return nil, err
	}

	user, err := uc.userRepository.FindByEmail(ctx, credentials.Email())
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			uc.recordFailure(ctx, ipKey, uc.limits.IPWindow)
			logger.LogAuthEvent(ctx, uc.logger, "login_failed_user_not_found", "", ip, false, map[string]interface{}{
				"email": credentials.Email(),
			})
			return nil, ErrInvalidCredentials
		}
		uc.logger.Error(ctx, "Failed to find user", err, map[string]interface{}{
			"email": credentials.Email(),
		})
		return nil, fmt.Errorf("find user: %w", err)
	}

	userKey := fmt.Sprintf("user:%s", user.ID)
	if err := uc.checkLimit(ctx, userKey, uc.limits.UserAttempts, uc.limits.UserWindow); err != nil {
		return nil, err
	}

	start := time.Now()
	isValid, err := uc.passwordService.VerifyPassword(credentials.Password(), user.Password)
	logger.LogPerformance(ctx, uc.logger, "password_verification", time.Since(start), map[string]interface{}{
		"user_id": user.ID,
	})
	if err != nil {
		uc.logger.Error(ctx, "Password verification error", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !isValid {
		uc.recordFailure(ctx, ipKey, uc.limits.IPWindow)
		uc.recordFailure(ctx, userKey, uc.limits.UserWindow)
		logger.LogAuthEvent(ctx, uc.logger, "login_failed_invalid_password", user.ID, ip, false, nil)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		logger.LogAuthEvent(ctx, uc.logger, "login_failed_inactive_user", user.ID, ip, false, nil)
		return nil, ErrInactiveUser
	}

	accessToken, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		uc.logger.Error(ctx, "Failed to generate access token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	// Short sessions get a shorter refresh window unless the user asked to be remembered.
	refreshTTL := uc.refreshTokenTTL
	if !req.RememberMe {
		if refreshTTL >= 14*24*time.Hour {
			refreshTTL = 7 * 24 * time.Hour
		} else {
			refreshTTL = refreshTTL / 2
		}
	}

	refreshToken, err := uc.issueRefreshToken(ctx, user.ID, refreshTTL)
	if err != nil {
		return nil, err
	}

	if uc.rateLimitService != nil {
		if err := uc.rateLimitService.Reset(ctx, ipKey); err != nil {
			uc.logger.Warn(ctx, "Failed to reset rate limit counter", map[string]interface{}{"ip": ip, "error": err.Error()})
		}
		if err := uc.rateLimitService.Reset(ctx, userKey); err != nil {
			uc.logger.Warn(ctx, "Failed to reset rate limit counter", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		}
	}

	logger.LogAuthEvent(ctx, uc.logger, "login_successful", user.ID, ip, true, map[string]interface{}{
		"remember_me":         req.RememberMe,
		"refresh_ttl_seconds": int(refreshTTL.Seconds()),
	})

	return &inbound.LoginResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        int(uc.accessTokenTTL.Seconds()),
		RefreshExpiresIn: int(refreshTTL.Seconds()),
		User:             meResponse(user),
	}, nil
}

func (uc *AuthUseCase) Refresh(ctx context.Context, req inbound.RefreshRequest) (*inbound.RefreshResponse, error) {
	if req.RefreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := uc.refreshTokenRepository.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, outbound.ErrRefreshTokenNotFound) {
			logger.LogSecurityEvent(ctx, uc.logger, "refresh_token_not_found", "MEDIUM", nil)
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}

	if stored.IsExpired() {
		logger.LogSecurityEvent(ctx, uc.logger, "refresh_token_expired", "LOW", map[string]interface{}{
			"user_id": stored.UserID,
		})
		return nil, ErrInvalidRefreshToken
	}
	if stored.IsRevoked() {
		// A revoked token being replayed means it leaked; drop every session for the user.
		logger.LogSecurityEvent(ctx, uc.logger, "refresh_token_reused", "HIGH", map[string]interface{}{
			"user_id": stored.UserID,
		})
		if err := uc.refreshTokenRepository.RevokeByUserID(ctx, stored.UserID); err != nil {
			uc.logger.Error(ctx, "Failed to revoke user sessions", err, map[string]interface{}{"user_id": stored.UserID})
		}
		return nil, ErrInvalidRefreshToken
	}

	user, err := uc.userRepository.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive() {
		return nil, ErrInactiveUser
	}

	if err := uc.refreshTokenRepository.Revoke(ctx, req.RefreshToken); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	accessToken, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	remaining := time.Until(stored.ExpiresAt)
	newRefreshToken, err := uc.issueRefreshToken(ctx, user.ID, remaining)
	if err != nil {
		return nil, err
	}

	logger.LogAuthEvent(ctx, uc.logger, "token_refresh_successful", user.ID, "", true, nil)

	return &inbound.RefreshResponse{
		AccessToken:      accessToken,
		RefreshToken:     newRefreshToken,
		ExpiresIn:        int(uc.accessTokenTTL.Seconds()),
		RefreshExpiresIn: int(remaining.Seconds()),
	}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, req inbound.LogoutRequest) error {
	if req.RefreshToken != "" {
		err := uc.refreshTokenRepository.Revoke(ctx, req.RefreshToken)
		if err != nil && !errors.Is(err, outbound.ErrRefreshTokenNotFound) {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
		logger.LogAuthEvent(ctx, uc.logger, "logout_successful", req.UserID, "", true, nil)
		return nil
	}

	if req.UserID == "" {
		return ErrInvalidRefreshToken
	}
	if err := uc.refreshTokenRepository.RevokeByUserID(ctx, req.UserID); err != nil {
		return fmt.Errorf("revoke refresh tokens by user: %w", err)
	}
	logger.LogAuthEvent(ctx, uc.logger, "logout_all_successful", req.UserID, "", true, nil)
	return nil
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*inbound.MeResponse, error) {
	user, err := uc.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	me := meResponse(user)
	return &me, nil
}

func (uc *AuthUseCase) issueRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	raw, err := uc.tokenService.GenerateRefreshToken()
	if err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	token := entity.NewRefreshToken(uuid.New().String(), userID, raw, time.Now().Add(ttl))
	if err := uc.refreshTokenRepository.Create(ctx, token); err != nil {
		uc.logger.Error(ctx, "Failed to create refresh token", err, map[string]interface{}{
			"user_id": userID,
		})
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return raw, nil
}

// checkLimit rejects the attempt when key is blocked or over its limit. Rate
// limiter failures are logged and let the request through.
func (uc *AuthUseCase) checkLimit(ctx context.Context, key string, limit int, window time.Duration) error {
	if uc.rateLimitService == nil || limit <= 0 {
		return nil
	}

	blocked, err := uc.rateLimitService.IsBlocked(ctx, key)
	if err != nil {
		uc.logger.Error(ctx, "Failed to check block status", err, map[string]interface{}{"key": key})
		return nil
	}
	if blocked {
		logger.LogSecurityEvent(ctx, uc.logger, "blocked_login_attempt", "MEDIUM", map[string]interface{}{"key": key})
		return ErrTooManyAttempts
	}

	allowed, err := uc.rateLimitService.CheckLimit(ctx, key, limit, window)
	if err != nil {
		uc.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{"key": key})
		return nil
	}
	if !allowed {
		if err := uc.rateLimitService.Block(ctx, key, uc.limits.BlockDuration, "login rate limit exceeded"); err != nil {
			uc.logger.Error(ctx, "Failed to block key", err, map[string]interface{}{"key": key})
		}
		logger.LogSecurityEvent(ctx, uc.logger, "login_rate_limit_exceeded", "HIGH", map[string]interface{}{"key": key})
		return ErrTooManyAttempts
	}
	return nil
}

func (uc *AuthUseCase) recordFailure(ctx context.Context, key string, window time.Duration) {
	if uc.rateLimitService == nil {
		return
	}
	if err := uc.rateLimitService.Increment(ctx, key, window); err != nil {
		uc.logger.Error(ctx, "Failed to increment attempts", err, map[string]interface{}{"key": key})
	}
}

func meResponse(user *entity.User) inbound.MeResponse {
	return inbound.MeResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
