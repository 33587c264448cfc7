package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/infrastructure/http/response"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

// RateLimitRule caps requests per client IP within a window.
type RateLimitRule struct {
	Limit  int
	Window time.Duration
	Block  time.Duration
}

type RateLimitRules struct {
	Login   RateLimitRule
	Refresh RateLimitRule
	General RateLimitRule
}

func DefaultRateLimitRules() RateLimitRules {
	return RateLimitRules{
		Login:   RateLimitRule{Limit: 10, Window: 15 * time.Minute, Block: 30 * time.Minute},
		Refresh: RateLimitRule{Limit: 30, Window: time.Hour, Block: 15 * time.Minute},
		General: RateLimitRule{Limit: 100, Window: time.Minute, Block: 15 * time.Minute},
	}
}

type RateLimitMiddleware struct {
	rateLimitService inbound.RateLimitService
	rules            RateLimitRules
	logger           logger.Logger
}

func NewRateLimitMiddleware(rateLimitService inbound.RateLimitService, rules RateLimitRules, logger logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		rules:            rules,
		logger:           logger,
	}
}

func (m *RateLimitMiddleware) rule(path, clientIP string) (string, RateLimitRule) {
	switch {
	case strings.HasSuffix(path, "/login"):
		return "login:ip:" + clientIP, m.rules.Login
	case strings.HasSuffix(path, "/refresh"):
		return "refresh:ip:" + clientIP, m.rules.Refresh
	default:
		return "general:ip:" + clientIP, m.rules.General
	}
}

func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimitService == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		clientIP := ClientIP(r)
		key, rule := m.rule(r.URL.Path, clientIP)
		fields := map[string]interface{}{
			"ip":        clientIP,
			"path":      r.URL.Path,
			"key":       key,
			"userAgent": r.UserAgent(),
		}

		isBlocked, err := m.rateLimitService.IsBlocked(ctx, key)
		if err != nil {
			m.logger.Error(ctx, "Failed to check block status", err, fields)
		}
		if isBlocked {
			logger.LogSecurityEvent(ctx, m.logger, "rate_limit_blocked", "MEDIUM", fields)
			tooManyRequests(w, rule.Block)
			return
		}

		allowed, err := m.rateLimitService.CheckLimit(ctx, key, rule.Limit, rule.Window)
		if err != nil {
			// Redis trouble must not take the API down.
			m.logger.Error(ctx, "Failed to check rate limit", err, fields)
			allowed = true
		}
		if !allowed {
			if err := m.rateLimitService.Block(ctx, key, rule.Block, "Rate limit exceeded"); err != nil {
				m.logger.Error(ctx, "Failed to block IP", err, fields)
			}
			logger.LogSecurityEvent(ctx, m.logger, "rate_limit_exceeded", "HIGH", fields)
			tooManyRequests(w, rule.Block)
			return
		}

		if err := m.rateLimitService.Increment(ctx, key, rule.Window); err != nil {
			m.logger.Error(ctx, "Failed to increment rate limit", err, fields)
		}

		next.ServeHTTP(w, r)
	})
}

func tooManyRequests(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
	response.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}

// ClientIP extracts the caller's IP, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
