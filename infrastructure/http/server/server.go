// Package server assembles the HTTP router and runs it.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/infrastructure/http/handler"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

// RouteRegistrar is implemented by every handler.
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

type Config struct {
	Addr                 string
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLog     bool
	CorrelationIDHeader  string
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Middlewares run inside recovery and request logging, in order.
	Middlewares []mux.MiddlewareFunc
}

// DefaultConfig returns the timeouts used in production.
func DefaultConfig(addr string) Config {
	return Config{
		Addr:             addr,
		ReadTimeout:      15 * time.Second,
		WriteTimeout:     60 * time.Second,
		IdleTimeout:      60 * time.Second,
		EnableRequestLog: true,
	}
}

type Server struct {
	addr   string
	logger logger.Logger
	server *http.Server
}

func NewServer(config Config, log logger.Logger, registrars ...RouteRegistrar) *Server {
	return &Server{
		addr:   config.Addr,
		logger: log,
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      NewHandler(config, log, registrars...),
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// NewHandler builds the full middleware chain around a router with every
// registrar's routes plus /health.
func NewHandler(config Config, log logger.Logger, registrars ...RouteRegistrar) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Resource not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	handler.RegisterHealthRoutes(router)
	for _, r := range registrars {
		r.RegisterRoutes(router)
	}

	router.Use(middleware.Recovery(log))
	if config.EnableRequestLog {
		router.Use(middleware.RequestLogger(log))
	}
	router.Use(config.Middlewares...)

	var h http.Handler = router
	if config.CORSEnabled && len(config.CORSAllowedOrigins) > 0 {
		h = middleware.CORS(config.CORSAllowedOrigins, config.CORSAllowCredentials)(h)
	}
	return middleware.CorrelationID(config.CorrelationIDHeader)(h)
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info(ctx, "Starting HTTP server", map[string]interface{}{"addr": s.addr})
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
