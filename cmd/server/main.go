package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/application/usecase"
	"github.com/franquianet/portal/application/usecase/user_management"
	"github.com/franquianet/portal/infrastructure/adapter/postgres"
	"github.com/franquianet/portal/infrastructure/cache"
	"github.com/franquianet/portal/infrastructure/config"
	"github.com/franquianet/portal/infrastructure/http/handler"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/server"
	"github.com/franquianet/portal/infrastructure/report/pdf"
	"github.com/franquianet/portal/infrastructure/report/xlsx"
	"github.com/franquianet/portal/infrastructure/service/jwt"
	"github.com/franquianet/portal/infrastructure/service/logger"
	"github.com/franquianet/portal/infrastructure/service/password"
	"github.com/franquianet/portal/infrastructure/service/ratelimit"
	"github.com/franquianet/portal/infrastructure/storage/local"
)

const serviceName = "franchise-portal"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: serviceName,
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	// Redis backs both rate limiting and the metrics cache. Without it the
	// service still runs, unthrottled and uncached.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			structuredLogger.Error(ctx, "Redis unavailable, continuing without it", err, nil)
			redisClient = nil
		} else {
			defer redisClient.Close()
			structuredLogger.Info(ctx, "Redis connection established", nil)
		}
	}

	rlLogger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		rlLogger.SetLevel(level)
	}
	rlLogger.SetFormatter(&logrus.JSONFormatter{})
	rateLimitService := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{Enabled: cfg.RateLimitEnabled}, redisClient, rlLogger)

	var metricsCache outbound.MetricsCache = cache.NoopMetricsCache{}
	if cfg.MetricsCacheEnabled {
		metricsCache = cache.NewMetricsCache(redisClient, cfg.MetricsCacheTTL)
	}

	fileStorage, err := local.NewStorage(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepositoryAdapter(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepositoryAdapter(db, cfg.RefreshTokenSalt)
	supplierRepo := postgres.NewSupplierRepositoryAdapter(db)
	storeRepo := postgres.NewStoreRepositoryAdapter(db)
	ticketRepo := postgres.NewTicketRepositoryAdapter(db)
	attachmentRepo := postgres.NewAttachmentRepositoryAdapter(db)
	metricsRepo := postgres.NewMetricsRepositoryAdapter(db)

	// Services
	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)

	// Use cases
	limits := usecase.LoginLimits{
		IPAttempts:    cfg.RateLimitIPAttempts,
		IPWindow:      cfg.RateLimitIPWindow,
		UserAttempts:  cfg.RateLimitUserAttempts,
		UserWindow:    cfg.RateLimitUserWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}
	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		refreshTokenRepo,
		tokenService,
		passwordService,
		rateLimitService,
		structuredLogger,
		limits,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	userManagementUseCase := user_management.NewUserManagementUseCase(userRepo, refreshTokenRepo, passwordService)
	dashboardUseCase := usecase.NewDashboardUseCase(metricsRepo, metricsCache, structuredLogger)
	supplierUseCase := usecase.NewSupplierUseCase(supplierRepo, dashboardUseCase, structuredLogger)
	storeUseCase := usecase.NewStoreUseCase(storeRepo, supplierRepo, dashboardUseCase, structuredLogger)
	ticketUseCase := usecase.NewTicketUseCase(ticketRepo, storeRepo, dashboardUseCase, structuredLogger)
	uploadUseCase := usecase.NewUploadUseCase(attachmentRepo, fileStorage, supplierRepo, storeRepo, ticketRepo, cfg.UploadMaxBytes, structuredLogger)
	reportUseCase := usecase.NewReportUseCase(
		dashboardUseCase,
		[]outbound.ReportRenderer{
			pdf.NewRenderer(pdf.WithCompression(cfg.ReportPDFCompress)),
			xlsx.NewRenderer(),
		},
		cfg.ReportTitle,
		structuredLogger,
	)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	rules := middleware.DefaultRateLimitRules()
	rules.General = middleware.RateLimitRule{
		Limit:  cfg.RateLimitAPIRequests,
		Window: cfg.RateLimitAPIWindow,
		Block:  cfg.RateLimitBlockDuration,
	}
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimitService, rules, structuredLogger)

	serverConfig := server.DefaultConfig(cfg.Address())
	serverConfig.EnableRequestLog = cfg.LogEnableRequestLog
	serverConfig.CorrelationIDHeader = cfg.LogCorrelationIDHeader
	serverConfig.CORSEnabled = cfg.CORSEnabled
	serverConfig.CORSAllowedOrigins = cfg.CORSAllowedOrigins
	serverConfig.CORSAllowCredentials = cfg.CORSAllowCredentials
	serverConfig.Middlewares = []mux.MiddlewareFunc{rateLimitMiddleware.RateLimit}

	srv := server.NewServer(serverConfig, structuredLogger,
		handler.NewAuthHandler(authUseCase, authMiddleware, cfg.IsProduction()),
		handler.NewUserManagementHandler(userManagementUseCase, authMiddleware),
		handler.NewSupplierHandler(supplierUseCase, authMiddleware),
		handler.NewStoreHandler(storeUseCase, authMiddleware),
		handler.NewTicketHandler(ticketUseCase, authMiddleware),
		handler.NewUploadHandler(uploadUseCase, authMiddleware, cfg.UploadMaxBytes, structuredLogger),
		handler.NewDashboardHandler(dashboardUseCase, authMiddleware),
		handler.NewReportHandler(reportUseCase, authMiddleware),
	)

	go func() {
		if err := srv.Start(ctx); err != nil {
			structuredLogger.Error(ctx, "Server failed", err, map[string]interface{}{
				"addr": cfg.Address(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
