package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret        string
	RefreshTokenSalt string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	ServerPort  string
	ServerHost  string
	Environment string

	RedisURL               string
	RateLimitEnabled       bool
	RateLimitIPAttempts    int
	RateLimitIPWindow      time.Duration
	RateLimitUserAttempts  int
	RateLimitUserWindow    time.Duration
	RateLimitBlockDuration time.Duration
	RateLimitAPIRequests   int
	RateLimitAPIWindow     time.Duration

	MetricsCacheEnabled bool
	MetricsCacheTTL     time.Duration

	UploadDir      string
	UploadMaxBytes int64

	ReportTitle       string
	ReportPDFCompress bool

	LogLevel               string
	LogFormat              string
	LogCorrelationIDHeader string
	LogEnableRequestLog    bool

	// CORS configuration
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrMissingRefreshSalt = errors.New("REFRESH_TOKEN_SALT is required")
	ErrInvalidTokenTTL    = errors.New("invalid token TTL format")
	ErrInvalidDuration    = errors.New("invalid duration format")
	ErrInvalidUploadLimit = errors.New("UPLOAD_MAX_BYTES must be positive")
)

const DefaultReportTitle = "Relatório Gerencial - Rede de Franquias"

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBMaxOpenConns: getEnvOrDefaultInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvOrDefaultInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		RefreshTokenSalt: os.Getenv("REFRESH_TOKEN_SALT"),

		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost:  getEnvOrDefault("SERVER_HOST", "localhost"),
		Environment: getEnvOrDefault("ENV", "development"),

		RedisURL:              os.Getenv("REDIS_URL"),
		RateLimitEnabled:      getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitIPAttempts:   getEnvOrDefaultInt("RATE_LIMIT_IP_ATTEMPTS", 5),
		RateLimitUserAttempts: getEnvOrDefaultInt("RATE_LIMIT_USER_ATTEMPTS", 10),
		RateLimitAPIRequests:  getEnvOrDefaultInt("RATE_LIMIT_API_REQUESTS", 300),

		MetricsCacheEnabled: getEnvOrDefaultBool("METRICS_CACHE_ENABLED", true),

		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		UploadMaxBytes: int64(getEnvOrDefaultInt("UPLOAD_MAX_BYTES", 5<<20)),

		ReportTitle:       getEnvOrDefault("REPORT_TITLE", DefaultReportTitle),
		ReportPDFCompress: getEnvOrDefaultBool("REPORT_PDF_COMPRESS", true),

		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		LogCorrelationIDHeader: getEnvOrDefault("LOG_CORRELATION_ID_HEADER", "X-Correlation-ID"),
		LogEnableRequestLog:    getEnvOrDefaultBool("LOG_ENABLE_REQUEST_LOG", true),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.RefreshTokenSalt == "" {
		return nil, ErrMissingRefreshSalt
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, ErrInvalidUploadLimit
	}

	// Parse token TTLs
	accessTokenTTL, err := parseTokenTTL(getEnvOrDefault("JWT_ACCESS_TOKEN_TTL", "900"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.AccessTokenTTL = accessTokenTTL

	refreshTokenTTL, err := parseTokenTTL(getEnvOrDefault("JWT_REFRESH_TOKEN_TTL", "2592000"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RefreshTokenTTL = refreshTokenTTL

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"DB_CONN_MAX_LIFETIME", 5 * time.Minute, &cfg.DBConnMaxLifetime},
		{"RATE_LIMIT_IP_WINDOW", 15 * time.Minute, &cfg.RateLimitIPWindow},
		{"RATE_LIMIT_USER_WINDOW", time.Hour, &cfg.RateLimitUserWindow},
		{"RATE_LIMIT_BLOCK_DURATION", 30 * time.Minute, &cfg.RateLimitBlockDuration},
		{"RATE_LIMIT_API_WINDOW", time.Minute, &cfg.RateLimitAPIWindow},
		{"METRICS_CACHE_TTL", 30 * time.Second, &cfg.MetricsCacheTTL},
	}
	for _, d := range durations {
		v, err := getEnvOrDefaultDuration(d.key, d.def)
		if err != nil {
			return nil, ErrInvalidDuration
		}
		*d.dest = v
	}

	return cfg, nil
}

// Address is the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// getEnvOrDefaultDuration reads plain seconds or a Go duration string.
func getEnvOrDefaultDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(value)
}

func parseTokenTTL(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseAllowedOrigins(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
