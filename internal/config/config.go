package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Blob         BlobConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Cache        CacheConfig
	CORS         CORSConfig
	Notification NotificationConfig
	Seed         SeedConfig
	Legacy       LegacyConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// BlobConfig selects the object store backend.
type BlobConfig struct {
	// Backend is "redis" or "memory".
	Backend string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines password hashing parameters.
type AuthConfig struct {
	BcryptCost int
}

// CacheConfig bounds the advisory users cache.
type CacheConfig struct {
	UsersTTLSeconds int
}

// CORSConfig lists origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// SeedConfig parameterizes the one-off store initializer.
type SeedConfig struct {
	AdminPhone    string
	AdminPassword string
}

// LegacyConfig points the migration tool at the old SQL database.
type LegacyConfig struct {
	PostgresDSN string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "gift-registry"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Blob: BlobConfig{
			Backend: getEnv("BLOB_BACKEND", "redis"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			BcryptCost: getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		Cache: CacheConfig{
			UsersTTLSeconds: getEnvAsInt("USERS_CACHE_TTL_SECONDS", 60),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS",
				"http://localhost:4200,http://localhost,https://*.netlify.app,https://*.vercel.app")),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Seed: SeedConfig{
			AdminPhone:    getEnv("SEED_ADMIN_PHONE", "11999999999"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		},
		Legacy: LegacyConfig{
			PostgresDSN: os.Getenv("LEGACY_POSTGRES_DSN"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// UsersTTL returns the users cache lifetime.
func (c CacheConfig) UsersTTL() time.Duration {
	if c.UsersTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.UsersTTLSeconds) * time.Second
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
