// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, Load returns an error
// and the process exits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the backend.
type Config struct {
	Port     string
	GRPCPort string

	DatabaseURL string
	RedisURL    string // optional; empty disables the run lock, events and the category cache

	JWTSecret string
	TokenTTL  time.Duration

	JobsAPIURL   string
	JobsAPIKey   string
	FetchTimeout time.Duration

	IngestCron      string // cron spec, e.g. "0 * * * *"
	IngestOnStartup bool
	IngestPageSize  int
	IngestMaxPages  int
	IngestWorkers   int

	CategoryCacheTTL time.Duration
	StaticDir        string
}

// Load reads environment variables (after an optional .env file) and returns a
// validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := &Config{
		Port:        envOr("PORT", "3000"),
		GRPCPort:    envOr("GRPC_PORT", "9090"),
		DatabaseURL: dbURL,
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   secret,
		JobsAPIURL:  envOr("WEDATATOOLS_URL", "https://api.wedatatools.com/v2/get-jobs"),
		JobsAPIKey:  os.Getenv("WEDATATOOLS_API_KEY"),
		IngestCron:  envOr("INGEST_CRON", "0 * * * *"),
		StaticDir:   envOr("STATIC_DIR", "public"),
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = durationEnv("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CategoryCacheTTL, err = durationEnv("CATEGORY_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.IngestOnStartup, err = boolEnv("INGEST_ON_STARTUP", true); err != nil {
		return nil, err
	}
	if cfg.IngestPageSize, err = positiveIntEnv("INGEST_PAGE_SIZE", 40); err != nil {
		return nil, err
	}
	if cfg.IngestMaxPages, err = positiveIntEnv("INGEST_MAX_PAGES", 1); err != nil {
		return nil, err
	}
	if cfg.IngestWorkers, err = positiveIntEnv("INGEST_WORKERS", 1); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func positiveIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, s)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, s)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, s)
	}
	return b, nil
}
