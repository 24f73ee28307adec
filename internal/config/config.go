// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RedisURL is the Redis instance record events are published to.
	// Empty disables event publishing.
	RedisURL string

	// RateLimitRPS and RateLimitBurst shape the per-client-IP token bucket
	// on the /api routes. Defaults: 10 requests/second, bursts of 20.
	RateLimitRPS   float64
	RateLimitBurst int

	// MaxBodyBytes caps request bodies; larger requests get 413. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MigrateOnStart applies pending migrations before serving. Defaults to false.
	MigrateOnStart bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", ")))
	}

	var err error
	if cfg.RateLimitRPS, err = parseEnv("RATE_LIMIT_RPS", 10, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}); err != nil {
		errs = append(errs, err)
	} else if cfg.RateLimitRPS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS: must be positive"))
	}
	if cfg.RateLimitBurst, err = parseEnv("RATE_LIMIT_BURST", 20, strconv.Atoi); err != nil {
		errs = append(errs, err)
	} else if cfg.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST: must be positive"))
	}
	if cfg.MaxBodyBytes, err = parseEnv("MAX_BODY_BYTES", 1<<20, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	}); err != nil {
		errs = append(errs, err)
	} else if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES: must be positive"))
	}
	if cfg.MigrateOnStart, err = parseEnv("MIGRATE_ON_START", false, strconv.ParseBool); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseEnv parses the variable named by key with parse, or returns fallback
// when it is unset or empty.
func parseEnv[T any](key string, fallback T, parse func(string) (T, error)) (T, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	out, err := parse(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid value %q", key, v)
	}
	return out, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
