// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AppPassword is the shared password of the auth gate. It may be a
	// bcrypt hash. Optional at startup: when empty every login is refused
	// with "password not configured".
	AppPassword string

	// SessionKey signs session tokens. When empty a key is derived from
	// AppPassword, so changing the password logs everybody out.
	SessionKey string

	// CookieSecure sets the Secure attribute on the session cookie.
	CookieSecure bool

	// StorageBackend selects where documents live: "file" (default) or "postgres".
	StorageBackend string

	// DataFile and SharingFile are the JSON documents of the file backend.
	DataFile    string
	SharingFile string

	// DatabaseURL is the Postgres connection string. Required when
	// StorageBackend is "postgres".
	DatabaseURL string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// KafkaBrokers enables change events when non-empty.
	KafkaBrokers []string

	// KafkaTopic receives the change events. Defaults to "trip-planner.changes".
	KafkaTopic string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first value that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AppPassword:    os.Getenv("APP_PASSWORD"),
		SessionKey:     os.Getenv("SESSION_KEY"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DataFile:       getEnv("DATA_FILE", "data/trip.json"),
		SharingFile:    getEnv("SHARING_FILE", "data/sharing.json"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		KafkaBrokers:   splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "trip-planner.changes"),
	}

	secure, err := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("COOKIE_SECURE: %w", err)
	}
	cfg.CookieSecure = secure

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	var missing []string

	switch cfg.StorageBackend {
	case BackendFile:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendFile, BackendPostgres, cfg.StorageBackend)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
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
