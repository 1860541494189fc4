package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// APIBaseURL is the origin of the PG management API, without a trailing slash.
	APIBaseURL string
	LogLevel   string
	LogFormat  string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		APIBaseURL: normalizeBaseURL(getEnv("API_BASE_URL", "http://localhost:8080")),
		LogLevel:   getEnv("LOG_LEVEL", "warn"),
		LogFormat:  getEnv("LOG_FORMAT", "pretty"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// normalizeBaseURL trims whitespace and trailing slashes so endpoint paths
// can be appended directly.
func normalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
