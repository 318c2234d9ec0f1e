package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment represents the application environment
type Environment string

const (
	// Development environment - localhost, debug enabled
	Development Environment = "development"
	// Production environment - secure cookies, release mode router
	Production Environment = "production"
)

// EnvConfig holds environment-specific configuration
type EnvConfig struct {
	Env Environment

	Debug    bool
	LogLevel string

	// CORS origin for the JSON API
	AllowedOrigin string

	// Secret the session cookie keys are derived from
	SessionSecret string
	SecureCookies bool

	// Clipboard command override for the CLI, e.g. "xclip -selection clipboard"
	ClipboardCmd string

	// Listener overrides
	Listen        string
	MetricsListen string
	SessionTTLMin int
}

// LoadEnv loads environment configuration from environment variables
func LoadEnv() *EnvConfig {
	env := getEnvOrDefault("APP_ENV", "development")

	cfg := &EnvConfig{
		Env:      Environment(strings.ToLower(env)),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	switch cfg.Env {
	case Production:
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", "")
		cfg.Debug = getEnvOrDefault("DEBUG", "false") == "true"
		cfg.SecureCookies = getEnvOrDefault("SECURE_COOKIES", "true") == "true"
	default:
		cfg.Env = Development // Normalize unknown envs to development
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", "*")
		cfg.Debug = getEnvOrDefault("DEBUG", "true") == "true"
		cfg.SecureCookies = getEnvOrDefault("SECURE_COOKIES", "false") == "true"
		if cfg.LogLevel == "info" {
			cfg.LogLevel = "debug" // Dev default
		}
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.ClipboardCmd = os.Getenv("CLIPBOARD_CMD")
	cfg.Listen = os.Getenv("LISTEN")
	cfg.MetricsListen = os.Getenv("METRICS_LISTEN")
	cfg.SessionTTLMin = parseIntOrDefault(os.Getenv("SESSION_TTL_MIN"), 0)

	return cfg
}

// IsDevelopment returns true if running in development mode
func (e *EnvConfig) IsDevelopment() bool {
	return e.Env == Development
}

// IsProduction returns true if running in production mode
func (e *EnvConfig) IsProduction() bool {
	return e.Env == Production
}

// String returns the environment name
func (e Environment) String() string {
	return string(e)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntOrDefault parses a string as int, returning default on error
func parseIntOrDefault(s string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return n
}
