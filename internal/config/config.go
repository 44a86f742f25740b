package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the local development backend
const DefaultAPIURL = "http://localhost:3000"

// Session backends
const (
	SessionKeyring = "keyring"
	SessionMemory  = "memory"
)

// Config holds all configuration for the CLI
type Config struct {
	// API Configuration
	API APIConfig

	// Session Configuration
	Session SessionConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds the backend location
type APIConfig struct {
	URL string // Backend origin, no trailing slash
}

// SessionConfig selects where the session is kept
type SessionConfig struct {
	Backend string // keyring, memory
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// Backend origin - default to the local development server
	apiURL := strings.TrimRight(os.Getenv("PRINTMARKET_API_URL"), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if !strings.HasPrefix(apiURL, "http://") && !strings.HasPrefix(apiURL, "https://") {
		return nil, fmt.Errorf("PRINTMARKET_API_URL must start with http:// or https://, got '%s'", apiURL)
	}

	sessionBackend := strings.ToLower(os.Getenv("PRINTMARKET_SESSION"))
	switch sessionBackend {
	case "":
		sessionBackend = SessionKeyring
	case SessionKeyring, SessionMemory:
	default:
		return nil, fmt.Errorf("PRINTMARKET_SESSION must be '%s' or '%s', got '%s'", SessionKeyring, SessionMemory, sessionBackend)
	}

	// Logging configuration - quiet by default, stdout belongs to command output
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			URL: apiURL,
		},
		Session: SessionConfig{
			Backend: sessionBackend,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
