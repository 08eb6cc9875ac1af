// ABOUTME: Configuration loader for the idmctl client
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"idmctl/storage"
)

type Config struct {
	// Backend
	APIURL   string // base URL of the identity API
	AuthPath string // authenticate endpoint path

	// Client behavior
	RequestTimeout int // seconds, default per-call timeout

	// Session persistence
	SessionFile string // path of the durable session store
}

func Load() (*Config, error) {
	// .env is optional; real environment always wins
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         ensureScheme(getEnv("IDM_API_URL", "http://localhost:8080")),
		AuthPath:       getEnv("IDM_AUTH_PATH", "/authenticate"),
		RequestTimeout: getEnvInt("IDM_REQUEST_TIMEOUT", 10),
		SessionFile:    getEnv("IDM_SESSION_FILE", storage.DefaultPath()),
	}

	if cfg.RequestTimeout < 1 || cfg.RequestTimeout > 600 {
		return nil, fmt.Errorf("IDM_REQUEST_TIMEOUT must be between 1 and 600, got %d", cfg.RequestTimeout)
	}
	if !strings.HasPrefix(cfg.AuthPath, "/") {
		cfg.AuthPath = "/" + cfg.AuthPath
	}

	return cfg, nil
}

// AuthURL returns the absolute authenticate endpoint
func (c *Config) AuthURL() string {
	return c.APIURL + c.AuthPath
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	return strings.TrimRight(url, "/")
}
