// Package config provides runtime configuration values for the storefront.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the backend client and local state.
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	StateDir    string
	LogLevel    string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".loja-ia"
	}
	return filepath.Join(base, "loja-ia")
}

// Load collects configuration from environment with defaults. A .env file in
// the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		APIBaseURL:  getenv("API_BASE_URL", "http://localhost:8000"),
		HTTPTimeout: durenvs("HTTP_TIMEOUT", 15),
		StateDir:    getenv("STATE_DIR", defaultStateDir()),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}
