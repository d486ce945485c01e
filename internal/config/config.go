// Package config reads trainer settings from the environment, after loading
// an optional .env file.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings shared by the web server and the TUI.
type Config struct {
	Port            string
	Production      bool
	WordsSource     string
	StorageBackend  string
	DataDir         string
	StaticBasePath  string
	StaticCacheAge  time.Duration
	RateLimitRPS    int
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

// Load reads .env (if present) and then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] Failed to load .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset or invalid values.
func FromEnv() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		Production:      os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		WordsSource:     strings.TrimSpace(os.Getenv("WORDS_SOURCE")),
		StorageBackend:  getEnv("STORAGE_BACKEND", "file"),
		DataDir:         getEnv("DATA_DIR", "data"),
		StaticBasePath:  normalizeBasePath(getEnv("STATIC_BASE_PATH", "/static")),
		StaticCacheAge:  getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 20),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// EnvName is "production" or "development".
func (c Config) EnvName() string {
	if c.Production {
		return "production"
	}
	return "development"
}

func normalizeBasePath(p string) string {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	if p == "/" {
		return "/static"
	}
	return p
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// getEnvDuration reads a time.Duration from the environment or returns a fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("[WARN] Invalid duration for %s: %v, using default %v", key, err, fallback)
		return fallback
	}
	return d
}

// getEnvInt reads an int from the environment or returns a fallback.
func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("[WARN] Invalid int for %s: %v, using default %d", key, err, fallback)
		return fallback
	}
	return i
}
