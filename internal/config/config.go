// ABOUTME: Centralized configuration for the patent search system
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/patentpulse/patentpulse/internal/storage/sqlite"
)

// Config holds all configuration for the patent search system
type Config struct {
	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Ingestion settings
	Workers        int
	EmbedRateLimit float64

	// Search settings
	DefaultTopK int

	// HTTP settings
	HTTPAddr string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:         getEnv("PATENTPULSE_DB", sqlite.DefaultDBPath()),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel: getEnv("PATENTPULSE_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		Workers:        getEnvInt("PATENTPULSE_WORKERS", 4),
		EmbedRateLimit: getEnvFloat("PATENTPULSE_EMBED_RPS", 10),
		DefaultTopK:    getEnvInt("PATENTPULSE_TOP_K", 5),
		HTTPAddr:       getEnv("PATENTPULSE_ADDR", ":8080"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Workers < 1 || c.Workers > 64 {
		return fmt.Errorf("PATENTPULSE_WORKERS must be 1-64, got %d", c.Workers)
	}
	if c.EmbedRateLimit <= 0 {
		return fmt.Errorf("PATENTPULSE_EMBED_RPS must be positive, got %f", c.EmbedRateLimit)
	}
	if c.DefaultTopK < 1 {
		return fmt.Errorf("PATENTPULSE_TOP_K must be >= 1, got %d", c.DefaultTopK)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
