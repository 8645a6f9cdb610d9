// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Store wiring and small formatting helpers
package commands

import (
	"fmt"

	"github.com/patentpulse/patentpulse/internal/config"
	"github.com/patentpulse/patentpulse/internal/llm"
	"github.com/patentpulse/patentpulse/internal/storage/sqlite"
)

// openStores opens the SQLite database and both stores for a command.
// Callers own the returned DB and must Close it.
func openStores(cfg *config.Config) (*sqlite.DB, *sqlite.RecordStore, *sqlite.VectorStore, error) {
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return db, sqlite.NewRecordStore(db), sqlite.NewVectorStore(db), nil
}

// newEmbedder builds the OpenAI embedding client from config.
func newEmbedder(cfg *config.Config) (*llm.OpenAIClient, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		EmbeddingModel: llm.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
