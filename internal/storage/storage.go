// ABOUTME: Store contracts for record and vector persistence
// ABOUTME: Implementations are injected so tests can substitute in-memory stores
package storage

import (
	"context"

	"github.com/patentpulse/patentpulse/internal/models"
)

// RecordStore persists raw and cleaned patent records, keyed by
// fingerprint. Upserts overwrite; re-ingesting a fingerprint never
// duplicates rows.
type RecordStore interface {
	// UpsertRaw stores the unmodified source JSON for a fingerprint.
	UpsertRaw(ctx context.Context, fingerprint string, raw []byte) error

	// UpsertCleaned stores the normalized record, keyed by its fingerprint.
	UpsertCleaned(ctx context.Context, rec *models.CleanedRecord) error

	// GetCleaned returns the cleaned record for a fingerprint, or
	// (nil, nil) when none exists.
	GetCleaned(ctx context.Context, fingerprint string) (*models.CleanedRecord, error)

	// CountRaw and CountCleaned report table sizes.
	CountRaw(ctx context.Context) (int, error)
	CountCleaned(ctx context.Context) (int, error)
}

// VectorStore persists embedding vectors keyed by fingerprint and
// answers top-k cosine similarity queries.
type VectorStore interface {
	// Upsert stores or replaces the vector and metadata for a fingerprint.
	Upsert(ctx context.Context, fingerprint string, vector []float64, meta models.VectorMetadata) error

	// SearchSimilar returns up to k hits ordered by descending cosine
	// similarity, ties broken by insertion order. Fewer than k stored
	// vectors is not an error; k < 1 is.
	SearchSimilar(ctx context.Context, query []float64, k int) ([]models.VectorSearchResult, error)

	// Count reports the number of stored vectors.
	Count(ctx context.Context) (int, error)
}
