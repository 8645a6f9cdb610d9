// ABOUTME: Search engine resolving semantic hits into displayable results
// ABOUTME: Embeds the query, queries the vector store, joins the record store
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/patentpulse/patentpulse/internal/models"
	"github.com/patentpulse/patentpulse/internal/pipeline"
	"github.com/patentpulse/patentpulse/internal/storage"
)

// DefaultTopK is the result count used when the caller does not ask
// for a specific k.
const DefaultTopK = 5

// ErrInvalidQuery marks a request rejected before touching the stores:
// empty query text or non-positive k.
var ErrInvalidQuery = errors.New("invalid query")

// Engine executes similarity queries. It is read-only and safe for
// concurrent use.
type Engine struct {
	embedder pipeline.Embedder
	vectors  storage.VectorStore
	records  storage.RecordStore
}

// NewEngine creates an Engine with injected dependencies. The embedder
// must be the same one used at ingestion so the embedding spaces match.
func NewEngine(embedder pipeline.Embedder, vectors storage.VectorStore, records storage.RecordStore) *Engine {
	return &Engine{
		embedder: embedder,
		vectors:  vectors,
		records:  records,
	}
}

// Search embeds the query text and returns up to k results ordered by
// descending similarity. Hits whose cleaned record is missing (store
// inconsistency) are dropped from the results, not fatal.
func (e *Engine) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query text", ErrInvalidQuery)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidQuery, k)
	}

	queryVector, err := e.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := e.vectors.SearchSimilar(ctx, queryVector, k)
	if err != nil {
		return nil, fmt.Errorf("searching vectors: %w", err)
	}

	results := make([]models.SearchResult, 0, len(hits))
	for _, hit := range hits {
		rec, err := e.records.GetCleaned(ctx, hit.Fingerprint)
		if err != nil {
			return nil, fmt.Errorf("resolving record %s: %w", hit.Fingerprint, err)
		}
		if rec == nil {
			log.Printf("Warning: vector %s has no cleaned record, dropping hit", hit.Fingerprint)
			continue
		}

		results = append(results, models.SearchResult{
			Summary:           rec.Summary,
			ApplicationNumber: rec.ApplicationNumber,
			FilingDate:        rec.FilingDate,
			EntityType:        rec.EntityType,
			QualityScore:      rec.QualityScore,
			SourceFingerprint: rec.Fingerprint,
			Similarity:        hit.Similarity,
		})
	}

	return results, nil
}
