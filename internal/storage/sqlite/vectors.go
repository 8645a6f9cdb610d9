// ABOUTME: Embedding vector storage for SQLite
// ABOUTME: Vectors as little-endian float64 BLOBs, brute-force cosine top-k
package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/patentpulse/patentpulse/internal/models"
)

// VectorStore handles embedding persistence and similarity search
type VectorStore struct {
	db *DB
	mu sync.RWMutex
}

// NewVectorStore creates a new VectorStore
func NewVectorStore(db *DB) *VectorStore {
	return &VectorStore{db: db}
}

// Upsert stores or replaces the vector and metadata for a fingerprint.
// The dimension is fixed by the first vector stored; later writes with
// a different dimension are rejected so the collection stays queryable.
func (s *VectorStore) Upsert(ctx context.Context, fingerprint string, vector []float64, meta models.VectorMetadata) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty embedding vector for %s", fingerprint)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var existing int
	err := s.db.QueryRowContext(ctx, `
		SELECT length(vector) FROM patent_vectors LIMIT 1
	`).Scan(&existing)
	if err == nil && existing != len(vector)*8 {
		return fmt.Errorf("invalid embedding dimension: expected %d, got %d", existing/8, len(vector))
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	// ON CONFLICT DO UPDATE keeps the original rowid, preserving
	// insertion order for tie-breaking.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO patent_vectors (fingerprint, vector, metadata, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			vector = excluded.vector,
			metadata = excluded.metadata
	`, fingerprint, vectorToBlob(vector), string(metaJSON), time.Now())

	return err
}

// SearchSimilar performs a brute-force cosine similarity search and
// returns up to k hits, ordered by descending similarity with ties
// kept in insertion order. Fewer than k stored vectors returns all.
func (s *VectorStore) SearchSimilar(ctx context.Context, query []float64, k int) ([]models.VectorSearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT fingerprint, vector, metadata
		FROM patent_vectors
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []models.VectorSearchResult

	for rows.Next() {
		var (
			fingerprint string
			blob        []byte
			metaJSON    string
		)
		if err := rows.Scan(&fingerprint, &blob, &metaJSON); err != nil {
			return nil, err
		}

		var meta models.VectorMetadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("decoding metadata for %s: %w", fingerprint, err)
		}

		results = append(results, models.VectorSearchResult{
			Fingerprint: fingerprint,
			Similarity:  CosineSimilarity(query, blobToVector(blob)),
			Metadata:    meta,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Stable sort over the rowid-ordered rows: equal similarities keep
	// insertion order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// Count returns the number of stored vectors
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM patent_vectors").Scan(&n)
	return n, err
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
