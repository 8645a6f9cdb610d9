// ABOUTME: Unit tests for the batch ingestor
// ABOUTME: Tests fan-out persistence, idempotence, and partial-failure isolation
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/patentpulse/patentpulse/internal/models"
)

// fakeRecordStore is an in-memory RecordStore for pipeline tests.
type fakeRecordStore struct {
	mu      sync.Mutex
	raw     map[string][]byte
	cleaned map[string]*models.CleanedRecord
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		raw:     make(map[string][]byte),
		cleaned: make(map[string]*models.CleanedRecord),
	}
}

func (s *fakeRecordStore) UpsertRaw(ctx context.Context, fingerprint string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[fingerprint] = raw
	return nil
}

func (s *fakeRecordStore) UpsertCleaned(ctx context.Context, rec *models.CleanedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleaned[rec.Fingerprint] = rec
	return nil
}

func (s *fakeRecordStore) GetCleaned(ctx context.Context, fingerprint string) (*models.CleanedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleaned[fingerprint], nil
}

func (s *fakeRecordStore) CountRaw(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.raw), nil
}

func (s *fakeRecordStore) CountCleaned(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cleaned), nil
}

// fakeVectorStore records upserts in memory.
type fakeVectorStore struct {
	mu      sync.Mutex
	vectors map[string][]float64
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{vectors: make(map[string][]float64)}
}

func (s *fakeVectorStore) Upsert(ctx context.Context, fingerprint string, vector []float64, meta models.VectorMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors[fingerprint] = vector
	return nil
}

func (s *fakeVectorStore) SearchSimilar(ctx context.Context, query []float64, k int) ([]models.VectorSearchResult, error) {
	return nil, nil
}

func (s *fakeVectorStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vectors), nil
}

// stubEmbedder returns a fixed vector, failing for summaries the
// failOn function matches.
type stubEmbedder struct {
	failOn func(text string) bool
}

func (e *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	if e.failOn != nil && e.failOn(text) {
		return nil, fmt.Errorf("provider unavailable")
	}
	return []float64{0.1, 0.2, 0.3}, nil
}

func rawBatch(n int) []models.RawRecord {
	raws := make([]models.RawRecord, 0, n)
	for i := 0; i < n; i++ {
		raws = append(raws, models.RawRecord{
			"applicationNumberText": fmt.Sprintf("1800%04d", i),
			"abstractText":          fmt.Sprintf("abstract for record %d", i),
			"applicationMetaData": map[string]any{
				"filingDate": "2025-03-14",
				"entityStatusData": map[string]any{
					"businessEntityStatusCategory": "Small",
				},
			},
		})
	}
	return raws
}

func TestIngestor_Run(t *testing.T) {
	records := newFakeRecordStore()
	vectors := newFakeVectorStore()
	ing := NewIngestor(records, vectors, &stubEmbedder{}, Options{Workers: 2, RateLimit: 1000})

	summary, err := ing.Run(context.Background(), rawBatch(5))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Total != 5 || summary.Stored != 5 || summary.Embedded != 5 {
		t.Errorf("Summary = total %d stored %d embedded %d, want 5/5/5",
			summary.Total, summary.Stored, summary.Embedded)
	}
	if len(summary.Errors) != 0 {
		t.Errorf("Unexpected errors: %v", summary.Errors)
	}
	if summary.RunID == "" {
		t.Error("RunID not set")
	}

	n, _ := records.CountCleaned(context.Background())
	if n != 5 {
		t.Errorf("Cleaned rows = %d, want 5", n)
	}
	n, _ = vectors.Count(context.Background())
	if n != 5 {
		t.Errorf("Vectors = %d, want 5", n)
	}
}

func TestIngestor_Idempotent(t *testing.T) {
	records := newFakeRecordStore()
	vectors := newFakeVectorStore()
	ing := NewIngestor(records, vectors, &stubEmbedder{}, Options{Workers: 2, RateLimit: 1000})

	batch := rawBatch(3)
	for i := 0; i < 2; i++ {
		if _, err := ing.Run(context.Background(), batch); err != nil {
			t.Fatalf("Run() pass %d error = %v", i+1, err)
		}
	}

	n, _ := records.CountRaw(context.Background())
	if n != 3 {
		t.Errorf("Raw rows after re-ingest = %d, want 3", n)
	}
	n, _ = records.CountCleaned(context.Background())
	if n != 3 {
		t.Errorf("Cleaned rows after re-ingest = %d, want 3", n)
	}
	n, _ = vectors.Count(context.Background())
	if n != 3 {
		t.Errorf("Vectors after re-ingest = %d, want 3", n)
	}
}

func TestIngestor_MalformedRecordSkipped(t *testing.T) {
	records := newFakeRecordStore()
	vectors := newFakeVectorStore()
	ing := NewIngestor(records, vectors, &stubEmbedder{}, Options{Workers: 2, RateLimit: 1000})

	batch := rawBatch(2)
	batch = append(batch, models.RawRecord{"abstractText": "no application number"})

	summary, err := ing.Run(context.Background(), batch)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Malformed != 1 {
		t.Errorf("Malformed = %d, want 1", summary.Malformed)
	}
	if summary.Stored != 2 {
		t.Errorf("Stored = %d, want 2", summary.Stored)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Stage != "normalize" {
		t.Errorf("Errors = %v, want one normalize-stage error", summary.Errors)
	}

	// Malformed records must not reach either store.
	n, _ := records.CountRaw(context.Background())
	if n != 2 {
		t.Errorf("Raw rows = %d, want 2", n)
	}
}

func TestIngestor_EmbedFailureIsolated(t *testing.T) {
	records := newFakeRecordStore()
	vectors := newFakeVectorStore()

	// Fail exactly one record out of ten.
	embedder := &stubEmbedder{failOn: func(text string) bool {
		return strings.Contains(text, "abstract for record 3")
	}}
	ing := NewIngestor(records, vectors, embedder, Options{Workers: 3, RateLimit: 1000})

	summary, err := ing.Run(context.Background(), rawBatch(10))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Stored != 10 {
		t.Errorf("Stored = %d, want 10 (embed failure keeps the record)", summary.Stored)
	}
	if summary.Embedded != 9 {
		t.Errorf("Embedded = %d, want 9", summary.Embedded)
	}
	if summary.EmbedFailed != 1 {
		t.Errorf("EmbedFailed = %d, want 1", summary.EmbedFailed)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Stage != "embed" {
		t.Errorf("Errors = %v, want one embed-stage error", summary.Errors)
	}

	// No vector for the failed record.
	n, _ := vectors.Count(context.Background())
	if n != 9 {
		t.Errorf("Vectors = %d, want 9", n)
	}
	failed := summary.Errors[0].Fingerprint
	if _, ok := vectors.vectors[failed]; ok {
		t.Error("Failed record has a stored vector")
	}
}

func TestIngestor_EmptyBatch(t *testing.T) {
	ing := NewIngestor(newFakeRecordStore(), newFakeVectorStore(), &stubEmbedder{}, Options{})

	summary, err := ing.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Total != 0 || summary.Stored != 0 {
		t.Errorf("Empty batch summary = %+v", summary)
	}
}
