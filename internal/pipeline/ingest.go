// ABOUTME: Batch ingestor orchestrating normalize, score, embed, persist
// ABOUTME: Fan-out/fan-in worker pool bounded by a provider rate limiter
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/patentpulse/patentpulse/internal/models"
	"github.com/patentpulse/patentpulse/internal/storage"
)

// Embedder converts free text into a fixed-dimension vector. The
// production implementation lives in internal/llm; tests use stubs.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Options tune one ingestion batch. Zero values take defaults.
type Options struct {
	Workers      int           // embedding workers (default 4)
	EmbedTimeout time.Duration // per-record provider timeout (default 30s)
	RateLimit    rate.Limit    // provider calls per second (default 10)
	Burst        int           // limiter burst (default Workers)
}

// Ingestor runs the record pipeline for a batch of raw applications.
type Ingestor struct {
	records  storage.RecordStore
	vectors  storage.VectorStore
	embedder Embedder
	opts     Options
	limiter  *rate.Limiter
}

// NewIngestor creates an Ingestor with injected stores and embedder.
func NewIngestor(records storage.RecordStore, vectors storage.VectorStore, embedder Embedder, opts Options) *Ingestor {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.EmbedTimeout <= 0 {
		opts.EmbedTimeout = 30 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = opts.Workers
	}
	return &Ingestor{
		records:  records,
		vectors:  vectors,
		embedder: embedder,
		opts:     opts,
		limiter:  rate.NewLimiter(opts.RateLimit, opts.Burst),
	}
}

type recordJob struct {
	raw     models.RawRecord
	cleaned *models.CleanedRecord
}

type recordOutcome struct {
	stored   bool
	embedded bool
	err      *models.RecordError
}

// Run ingests one batch. Per-record failures are collected in the
// summary and never abort the run.
func (ing *Ingestor) Run(ctx context.Context, raws []models.RawRecord) (*models.IngestSummary, error) {
	start := time.Now()
	summary := &models.IngestSummary{
		RunID: fmt.Sprintf("run_%s_%s", start.Format("20060102_150405"), uuid.New().String()[:8]),
		Total: len(raws),
	}

	// Normalize, fingerprint, and score sequentially: pure local work,
	// only embedding calls are worth fanning out.
	var jobs []recordJob
	for _, raw := range raws {
		cleaned, err := Normalize(raw)
		if err != nil {
			summary.Malformed++
			summary.Errors = append(summary.Errors, models.RecordError{
				ApplicationNumber: stringField(raw, "applicationNumberText"),
				Stage:             "normalize",
				Err:               err.Error(),
			})
			continue
		}
		cleaned.QualityScore = QualityScore(cleaned)
		cleaned.CreatedAt = time.Now()
		jobs = append(jobs, recordJob{raw: raw, cleaned: cleaned})
	}

	// Fan out. One worker owns a record end to end, so the cleaned row
	// and its vector always come from the same raw record.
	jobCh := make(chan recordJob)
	outCh := make(chan recordOutcome, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < ing.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				outCh <- ing.processRecord(ctx, job)
			}
		}()
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()
	close(outCh)

	for out := range outCh {
		if out.stored {
			summary.Stored++
		}
		if out.embedded {
			summary.Embedded++
		}
		if out.err != nil {
			if out.err.Stage == "embed" {
				summary.EmbedFailed++
			}
			summary.Errors = append(summary.Errors, *out.err)
		}
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// processRecord persists one record to both stores. A provider failure
// leaves the record in the record store without a vector; it can be
// re-embedded by a later run.
func (ing *Ingestor) processRecord(ctx context.Context, job recordJob) recordOutcome {
	cleaned := job.cleaned

	rawJSON, err := json.Marshal(job.raw)
	if err != nil {
		return recordOutcome{err: recordError(cleaned, "encode", err)}
	}

	if err := ing.records.UpsertRaw(ctx, cleaned.Fingerprint, rawJSON); err != nil {
		return recordOutcome{err: recordError(cleaned, "store_raw", err)}
	}
	if err := ing.records.UpsertCleaned(ctx, cleaned); err != nil {
		return recordOutcome{err: recordError(cleaned, "store_cleaned", err)}
	}

	// Provider calls are the scarce resource; wait for the limiter
	// before each one.
	if err := ing.limiter.Wait(ctx); err != nil {
		return recordOutcome{stored: true, err: recordError(cleaned, "embed", err)}
	}

	embedCtx, cancel := context.WithTimeout(ctx, ing.opts.EmbedTimeout)
	vector, err := ing.embedder.GenerateEmbedding(embedCtx, cleaned.Summary)
	cancel()
	if err != nil {
		return recordOutcome{stored: true, err: recordError(cleaned, "embed", err)}
	}

	meta := models.VectorMetadata{
		ApplicationNumber: cleaned.ApplicationNumber,
		FilingDate:        cleaned.FilingDate,
		EntityType:        cleaned.EntityType,
		QualityScore:      cleaned.QualityScore,
		Summary:           cleaned.Summary,
	}
	if err := ing.vectors.Upsert(ctx, cleaned.Fingerprint, vector, meta); err != nil {
		return recordOutcome{stored: true, err: recordError(cleaned, "store_vector", err)}
	}

	return recordOutcome{stored: true, embedded: true}
}

func recordError(rec *models.CleanedRecord, stage string, err error) *models.RecordError {
	return &models.RecordError{
		ApplicationNumber: rec.ApplicationNumber,
		Fingerprint:       rec.Fingerprint,
		Stage:             stage,
		Err:               err.Error(),
	}
}
