// ABOUTME: Record storage operations for SQLite
// ABOUTME: Upsert-by-fingerprint for raw and cleaned patent tables
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/patentpulse/patentpulse/internal/models"
)

// RecordStore handles raw and cleaned record persistence
type RecordStore struct {
	db *DB
	mu sync.RWMutex
}

// NewRecordStore creates a new RecordStore
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// UpsertRaw stores the unmodified source JSON, overwriting any prior
// row for the same fingerprint.
func (s *RecordStore) UpsertRaw(ctx context.Context, fingerprint string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO raw_patents (fingerprint, raw, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			raw = excluded.raw
	`, fingerprint, string(raw), time.Now())

	return err
}

// UpsertCleaned stores the normalized record, overwriting any prior
// row for the same fingerprint.
func (s *RecordStore) UpsertCleaned(ctx context.Context, rec *models.CleanedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cleaned_patents (
			fingerprint, application_number, filing_date, entity_type,
			first_inventor_flag, inventors, inventor_count,
			correspondence_text, summary, quality_score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			application_number = excluded.application_number,
			filing_date = excluded.filing_date,
			entity_type = excluded.entity_type,
			first_inventor_flag = excluded.first_inventor_flag,
			inventors = excluded.inventors,
			inventor_count = excluded.inventor_count,
			correspondence_text = excluded.correspondence_text,
			summary = excluded.summary,
			quality_score = excluded.quality_score
	`, rec.Fingerprint, rec.ApplicationNumber, rec.FilingDate, rec.EntityType,
		rec.FirstInventorFlag, rec.Inventors, rec.InventorCount,
		rec.CorrespondenceText, rec.Summary, rec.QualityScore, rec.CreatedAt)

	return err
}

// GetCleaned retrieves a cleaned record by fingerprint, returning
// (nil, nil) when no row exists.
func (s *RecordStore) GetCleaned(ctx context.Context, fingerprint string) (*models.CleanedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec models.CleanedRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT fingerprint, application_number, filing_date, entity_type,
			first_inventor_flag, inventors, inventor_count,
			correspondence_text, summary, quality_score, created_at
		FROM cleaned_patents
		WHERE fingerprint = ?
	`, fingerprint).Scan(
		&rec.Fingerprint, &rec.ApplicationNumber, &rec.FilingDate, &rec.EntityType,
		&rec.FirstInventorFlag, &rec.Inventors, &rec.InventorCount,
		&rec.CorrespondenceText, &rec.Summary, &rec.QualityScore, &rec.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// GetRaw retrieves the stored source JSON by fingerprint, returning
// (nil, nil) when no row exists.
func (s *RecordStore) GetRaw(ctx context.Context, fingerprint string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT raw FROM raw_patents WHERE fingerprint = ?
	`, fingerprint).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return []byte(raw), nil
}

// CountRaw returns the number of raw rows
func (s *RecordStore) CountRaw(ctx context.Context) (int, error) {
	return s.count(ctx, "raw_patents")
}

// CountCleaned returns the number of cleaned rows
func (s *RecordStore) CountCleaned(ctx context.Context) (int, error) {
	return s.count(ctx, "cleaned_patents")
}

func (s *RecordStore) count(ctx context.Context, table string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}
