// ABOUTME: Core record types for the patent ingestion pipeline
// ABOUTME: Defines RawRecord and the normalized CleanedRecord derivative
package models

import "time"

// RawRecord is one patent application exactly as received from the
// source dataset: an arbitrary field mapping. Immutable once stored.
type RawRecord map[string]any

// CleanedRecord is the normalized, flattened, scored derivative of a
// RawRecord. Fingerprint is the join key across the record store and
// the vector store.
type CleanedRecord struct {
	Fingerprint        string    `json:"source_fingerprint"`
	ApplicationNumber  string    `json:"application_number"`
	FilingDate         string    `json:"filing_date"`
	EntityType         string    `json:"entity_type"`
	FirstInventorFlag  string    `json:"first_inventor_flag"`
	Inventors          string    `json:"inventors"`
	InventorCount      int       `json:"inventor_count"`
	CorrespondenceText string    `json:"correspondence_text"`
	Summary            string    `json:"summary"`
	QualityScore       int       `json:"quality_score"`
	CreatedAt          time.Time `json:"created_at"`
}
