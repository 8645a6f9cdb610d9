// ABOUTME: Batch ingestion summary types
// ABOUTME: Per-record failures are collected here, never aborting the run
package models

import "time"

// RecordError reports one record that failed during a batch run.
type RecordError struct {
	ApplicationNumber string `json:"application_number"`
	Fingerprint       string `json:"fingerprint,omitempty"`
	Stage             string `json:"stage"`
	Err               string `json:"error"`
}

// IngestSummary is the end-of-run report for one ingestion batch.
type IngestSummary struct {
	RunID       string        `json:"run_id"`
	Total       int           `json:"total"`
	Stored      int           `json:"stored"`
	Embedded    int           `json:"embedded"`
	Malformed   int           `json:"malformed"`
	EmbedFailed int           `json:"embed_failed"`
	Duration    time.Duration `json:"duration"`
	Errors      []RecordError `json:"errors,omitempty"`
}
