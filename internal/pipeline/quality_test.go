// ABOUTME: Unit tests for the quality scoring heuristics
// ABOUTME: Tests the fixed weighting table, cap, and boundary conditions
package pipeline

import (
	"strings"
	"testing"

	"github.com/patentpulse/patentpulse/internal/models"
)

func TestQualityScore_FullRecord(t *testing.T) {
	// 3 inventors + valid date + entity type + long summary = 6
	rec := &models.CleanedRecord{
		FilingDate:    "2025-03-14",
		EntityType:    "Regular Undiscounted",
		Inventors:     "Ada Lovelace, Charles Babbage, Grace Hopper",
		InventorCount: 3,
		Summary:       strings.Repeat("a patent about computing machinery ", 6),
	}

	score := QualityScore(rec)
	if score != 6 {
		t.Errorf("QualityScore() = %d, want 6", score)
	}
}

func TestQualityScore_EmptyRecord(t *testing.T) {
	score := QualityScore(&models.CleanedRecord{})
	if score != 0 {
		t.Errorf("QualityScore() = %d, want 0", score)
	}
}

func TestQualityScore_InventorCap(t *testing.T) {
	rec := &models.CleanedRecord{InventorCount: 12}

	score := QualityScore(rec)
	if score != InventorScoreCap {
		t.Errorf("QualityScore() = %d, want cap %d", score, InventorScoreCap)
	}
}

func TestQualityScore_MaxScore(t *testing.T) {
	rec := &models.CleanedRecord{
		FilingDate:    "2025-03-14",
		EntityType:    "Small",
		InventorCount: 20,
		Summary:       strings.Repeat("x", SummaryLengthFloor+1),
	}

	score := QualityScore(rec)
	if score != MaxQualityScore {
		t.Errorf("QualityScore() = %d, want %d", score, MaxQualityScore)
	}
}

func TestQualityScore_FilingDate(t *testing.T) {
	tests := []struct {
		name       string
		filingDate string
		want       int
	}{
		{"valid ISO date", "2025-03-14", 1},
		{"empty", "", 0},
		{"wrong format", "03/14/2025", 0},
		{"garbage", "not a date", 0},
		{"impossible date", "2025-02-30", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &models.CleanedRecord{FilingDate: tt.filingDate}
			if got := QualityScore(rec); got != tt.want {
				t.Errorf("QualityScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQualityScore_SummaryFloor(t *testing.T) {
	// Exactly at the floor earns nothing; one rune over earns a point.
	atFloor := &models.CleanedRecord{Summary: strings.Repeat("x", SummaryLengthFloor)}
	if got := QualityScore(atFloor); got != 0 {
		t.Errorf("Summary at floor: QualityScore() = %d, want 0", got)
	}

	overFloor := &models.CleanedRecord{Summary: strings.Repeat("x", SummaryLengthFloor+1)}
	if got := QualityScore(overFloor); got != 1 {
		t.Errorf("Summary over floor: QualityScore() = %d, want 1", got)
	}

	// Rune count, not byte count.
	multibyte := &models.CleanedRecord{Summary: strings.Repeat("日", SummaryLengthFloor)}
	if got := QualityScore(multibyte); got != 0 {
		t.Errorf("Multibyte summary at floor: QualityScore() = %d, want 0", got)
	}
}
