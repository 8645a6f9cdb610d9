// ABOUTME: Heuristic quality score from metadata completeness signals
// ABOUTME: Fixed weighting table, deterministic, independent of store state
package pipeline

import (
	"time"

	"github.com/patentpulse/patentpulse/internal/models"
)

// Quality weighting table. These values are policy, not derived: one
// point per inventor up to InventorScoreCap, one point each for a
// well-formed filing date, a non-empty entity type, and a summary
// longer than SummaryLengthFloor runes.
const (
	InventorScoreCap   = 5
	SummaryLengthFloor = 80
	MaxQualityScore    = InventorScoreCap + 3
)

const filingDateLayout = "2006-01-02"

// QualityScore computes the completeness score for a normalized
// record. Result is always in [0, MaxQualityScore].
func QualityScore(rec *models.CleanedRecord) int {
	score := rec.InventorCount
	if score > InventorScoreCap {
		score = InventorScoreCap
	}
	if _, err := time.Parse(filingDateLayout, rec.FilingDate); err == nil {
		score++
	}
	if rec.EntityType != "" {
		score++
	}
	if len([]rune(rec.Summary)) > SummaryLengthFloor {
		score++
	}
	return score
}
