// ABOUTME: Normalizer flattening nested USPTO application JSON
// ABOUTME: Coerces missing fields to stable defaults and builds summary text
package pipeline

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/patentpulse/patentpulse/internal/models"
)

// ErrMalformedRecord marks a raw record missing its identity anchor
// (the application number). Such records are skipped, never stored.
var ErrMalformedRecord = errors.New("malformed record: missing application number")

// Normalize flattens one raw application into a CleanedRecord.
// Missing optional fields map to typed defaults (empty string for
// text, zero for counts); only an absent application number fails.
func Normalize(raw models.RawRecord) (*models.CleanedRecord, error) {
	appNo := stringField(raw, "applicationNumberText")
	if appNo == "" {
		return nil, ErrMalformedRecord
	}

	meta := mapField(raw, "applicationMetaData")
	filingDate := stringField(meta, "filingDate")
	entityType := stringField(mapField(meta, "entityStatusData"), "businessEntityStatusCategory")
	names := inventorNames(meta)

	corr := "{}"
	if bag, ok := raw["correspondenceAddressBag"]; ok {
		if data, err := json.Marshal(bag); err == nil {
			corr = string(data)
		}
	}

	rec := &models.CleanedRecord{
		ApplicationNumber:  appNo,
		FilingDate:         filingDate,
		EntityType:         entityType,
		FirstInventorFlag:  stringField(meta, "firstInventorToFileIndicator"),
		Inventors:          strings.Join(names, ", "),
		InventorCount:      len(names),
		CorrespondenceText: corr,
	}
	rec.Summary = summaryText(rec, stringField(raw, "abstractText"))
	rec.Fingerprint = Fingerprint(appNo, filingDate, entityType, names)
	return rec, nil
}

// summaryText joins the descriptive fields into the lower-cased,
// trimmed text that feeds the embedding provider.
func summaryText(rec *models.CleanedRecord, abstract string) string {
	parts := []string{rec.Inventors, rec.EntityType, rec.FilingDate}
	if abstract != "" {
		parts = append(parts, abstract)
	}
	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " | ")))
}

// inventorNames extracts inventor names from the nested inventorBag,
// preserving source order.
func inventorNames(meta map[string]any) []string {
	bag, ok := meta["inventorBag"].([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(bag))
	for _, entry := range bag {
		inventor, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if name := stringField(inventor, "inventorNameText"); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// stringField reads a field as a string, coercing the scalar types
// encoding/json produces; anything else maps to the empty default.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func mapField(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}
