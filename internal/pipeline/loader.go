// ABOUTME: Dataset loader for patent application JSON files
// ABOUTME: Accepts the USPTO bulk export wrapper or a bare array
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/patentpulse/patentpulse/internal/models"
)

// datasetFile is the USPTO bulk export shape: applications live under
// the "patentdata" key.
type datasetFile struct {
	PatentData []models.RawRecord `json:"patentdata"`
}

// LoadDataset reads a batch of raw records from a JSON file.
func LoadDataset(path string) ([]models.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return ParseDataset(data)
}

// ParseDataset decodes raw records from JSON, trying the wrapped
// export shape first and falling back to a bare array.
func ParseDataset(data []byte) ([]models.RawRecord, error) {
	var wrapped datasetFile
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.PatentData != nil {
		return wrapped.PatentData, nil
	}

	var records []models.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return records, nil
}
