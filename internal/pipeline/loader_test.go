// ABOUTME: Unit tests for the dataset loader
// ABOUTME: Tests wrapped export shape, bare arrays, and bad input
package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDataset_WrappedShape(t *testing.T) {
	data := []byte(`{"patentdata": [{"applicationNumberText": "18000001"}, {"applicationNumberText": "18000002"}]}`)

	records, err := ParseDataset(data)
	if err != nil {
		t.Fatalf("ParseDataset() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0]["applicationNumberText"] != "18000001" {
		t.Errorf("First record = %v", records[0])
	}
}

func TestParseDataset_BareArray(t *testing.T) {
	data := []byte(`[{"applicationNumberText": "18000001"}]`)

	records, err := ParseDataset(data)
	if err != nil {
		t.Fatalf("ParseDataset() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
}

func TestParseDataset_InvalidJSON(t *testing.T) {
	if _, err := ParseDataset([]byte(`{not json`)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestLoadDataset_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	content := `{"patentdata": [{"applicationNumberText": "18000001"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	records, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}
}

func TestLoadDataset_MissingFile(t *testing.T) {
	if _, err := LoadDataset(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
