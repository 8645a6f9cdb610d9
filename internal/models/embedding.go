// ABOUTME: Embedding models for vector storage and semantic search
// ABOUTME: Defines vector metadata payloads and similarity search hits
package models

// VectorMetadata is stored alongside each embedding and mirrors the
// public CleanedRecord fields needed to display a search result.
type VectorMetadata struct {
	ApplicationNumber string `json:"application_number"`
	FilingDate        string `json:"filing_date"`
	EntityType        string `json:"entity_type"`
	QualityScore      int    `json:"quality_score"`
	Summary           string `json:"summary"`
}

// VectorSearchResult is one vector store hit with its cosine similarity.
type VectorSearchResult struct {
	Fingerprint string         `json:"fingerprint"`
	Similarity  float64        `json:"similarity"`
	Metadata    VectorMetadata `json:"metadata"`
}
