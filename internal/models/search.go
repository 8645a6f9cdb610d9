// ABOUTME: Public search result types returned by the search engine
// ABOUTME: Shapes the JSON response of the search transports
package models

// SearchResult is a CleanedRecord's public fields plus the similarity
// of its vector to the query. Results are ordered by descending
// similarity.
type SearchResult struct {
	Summary           string  `json:"summary"`
	ApplicationNumber string  `json:"application_number"`
	FilingDate        string  `json:"filing_date"`
	EntityType        string  `json:"entity_type"`
	QualityScore      int     `json:"quality_score"`
	SourceFingerprint string  `json:"source_fingerprint"`
	Similarity        float64 `json:"similarity"`
}

// SearchResponse is the wire shape of a search reply.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
