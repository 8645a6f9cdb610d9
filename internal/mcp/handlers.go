// ABOUTME: MCP tool handler implementations for the patent search server
// ABOUTME: Wraps the search engine and stores with tool-shaped error handling
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/patentpulse/patentpulse/internal/search"
	"github.com/patentpulse/patentpulse/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine  *search.Engine
	records storage.RecordStore
	vectors storage.VectorStore
}

// SearchPatents handles the search_patents tool
func (h *Handlers) SearchPatents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	k := request.GetInt("k", search.DefaultTopK)

	results, err := h.engine.Search(ctx, query, k)
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("patent search failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"results": results,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// CorpusStats handles the corpus_stats tool
func (h *Handlers) CorpusStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawCount, err := h.records.CountRaw(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count raw records: %v", err)), nil
	}
	cleanedCount, err := h.records.CountCleaned(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count cleaned records: %v", err)), nil
	}
	vectorCount, err := h.vectors.Count(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count vectors: %v", err)), nil
	}

	response := map[string]interface{}{
		"raw_records":     rawCount,
		"cleaned_records": cleanedCount,
		"vectors":         vectorCount,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetPatent handles the get_patent tool
func (h *Handlers) GetPatent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fingerprint, err := request.RequireString("fingerprint")
	if err != nil {
		return mcp.NewToolResultError("fingerprint argument is required and must be a string"), nil
	}

	rec, err := h.records.GetCleaned(ctx, fingerprint)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load record: %v", err)), nil
	}
	if rec == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no record found for fingerprint %s", fingerprint)), nil
	}

	responseJSON, err := json.Marshal(rec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
