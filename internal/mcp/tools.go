// ABOUTME: MCP tool definitions and registration for the patent search server
// ABOUTME: Defines JSON schemas for the search and corpus tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/patentpulse/patentpulse/internal/search"
	"github.com/patentpulse/patentpulse/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *search.Engine, records storage.RecordStore, vectors storage.VectorStore) *Handlers {
	handlers := &Handlers{
		engine:  engine,
		records: records,
		vectors: vectors,
	}

	// 1. search_patents - Top-k semantic similarity search
	server.AddTool(mcp.Tool{
		Name:        "search_patents",
		Description: "Search ingested patent applications by semantic similarity. Returns the top-k records most similar to the query text, ordered by descending cosine similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search query",
				},
				"k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchPatents)

	// 2. corpus_stats - Sizes of both stores
	server.AddTool(mcp.Tool{
		Name:        "corpus_stats",
		Description: "Report the size of the ingested corpus: raw records, cleaned records, and stored embedding vectors.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.CorpusStats)

	// 3. get_patent - Resolve one cleaned record by fingerprint
	server.AddTool(mcp.Tool{
		Name:        "get_patent",
		Description: "Get the cleaned record for a single patent application by its source fingerprint.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"fingerprint": map[string]interface{}{
					"type":        "string",
					"description": "Source fingerprint of the record",
				},
			},
			Required: []string{"fingerprint"},
		},
	}, handlers.GetPatent)

	return handlers
}
