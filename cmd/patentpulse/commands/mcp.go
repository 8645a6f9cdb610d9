// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to search the patent corpus via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/patentpulse/patentpulse/internal/config"
	"github.com/patentpulse/patentpulse/internal/mcp"
	"github.com/patentpulse/patentpulse/internal/search"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs PatentPulse as an MCP (Model Context Protocol) server, exposing
patent search and corpus inspection tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  patentpulse mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "patentpulse": {
  #       "command": "patentpulse",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	db, records, vectors, err := openStores(cfg)
	if err != nil {
		return err
	}

	engine := search.NewEngine(embedder, vectors, records)

	server := mcpserver.NewMCPServer(
		"PatentPulse",
		"0.1.0",
	)

	mcp.RegisterTools(server, engine, records, vectors)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("PatentPulse MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := db.Close(); err != nil {
			log.Printf("Warning: Error closing database: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		_ = db.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
