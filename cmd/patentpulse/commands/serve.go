// ABOUTME: CLI command to run the HTTP search API
// ABOUTME: Serves POST /search and GET /healthz until interrupted
package commands

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/patentpulse/patentpulse/internal/config"
	"github.com/patentpulse/patentpulse/internal/search"
	"github.com/patentpulse/patentpulse/internal/server"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		Long: `Run the HTTP search API.

Exposes POST /search for semantic queries over the ingested corpus and
GET /healthz for liveness checks. Shuts down gracefully on SIGINT or
SIGTERM.

Examples:
  patentpulse serve
  patentpulse serve --addr :9090`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveAddr != "" {
		cfg.HTTPAddr = serveAddr
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	db, records, vectors, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	engine := search.NewEngine(embedder, vectors, records)
	srv := server.New(engine, cfg.HTTPAddr, cfg.DefaultTopK)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Printf("Search API listening on %s", cfg.HTTPAddr)
	}

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	if !quiet {
		log.Println("Shutdown complete")
	}
	return nil
}
