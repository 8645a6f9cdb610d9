// ABOUTME: CLI command to ingest a patent dataset file
// ABOUTME: Runs the full pipeline and prints the end-of-run summary
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/patentpulse/patentpulse/internal/config"
	"github.com/patentpulse/patentpulse/internal/pipeline"
)

var (
	ingestWorkers int
	ingestRate    float64
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <dataset.json>",
		Short: "Ingest a patent application dataset",
		Long: `Ingest a patent application dataset.

Normalizes each record, derives its fingerprint and quality score,
stores raw and cleaned rows, embeds the summary text, and persists the
vector. Re-ingesting the same dataset upserts by fingerprint.

Per-record failures (malformed records, embedding errors) are reported
in the run summary and never abort the batch.

Examples:
  patentpulse ingest results-2025-07-18.json
  patentpulse ingest --workers 8 --rate 20 results.json`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().IntVar(&ingestWorkers, "workers", 0, "Embedding workers (default from config)")
	cmd.Flags().Float64Var(&ingestRate, "rate", 0, "Max embedding calls per second (default from config)")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if ingestWorkers > 0 {
		cfg.Workers = ingestWorkers
	}
	if ingestRate > 0 {
		cfg.EmbedRateLimit = ingestRate
	}

	raws, err := pipeline.LoadDataset(args[0])
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d records from %s\n", len(raws), args[0])
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

	ingestor := pipeline.NewIngestor(records, vectors, embedder, pipeline.Options{
		Workers:      cfg.Workers,
		EmbedTimeout: cfg.Timeout,
		RateLimit:    rate.Limit(cfg.EmbedRateLimit),
	})

	summary, err := ingestor.Run(cmd.Context(), raws)
	if err != nil {
		return fmt.Errorf("ingesting dataset: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Run\t%s\n", summary.RunID)
	fmt.Fprintf(w, "Records\t%d\n", summary.Total)
	fmt.Fprintf(w, "Stored\t%d\n", summary.Stored)
	fmt.Fprintf(w, "Embedded\t%d\n", summary.Embedded)
	fmt.Fprintf(w, "Malformed\t%d\n", summary.Malformed)
	fmt.Fprintf(w, "Embed failures\t%d\n", summary.EmbedFailed)
	fmt.Fprintf(w, "Duration\t%s\n", summary.Duration.Round(summaryRounding))
	w.Flush()

	if len(summary.Errors) > 0 && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d record(s) failed:\n", len(summary.Errors))
		for _, recErr := range summary.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n",
				recErr.Stage, recErr.ApplicationNumber, recErr.Err)
		}
	}

	return nil
}
