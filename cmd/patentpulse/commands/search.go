// ABOUTME: CLI command to search ingested patents
// ABOUTME: Embeds the query and prints top-k similarity results
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/patentpulse/patentpulse/internal/config"
	"github.com/patentpulse/patentpulse/internal/search"
)

// summaryRounding keeps durations readable in table output.
const summaryRounding = time.Millisecond

var searchTopK int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search patents by semantic similarity",
		Long: `Search ingested patent applications by semantic similarity.

The query text is embedded with the same model used at ingestion and
matched against stored vectors by cosine similarity.

Examples:
  patentpulse search "artificial intelligence patents"
  patentpulse search --k 10 "battery chemistry"
  patentpulse search --format json "medical imaging"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchTopK, "k", search.DefaultTopK, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchTopK, "k"); err != nil {
		return err
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
	defer func() { _ = db.Close() }()

	engine := search.NewEngine(embedder, vectors, records)
	results, err := engine.Search(cmd.Context(), args[0], searchTopK)
	if err != nil {
		return fmt.Errorf("searching patents: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No patents found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SIMILARITY\tAPPLICATION\tFILED\tSCORE\tSUMMARY\n")
	fmt.Fprintf(w, "----------\t-----------\t-----\t-----\t-------\n")

	for _, result := range results {
		filed := result.FilingDate
		if filed == "" {
			filed = "(no date)"
		}
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%d\t%s\n",
			result.Similarity,
			truncate(result.ApplicationNumber, 15),
			filed,
			result.QualityScore,
			truncate(result.Summary, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}

	return nil
}
