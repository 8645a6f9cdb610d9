// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Entry point for ingest, search, serve, mcp, and version
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗  █████╗ ████████╗███████╗███╗   ██╗████████╗██████╗ ██╗   ██╗██╗     ███████╗███████╗
██╔══██╗██╔══██╗╚══██╔══╝██╔════╝████╗  ██║╚══██╔══╝██╔══██╗██║   ██║██║     ██╔════╝██╔════╝
██████╔╝███████║   ██║   █████╗  ██╔██╗ ██║   ██║   ██████╔╝██║   ██║██║     ███████╗█████╗
██╔═══╝ ██╔══██║   ██║   ██╔══╝  ██║╚██╗██║   ██║   ██╔═══╝ ██║   ██║██║     ╚════██║██╔══╝
██║     ██║  ██║   ██║   ███████╗██║ ╚████║   ██║   ██║     ╚██████╔╝███████╗███████║███████╗
╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═══╝   ╚═╝   ╚═╝      ╚═════╝ ╚══════╝╚══════╝╚══════╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patentpulse",
		Short: "Semantic search over patent application data",
		Long: banner + `
PatentPulse ingests patent-application JSON, normalizes and scores each
record, embeds its descriptive text, and answers top-k semantic
similarity queries over the stored vectors.

Records are keyed by a deterministic fingerprint of their core
metadata, so re-ingesting the same dataset upserts instead of
duplicating.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")

	cmd.AddCommand(
		NewIngestCmd(),
		NewSearchCmd(),
		NewServeCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
