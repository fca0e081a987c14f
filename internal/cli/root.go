// Package cli implements the specsect command line interface for
// offline ingestion and inspection without the HTTP server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "specsect",
	Short: "Section tree extraction and chunking for technical specifications",
	Long: `specsect parses specification documents (txt, markdown, html, pdf, docx),
builds a hierarchical section tree from their numbered headings, splits
section content into overlapping chunks, and persists both into SQLite.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "specsect.db", "Path to the SQLite database")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
