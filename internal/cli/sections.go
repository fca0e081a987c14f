package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rkoval/specsect/internal/store"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		docs, err := db.Documents(context.Background())
		if err != nil {
			return err
		}
		for _, d := range docs {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", d.ID, d.Filename, d.Format, d.CreatedAt)
		}
		return nil
	},
}

var sectionsCmd = &cobra.Command{
	Use:   "sections <doc-id>",
	Short: "Print a document's section tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid document id: %s", args[0])
		}

		db, err := store.New(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		rows, err := db.Sections(context.Background(), docID)
		if err != nil {
			return err
		}
		for _, row := range rows {
			indent := strings.Repeat("  ", row.SectionLevel-1)
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n", indent, row.SectionID, row.SectionName)
		}
		return nil
	},
}

var chunksCmd = &cobra.Command{
	Use:   "chunks <doc-id> <section-id>",
	Short: "Print a section's chunks in chunk order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid document id: %s", args[0])
		}

		db, err := store.New(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		chunks, err := db.SectionChunks(context.Background(), docID, args[1])
		if err != nil {
			return err
		}
		for _, c := range chunks {
			fmt.Fprintf(cmd.OutOrStdout(), "--- chunk %d (%d chars)\n%s\n", c.ChunkID, len(c.ContentChunk), c.ContentChunk)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(chunksCmd)
}
