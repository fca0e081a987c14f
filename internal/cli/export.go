package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rkoval/specsect/internal/export"
	"github.com/rkoval/specsect/internal/store"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <doc-id>",
	Short: "Export a document's section tree as markdown, mermaid, or json",
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

		ctx := context.Background()
		rows, err := db.Sections(ctx, docID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("document %d has no sections", docID)
		}

		tree := store.BuildTree(rows)

		switch exportFormat {
		case "markdown":
			chunks, err := db.Chunks(ctx, docID)
			if err != nil {
				return err
			}
			store.AttachChunks(tree, chunks)
			return export.Markdown(cmd.OutOrStdout(), tree)
		case "mermaid":
			return export.Mermaid(cmd.OutOrStdout(), tree)
		case "json":
			return export.JSON(cmd.OutOrStdout(), tree)
		default:
			return fmt.Errorf("unknown format: %s", exportFormat)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "markdown", "Output format (markdown, mermaid, json)")
	rootCmd.AddCommand(exportCmd)
}
