package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rkoval/specsect/internal/chunker"
	"github.com/rkoval/specsect/internal/loader"
	"github.com/rkoval/specsect/internal/sectiontree"
	"github.com/rkoval/specsect/internal/store"
)

var (
	ingestMaxLevel     int
	ingestCoalesce     int
	ingestKeepPreamble bool
	ingestAnyHeading   bool
	ingestChunkMode    string
	ingestChunkSize    int
	ingestOverlap      float64
	ingestMinChunk     int
	ingestForce        bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Parse documents and store their section trees and chunks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ingestChunkMode != string(chunker.ModeFixedWindow) && ingestChunkMode != string(chunker.ModeParagraph) {
			return fmt.Errorf("--mode must be %q or %q", chunker.ModeFixedWindow, chunker.ModeParagraph)
		}

		db, err := store.New(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		opts := sectiontree.DefaultOptions()
		opts.MaxHeadingLevel = ingestMaxLevel
		opts.CoalesceLimit = ingestCoalesce
		opts.KeepPreamble = ingestKeepPreamble
		opts.RequireNumbered = !ingestAnyHeading

		cfg := chunker.Config{
			MaxChunkSize: ingestChunkSize,
			OverlapRatio: ingestOverlap,
			MinChunk:     ingestMinChunk,
		}

		ctx := context.Background()
		for _, path := range args {
			if err := ingestFile(ctx, cmd, db, path, opts, cfg); err != nil {
				return err
			}
		}
		return nil
	},
}

func ingestFile(ctx context.Context, cmd *cobra.Command, db *store.Store, path string, opts sectiontree.Options, cfg chunker.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	hash := store.ContentHash(data)
	if !ingestForce {
		existing, err := db.DocumentByHash(ctx, hash)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if existing != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: already ingested as document %d, skipping\n", path, existing.ID)
			return nil
		}
	}

	paragraphs, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	sections, treeStats := sectiontree.Build(paragraphs, opts)
	chunks, chunkStats := chunker.ChunkTree(sections, chunker.Mode(ingestChunkMode), cfg)

	docID, err := db.InsertDocument(ctx, store.Document{
		Path:        path,
		Filename:    filepath.Base(path),
		Format:      strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		ContentHash: hash,
	})
	if err != nil {
		return err
	}
	if err := db.InsertSectionTree(ctx, docID, sections); err != nil {
		return err
	}
	if err := db.InsertChunks(ctx, docID, chunks); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: document %d, %d sections, %d chunks (%d dropped, %d preamble paragraphs dropped)\n",
		path, docID, treeStats.Sections, chunkStats.Emitted, chunkStats.Dropped, treeStats.DroppedPreamble)
	return nil
}

func init() {
	ingestCmd.Flags().IntVar(&ingestMaxLevel, "max-level", 4, "Deepest heading level to keep as a section")
	ingestCmd.Flags().IntVar(&ingestCoalesce, "coalesce", 3000, "Merge consecutive body paragraphs up to this size (0 disables)")
	ingestCmd.Flags().BoolVar(&ingestKeepPreamble, "keep-preamble", false, "Keep body text before the first heading under a synthetic section")
	ingestCmd.Flags().BoolVar(&ingestAnyHeading, "any-heading", false, "Accept headings without a leading section number")
	ingestCmd.Flags().StringVar(&ingestChunkMode, "mode", string(chunker.ModeFixedWindow), "Chunking mode (fixed, paragraph)")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 2000, "Maximum chunk size in characters")
	ingestCmd.Flags().Float64Var(&ingestOverlap, "overlap", 0.1, "Overlap ratio between consecutive fixed-window chunks")
	ingestCmd.Flags().IntVar(&ingestMinChunk, "min-chunk", 100, "Drop paragraph-mode chunks smaller than this")
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "Re-ingest even if the content hash is already stored")
	rootCmd.AddCommand(ingestCmd)
}
