package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/rkoval/specsect/internal/chunker"
	"github.com/rkoval/specsect/internal/loader"
	"github.com/rkoval/specsect/internal/sectiontree"
	"github.com/rkoval/specsect/internal/store"
)

// Worker processes a single document job.
type Worker struct {
	db       *store.Store
	log      *slog.Logger
	treeOpts sectiontree.Options
	mode     chunker.Mode
	chunkCfg chunker.Config
}

func NewWorker(db *store.Store, log *slog.Logger, treeOpts sectiontree.Options, mode chunker.Mode, chunkCfg chunker.Config) *Worker {
	return &Worker{
		db:       db,
		log:      log,
		treeOpts: treeOpts,
		mode:     mode,
		chunkCfg: chunkCfg,
	}
}

// Process runs the full ingest pipeline for a job: parse, dedup, build
// the section tree, chunk, and persist.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	ld, err := loader.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	data := job.FileData()
	paragraphs, err := ld.Load(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 1.5: Dedup check on the raw bytes.
	hash := store.ContentHash(data)
	job.SetContentHash(hash)
	existing, err := w.db.DocumentByHash(ctx, hash)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if existing != nil {
		log.Info("duplicate document, skipping", "existing_doc_id", existing.ID)
		job.SetDocID(existing.ID)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 2: Build section tree
	job.SetStatus(StatusBuilding, "building")
	sections, treeStats := sectiontree.Build(paragraphs, w.treeOpts)
	log.Info("built section tree", "sections", treeStats.Sections, "dropped_preamble", treeStats.DroppedPreamble)

	// Phase 3: Chunk
	job.SetStatus(StatusChunking, "chunking")
	chunks, chunkStats := chunker.ChunkTree(sections, w.mode, w.chunkCfg)
	job.SetCounts(treeStats.Sections, chunkStats.Emitted, chunkStats.Dropped, treeStats.DroppedPreamble)
	log.Info("chunked document", "chunks", chunkStats.Emitted, "dropped", chunkStats.Dropped)

	// Phase 4: Persist
	job.SetStatus(StatusStoring, "storing")
	docID, err := w.db.InsertDocument(ctx, store.Document{
		Path:        job.Filename,
		Filename:    filepath.Base(job.Filename),
		Format:      strings.TrimPrefix(strings.ToLower(filepath.Ext(job.Filename)), "."),
		ContentHash: hash,
	})
	if err != nil {
		log.Error("document insert failed", "error", err)
		job.AddError(fmt.Sprintf("store document: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	job.SetDocID(docID)

	if err := w.db.InsertSectionTree(ctx, docID, sections); err != nil {
		log.Error("section insert failed", "error", err)
		job.AddError(fmt.Sprintf("store sections: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	if err := w.db.InsertChunks(ctx, docID, chunks); err != nil {
		log.Error("chunk insert failed", "error", err)
		job.AddError(fmt.Sprintf("store chunks: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	log.Info("ingest complete", "doc_id", docID, "sections", treeStats.Sections, "chunks", chunkStats.Emitted)
	job.SetStatus(StatusCompleted, "done")
}
