package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/rkoval/specsect/internal/chunker"
	"github.com/rkoval/specsect/internal/sectiontree"
	"github.com/rkoval/specsect/internal/store"
)

func testWorker(t *testing.T) (*Worker, *store.Store) {
	t.Helper()
	db, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := NewWorker(db, log, sectiontree.DefaultOptions(), chunker.ModeFixedWindow, chunker.DefaultConfig())
	return w, db
}

const sampleDoc = `# 5 Security

The UE shall apply integrity protection to all NAS messages.

## 5.1 Overview

Overview of the security procedures.
`

func TestWorker_ProcessMarkdown(t *testing.T) {
	w, db := testWorker(t)
	ctx := context.Background()

	job := NewJob("spec.md", []byte(sampleDoc))
	w.Process(ctx, job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (errors: %v)", StatusCompleted, snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Sections != 2 {
		t.Errorf("expected 2 sections, got %d", snap.Progress.Sections)
	}
	if snap.Progress.Chunks == 0 {
		t.Error("expected chunks to be stored")
	}
	if snap.DocID == 0 {
		t.Fatal("expected document id recorded on job")
	}

	rows, err := db.Sections(ctx, snap.DocID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 stored section rows, got %d", len(rows))
	}
	if rows[0].SectionID != "5" || rows[1].SectionID != "5.1" {
		t.Errorf("unexpected section ids: %+v", rows)
	}

	chunks, err := db.SectionChunks(ctx, snap.DocID, "5")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) == 0 {
		t.Error("expected chunks stored for section 5")
	}
}

func TestWorker_DuplicateSkipped(t *testing.T) {
	w, _ := testWorker(t)
	ctx := context.Background()

	first := NewJob("spec.md", []byte(sampleDoc))
	w.Process(ctx, first)
	if first.Snapshot().Status != StatusCompleted {
		t.Fatalf("first ingest failed: %+v", first.Snapshot())
	}

	second := NewJob("copy.md", []byte(sampleDoc))
	w.Process(ctx, second)

	snap := second.Snapshot()
	if snap.Status != StatusDupSkipped {
		t.Errorf("expected status %q, got %q", StatusDupSkipped, snap.Status)
	}
	if snap.DocID != first.Snapshot().DocID {
		t.Errorf("expected duplicate to reference existing document %d, got %d",
			first.Snapshot().DocID, snap.DocID)
	}
}

func TestWorker_UnsupportedFormatFails(t *testing.T) {
	w, _ := testWorker(t)

	job := NewJob("archive.zip", []byte("data"))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected an error recorded on the job")
	}
}
