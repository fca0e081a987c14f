package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rkoval/specsect/internal/export"
	"github.com/rkoval/specsect/internal/store"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.orchestrator.DB().Documents(r.Context())
	if err != nil {
		s.log.Error("listing documents", "error", err)
		jsonError(w, "failed to list documents", http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []store.Document{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	docID, ok := parseDocID(w, r)
	if !ok {
		return
	}
	sections, err := s.orchestrator.DB().Sections(r.Context(), docID)
	if err != nil {
		s.log.Error("listing sections", "doc_id", docID, "error", err)
		jsonError(w, "failed to list sections", http.StatusInternalServerError)
		return
	}
	if sections == nil {
		sections = []store.SectionRow{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"sections": sections})
}

func (s *Server) handleSectionChunks(w http.ResponseWriter, r *http.Request) {
	docID, ok := parseDocID(w, r)
	if !ok {
		return
	}
	sectionID := chi.URLParam(r, "sectionID")
	chunks, err := s.orchestrator.DB().SectionChunks(r.Context(), docID, sectionID)
	if err != nil {
		s.log.Error("listing section chunks", "doc_id", docID, "section_id", sectionID, "error", err)
		jsonError(w, "failed to list chunks", http.StatusInternalServerError)
		return
	}
	if chunks == nil {
		chunks = []store.ChunkRow{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"chunks": chunks})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	docID, ok := parseDocID(w, r)
	if !ok {
		return
	}
	format := chi.URLParam(r, "format")

	db := s.orchestrator.DB()
	rows, err := db.Sections(r.Context(), docID)
	if err != nil {
		s.log.Error("loading sections for export", "doc_id", docID, "error", err)
		jsonError(w, "failed to load sections", http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		jsonError(w, "document has no sections", http.StatusNotFound)
		return
	}

	tree := store.BuildTree(rows)

	if format == "markdown" {
		chunks, err := db.Chunks(r.Context(), docID)
		if err != nil {
			s.log.Error("loading chunks for export", "doc_id", docID, "error", err)
			jsonError(w, "failed to load chunks", http.StatusInternalServerError)
			return
		}
		store.AttachChunks(tree, chunks)
	}

	switch format {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		err = export.Markdown(w, tree)
	case "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		err = export.Mermaid(w, tree)
	case "json":
		w.Header().Set("Content-Type", "application/json")
		err = export.JSON(w, tree)
	default:
		jsonError(w, "unknown export format: "+format, http.StatusBadRequest)
		return
	}
	if err != nil {
		s.log.Error("export failed", "doc_id", docID, "format", format, "error", err)
	}
}

func parseDocID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "docID"), 10, 64)
	if err != nil {
		jsonError(w, "invalid document id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

