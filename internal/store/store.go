// Package store persists section trees and chunks into SQLite with the
// column shape the downstream extraction and graph-loading consumers
// expect.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rkoval/specsect/internal/doctree"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Document is a row in the documents table.
type Document struct {
	ID          int64  `json:"id"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	ContentHash string `json:"content_hash"`
	CreatedAt   string `json:"created_at"`
}

// SectionRow is a row in the section table.
type SectionRow struct {
	SectionID       string  `json:"section_id"`
	SectionName     string  `json:"section_name"`
	SectionLevel    int     `json:"section_level"`
	ParentSectionID *string `json:"parent_section_id,omitempty"`
}

// ChunkRow is a row in the content table.
type ChunkRow struct {
	SectionID    string `json:"section_id"`
	SectionName  string `json:"section_name"`
	SectionLevel int    `json:"section_level"`
	ChunkID      int    `json:"chunk_id"`
	ContentChunk string `json:"content_chunk"`
}

// Store wraps the SQLite database for all specsect persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and
// initialises the schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ContentHash computes the SHA-256 hex digest of raw document bytes.
func ContentHash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// InsertDocument registers a document and returns its id.
func (s *Store) InsertDocument(ctx context.Context, doc Document) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (path, filename, format, content_hash) VALUES (?, ?, ?, ?)`,
		doc.Path, doc.Filename, doc.Format, doc.ContentHash)
	if err != nil {
		return 0, fmt.Errorf("inserting document: %w", err)
	}
	return res.LastInsertId()
}

// DocumentByHash looks up a previously ingested document by content hash.
// Returns ErrNotFound when the hash is unknown.
func (s *Store) DocumentByHash(ctx context.Context, hash string) (*Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx,
		`SELECT id, path, filename, format, content_hash, created_at FROM documents WHERE content_hash = ?`,
		hash).Scan(&doc.ID, &doc.Path, &doc.Filename, &doc.Format, &doc.ContentHash, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying document by hash: %w", err)
	}
	return &doc, nil
}

// Documents lists all registered documents, newest first.
func (s *Store) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, filename, format, content_hash, created_at FROM documents ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.Filename, &doc.Format, &doc.ContentHash, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// InsertSectionTree stores every section of the tree depth-first in
// document order, one row each, inside a single transaction.
func (s *Store) InsertSectionTree(ctx context.Context, docID int64, sections []*doctree.Section) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO section (document_id, section_id, section_name, section_level, parent_section_id) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var insertErr error
	doctree.Walk(sections, func(sec *doctree.Section) {
		if insertErr != nil {
			return
		}
		var parentID *string
		if sec.Parent != nil {
			id := sec.Parent.ID()
			parentID = &id
		}
		_, insertErr = stmt.ExecContext(ctx, docID, sec.ID(), sec.Name(), sec.Level, parentID)
	})
	if insertErr != nil {
		return fmt.Errorf("inserting section: %w", insertErr)
	}

	return tx.Commit()
}

// InsertChunks stores chunk rows in a single transaction.
func (s *Store) InsertChunks(ctx context.Context, docID int64, chunks []doctree.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO content (document_id, section_id, section_name, section_level, chunk_id, content_chunk) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, docID, c.SectionID, c.Title, c.Level, c.Index, c.Content); err != nil {
			return fmt.Errorf("inserting chunk %s/%d: %w", c.SectionID, c.Index, err)
		}
	}

	return tx.Commit()
}

// Sections returns all section rows of a document in insertion
// (document) order.
func (s *Store) Sections(ctx context.Context, docID int64) ([]SectionRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT section_id, section_name, section_level, parent_section_id FROM section WHERE document_id = ? ORDER BY rowid`,
		docID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	var sections []SectionRow
	for rows.Next() {
		var row SectionRow
		if err := rows.Scan(&row.SectionID, &row.SectionName, &row.SectionLevel, &row.ParentSectionID); err != nil {
			return nil, err
		}
		sections = append(sections, row)
	}
	return sections, rows.Err()
}

// Chunks returns every chunk of a document in insertion order, chunks
// of the same section ordered by chunk_id.
func (s *Store) Chunks(ctx context.Context, docID int64) ([]ChunkRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT section_id, section_name, section_level, chunk_id, content_chunk FROM content WHERE document_id = ? ORDER BY rowid`,
		docID)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	defer rows.Close()

	var chunks []ChunkRow
	for rows.Next() {
		var row ChunkRow
		if err := rows.Scan(&row.SectionID, &row.SectionName, &row.SectionLevel, &row.ChunkID, &row.ContentChunk); err != nil {
			return nil, err
		}
		chunks = append(chunks, row)
	}
	return chunks, rows.Err()
}

// BuildTree reconstructs the section hierarchy from stored rows. Rows
// arrive in depth-first document order, so each row's parent has
// already been seen when the row is reached.
func BuildTree(rows []SectionRow) []*doctree.Section {
	byID := make(map[string]*doctree.Section, len(rows))
	var roots []*doctree.Section
	for _, row := range rows {
		heading := row.SectionName
		if row.SectionID != row.SectionName {
			heading = row.SectionID + " " + row.SectionName
		}
		sec := &doctree.Section{Level: row.SectionLevel, Heading: heading}
		byID[row.SectionID] = sec
		if row.ParentSectionID != nil {
			if parent := byID[*row.ParentSectionID]; parent != nil {
				sec.Parent = parent
				parent.Subsections = append(parent.Subsections, sec)
				continue
			}
		}
		roots = append(roots, sec)
	}
	return roots
}

// AttachChunks fills section content from stored chunk rows.
func AttachChunks(tree []*doctree.Section, chunks []ChunkRow) {
	byID := make(map[string]*doctree.Section)
	doctree.Walk(tree, func(sec *doctree.Section) {
		byID[sec.ID()] = sec
	})
	for _, c := range chunks {
		if sec := byID[c.SectionID]; sec != nil {
			sec.Content = append(sec.Content, c.ContentChunk)
		}
	}
}

// SectionChunks returns a section's chunks ordered by chunk_id, the
// order downstream consumers rely on.
func (s *Store) SectionChunks(ctx context.Context, docID int64, sectionID string) ([]ChunkRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT section_id, section_name, section_level, chunk_id, content_chunk FROM content WHERE document_id = ? AND section_id = ? ORDER BY chunk_id`,
		docID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	defer rows.Close()

	var chunks []ChunkRow
	for rows.Next() {
		var row ChunkRow
		if err := rows.Scan(&row.SectionID, &row.SectionName, &row.SectionLevel, &row.ChunkID, &row.ContentChunk); err != nil {
			return nil, err
		}
		chunks = append(chunks, row)
	}
	return chunks, rows.Err()
}
