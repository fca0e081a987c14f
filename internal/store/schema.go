package store

// schemaSQL is the DDL for all tables. The section/content column sets
// are the contract the downstream extraction and graph-loading consumers
// select on; they must not change shape.
const schemaSQL = `
-- Document registry with hash-based change detection
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY,
    path TEXT NOT NULL,
    filename TEXT NOT NULL,
    format TEXT NOT NULL,
    content_hash TEXT NOT NULL UNIQUE,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per section, depth-first in document order
CREATE TABLE IF NOT EXISTS section (
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    section_id TEXT NOT NULL,
    section_name TEXT NOT NULL,
    section_level INTEGER NOT NULL,
    parent_section_id TEXT
);

-- One row per chunk; chunk_id restarts per section
CREATE TABLE IF NOT EXISTS content (
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    section_id TEXT NOT NULL,
    section_name TEXT NOT NULL,
    section_level INTEGER NOT NULL,
    chunk_id INTEGER NOT NULL,
    content_chunk TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_section_doc ON section(document_id);
CREATE INDEX IF NOT EXISTS idx_content_section ON content(document_id, section_id, chunk_id);
`
