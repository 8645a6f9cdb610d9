// ABOUTME: SQLite schema for patent record and vector storage
// ABOUTME: Fingerprint is the primary key in all three tables
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Raw applications, stored as received (JSON blob)
CREATE TABLE IF NOT EXISTS raw_patents (
    fingerprint TEXT PRIMARY KEY,
    raw TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Flattened, scored records derived from raw_patents
CREATE TABLE IF NOT EXISTS cleaned_patents (
    fingerprint TEXT PRIMARY KEY,
    application_number TEXT NOT NULL,
    filing_date TEXT NOT NULL DEFAULT '',
    entity_type TEXT NOT NULL DEFAULT '',
    first_inventor_flag TEXT NOT NULL DEFAULT '',
    inventors TEXT NOT NULL DEFAULT '',
    inventor_count INTEGER NOT NULL DEFAULT 0,
    correspondence_text TEXT NOT NULL DEFAULT '{}',
    summary TEXT NOT NULL DEFAULT '',
    quality_score INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Embedding vectors with display metadata
CREATE TABLE IF NOT EXISTS patent_vectors (
    fingerprint TEXT PRIMARY KEY,
    vector BLOB NOT NULL,
    metadata TEXT NOT NULL DEFAULT '{}',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_cleaned_application ON cleaned_patents(application_number);
CREATE INDEX IF NOT EXISTS idx_cleaned_quality ON cleaned_patents(quality_score);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
