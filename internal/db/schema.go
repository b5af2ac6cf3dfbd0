package db

import (
	"database/sql"
	"fmt"
)

// schema is the full local-state schema. Only session identity and the
// dashboard caches live here; all inventory truth stays in the backend.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    jti           TEXT PRIMARY KEY,
    technician_id TEXT NOT NULL,
    name          TEXT NOT NULL,
    whatsapp      TEXT NOT NULL DEFAULT '',
    avatar_url    TEXT NOT NULL DEFAULT '',
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_activity DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sessions_technician
    ON sessions(technician_id);

CREATE TABLE IF NOT EXISTS cache (
    technician_id TEXT NOT NULL,
    key           TEXT NOT NULL,
    value         TEXT NOT NULL,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (technician_id, key)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
