package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Cache keys, fixed by convention and shared with the original client.
const (
	CacheKeyActiveTools = "sgd_active_tools"
	CacheKeyRecentLogs  = "sgd_recent_logs"
)

// PutCache upserts a cached JSON value for a technician under a fixed key.
// Last write wins; no cross-session coordination.
func PutCache(ctx context.Context, db *sql.DB, technicianID, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO cache (technician_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (technician_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		technicianID, key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching %s: %w", key, err)
	}
	return nil
}

// GetCache returns a cached value, reporting whether it was present.
func GetCache(ctx context.Context, db *sql.DB, technicianID, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM cache WHERE technician_id = ? AND key = ?`,
		technicianID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache %s: %w", key, err)
	}
	return value, true, nil
}

// ClearCache removes all cached values for a technician.
func ClearCache(ctx context.Context, db *sql.DB, technicianID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM cache WHERE technician_id = ?`, technicianID,
	)
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
