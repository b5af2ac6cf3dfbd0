package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

// Session is a server-side session row, keyed by the token's JTI. The
// last-activity timestamp drives the client-enforced inactivity expiry.
type Session struct {
	JTI          string
	Technician   model.Technician
	CreatedAt    time.Time
	LastActivity time.Time
}

// CreateSession records a new session for a resolved technician.
func CreateSession(ctx context.Context, db *sql.DB, jti string, tech model.Technician) error {
	now := time.Now().UTC()
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (jti, technician_id, name, whatsapp, avatar_url, created_at, last_activity)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		jti, tech.ID, tech.Name, tech.Whatsapp, tech.AvatarURL, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// GetSession returns a session by JTI, or nil if it does not exist.
func GetSession(ctx context.Context, db *sql.DB, jti string) (*Session, error) {
	s := &Session{JTI: jti}
	err := db.QueryRowContext(ctx,
		`SELECT technician_id, name, whatsapp, avatar_url, created_at, last_activity
		 FROM sessions WHERE jti = ?`, jti,
	).Scan(&s.Technician.ID, &s.Technician.Name, &s.Technician.Whatsapp,
		&s.Technician.AvatarURL, &s.CreatedAt, &s.LastActivity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return s, nil
}

// TouchSession slides the session's last-activity timestamp forward. Every
// authenticated request counts as a tracked activity event.
func TouchSession(ctx context.Context, db *sql.DB, jti string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE sessions SET last_activity = ? WHERE jti = ?`,
		time.Now().UTC(), jti,
	)
	if err != nil {
		return fmt.Errorf("touching session: %w", err)
	}
	return nil
}

// Expired reports whether the session has been inactive longer than timeout.
func (s *Session) Expired(timeout time.Duration) bool {
	return time.Since(s.LastActivity) > timeout
}

// EndSession removes a session and clears the technician's cached dashboard
// state. Used for both explicit logout and inactivity expiry: the session
// and its caches always go together.
func EndSession(ctx context.Context, db *sql.DB, jti, technicianID string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE jti = ?`, jti); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if err := ClearCache(ctx, db, technicianID); err != nil {
		return err
	}
	return nil
}
