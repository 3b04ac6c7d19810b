package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Denylist records session tokens that were revoked before they expired.
// Entries only need to live until the token's own expiry.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MySQLDenylist struct {
	DB  *sql.DB
	now func() time.Time
}

func NewMySQLDenylist(db *sql.DB) *MySQLDenylist {
	return &MySQLDenylist{DB: db, now: time.Now}
}

func (r *MySQLDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		REPLACE INTO revoked_sessions (id, expires_at)
		VALUES (?, ?)
	`, tokenID, until.UTC().Truncate(time.Second))
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (r *MySQLDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM revoked_sessions
			WHERE id = ? AND expires_at > ?
		)
	`, tokenID, r.now().UTC().Truncate(time.Second)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check revoked session: %w", err)
	}
	return exists, nil
}

// Prune deletes entries whose tokens have expired anyway.
func (r *MySQLDenylist) Prune(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM revoked_sessions WHERE expires_at <= ?
	`, r.now().UTC().Truncate(time.Second))
	if err != nil {
		return 0, fmt.Errorf("prune revoked sessions: %w", err)
	}
	return res.RowsAffected()
}
