package repository

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/session"

	"golang.org/x/crypto/blake2b"
)

// PostgresSessionRepository stores sessions keyed by a BLAKE2b-256 digest of
// the token, so a leaked table does not leak usable credentials.
type PostgresSessionRepository struct {
	db database.DB
}

func NewPostgresSessionRepository(db database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func HashToken(token string) string {
	sum := blake2b.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}

func (r *PostgresSessionRepository) Create(ctx context.Context, s session.Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_sessions (token_hash, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (token_hash) DO UPDATE SET user_id = EXCLUDED.user_id, expires_at = EXCLUDED.expires_at`,
		HashToken(s.Token), s.UserID, s.ExpiresAt.UTC(), s.CreatedAt.UTC(),
	)
	return err
}

func (r *PostgresSessionRepository) GetByToken(ctx context.Context, token string) (session.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return session.Session{}, session.ErrNotFound
	}

	s := session.Session{Token: token}
	row := r.db.QueryRow(ctx,
		`SELECT user_id, expires_at, created_at FROM user_sessions WHERE token_hash = $1`,
		HashToken(token),
	)
	if err := row.Scan(&s.UserID, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if isNoRows(err) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}
	s.ExpiresAt = s.ExpiresAt.UTC()
	return s, nil
}

func (r *PostgresSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM user_sessions WHERE token_hash = $1`, HashToken(token))
	return err
}

func (r *PostgresSessionRepository) DeleteExpiredForUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM user_sessions WHERE user_id = $1 AND expires_at < $2`,
		userID, now.UTC(),
	)
}

var _ session.Repository = (*PostgresSessionRepository)(nil)
