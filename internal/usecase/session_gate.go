package usecase

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/session"
	"job-portal/internal/domain/user"
)

// SessionGate resolves a bearer/cookie session token to the user it belongs
// to. It never writes: expired rows are left for the next login to purge.
type SessionGate struct {
	base
	sessions session.Repository
	users    user.Repository
}

func NewSessionGate(sessions session.Repository, users user.Repository, opts ...Option) *SessionGate {
	return &SessionGate{base: newBase(opts), sessions: sessions, users: users}
}

func (g *SessionGate) Resolve(ctx context.Context, token string) (user.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.User{}, ErrUnauthenticated
	}

	sess, err := g.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return user.User{}, ErrUnauthenticated
		}
		return user.User{}, internal("session lookup", err)
	}
	if sess.Expired(g.now()) {
		return user.User{}, ErrUnauthenticated
	}

	u, err := g.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			g.logger.Printf("[Auth] orphaned session user_id=%s", sess.UserID)
			return user.User{}, ErrUnauthenticated
		}
		return user.User{}, internal("session user lookup", err)
	}
	return u, nil
}
