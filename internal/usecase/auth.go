package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-portal/internal/domain/session"
	"job-portal/internal/domain/user"
	"job-portal/internal/infrastructure/identity"
	"job-portal/internal/pkg/ids"
)

type ExchangeInput struct {
	SessionID string
	Role      user.Role
}

type ExchangeResult struct {
	User         user.User
	SessionToken string
	ExpiresAt    time.Time
}

type Auth struct {
	base
	idp        identity.Client
	users      user.Repository
	sessions   session.Repository
	sessionTTL time.Duration
}

func NewAuth(idp identity.Client, users user.Repository, sessions session.Repository, sessionTTL time.Duration, opts ...Option) *Auth {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &Auth{base: newBase(opts), idp: idp, users: users, sessions: sessions, sessionTTL: sessionTTL}
}

func (a *Auth) SessionTTL() time.Duration {
	return a.sessionTTL
}

// ExchangeSession trades an identity-provider session id for a local session.
// The role only applies when the email has never been seen before.
func (a *Auth) ExchangeSession(ctx context.Context, in ExchangeInput) (ExchangeResult, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return ExchangeResult{}, fail(ErrInvalidInput, "session_id is required")
	}
	role := in.Role
	if role == "" {
		role = user.RoleJobSeeker
	}
	if !role.Valid() {
		return ExchangeResult{}, fail(ErrInvalidInput, "user_type must be job_seeker or employer")
	}

	profile, err := a.idp.SessionData(ctx, sessionID)
	if err != nil {
		return ExchangeResult{}, fail(ErrIdentityProvider, "Invalid session")
	}

	u, err := a.findOrCreate(ctx, profile, role)
	if err != nil {
		return ExchangeResult{}, err
	}

	now := a.now()
	if n, err := a.sessions.DeleteExpiredForUser(ctx, u.ID, now); err != nil {
		a.logger.Printf("[Auth] purge expired sessions failed user_id=%s err=%v", u.ID, err)
	} else if n > 0 {
		a.logger.Printf("[Auth] purged expired sessions user_id=%s count=%d", u.ID, n)
	}

	sess := session.Session{
		Token:     profile.SessionToken,
		UserID:    u.ID,
		ExpiresAt: now.Add(a.sessionTTL),
		CreatedAt: now,
	}
	if err := a.sessions.Create(ctx, sess); err != nil {
		return ExchangeResult{}, internal("create session", err)
	}

	a.logger.Printf("[Auth] session established user_id=%s user_type=%s", u.ID, u.Role)
	return ExchangeResult{User: u, SessionToken: sess.Token, ExpiresAt: sess.ExpiresAt}, nil
}

func (a *Auth) findOrCreate(ctx context.Context, p identity.Profile, role user.Role) (user.User, error) {
	u, err := a.users.GetByEmail(ctx, p.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, internal("user lookup", err)
	}

	name := p.Name
	if name == "" {
		name = p.Email
	}
	u = user.User{
		ID:        ids.New(ids.PrefixUser),
		Email:     p.Email,
		Name:      name,
		Picture:   p.Picture,
		Role:      role,
		Skills:    []string{},
		CreatedAt: a.now(),
	}
	if err := a.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailDuplicate) {
			// A concurrent first login won the insert; use its row.
			winner, gerr := a.users.GetByEmail(ctx, p.Email)
			if gerr != nil {
				return user.User{}, internal("user re-read", gerr)
			}
			return winner, nil
		}
		return user.User{}, internal("create user", err)
	}
	return u, nil
}

// Logout removes the session row for token, if any. An empty token is a no-op.
func (a *Auth) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := a.sessions.DeleteByToken(ctx, token); err != nil {
		return internal("delete session", err)
	}
	return nil
}
