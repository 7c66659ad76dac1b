package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"job-portal/internal/domain/user"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	SessionCookieName = "session_token"

	ctxUserKey      = "auth_user"
	ctxAuthErrorKey = "auth_error"
)

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (user.User, error)
}

type AuthMiddleware struct {
	gate   SessionResolver
	logger *log.Logger
}

func NewAuthMiddleware(gate SessionResolver, logger *log.Logger) *AuthMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthMiddleware{gate: gate, logger: logger}
}

// Optional resolves the session when one is presented and continues either
// way. Require must run after it.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		tok := SessionToken(c)
		if tok == "" {
			return c.Next()
		}

		u, err := m.gate.Resolve(c.Context(), tok)
		if err != nil {
			if !errors.Is(err, usecase.ErrUnauthenticated) {
				m.logger.Printf("[Auth] session resolve failed | path=%s err=%v", c.Path(), err)
			}
			c.Locals(ctxAuthErrorKey, err)
			return c.Next()
		}

		c.Locals(ctxUserKey, u)
		return c.Next()
	}
}

// Require rejects requests Optional could not attach a user to. A store
// failure during resolution is a 500, not a 401.
func (m *AuthMiddleware) Require() fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, ok := CurrentUser(c); ok {
			return c.Next()
		}
		if err, ok := c.Locals(ctxAuthErrorKey).(error); ok && !errors.Is(err, usecase.ErrUnauthenticated) {
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		return NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}
}

func CurrentUser(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(ctxUserKey).(user.User)
	return u, ok
}

// SessionToken extracts the session token, preferring the cookie over an
// Authorization: Bearer header.
func SessionToken(c fiber.Ctx) string {
	if tok := strings.TrimSpace(c.Cookies(SessionCookieName)); tok != "" {
		return tok
	}
	tok, _ := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
	return tok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
