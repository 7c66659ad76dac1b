package testfixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"job-portal/internal/domain/session"
	"job-portal/internal/domain/user"
)

var userCounter uint64

// SeedUser stores a deterministic user with the given role and returns it.
func (s *Store) SeedUser(role user.Role) user.User {
	idx := atomic.AddUint64(&userCounter, 1)
	u := user.User{
		ID:        fmt.Sprintf("user_%012x", idx),
		Email:     fmt.Sprintf("user%03d@example.com", idx),
		Name:      fmt.Sprintf("User %03d", idx),
		Role:      role,
		Skills:    []string{},
		CreatedAt: referenceTime,
	}
	if err := s.Users().Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// SeedSession stores a session for userID that expires at expiresAt and
// returns its token.
func (s *Store) SeedSession(userID string, expiresAt time.Time) string {
	idx := atomic.AddUint64(&userCounter, 1)
	tok := fmt.Sprintf("session-%03d", idx)
	sess := session.Session{Token: tok, UserID: userID, ExpiresAt: expiresAt, CreatedAt: referenceTime}
	if err := s.Sessions().Create(context.Background(), sess); err != nil {
		panic(err)
	}
	return tok
}
