package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-portal/internal/domain/user"
	"job-portal/internal/infrastructure/identity"
	"job-portal/internal/testfixtures"
)

func newAuth(store *testfixtures.Store, idp identity.Client, clock *testfixtures.Clock) *Auth {
	return NewAuth(idp, store.Users(), store.Sessions(), 7*24*time.Hour, testOpts(clock)...)
}

func TestAuth_ExchangeSession_CreatesUserWithRole(t *testing.T) {
	store := testfixtures.NewStore()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	idp := &fakeIdentity{profiles: map[string]identity.Profile{
		"sid": {Email: "boss@example.com", Name: "Boss", SessionToken: "tok-1"},
	}}
	auth := newAuth(store, idp, clock)

	res, err := auth.ExchangeSession(context.Background(), ExchangeInput{SessionID: "sid", Role: user.RoleEmployer})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.User.Role != user.RoleEmployer {
		t.Fatalf("expected employer, got %s", res.User.Role)
	}
	if res.SessionToken != "tok-1" {
		t.Fatalf("unexpected token %q", res.SessionToken)
	}
	if want := testfixtures.ReferenceTime().Add(7 * 24 * time.Hour); !res.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %s, got %s", want, res.ExpiresAt)
	}

	gate := NewSessionGate(store.Sessions(), store.Users(), testOpts(clock)...)
	got, err := gate.Resolve(context.Background(), "tok-1")
	if err != nil || got.ID != res.User.ID {
		t.Fatalf("expected session to resolve to new user, got %v %v", got.ID, err)
	}
}

func TestAuth_ExchangeSession_ExistingUserIgnoresRoleHint(t *testing.T) {
	store := testfixtures.NewStore()
	existing := store.SeedUser(user.RoleJobSeeker)
	idp := &fakeIdentity{profiles: map[string]identity.Profile{
		"sid": {Email: existing.Email, Name: "Other Name", SessionToken: "tok-2"},
	}}
	auth := newAuth(store, idp, newClock())

	res, err := auth.ExchangeSession(context.Background(), ExchangeInput{SessionID: "sid", Role: user.RoleEmployer})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.User.ID != existing.ID || res.User.Role != user.RoleJobSeeker {
		t.Fatalf("expected existing job seeker, got %+v", res.User)
	}
}

func TestAuth_ExchangeSession_Validation(t *testing.T) {
	store := testfixtures.NewStore()
	idp := &fakeIdentity{}
	auth := newAuth(store, idp, newClock())

	if _, err := auth.ExchangeSession(context.Background(), ExchangeInput{SessionID: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing session id, got %v", err)
	}
	if _, err := auth.ExchangeSession(context.Background(), ExchangeInput{SessionID: "sid", Role: "admin"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}
	if _, err := auth.ExchangeSession(context.Background(), ExchangeInput{SessionID: "sid"}); !errors.Is(err, ErrIdentityProvider) {
		t.Fatalf("expected ErrIdentityProvider, got %v", err)
	}
	if idp.calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", idp.calls)
	}
}

func TestAuth_ExchangeSession_PurgesExpiredSessions(t *testing.T) {
	store := testfixtures.NewStore()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	u := store.SeedUser(user.RoleJobSeeker)
	store.SeedSession(u.ID, clock.Now().Add(-time.Hour))
	store.SeedSession(u.ID, clock.Now().Add(-2*time.Hour))
	live := store.SeedSession(u.ID, clock.Now().Add(time.Hour))

	idp := &fakeIdentity{profiles: map[string]identity.Profile{
		"sid": {Email: u.Email, SessionToken: "fresh"},
	}}
	auth := newAuth(store, idp, clock)

	if _, err := auth.ExchangeSession(context.Background(), ExchangeInput{SessionID: "sid"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if store.SessionCount() != 2 {
		t.Fatalf("expected live + fresh sessions only, got %d", store.SessionCount())
	}

	gate := NewSessionGate(store.Sessions(), store.Users(), testOpts(clock)...)
	if _, err := gate.Resolve(context.Background(), live); err != nil {
		t.Fatalf("live session should survive purge: %v", err)
	}
}

func TestAuth_Logout(t *testing.T) {
	store := testfixtures.NewStore()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	u := store.SeedUser(user.RoleEmployer)
	tok := store.SeedSession(u.ID, clock.Now().Add(time.Hour))
	auth := newAuth(store, &fakeIdentity{}, clock)

	if err := auth.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty token logout should succeed: %v", err)
	}
	if err := auth.Logout(context.Background(), tok); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	gate := NewSessionGate(store.Sessions(), store.Users(), testOpts(clock)...)
	if _, err := gate.Resolve(context.Background(), tok); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected session gone after logout, got %v", err)
	}
}
