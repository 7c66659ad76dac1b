package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memCounter) IncrWithExpire(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return m.counts[key], nil
}

func decodeEnvelope(t *testing.T, resp *http.Response) response.SemanticResponse {
	t.Helper()
	defer resp.Body.Close()
	var env response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func newLimitedApp(counter Counter, limit int, logger *log.Logger) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(logger).Middleware())

	rl := NewRateLimiter(counter, limit, logger)
	rl.now = func() time.Time { return time.Date(2025, 3, 3, 9, 0, 30, 0, time.UTC) }
	app.Get("/limited", rl.Limit("test"), func(c fiber.Ctx) error {
		return response.OK(c, nil)
	})
	return app
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	app := newLimitedApp(&memCounter{}, 2, log.New(io.Discard, "", 0))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Retry-After"); got != "31" {
		t.Fatalf("expected Retry-After 31, got %q", got)
	}
	if got := resp.Header.Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected remaining 0, got %q", got)
	}
	env := decodeEnvelope(t, resp)
	if env.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestRateLimiter_BypassesWhenCounterFails(t *testing.T) {
	var buf bytes.Buffer
	app := newLimitedApp(&memCounter{err: errors.New("connection refused")}, 1, log.New(&buf, "", 0))

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}
	if n := strings.Count(buf.String(), "counter unavailable"); n != 1 {
		t.Fatalf("expected a single warning, got %d in %q", n, buf.String())
	}
}

func TestRateLimiter_NilCounterIsDisabled(t *testing.T) {
	app := newLimitedApp(nil, 1, nil)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status=%v err=%v", i, resp, err)
		}
	}
}

func TestErrorMiddleware_Normalizes(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(&buf, "", 0)).Middleware())
	app.Get("/app-error", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "title is required", map[string]string{"title": "is required"}, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("pq: boom"))
	})
	app.Get("/unavailable", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable, "dial tcp 10.0.0.5:5432", map[string]string{"dsn": "secret"}, errors.New("connection refused"))
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("something broke")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/app-error", http.StatusBadRequest, "title is required"},
		{"/internal", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/unavailable", http.StatusServiceUnavailable, response.MessageServiceUnavailable},
		{"/plain", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/panic", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/missing", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		env := decodeEnvelope(t, resp)
		if tc.message != "" && env.Message != tc.message {
			t.Fatalf("%s: expected message %q, got %q", tc.path, tc.message, env.Message)
		}
		if tc.status >= 500 && env.Data != nil {
			t.Fatalf("%s: 5xx must not carry data, got %v", tc.path, env.Data)
		}
	}

	if !strings.Contains(buf.String(), "pq: boom") || !strings.Contains(buf.String(), "kaboom") || !strings.Contains(buf.String(), "connection refused") {
		t.Fatalf("expected 5xx causes to be logged, got %q", buf.String())
	}
}

type stubResolver struct {
	users map[string]user.User
	err   error
}

func (s stubResolver) Resolve(_ context.Context, token string) (user.User, error) {
	if s.err != nil {
		return user.User{}, s.err
	}
	u, ok := s.users[token]
	if !ok {
		return user.User{}, usecase.ErrUnauthenticated
	}
	return u, nil
}

func newAuthApp(resolver SessionResolver) *fiber.App {
	mw := NewAuthMiddleware(resolver, log.New(io.Discard, "", 0))
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Use(mw.Optional())
	app.Get("/me", mw.Require(), func(c fiber.Ctx) error {
		u, _ := CurrentUser(c)
		return response.OK(c, u.ID)
	})
	app.Get("/public", func(c fiber.Ctx) error {
		_, ok := CurrentUser(c)
		return response.OK(c, ok)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newAuthApp(stubResolver{users: map[string]user.User{"good": {ID: "user_1"}}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %v err=%v", resp, err)
	}
	if env := decodeEnvelope(t, resp); env.Data != "user_1" {
		t.Fatalf("unexpected data %v", env.Data)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer bad")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public route should ignore bad tokens, got %d", resp.StatusCode)
	}
}

func TestAuthMiddleware_StoreFailureIs500(t *testing.T) {
	app := newAuthApp(stubResolver{err: errors.New("pool exhausted")})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer anything")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestBearerTokenFromHeader(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
	}
	for in, want := range cases {
		got, _ := bearerTokenFromHeader(in)
		if got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}
