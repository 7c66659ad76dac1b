package identity

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	return NewClient(srv.URL, time.Second, log.New(&buf, "", 0)), &buf
}

func TestSessionData_OK(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Session-ID"); got != "sid-1" {
			t.Errorf("unexpected session header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"email":"a@x.com","name":"Alice","picture":"https://img","session_token":"tok-1"}`)
	})

	p, err := c.SessionData(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Email != "a@x.com" || p.Name != "Alice" || p.SessionToken != "tok-1" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.Picture == nil || *p.Picture != "https://img" {
		t.Fatalf("unexpected picture %v", p.Picture)
	}
}

func TestSessionData_Non2xx(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	_, err := c.SessionData(context.Background(), "sid")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
	if !strings.Contains(logs.String(), "[Identity]") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}
}

func TestSessionData_MissingFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"email":"a@x.com","name":"Alice"}`)
	})

	if _, err := c.SessionData(context.Background(), "sid"); !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestSessionData_Undecodable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})

	if _, err := c.SessionData(context.Background(), "sid"); !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestSessionData_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, log.New(io.Discard, "", 0))
	if _, err := c.SessionData(context.Background(), "sid"); err == nil {
		t.Fatalf("expected error for closed server")
	}
}
