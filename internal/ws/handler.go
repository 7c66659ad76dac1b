package ws

import (
	"context"
	"log"
	"net/http"
	"strings"

	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/jwt"

	"github.com/gorilla/websocket"
)

const sessionCookieName = "session_token"

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (user.User, error)
}

// Handler upgrades authenticated requests to a websocket and joins the
// connection to the user's own room. Credentials are the session cookie, a
// bearer token, or a realtime ticket in ?ticket=.
type Handler struct {
	hub      *Hub
	sessions SessionResolver
	tickets  jwt.Service
	upgrader websocket.Upgrader
	logger   *log.Logger
}

func NewHandler(hub *Hub, sessions SessionResolver, tickets jwt.Service, allowOrigins []string, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		hub:      hub,
		sessions: sessions,
		tickets:  tickets,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowOrigins),
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.hub == nil {
		http.Error(w, "realtime unavailable", http.StatusServiceUnavailable)
		return
	}

	userID, ok := h.authenticate(r)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("WS upgrade error | user_id=%s error=%v", userID, err)
		return
	}

	client := NewClient(h.hub, conn, userID)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) authenticate(r *http.Request) (string, bool) {
	if ticket := strings.TrimSpace(r.URL.Query().Get("ticket")); ticket != "" && h.tickets != nil {
		claims, err := h.tickets.ValidateRealtimeTicket(ticket)
		if err == nil && claims.UserID != "" {
			return claims.UserID, true
		}
	}

	if h.sessions == nil {
		return "", false
	}
	tok := ""
	if ck, err := r.Cookie(sessionCookieName); err == nil {
		tok = strings.TrimSpace(ck.Value)
	}
	if tok == "" {
		if parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tok = strings.TrimSpace(parts[1])
		}
	}
	if tok == "" {
		return "", false
	}

	u, err := h.sessions.Resolve(r.Context(), tok)
	if err != nil {
		return "", false
	}
	return u.ID, true
}

func originChecker(allow []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allow))
	for _, o := range allow {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}
