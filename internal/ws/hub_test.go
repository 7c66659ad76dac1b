package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/jwt"

	"github.com/gorilla/websocket"
)

var quiet = log.New(io.Discard, "", 0)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestHub_PublishDeliversToRoomOnly(t *testing.T) {
	hub := NewHub(quiet)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	alice := &Client{hub: hub, room: "user_a", send: make(chan []byte, 4), logger: quiet}
	bob := &Client{hub: hub, room: "user_b", send: make(chan []byte, 4), logger: quiet}
	hub.Register(alice)
	hub.Register(bob)
	waitFor(t, func() bool { return hub.RoomSize("user_a") == 1 && hub.RoomSize("user_b") == 1 })

	if !hub.Publish("user_a", "new_message", map[string]string{"content": "hi"}) {
		t.Fatalf("expected publish to be queued")
	}

	select {
	case payload := <-alice.send:
		var ev struct {
			Event string            `json:"event"`
			Data  map[string]string `json:"data"`
		}
		if err := json.Unmarshal(payload, &ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev.Event != "new_message" || ev.Data["content"] != "hi" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("alice did not receive event")
	}

	select {
	case <-bob.send:
		t.Fatalf("bob must not receive alice's events")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(quiet)

	// Run is not started, so the queue fills up and further events drop.
	queued := 0
	for i := 0; i < cap(hub.publish)+10; i++ {
		if hub.Publish("user_a", "new_message", i) {
			queued++
		}
	}
	if queued != cap(hub.publish) {
		t.Fatalf("expected %d queued, got %d", cap(hub.publish), queued)
	}
	if hub.Publish("", "new_message", nil) {
		t.Fatalf("empty room must not be queued")
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := NewHub(quiet)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := &Client{hub: hub, room: "user_slow", send: make(chan []byte), logger: quiet}
	hub.Register(slow)
	waitFor(t, func() bool { return hub.RoomSize("user_slow") == 1 })

	hub.Publish("user_slow", "new_message", "x")
	waitFor(t, func() bool { return hub.RoomSize("user_slow") == 0 })

	if _, ok := <-slow.send; ok {
		t.Fatalf("expected send channel to be closed")
	}
}

func TestHub_UnregisterQueuedAfterRegisterWins(t *testing.T) {
	hub := NewHub(quiet)

	// Queue every join and leave before Run starts so both are pending at once.
	clients := make([]*Client, 50)
	for i := range clients {
		clients[i] = &Client{hub: hub, room: "user_gone", send: make(chan []byte, 1), logger: quiet}
		hub.Register(clients[i])
		hub.Unregister(clients[i])
	}
	marker := &Client{hub: hub, room: "user_marker", send: make(chan []byte, 1), logger: quiet}
	hub.Register(marker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	waitFor(t, func() bool { return hub.RoomSize("user_marker") == 1 })
	if n := hub.RoomSize("user_gone"); n != 0 {
		t.Fatalf("expected unregistered clients to be gone, %d left", n)
	}
	for i, c := range clients {
		if _, ok := <-c.send; ok {
			t.Fatalf("client %d: expected send channel to be closed", i)
		}
	}
}

type fakeResolver struct {
	users map[string]user.User
}

func (f fakeResolver) Resolve(_ context.Context, token string) (user.User, error) {
	u, ok := f.users[token]
	if !ok {
		return user.User{}, errors.New("unauthenticated")
	}
	return u, nil
}

func TestHandler_AuthenticatesAndJoinsOwnRoom(t *testing.T) {
	hub := NewHub(quiet)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	tickets := jwt.NewHMACService("secret", time.Minute)
	resolver := fakeResolver{users: map[string]user.User{"tok-a": {ID: "user_a"}}}
	srv := httptest.NewServer(NewHandler(hub, resolver, tickets, []string{"*"}, quiet))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	if _, resp, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Fatalf("expected anonymous dial to fail")
	} else if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", resp)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer tok-a")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	ticket, _, err := tickets.GenerateRealtimeTicket("user_b")
	if err != nil {
		t.Fatalf("ticket: %v", err)
	}
	connB, _, err := websocket.DefaultDialer.Dial(wsURL+"?ticket="+ticket, nil)
	if err != nil {
		t.Fatalf("dial with ticket: %v", err)
	}
	defer connB.Close()

	waitFor(t, func() bool { return hub.RoomSize("user_a") == 1 && hub.RoomSize("user_b") == 1 })

	// Joining someone else's room is ignored.
	if err := conn.WriteJSON(map[string]string{"event": "join", "user_id": "user_b"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if hub.RoomSize("user_b") != 1 {
		t.Fatalf("foreign join must not add a client to user_b")
	}

	hub.Publish("user_a", "new_message", map[string]string{"message_id": "msg_1"})
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Event != "new_message" {
		t.Fatalf("unexpected event %+v", ev)
	}
}
