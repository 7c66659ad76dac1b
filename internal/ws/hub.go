package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"job-portal/internal/pkg/metrics"
)

// Event is the frame pushed to clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type outbound struct {
	room    string
	payload []byte
}

// membership is a join or leave request. Both travel on one channel so a
// leave queued after its join is always applied after it.
type membership struct {
	client *Client
	join   bool
}

// Hub fans events out to per-user rooms. Run owns the room map; Publish never
// blocks the caller.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	publish    chan outbound
	membership chan membership
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		publish:    make(chan outbound, 1024),
		membership: make(chan membership, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case m := <-h.membership:
			if m.client == nil {
				continue
			}
			if m.join {
				h.add(m.client)
			} else {
				h.mutex.Lock()
				h.removeLocked(m.client)
				h.mutex.Unlock()
				h.logger.Printf("WS disconnected | room=%s", m.client.room)
			}

		case msg := <-h.publish:
			h.dispatch(msg)
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mutex.Lock()
	room, ok := h.rooms[client.room]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[client.room] = room
	}
	room[client] = struct{}{}
	size := len(room)
	h.mutex.Unlock()
	h.logger.Printf("WS connected | room=%s room_clients=%d", client.room, size)
}

func (h *Hub) dispatch(msg outbound) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.rooms[msg.room] {
		select {
		case client.send <- msg.payload:
		default:
			metrics.IncrementRealtimeDropped()
			h.logger.Printf("WS slow client dropped | room=%s", msg.room)
			h.removeLocked(client)
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	room, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.room)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, room := range h.rooms {
		for client := range room {
			h.removeLocked(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.membership <- membership{client: client, join: true}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.membership <- membership{client: client}
}

// Publish queues event for every client in room. It reports false when the
// event was dropped because the queue is full or the payload cannot be encoded.
func (h *Hub) Publish(room, event string, data any) bool {
	if h == nil || room == "" {
		return false
	}

	b, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		h.logger.Printf("WS publish encode error | room=%s event=%s err=%v", room, event, err)
		return false
	}

	select {
	case h.publish <- outbound{room: room, payload: b}:
		return true
	default:
		metrics.IncrementRealtimeDropped()
		h.logger.Printf("WS publish dropped | room=%s event=%s reason=buffer_full", room, event)
		return false
	}
}

func (h *Hub) RoomSize(room string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[room])
}
