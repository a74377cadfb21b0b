package realtime

import (
	"context"
	"sync"

	"auction-hub/internal/metrics"
	"auction-hub/utils"
)

const defaultBufferSize = 32

// Client is one live connection. Frames for it are read from Send.
type Client struct {
	id     string
	userID int64
	send   chan []byte
}

// ID returns the connection id used in logs.
func (c *Client) ID() string { return c.id }

// UserID returns the user the connection was opened for, 0 when anonymous.
func (c *Client) UserID() int64 { return c.userID }

// Send is closed when the client is unregistered.
func (c *Client) Send() <-chan []byte { return c.send }

// Hub maps rooms to the clients subscribed to them. Delivery is best-effort:
// a client whose buffer is full misses the frame.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	clients map[*Client]map[string]struct{}
	bufSize int
}

// NewHub creates a hub whose clients buffer up to bufSize frames.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}
	return &Hub{
		rooms:   make(map[string]map[*Client]struct{}),
		clients: make(map[*Client]map[string]struct{}),
		bufSize: bufSize,
	}
}

// NewClient registers a connection. Authenticated connections join their user room.
func (h *Hub) NewClient(userID int64) *Client {
	c := &Client{
		id:     utils.GenerateID(),
		userID: userID,
		send:   make(chan []byte, h.bufSize),
	}

	h.mu.Lock()
	h.clients[c] = make(map[string]struct{})
	h.mu.Unlock()
	metrics.LiveConnections.Inc()

	if userID > 0 {
		h.Join(c, UserRoom(userID))
	}
	return c
}

// Join subscribes c to room. Joining twice is a no-op.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	joined, ok := h.clients[c]
	if !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	joined[room] = struct{}{}
}

// Leave unsubscribes c from room.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	if joined, ok := h.clients[c]; ok {
		delete(joined, room)
	}
}

// Unregister removes c from every room and closes its Send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	joined, ok := h.clients[c]
	if !ok {
		return
	}
	for room := range joined {
		h.leaveLocked(c, room)
	}
	delete(h.clients, c)
	close(c.send)
	metrics.LiveConnections.Dec()
}

// Emit encodes ev and delivers it to the local members of room.
func (h *Hub) Emit(_ context.Context, room string, ev Event) error {
	frame, err := ev.Encode()
	if err != nil {
		return err
	}
	metrics.BroadcastEventsTotal.WithLabelValues(ev.Name).Inc()
	h.Publish(room, frame)
	return nil
}

// Publish delivers an encoded frame to every member of room without blocking
// and returns how many clients received it.
func (h *Hub) Publish(room string, frame []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.rooms[room] {
		select {
		case c.send <- frame:
			delivered++
		default:
			metrics.DroppedEventsTotal.Inc()
			utils.Debug("live frame dropped, client buffer full", map[string]any{"client": c.id, "room": room})
		}
	}
	return delivered
}

// RoomSize returns the number of clients in room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
