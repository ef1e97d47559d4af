package chat

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// client is one connected community chat participant. Everything written
// to the socket goes through send; writePump is the only goroutine that
// touches the connection's write side.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

type CommunityMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Time   string `json:"time"`
}

// Hub is the single community chat room shared by all mothers and
// doulas. It keeps a bounded in-memory history replayed to newcomers;
// persistence is not a goal for the community room.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*client
	history    []CommunityMessage
	maxHistory int
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*client),
		maxHistory: 100,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.id] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[c.id]; ok && existing == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// History returns a copy of the retained messages, oldest first.
func (h *Hub) History() []CommunityMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]CommunityMessage, len(h.history))
	copy(out, h.history)
	return out
}

// Broadcast appends the message to history and queues it on every
// client's send channel. Clients too slow to drain their channel miss
// the message rather than block the room.
func (h *Hub) Broadcast(msg CommunityMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.history = append(h.history, msg)
	if len(h.history) > h.maxHistory {
		h.history = h.history[len(h.history)-h.maxHistory:]
	}

	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client too slow to drain its channel, drop the frame.
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Close disconnects every client. Each writePump sends the close frame
// and shuts its own connection down when the send channel closes.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}
