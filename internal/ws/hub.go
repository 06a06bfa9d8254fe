package ws

import (
	"encoding/json"
	"log"
	"sync"

	"lanshare/internal/models"
)

// Conn is the subset of a WebSocket connection the hub needs
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// textMessage matches websocket.TextMessage without importing the package
const textMessage = 1

// client couples an open connection with the device it most recently
// identified itself as, if any
type client struct {
	conn   Conn
	device *models.Device
	mu     sync.Mutex // serializes writes to conn
}

// Hub tracks open WebSocket connections and fans events out to all of them.
// It is owned by the server process: created at startup, passed explicitly
// to whoever needs to broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[Conn]*client
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[Conn]*client)}
}

// Register adds a connection to the hub in the unidentified state
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = &client{conn: conn}
}

// Unregister removes a connection and returns the device it was associated
// with, or nil if it never identified itself
func (h *Hub) Unregister(conn Conn) *models.Device {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[conn]
	if !ok {
		return nil
	}
	delete(h.clients, conn)
	return c.device
}

// Identify associates a connection with a device, replacing any earlier
// association. The prior device is returned so the caller can run its
// disconnect sequence.
func (h *Hub) Identify(conn Conn, device *models.Device) *models.Device {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[conn]
	if !ok {
		return nil
	}
	prior := c.device
	c.device = device
	return prior
}

// Device returns the device a connection is currently associated with
func (h *Hub) Device(conn Conn) *models.Device {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[conn]; ok {
		return c.device
	}
	return nil
}

// ClientCount returns the number of open connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers an event to every open connection. Delivery is
// best-effort: a connection that fails to take the write is logged and
// skipped, never retried.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if err := c.write(data); err != nil {
			log.Printf("Failed to send %s event to client: %v", event.Type, err)
		}
	}
}

// Send delivers an event to a single connection
func (h *Hub) Send(conn Conn, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	c, ok := h.clients[conn]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if err := c.write(data); err != nil {
		log.Printf("Failed to send %s event to client: %v", event.Type, err)
	}
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(textMessage, data)
}
