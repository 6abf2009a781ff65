// Package mirror streams engine snapshots to read-only spectators over
// HTTP and WebSocket. Spectators cannot send commands back.
package mirror

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 256
)

const EventSnapshot = "snapshot"

var logger = logging.New("mirror")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one frame of the spectator stream.
type Message struct {
	SessionID string           `json:"session_id"`
	Seq       uint64           `json:"seq"`
	Event     string           `json:"event"`
	Snapshot  *engine.Snapshot `json:"snapshot,omitempty"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans published snapshots out to every connected spectator. Publish
// never blocks the game loop: only the newest unsent snapshot is kept.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	notify     chan struct{}
	done       chan struct{}

	mu      sync.Mutex
	session uuid.UUID
	seq     uint64
	latest  []byte
	pending bool
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		notify:     make(chan struct{}, 1),
		done:       make(chan struct{}),
		session:    uuid.New(),
	}
}

// Session is the id of the current game session.
func (h *Hub) Session() uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

// NewSession tags subsequent snapshots with a fresh session id.
func (h *Hub) NewSession() uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = uuid.New()
	return h.session
}

// Publish queues s for broadcast and makes it the /snapshot response.
func (h *Hub) Publish(s engine.Snapshot) {
	h.mu.Lock()
	h.seq++
	data, err := json.Marshal(Message{
		SessionID: h.session.String(),
		Seq:       h.seq,
		Event:     EventSnapshot,
		Snapshot:  &s,
	})
	if err != nil {
		h.mu.Unlock()
		logger.Printf("encoding snapshot: %v", err)
		return
	}
	h.latest = data
	h.pending = true
	h.mu.Unlock()

	select {
	case h.notify <- struct{}{}:
	default:
	}
}

// Latest returns the newest encoded message, or nil before the first
// Publish.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			h.unregisterClient(c)
		}
		close(h.done)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.attach(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case <-h.notify:
			h.flush()
		}
	}
}

// attach adds c and sends it the newest message. A publish still waiting
// on notify is broadcast now, so the later notify finds nothing pending
// and c never sees the same seq twice.
func (h *Hub) attach(c *client) {
	h.clients[c] = true
	logger.Printf("spectator connected (total: %d)", len(h.clients))

	h.mu.Lock()
	data, pending := h.latest, h.pending
	h.pending = false
	h.mu.Unlock()
	switch {
	case pending:
		h.broadcast(data)
	case data != nil:
		h.deliver(c, data)
	}
}

// flush broadcasts the newest message if it has not been sent yet.
func (h *Hub) flush() {
	h.mu.Lock()
	data, pending := h.latest, h.pending
	h.pending = false
	h.mu.Unlock()
	if pending {
		h.broadcast(data)
	}
}

func (h *Hub) broadcast(data []byte) {
	for c := range h.clients {
		h.deliver(c, data)
	}
}

// clientCount is only safe to call from the Run goroutine or after Run
// returned.
func (h *Hub) clientCount() int {
	return len(h.clients)
}

func (h *Hub) deliver(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.unregisterClient(c)
	}
}

func (h *Hub) unregisterClient(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	logger.Printf("spectator disconnected (remaining: %d)", len(h.clients))
}

// ServeWS upgrades the request and attaches the connection as a spectator.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Printf("websocket upgrade failed: %v", err)
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards spectator input and detects disconnects.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Printf("websocket error: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
