package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lehigh-university-libraries/clicklabel/internal/models"
)

const (
	eventPage   = "page"
	eventClosed = "closed"

	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// Event is pushed to every open viewer when the session changes
type Event struct {
	Type string           `json:"type"`
	Page *models.PageView `json:"page,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps every browser tab on the same page. Slow viewers whose buffer
// fills up are dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast sends evt to all viewers
func (hub *Hub) Broadcast(evt Event) {
	msg, ok := encodeEvent(evt)
	if !ok {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	for c := range hub.clients {
		hub.deliver(c, msg)
	}
}

func (hub *Hub) sendTo(c *client, evt Event) {
	msg, ok := encodeEvent(evt)
	if !ok {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	if _, ok := hub.clients[c]; ok {
		hub.deliver(c, msg)
	}
}

// deliver queues msg for c. Caller holds mu.
func (hub *Hub) deliver(c *client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		slog.Warn("Dropping slow viewer", "remote", c.conn.RemoteAddr().String())
		hub.remove(c)
	}
}

func encodeEvent(evt Event) ([]byte, bool) {
	msg, err := json.Marshal(evt)
	if err != nil {
		slog.Error("Unable to encode event", "type", evt.Type, "err", err)
		return nil, false
	}
	return msg, true
}

// Close disconnects every viewer and refuses new ones
func (hub *Hub) Close() {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.closed = true
	for c := range hub.clients {
		hub.remove(c)
	}
}

// Len reports the number of connected viewers
func (hub *Hub) Len() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

func (hub *Hub) add(c *client) bool {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if hub.closed {
		return false
	}
	hub.clients[c] = struct{}{}
	return true
}

// remove unregisters c and stops its writer. Caller holds mu.
func (hub *Hub) remove(c *client) {
	if _, ok := hub.clients[c]; !ok {
		return
	}
	delete(hub.clients, c)
	close(c.send)
}

func (hub *Hub) unregister(c *client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.remove(c)
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			slog.Debug("Viewer write failed", "err", err)
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// HandleEvents upgrades to a websocket that receives the current page and
// every later change
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.events.add(c) {
		conn.Close()
		return
	}
	go c.writeLoop()

	view := h.session.View()
	h.events.sendTo(c, Event{Type: eventPage, Page: &view})

	// viewers only listen; reading detects the disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.events.unregister(c)
			return
		}
	}
}

// publish pushes the current page to all viewers. Snapshots are taken and
// queued under publishMu so viewers receive them in version order.
func (h *Handler) publish() {
	h.publishMu.Lock()
	defer h.publishMu.Unlock()

	view := h.session.View()
	h.events.Broadcast(Event{Type: eventPage, Page: &view})
}
