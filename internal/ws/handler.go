package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StateProvider supplies the current state snapshot to a spectator that
// just connected, before any tick broadcast reaches it.
type StateProvider interface {
	CurrentState() interface{}
}

// Handler upgrades /ws/state requests into read-only spectator clients.
type Handler struct {
	hub           *Hub
	stateProvider StateProvider
}

// NewHandler builds a Handler bound to hub, optionally backfilling new
// connections from stateProvider.
func NewHandler(hub *Hub, stateProvider StateProvider) *Handler {
	return &Handler{hub: hub, stateProvider: stateProvider}
}

// ServeWS upgrades the request and registers the resulting client with the
// hub. It never blocks waiting on game state — the caller's HTTP goroutine
// returns as soon as the two pump goroutines are started.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, 16), hub: h.hub}
	h.hub.register <- client

	if h.stateProvider != nil {
		if data, err := json.Marshal(h.stateProvider.CurrentState()); err == nil {
			client.send <- data
		}
	}

	go client.writePump()
	go client.readPump()
}

// readPump discards anything a spectator sends; its only purpose is to
// notice when the connection closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
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
				log.Printf("ws: read error: %v", err)
			}
			return
		}
	}
}

// writePump drains the client's queue to the socket, pinging when idle.
func (c *Client) writePump() {
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
