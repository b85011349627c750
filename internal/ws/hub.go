// Package ws fans a single game's state snapshots out to any number of
// read-only spectators over WebSocket, the same register/unregister/
// broadcast channel shape the teacher's multi-room hub uses (hub.go),
// narrowed to one room since a Zappy server drives exactly one game per
// process (§ DOMAIN STACK).
package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one spectator's outbound message queue.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub owns the spectator registry and serializes every broadcast through
// its own goroutine (Run), so registration and fan-out never race.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub builds an empty hub. Call Run on its own goroutine before use.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		case data := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				clients = append(clients, c)
			}
			h.mu.RUnlock()
			for _, c := range clients {
				select {
				case c.send <- data:
				default:
					log.Printf("ws: client send buffer full, dropping")
				}
			}
		}
	}
}

// BroadcastState marshals v as JSON and sends it to every connected
// spectator. Wire this to engine.Engine.OnTick.
func (h *Hub) BroadcastState(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ws: marshal state: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("ws: broadcast queue full, dropping tick")
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
