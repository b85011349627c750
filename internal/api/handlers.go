// Package api exposes a read-only spectator dashboard over HTTP: a health
// check, a polling JSON snapshot endpoint, and a WebSocket tick stream
// (§ DOMAIN STACK). It never mutates the game — every handler only reads
// the latest engine.StateSnapshot handed to it by Engine.OnTick.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/zappy-game/server/internal/engine"
	"github.com/zappy-game/server/internal/ws"
)

// Server holds the dashboard's dependencies: the WebSocket hub doing the
// fan-out, and the most recent snapshot for new pollers/connections.
type Server struct {
	hub       *ws.Hub
	wsHandler *ws.Handler
	snapshot  atomic.Value // engine.StateSnapshot
	startedAt time.Time
}

// NewServer builds a dashboard Server around hub. Call hub.Run on its own
// goroutine before serving requests.
func NewServer(hub *ws.Hub) *Server {
	s := &Server{hub: hub, startedAt: time.Now()}
	s.wsHandler = ws.NewHandler(hub, s)
	return s
}

// OnTick is the hook wired to engine.Engine.OnTick: it stores the latest
// snapshot and fans it out to every connected spectator.
func (s *Server) OnTick(snap engine.StateSnapshot) {
	s.snapshot.Store(snap)
	s.hub.BroadcastState(snap)
}

// CurrentState implements ws.StateProvider, backfilling a spectator that
// connects between ticks.
func (s *Server) CurrentState() interface{} {
	v := s.snapshot.Load()
	if v == nil {
		return engine.StateSnapshot{}
	}
	return v
}

// Health reports process liveness and uptime.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"uptime_seconds":  time.Since(s.startedAt).Seconds(),
		"spectator_count": s.hub.ClientCount(),
	})
}

// State returns the latest snapshot as JSON, for clients that would rather
// poll than hold a WebSocket open.
func (s *Server) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.CurrentState())
}

// WebSocket upgrades the request into a live snapshot stream.
func (s *Server) WebSocket(w http.ResponseWriter, r *http.Request) {
	s.wsHandler.ServeWS(w, r)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}
