// Package telemetry persists finished games to Postgres and mirrors live
// GUI protocol lines onto Redis. Both sinks are optional: a Recorder or
// Mirror built over an unconfigured db.Postgres/db.Redis is a no-op, so the
// engine can always call these hooks without checking anything itself.
package telemetry

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/zappy-game/server/internal/db"
	"github.com/zappy-game/server/internal/engine"
)

const recordQueueSize = 32

// Recorder drains finished-game summaries from a buffered channel and
// inserts them into Postgres on a background goroutine, the same
// register/unregister-via-channel shape the teacher's ws.Hub uses to keep
// its own state single-threaded (internal/ws/hub.go).
type Recorder struct {
	pg  *db.Postgres
	ch  chan engine.GameSummary
	done chan struct{}
}

// NewRecorder starts the background drain goroutine. Pass a Postgres
// wrapper built from an empty connection string to disable persistence
// entirely; Record then just drops summaries on the floor.
func NewRecorder(pg *db.Postgres) *Recorder {
	r := &Recorder{
		pg:   pg,
		ch:   make(chan engine.GameSummary, recordQueueSize),
		done: make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues a finished game's summary. Wire this to
// engine.Engine.OnGameOver. Never blocks the engine loop: if the queue is
// full the summary is dropped and logged, matching the protocol's own
// drop-when-full posture for command queues (§4.5).
func (r *Recorder) Record(summary engine.GameSummary) {
	if r == nil || !r.pg.IsConnected() {
		return
	}
	select {
	case r.ch <- summary:
	default:
		log.Printf("telemetry: recorder queue full, dropping summary for winner %q", summary.Winner)
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for summary := range r.ch {
		r.insert(summary)
	}
}

func (r *Recorder) insert(summary engine.GameSummary) {
	teams, err := json.Marshal(summary.Teams)
	if err != nil {
		log.Printf("telemetry: marshal teams: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = r.pg.Pool().Exec(ctx, `
		INSERT INTO match_history (winner, teams, duration_seconds, recorded_at)
		VALUES ($1, $2, $3, $4)
	`, summary.Winner, teams, summary.Duration.Seconds(), time.Now())
	if err != nil {
		log.Printf("telemetry: insert match history: %v", err)
	}
}

// Close stops accepting new summaries and waits for the drain goroutine to
// finish writing whatever is already queued.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	close(r.ch)
	<-r.done
}
