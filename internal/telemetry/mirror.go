package telemetry

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/zappy-game/server/internal/db"
)

const publishTimeout = 200 * time.Millisecond

// Mirror publishes GUI protocol lines to a Redis channel so an external
// spectator can follow a game without holding its own socket into the
// server. Wire Publish to engine.Engine.Mirror.
type Mirror struct {
	redis   *db.Redis
	channel string
}

// NewMirror builds a mirror for the game listening on port. Every line
// published goes to "zappy:events:<port>".
func NewMirror(r *db.Redis, port int) *Mirror {
	return &Mirror{redis: r, channel: fmt.Sprintf("zappy:events:%d", port)}
}

// Publish sends line to the mirror's channel, best-effort and
// non-blocking: a slow or unreachable Redis must never stall the engine's
// single-threaded tick loop, so the actual PUBLISH runs on its own
// goroutine with a short timeout, and any error is only logged.
func (m *Mirror) Publish(line string) {
	if m == nil || !m.redis.IsConnected() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := m.redis.Client().Publish(ctx, m.channel, line).Err(); err != nil {
			log.Printf("telemetry: publish to %s: %v", m.channel, err)
		}
	}()
}
