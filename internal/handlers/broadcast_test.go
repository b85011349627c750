package handlers_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/zappy-game/server/internal/handlers"
	"github.com/zappy-game/server/internal/world"
)

// TestBroadcastDirections reproduces the four-player broadcast scenario:
// A at (0,0) facing N broadcasts "hi"; B, C and D each compute the
// direction code relative to their own facing (N, assumed) (§8 scenario 4).
func TestBroadcastDirections(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 4, rand.New(rand.NewSource(1)))

	a := w.JoinTeam("t1", time.Now())
	a.SetPosition(world.Position{X: 0, Y: 0})
	a.SetFacing(world.North)

	b := w.JoinTeam("t1", time.Now())
	b.SetPosition(world.Position{X: 0, Y: 1})
	b.SetFacing(world.North)

	c := w.JoinTeam("t1", time.Now())
	c.SetPosition(world.Position{X: 1, Y: 0})
	c.SetFacing(world.North)

	d := w.JoinTeam("t1", time.Now())
	d.SetPosition(world.Position{X: 0, Y: 0})
	d.SetFacing(world.North)

	received := make(map[int]string)
	ctx := newTestContext(w, a, "hi")
	ctx.Tell = func(playerID int, line string) {
		received[playerID] = line
	}

	h := handlers.BroadcastHandler{}
	result := h.Process(ctx)
	if !result.Success {
		t.Fatalf("expected Broadcast to succeed, got %+v", result)
	}

	tests := []struct {
		name string
		id   int
		want string
	}{
		{"front", b.ID, "message 1, hi\n"},
		{"right", c.ID, "message 3, hi\n"},
		{"same tile", d.ID, "message 0, hi\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := received[tc.id]
			if !ok {
				t.Fatalf("expected player %d to receive a message", tc.id)
			}
			if got != tc.want {
				t.Errorf("player %d got %q, want %q", tc.id, got, tc.want)
			}
		})
	}
}

func TestBroadcastDoesNotMessageSender(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 1, rand.New(rand.NewSource(2)))
	a := w.JoinTeam("t1", time.Now())

	called := false
	ctx := newTestContext(w, a, "hi")
	ctx.Tell = func(playerID int, line string) {
		if playerID == a.ID {
			called = true
		}
	}

	handlers.BroadcastHandler{}.Process(ctx)
	if called {
		t.Error("sender should not receive its own broadcast")
	}
}

func TestBroadcastEmitsGUIEvent(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 1, rand.New(rand.NewSource(3)))
	a := w.JoinTeam("t1", time.Now())

	var emitted string
	ctx := newTestContext(w, a, "hi")
	ctx.Emit = func(line string) { emitted = line }

	handlers.BroadcastHandler{}.Process(ctx)
	want := fmt.Sprintf("pbc #%d hi\n", a.ID)
	if emitted != want {
		t.Errorf("emitted %q, want %q", emitted, want)
	}
}
