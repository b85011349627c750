package handlers_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/zappy-game/server/internal/handlers"
	"github.com/zappy-game/server/internal/world"
)

// TestEjectMovesPlayerAndDestroysEgg reproduces the eject-with-egg scenario
// (§8 scenario 5): tile (5,5) has E (facing E), F and an egg; E ejects.
func TestEjectMovesPlayerAndDestroysEgg(t *testing.T) {
	w := world.New(10, 10, []string{"t1", "t2"}, 2, rand.New(rand.NewSource(1)))
	pos := world.Position{X: 5, Y: 5}

	e := w.JoinTeam("t1", time.Now())
	e.SetPosition(pos)
	e.SetFacing(world.East)

	f := w.JoinTeam("t1", time.Now())
	f.SetPosition(pos)

	egg := w.SpawnEgg("t2", pos, world.North, 0)

	h := handlers.EjectHandler{}
	result := h.Process(newTestContext(w, e, ""))
	if !result.Success {
		t.Fatalf("expected Eject to succeed, got %+v", result)
	}

	want := world.Position{X: 6, Y: 5}
	if got := f.GetPosition(); got != want {
		t.Errorf("expected F pushed to %v, got %v", want, got)
	}
	if got := e.GetPosition(); got != pos {
		t.Errorf("ejecting player should not move itself, got %v", got)
	}
	if w.Player(egg.ID) != nil {
		t.Error("expected the egg's slot to be destroyed")
	}
}

func TestEjectFailsWhenTileEmpty(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 1, rand.New(rand.NewSource(2)))
	e := w.JoinTeam("t1", time.Now())

	h := handlers.EjectHandler{}
	result := h.Process(newTestContext(w, e, ""))
	if result.Success {
		t.Error("expected Eject to fail with no one else on the tile")
	}
}
