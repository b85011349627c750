package handlers_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/zappy-game/server/internal/handlers"
	"github.com/zappy-game/server/internal/world"
)

func TestForkGrowsTeamFreeSlotCount(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 1, rand.New(rand.NewSource(1)))
	g := w.JoinTeam("t1", time.Now())
	before := w.Team("t1").FreeSlotCount()

	h := handlers.ForkHandler{Rng: rand.New(rand.NewSource(2))}
	result := h.Process(newTestContext(w, g, ""))
	if !result.Success {
		t.Fatalf("expected Fork to succeed, got %+v", result)
	}

	after := w.Team("t1").FreeSlotCount()
	if after != before+1 {
		t.Errorf("expected free slot count to rise by 1, went from %d to %d", before, after)
	}
}

func TestForkEggAppearsAtForkerPosition(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 1, rand.New(rand.NewSource(3)))
	g := w.JoinTeam("t1", time.Now())
	g.SetPosition(world.Position{X: 4, Y: 4})

	h := handlers.ForkHandler{Rng: rand.New(rand.NewSource(4))}
	h.Process(newTestContext(w, g, ""))

	var egg *world.Player
	for _, p := range w.Team("t1").Players {
		if p.GetState() == world.Egg {
			egg = p
		}
	}
	if egg == nil {
		t.Fatal("expected a new egg slot")
	}
	if got := egg.GetPosition(); got != (world.Position{X: 4, Y: 4}) {
		t.Errorf("expected egg at forker's tile, got %v", got)
	}
}
