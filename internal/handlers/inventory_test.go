package handlers_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/zappy-game/server/internal/handlers"
	"github.com/zappy-game/server/internal/world"
)

func TestInventoryReportsHatchFood(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 1, rand.New(rand.NewSource(1)))
	p := w.JoinTeam("t1", time.Now())

	h := handlers.InventoryHandler{}
	result := h.Process(newTestContext(w, p, ""))

	want := "[food 10, linemate 0, deraumere 0, sibur 0, mendiane 0, phiras 0, thystame 0]\n"
	if result.Reply != want {
		t.Errorf("got %q, want %q", result.Reply, want)
	}
}
