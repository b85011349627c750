package handlers_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/handlers"
	"github.com/zappy-game/server/internal/world"
)

func newTestContext(w *world.World, p *world.Player, arg string) *catalog.Context {
	return &catalog.Context{
		World:    w,
		Player:   p,
		Argument: arg,
		Now:      time.Now(),
		Emit:     func(string) {},
		Tell:     func(int, string) {},
	}
}

func TestForwardWrapsAtEdge(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 1, rand.New(rand.NewSource(1)))
	p := w.JoinTeam("t1", time.Now())
	p.SetPosition(world.Position{X: 0, Y: 0})
	p.SetFacing(world.West)

	h := handlers.ForwardHandler{}
	result := h.Process(newTestContext(w, p, ""))

	if !result.Success || result.Reply != "ok\n" {
		t.Fatalf("unexpected result: %+v", result)
	}
	want := world.Position{X: 9, Y: 0}
	if got := p.GetPosition(); got != want {
		t.Errorf("expected wrap to %v, got %v", want, got)
	}
}
