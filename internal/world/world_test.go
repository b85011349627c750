package world_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/zappy-game/server/internal/world"
)

func TestGridWrap(t *testing.T) {
	tests := []struct {
		name string
		in   world.Position
		want world.Position
	}{
		{"already in range", world.Position{X: 2, Y: 3}, world.Position{X: 2, Y: 3}},
		{"negative x wraps", world.Position{X: -1, Y: 0}, world.Position{X: 9, Y: 0}},
		{"negative y wraps", world.Position{X: 0, Y: -1}, world.Position{X: 0, Y: 9}},
		{"past right edge wraps", world.Position{X: 10, Y: 0}, world.Position{X: 0, Y: 0}},
		{"past top edge wraps", world.Position{X: 0, Y: 10}, world.Position{X: 0, Y: 0}},
	}

	g := world.NewGrid(10, 10)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Wrap(tc.in); got != tc.want {
				t.Errorf("Wrap(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestGridStepWrapsAtEdges(t *testing.T) {
	g := world.NewGrid(5, 5)
	tests := []struct {
		name string
		pos  world.Position
		dir  world.Direction
		want world.Position
	}{
		{"north from top edge", world.Position{X: 2, Y: 4}, world.North, world.Position{X: 2, Y: 0}},
		{"south from bottom edge", world.Position{X: 2, Y: 0}, world.South, world.Position{X: 2, Y: 4}},
		{"east from right edge", world.Position{X: 4, Y: 2}, world.East, world.Position{X: 0, Y: 2}},
		{"west from left edge", world.Position{X: 0, Y: 2}, world.West, world.Position{X: 4, Y: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Step(tc.pos, tc.dir); got != tc.want {
				t.Errorf("Step(%v, %v) = %v, want %v", tc.pos, tc.dir, got, tc.want)
			}
		})
	}
}

func TestMovePlayerWrapsToroidally(t *testing.T) {
	w := world.New(4, 4, []string{"red"}, 2, rand.New(rand.NewSource(1)))
	p := w.JoinTeam("red", time.Now())
	if p == nil {
		t.Fatal("expected a claimed player")
	}
	p.SetPosition(world.Position{X: 0, Y: 0})
	p.SetFacing(world.West)

	got := w.MovePlayer(p, world.West)
	want := world.Position{X: 3, Y: 0}
	if got != want {
		t.Errorf("MovePlayer wrapped to %v, want %v", got, want)
	}
	if p.GetPosition() != want {
		t.Errorf("player position not committed: got %v, want %v", p.GetPosition(), want)
	}
}

func TestJoinTeamPrefersEggOverUnused(t *testing.T) {
	w := world.New(10, 10, []string{"blue"}, 1, rand.New(rand.NewSource(2)))

	egg := w.SpawnEgg("blue", world.Position{X: 3, Y: 3}, world.North, 0)

	claimed := w.JoinTeam("blue", time.Now())
	if claimed != egg {
		t.Fatalf("expected join to claim the egg slot, got a different player (id %d vs egg id %d)", claimed.ID, egg.ID)
	}
	if claimed.GetState() != world.Alive {
		t.Errorf("claimed slot should be ALIVE, got %v", claimed.GetState())
	}
	if claimed.GetPosition() != (world.Position{X: 3, Y: 3}) {
		t.Errorf("claimed egg should keep its hatch position, got %v", claimed.GetPosition())
	}
	if claimed.InventoryCount(world.Food) != world.HatchFood {
		t.Errorf("claimed player should start with %d food, got %d", world.HatchFood, claimed.InventoryCount(world.Food))
	}
}

func TestJoinTeamNoFreeSlotReturnsNil(t *testing.T) {
	w := world.New(10, 10, []string{"green"}, 1, rand.New(rand.NewSource(3)))
	first := w.JoinTeam("green", time.Now())
	if first == nil {
		t.Fatal("expected the first join to succeed")
	}
	second := w.JoinTeam("green", time.Now())
	if second != nil {
		t.Errorf("expected no free slot on second join, got player id %d", second.ID)
	}
}

func TestJoinTeamUnknownTeamReturnsNil(t *testing.T) {
	w := world.New(5, 5, []string{"red"}, 1, rand.New(rand.NewSource(4)))
	if p := w.JoinTeam("nonexistent", time.Now()); p != nil {
		t.Errorf("expected nil for unknown team, got player id %d", p.ID)
	}
}

func TestReapDeadRemovesSlotEntirely(t *testing.T) {
	w := world.New(5, 5, []string{"red"}, 1, rand.New(rand.NewSource(5)))
	p := w.JoinTeam("red", time.Now())
	w.KillPlayer(p)

	reaped := w.ReapDead()
	if len(reaped) != 1 || reaped[0].ID != p.ID {
		t.Fatalf("expected to reap player %d, got %+v", p.ID, reaped)
	}

	if w.Player(p.ID) != nil {
		t.Error("reaped player should no longer be findable by id")
	}
	team := w.Team("red")
	for _, tp := range team.Players {
		if tp.ID == p.ID {
			t.Error("reaped player's slot should no longer be in the team roster")
		}
	}
}

func TestSpawnEggGrowsTeamRoster(t *testing.T) {
	w := world.New(5, 5, []string{"red"}, 1, rand.New(rand.NewSource(6)))
	before := len(w.Team("red").Players)

	egg := w.SpawnEgg("red", world.Position{X: 1, Y: 1}, world.East, 0)
	if egg.GetState() != world.Egg {
		t.Errorf("new slot should be EGG, got %v", egg.GetState())
	}
	after := len(w.Team("red").Players)
	if after != before+1 {
		t.Errorf("expected roster to grow by 1, went from %d to %d", before, after)
	}
}

func TestPlayersAtOnlyReturnsAlivePlayersOnTile(t *testing.T) {
	w := world.New(10, 10, []string{"red"}, 3, rand.New(rand.NewSource(7)))
	pos := world.Position{X: 4, Y: 4}

	a := w.JoinTeam("red", time.Now())
	a.SetPosition(pos)
	b := w.JoinTeam("red", time.Now())
	b.SetPosition(pos)

	egg := w.SpawnEgg("red", pos, world.North, 0)
	_ = egg

	here := w.PlayersAt(pos)
	if len(here) != 2 {
		t.Fatalf("expected 2 alive players at %v, got %d", pos, len(here))
	}
}
