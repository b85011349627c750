// Package spawner seeds and replenishes tile resources on a *world.World,
// following the density table and periodic top-up cadence (§4.3).
package spawner

import (
	"math/rand"

	"github.com/zappy-game/server/internal/world"
)

// Density is each resource kind's target fraction of the map's tile count,
// used both for the initial population and for sizing periodic top-ups
// (§4.3).
var Density = map[world.Resource]float64{
	world.Food:      0.5,
	world.Linemate:  0.3,
	world.Deraumere: 0.15,
	world.Sibur:     0.1,
	world.Mendiane:  0.1,
	world.Phiras:    0.08,
	world.Thystame:  0.05,
}

// RegenIntervalTimeUnits is how often (in time-units, per §4.1) the spawner
// tops up the map with fresh resources.
const RegenIntervalTimeUnits = 20

// regenFraction is the share of a kind's initial quantity added on each
// top-up (§4.3).
const regenFraction = 0.1

// Spawner places and replenishes resources on a Grid.
type Spawner struct {
	grid *world.Grid
	rng  *rand.Rand

	initialQuantity map[world.Resource]int
	lastRegenAt     float64 // in time-units elapsed, to stay idempotent across a single scheduler turn
}

// New creates a Spawner bound to grid.
func New(grid *world.Grid, rng *rand.Rand) *Spawner {
	return &Spawner{
		grid:            grid,
		rng:             rng,
		initialQuantity: make(map[world.Resource]int),
	}
}

// quantityFor computes max(1, floor(width*height*density)) for a kind,
// the initial-population formula (§4.3).
func (s *Spawner) quantityFor(density float64) int {
	n := int(float64(s.grid.Width()*s.grid.Height()) * density)
	if n < 1 {
		n = 1
	}
	return n
}

// Populate scatters each resource kind's initial quantity across uniformly
// random tiles, called once at world startup (§4.3).
func (s *Spawner) Populate() {
	for _, r := range world.Resources {
		n := s.quantityFor(Density[r])
		s.initialQuantity[r] = n
		s.scatter(r, n)
	}
}

// scatter drops count units of kind r, one at a time, onto uniformly
// random tiles (a tile may receive more than one unit).
func (s *Spawner) scatter(r world.Resource, count int) {
	w, h := s.grid.Width(), s.grid.Height()
	for i := 0; i < count; i++ {
		pos := world.Position{X: s.rng.Intn(w), Y: s.rng.Intn(h)}
		s.grid.AddResource(pos, r, 1)
	}
}

// MaybeRegen adds a top-up batch of each resource kind once per
// RegenIntervalTimeUnits of elapsed time-units, scattered onto new random
// tiles. elapsedTimeUnits is the scheduler's running time-unit counter;
// passing the same or a smaller value than the last call is a no-op, and a
// long scheduler pause collapses into a single regen rather than one per
// missed interval (§4.3, §4.6).
func (s *Spawner) MaybeRegen(elapsedTimeUnits float64) {
	if elapsedTimeUnits-s.lastRegenAt < RegenIntervalTimeUnits {
		return
	}
	s.lastRegenAt = elapsedTimeUnits
	for _, r := range world.Resources {
		batch := int(float64(s.initialQuantity[r]) * regenFraction)
		if batch < 1 {
			batch = 1
		}
		s.scatter(r, batch)
	}
}
