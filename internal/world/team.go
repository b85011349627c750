package world

import "math/rand"

// Team is a named roster of player slots (§3). Slots are UNUSED,
// EGG or ALIVE entries; DEAD slots are removed by the reaper (§4.6 step 6)
// rather than kept around.
type Team struct {
	Name    string
	Players []*Player // ordered by id ascending
}

// FreeSlots returns every slot available to a new connection: UNUSED or
// EGG entries (§3, §4.9).
func (t *Team) FreeSlots() []*Player {
	var free []*Player
	for _, p := range t.Players {
		switch p.GetState() {
		case Unused, Egg:
			free = append(free, p)
		}
	}
	return free
}

// FreeSlotCount is the size of FreeSlots(), used by Connect_nbr (§4.7) and
// the connection-lifecycle join check (§4.9).
func (t *Team) FreeSlotCount() int {
	return len(t.FreeSlots())
}

// PickJoinSlot selects the slot a new connection should bind to: an EGG
// chosen uniformly at random among all of the team's eggs, wherever they
// lie, if one exists, else the first UNUSED slot (§4.9). Returns nil if the
// team has no free slot.
func (t *Team) PickJoinSlot(rng *rand.Rand) *Player {
	var eggsAnywhere []*Player
	var firstUnused *Player
	for _, p := range t.Players {
		switch p.GetState() {
		case Egg:
			eggsAnywhere = append(eggsAnywhere, p)
		case Unused:
			if firstUnused == nil {
				firstUnused = p
			}
		}
	}
	if len(eggsAnywhere) > 0 {
		return eggsAnywhere[rng.Intn(len(eggsAnywhere))]
	}
	return firstUnused
}

// AppendEgg grows the team's roster by one EGG slot at pos, the effect of
// a successful Fork (§4.7): the team's slot budget increases by one.
func (t *Team) AppendEgg(id int, pos Position, facing Direction, parentID int) *Player {
	p := NewUnusedPlayer(id, t.Name)
	p.HatchAsEgg(pos, facing, parentID)
	t.Players = append(t.Players, p)
	return p
}

// AppendUnused grows the roster with a fresh UNUSED slot, used to seed the
// team's initial `team_count` budget at world init.
func (t *Team) AppendUnused(id int) *Player {
	p := NewUnusedPlayer(id, t.Name)
	t.Players = append(t.Players, p)
	return p
}

// RemoveSlot drops a DEAD player's slot entirely (not reset to UNUSED —
// removed), reducing the team's effective cap by one (§3, §4.6 step 6).
func (t *Team) RemoveSlot(player *Player) {
	for i, p := range t.Players {
		if p == player {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			return
		}
	}
}

// AlivePlayers returns every ALIVE player currently in the roster.
func (t *Team) AlivePlayers() []*Player {
	var alive []*Player
	for _, p := range t.Players {
		if p.GetState() == Alive {
			alive = append(alive, p)
		}
	}
	return alive
}
