package handlers

import (
	"fmt"
	"strings"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/world"
)

// levelRequirement is one row of the level-up ritual's requirement table
// (§4.7): how many same-level players must co-locate, and how much of
// each non-food resource the tile must hold.
type levelRequirement struct {
	players                                                int
	linemate, deraumere, sibur, mendiane, phiras, thystame int
}

// requirements maps a player's current level to the requirement for
// advancing to the next one. There is no entry for level 8 — it is the
// ceiling (§4.7).
var requirements = map[int]levelRequirement{
	1: {players: 1, linemate: 1},
	2: {players: 2, linemate: 1, deraumere: 1, sibur: 1},
	3: {players: 2, linemate: 2, sibur: 1, phiras: 2},
	4: {players: 4, linemate: 1, deraumere: 1, sibur: 2, phiras: 1},
	5: {players: 4, linemate: 1, deraumere: 2, sibur: 1, mendiane: 3},
	6: {players: 6, linemate: 1, deraumere: 2, sibur: 3, phiras: 1},
	7: {players: 6, linemate: 2, deraumere: 2, sibur: 2, mendiane: 2, phiras: 2, thystame: 1},
}

func (req levelRequirement) counts() map[world.Resource]int {
	return map[world.Resource]int{
		world.Linemate:  req.linemate,
		world.Deraumere: req.deraumere,
		world.Sibur:     req.sibur,
		world.Mendiane:  req.mendiane,
		world.Phiras:    req.phiras,
		world.Thystame:  req.thystame,
	}
}

// incantationState carries the verified participant set from Start through
// to Process, keyed by the initiating player's id. Valid across a single
// in-flight ritual; the initiator can only have one Incantation in flight
// at a time.
type incantationState struct {
	level        int
	participants []int
}

// IncantationHandler implements the level-up ritual (§4.7, §9). It is a
// catalog.Starter: eligibility is decided up front, not after the wait.
type IncantationHandler struct {
	pending map[int]*incantationState
}

// NewIncantationHandler creates a ready-to-register IncantationHandler.
func NewIncantationHandler() *IncantationHandler {
	return &IncantationHandler{pending: make(map[int]*incantationState)}
}

func (*IncantationHandler) Verb() catalog.Verb { return catalog.Incantation }

func (h *IncantationHandler) Start(ctx *catalog.Context) (bool, catalog.Result) {
	p := ctx.Player
	pos := p.GetPosition()
	level := p.GetLevel()

	req, eligible := requirements[level]
	if !eligible {
		ctx.Emit(fmt.Sprintf("pie %d %d 0\n", pos.X, pos.Y))
		return true, catalog.Ko()
	}

	sameLevel := sameLevelColocated(ctx.World, pos, level)
	tile := ctx.World.Grid.TileAt(pos)
	if len(sameLevel) < req.players || !tileHas(tile, req.counts()) {
		ctx.Emit(fmt.Sprintf("pie %d %d 0\n", pos.X, pos.Y))
		return true, catalog.Ko()
	}

	ids := make([]int, len(sameLevel))
	idTokens := make([]string, len(sameLevel))
	for i, pl := range sameLevel {
		ids[i] = pl.ID
		idTokens[i] = fmt.Sprintf("#%d", pl.ID)
		pl.Lock()
	}
	h.pending[p.ID] = &incantationState{level: level, participants: ids}

	ctx.Emit(fmt.Sprintf("pic %d %d %d %s\n", pos.X, pos.Y, level, strings.Join(idTokens, " ")))
	return false, catalog.Result{}
}

func (h *IncantationHandler) Process(ctx *catalog.Context) catalog.Result {
	p := ctx.Player
	state, ok := h.pending[p.ID]
	delete(h.pending, p.ID)
	if !ok {
		return catalog.Ko()
	}
	pos := p.GetPosition()
	req := requirements[state.level]

	for r, n := range req.counts() {
		ctx.World.Grid.AddResource(pos, r, -n)
	}

	newLevel := state.level + 1
	for _, id := range state.participants {
		participant := ctx.World.Player(id)
		if participant == nil {
			continue
		}
		participant.LevelUp()
		participant.Unlock()
		ctx.Emit(fmt.Sprintf("plv #%d %d\n", participant.ID, newLevel))
		msg := fmt.Sprintf("Current level: %d\n", newLevel)
		if participant.ID == p.ID {
			continue // delivered via this command's own Result.Reply below
		}
		ctx.Tell(participant.ID, msg)
	}
	ctx.Emit(fmt.Sprintf("pie %d %d 1\n", pos.X, pos.Y))
	return catalog.Ok(fmt.Sprintf("Current level: %d\n", newLevel))
}

// sameLevelColocated returns every ALIVE player at pos whose level matches
// level, the ritual's co-location + same-level eligibility check (§4.7).
func sameLevelColocated(w *world.World, pos world.Position, level int) []*world.Player {
	var out []*world.Player
	for _, p := range w.PlayersAt(pos) {
		if p.GetLevel() == level {
			out = append(out, p)
		}
	}
	return out
}

func tileHas(t *world.Tile, need map[world.Resource]int) bool {
	for r, n := range need {
		if t.Inventory.Count(r) < n {
			return false
		}
	}
	return true
}
