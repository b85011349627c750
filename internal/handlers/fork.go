package handlers

import (
	"fmt"
	"math/rand"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/world"
)

// ForkHandler appends a new EGG to the sender's team at the sender's tile,
// growing the team's slot budget by one (§4.7).
type ForkHandler struct {
	Rng *rand.Rand
}

func (ForkHandler) Verb() catalog.Verb { return catalog.Fork }

func (h ForkHandler) Process(ctx *catalog.Context) catalog.Result {
	p := ctx.Player
	facing := world.Direction(h.Rng.Intn(4))
	egg := ctx.World.SpawnEgg(p.Team, p.GetPosition(), facing, p.ID)
	if egg == nil {
		return catalog.Ko()
	}
	ctx.Emit(fmt.Sprintf("pfk #%d\n", p.ID))
	pos := egg.GetPosition()
	ctx.Emit(fmt.Sprintf("enw #%d #%d %d %d\n", egg.ID, p.ID, pos.X, pos.Y))
	return catalog.Ok("ok\n")
}
