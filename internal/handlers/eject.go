package handlers

import (
	"fmt"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/world"
)

// EjectHandler pushes every other ALIVE player on the sender's tile one
// step in the sender's facing, and destroys every egg there (§4.7).
type EjectHandler struct{}

func (EjectHandler) Verb() catalog.Verb { return catalog.Eject }

func (EjectHandler) Process(ctx *catalog.Context) catalog.Result {
	sender := ctx.Player
	pos := sender.GetPosition()
	facing := sender.GetFacing()

	var victims []*world.Player
	var eggs []*world.Player
	for _, other := range ctx.World.AllPlayers() {
		if other.ID == sender.ID || other.GetPosition() != pos {
			continue
		}
		switch other.GetState() {
		case world.Alive:
			victims = append(victims, other)
		case world.Egg:
			eggs = append(eggs, other)
		}
	}

	if len(victims) == 0 && len(eggs) == 0 {
		return catalog.Ko()
	}

	for _, v := range victims {
		ctx.World.MovePlayer(v, facing)
		ctx.Emit(ppoLine(v))
	}
	for _, e := range eggs {
		ctx.World.DestroyEgg(e)
		ctx.Emit(fmt.Sprintf("edi #%d\n", e.ID))
	}
	ctx.Emit(fmt.Sprintf("pex #%d\n", sender.ID))
	return catalog.Ok("ok\n")
}
