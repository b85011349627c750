package handlers

import (
	"fmt"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/world"
)

// TakeHandler picks up one unit of a named resource from the sender's
// tile into its personal inventory (§4.7).
type TakeHandler struct{}

func (TakeHandler) Verb() catalog.Verb { return catalog.Take }

func (TakeHandler) Process(ctx *catalog.Context) catalog.Result {
	r, ok := world.ParseResource(ctx.Argument)
	if !ok {
		return catalog.Ko()
	}
	p := ctx.Player
	pos := p.GetPosition()
	if !ctx.World.Grid.AddResource(pos, r, -1) {
		return catalog.Ko()
	}
	p.AddInventory(r, 1)

	ctx.Emit(fmt.Sprintf("pgt #%d %d\n", p.ID, r))
	ctx.Emit(bctLine(ctx.World.Grid.TileAt(pos)))
	ctx.Emit(pinLine(p))
	return catalog.Ok("ok\n")
}

// SetHandler drops one unit of a named resource from the sender's
// personal inventory onto its tile (§4.7).
type SetHandler struct{}

func (SetHandler) Verb() catalog.Verb { return catalog.Set }

func (SetHandler) Process(ctx *catalog.Context) catalog.Result {
	r, ok := world.ParseResource(ctx.Argument)
	if !ok {
		return catalog.Ko()
	}
	p := ctx.Player
	pos := p.GetPosition()
	if !p.AddInventory(r, -1) {
		return catalog.Ko()
	}
	ctx.World.Grid.AddResource(pos, r, 1)

	ctx.Emit(fmt.Sprintf("pdr #%d %d\n", p.ID, r))
	ctx.Emit(bctLine(ctx.World.Grid.TileAt(pos)))
	ctx.Emit(pinLine(p))
	return catalog.Ok("ok\n")
}
