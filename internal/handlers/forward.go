package handlers

import "github.com/zappy-game/server/internal/catalog"

// ForwardHandler advances the player one tile in its current facing,
// wrapping at the grid edges (§4.2, §4.7).
type ForwardHandler struct{}

func (ForwardHandler) Verb() catalog.Verb { return catalog.Forward }

func (ForwardHandler) Process(ctx *catalog.Context) catalog.Result {
	ctx.World.MovePlayer(ctx.Player, ctx.Player.GetFacing())
	ctx.Emit(ppoLine(ctx.Player))
	return catalog.Ok("ok\n")
}
