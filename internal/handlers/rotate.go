package handlers

import "github.com/zappy-game/server/internal/catalog"

// RightHandler rotates the player's facing 90 degrees clockwise (§4.7).
type RightHandler struct{}

func (RightHandler) Verb() catalog.Verb { return catalog.Right }

func (RightHandler) Process(ctx *catalog.Context) catalog.Result {
	ctx.Player.SetFacing(ctx.Player.GetFacing().Right())
	ctx.Emit(ppoLine(ctx.Player))
	return catalog.Ok("ok\n")
}

// LeftHandler rotates the player's facing 90 degrees counter-clockwise (§4.7).
type LeftHandler struct{}

func (LeftHandler) Verb() catalog.Verb { return catalog.Left }

func (LeftHandler) Process(ctx *catalog.Context) catalog.Result {
	ctx.Player.SetFacing(ctx.Player.GetFacing().Left())
	ctx.Emit(ppoLine(ctx.Player))
	return catalog.Ok("ok\n")
}
