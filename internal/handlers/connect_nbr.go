package handlers

import (
	"fmt"

	"github.com/zappy-game/server/internal/catalog"
)

// ConnectNbrHandler replies with the sender's team's free slot count
// (§4.7).
type ConnectNbrHandler struct{}

func (ConnectNbrHandler) Verb() catalog.Verb { return catalog.ConnectNbr }

func (ConnectNbrHandler) Process(ctx *catalog.Context) catalog.Result {
	team := ctx.World.Team(ctx.Player.Team)
	if team == nil {
		return catalog.Ko()
	}
	return catalog.Ok(fmt.Sprintf("%d\n", team.FreeSlotCount()))
}
