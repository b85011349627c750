package handlers

import "github.com/zappy-game/server/internal/catalog"

// InventoryHandler replies with the player's personal resource counts
// (§4.7).
type InventoryHandler struct{}

func (InventoryHandler) Verb() catalog.Verb { return catalog.Inventory }

func (InventoryHandler) Process(ctx *catalog.Context) catalog.Result {
	return catalog.Ok(inventoryReply(ctx.Player))
}
