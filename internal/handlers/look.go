package handlers

import (
	"strings"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/world"
)

// LookHandler returns the player's vision cone: row 0 is the player's own
// tile, row k (1 <= k <= level) has 2k+1 tiles ordered left to right from
// the viewer's perspective (§4.7, resolving the spec's Look-ordering open
// question against the upstream reference's row traversal).
type LookHandler struct{}

func (LookHandler) Verb() catalog.Verb { return catalog.Look }

func (LookHandler) Process(ctx *catalog.Context) catalog.Result {
	p := ctx.Player
	pos := p.GetPosition()
	facing := p.GetFacing()
	fx, fy := facing.Delta()
	rx, ry := facing.Right().Delta()

	var tiles []string
	for row := 0; row <= p.GetLevel(); row++ {
		for side := -row; side <= row; side++ {
			tp := world.Position{
				X: pos.X + fx*row + rx*side,
				Y: pos.Y + fy*row + ry*side,
			}
			tiles = append(tiles, describeTile(ctx.World, tp))
		}
	}
	return catalog.Ok("[" + strings.Join(tiles, ",") + "]\n")
}

// describeTile renders one visible tile's contents: one "player" token per
// ALIVE player standing there, then one token per resource unit in wire
// order (§4.7).
func describeTile(w *world.World, pos world.Position) string {
	wrapped := w.Grid.Wrap(pos)
	tile := w.Grid.TileAt(wrapped)

	var tokens []string
	for range w.PlayersAt(wrapped) {
		tokens = append(tokens, "player")
	}
	for _, r := range world.Resources {
		n := tile.Inventory.Count(r)
		for i := 0; i < n; i++ {
			tokens = append(tokens, r.String())
		}
	}
	return strings.Join(tokens, " ")
}
