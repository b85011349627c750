// Package handlers implements the twelve AI command verbs of the command
// catalog (§4.7), one handler type per verb, mirroring the teacher's
// actions/*_handler.go layout (Right/Left share rotate.go, Take/Set share
// takeset.go).
package handlers

import (
	"fmt"
	"strings"

	"github.com/zappy-game/server/internal/world"
)

// ppoLine formats the GUI's player-position-orientation event (§6.4).
func ppoLine(p *world.Player) string {
	pos := p.GetPosition()
	return fmt.Sprintf("ppo #%d %d %d %d\n", p.ID, pos.X, pos.Y, p.GetFacing().WireNumber())
}

// pinLine formats the GUI's player-inventory event (§6.4).
func pinLine(p *world.Player) string {
	pos := p.GetPosition()
	counts := p.GetInventorySnapshot()
	return fmt.Sprintf("pin #%d %d %d %s\n", p.ID, pos.X, pos.Y, joinCounts(counts))
}

// bctLine formats the GUI's tile-content event (§6.4).
func bctLine(t *world.Tile) string {
	return fmt.Sprintf("bct %d %d %s\n", t.Pos.X, t.Pos.Y, joinCounts(t.Inventory.Snapshot()))
}

func joinCounts(counts [7]int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, " ")
}

// inventoryReply formats the AI client's Inventory response (§4.7).
func inventoryReply(p *world.Player) string {
	counts := p.GetInventorySnapshot()
	var parts []string
	for i, r := range world.Resources {
		parts = append(parts, fmt.Sprintf("%s %d", r, counts[i]))
	}
	return "[" + strings.Join(parts, ", ") + "]\n"
}
