package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zappy-game/server/internal/world"
)

// guiSyncLines builds the full connection-sync sequence a newly bound GUI
// receives, in order (§4.8): map size, every tile's contents, every team
// name, every existing player, every existing egg, then the frequency.
func guiSyncLines(w *world.World, frequency int) []string {
	var lines []string
	lines = append(lines, fmt.Sprintf("msz %d %d\n", w.Grid.Width(), w.Grid.Height()))
	for _, tile := range w.Grid.AllTiles() {
		lines = append(lines, bctTileLine(tile))
	}
	for _, name := range w.TeamNames() {
		lines = append(lines, fmt.Sprintf("tna %s\n", name))
	}
	for _, p := range w.AllPlayers() {
		switch p.GetState() {
		case world.Alive:
			lines = append(lines, pnwLine(p))
		case world.Egg:
			lines = append(lines, enwLine(p))
		}
	}
	lines = append(lines, fmt.Sprintf("sgt %d\n", frequency))
	return lines
}

func bctTileLine(t *world.Tile) string {
	counts := t.Inventory.Snapshot()
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return fmt.Sprintf("bct %d %d %s\n", t.Pos.X, t.Pos.Y, strings.Join(parts, " "))
}

func pnwLine(p *world.Player) string {
	pos := p.GetPosition()
	return fmt.Sprintf("pnw #%d %d %d %d %d %s\n", p.ID, pos.X, pos.Y, p.GetFacing().WireNumber(), p.GetLevel(), p.Team)
}

func enwLine(p *world.Player) string {
	pos := p.GetPosition()
	return fmt.Sprintf("enw #%d #%d %d %d\n", p.ID, p.GetParentID(), pos.X, pos.Y)
}

// handleGUIQuery answers one of the GUI's synchronous query verbs (§4.8),
// computed from current state. Returns "" for an unrecognized query —
// the line is simply dropped, mirroring a protocol parse error (§7).
func handleGUIQuery(w *world.World, frequency int, line string) string {
	verb, arg := splitVerb(line)
	switch verb {
	case "msz":
		return fmt.Sprintf("msz %d %d\n", w.Grid.Width(), w.Grid.Height())
	case "sgt":
		return fmt.Sprintf("sgt %d\n", frequency)
	case "tna":
		var b strings.Builder
		for _, name := range w.TeamNames() {
			b.WriteString(fmt.Sprintf("tna %s\n", name))
		}
		return b.String()
	case "mct":
		var b strings.Builder
		for _, tile := range w.Grid.AllTiles() {
			b.WriteString(bctTileLine(tile))
		}
		return b.String()
	case "bct":
		x, y, ok := parseXY(arg)
		if !ok {
			return ""
		}
		return bctTileLine(w.Grid.TileAt(world.Position{X: x, Y: y}))
	case "ppo":
		p := lookupPlayer(w, arg)
		if p == nil {
			return ""
		}
		pos := p.GetPosition()
		return fmt.Sprintf("ppo #%d %d %d %d\n", p.ID, pos.X, pos.Y, p.GetFacing().WireNumber())
	case "plv":
		p := lookupPlayer(w, arg)
		if p == nil {
			return ""
		}
		return fmt.Sprintf("plv #%d %d\n", p.ID, p.GetLevel())
	case "pin":
		p := lookupPlayer(w, arg)
		if p == nil {
			return ""
		}
		pos := p.GetPosition()
		counts := p.GetInventorySnapshot()
		parts := make([]string, len(counts))
		for i, c := range counts {
			parts[i] = strconv.Itoa(c)
		}
		return fmt.Sprintf("pin #%d %d %d %s\n", p.ID, pos.X, pos.Y, strings.Join(parts, " "))
	default:
		return ""
	}
}

func splitVerb(line string) (verb, rest string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+1:])
}

func parseXY(arg string) (x, y int, ok bool) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		return 0, 0, false
	}
	x, err1 := strconv.Atoi(fields[0])
	y, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return x, y, true
}

func lookupPlayer(w *world.World, arg string) *world.Player {
	id, ok := parsePlayerID(arg)
	if !ok {
		return nil
	}
	return w.Player(id)
}

// parsePlayerID strips the leading "#" the GUI protocol prefixes ids with.
func parsePlayerID(arg string) (int, bool) {
	arg = strings.TrimPrefix(strings.TrimSpace(arg), "#")
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, false
	}
	return n, true
}
