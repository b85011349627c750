package engine

import (
	"strings"

	"github.com/zappy-game/server/internal/catalog"
)

// splitCommand separates an AI command line into its verb and the raw
// argument text following it (§4.4, §4.7 — e.g. "Take food" -> ("Take",
// "food"), "Broadcast gg wp" -> ("Broadcast", "gg wp")).
func splitCommand(line string) (verb catalog.Verb, arg string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return catalog.Verb(line), ""
	}
	return catalog.Verb(line[:idx]), strings.TrimSpace(line[idx+1:])
}
