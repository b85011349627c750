package handlers

import (
	"fmt"
	"math"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/world"
)

// BroadcastHandler delivers a text message to every other ALIVE player,
// each receiving a direction code relative to their own facing (§4.7).
type BroadcastHandler struct{}

func (BroadcastHandler) Verb() catalog.Verb { return catalog.Broadcast }

func (BroadcastHandler) Process(ctx *catalog.Context) catalog.Result {
	sender := ctx.Player
	text := ctx.Argument
	senderPos := sender.GetPosition()

	for _, other := range ctx.World.AllPlayers() {
		if other.ID == sender.ID || other.GetState() != world.Alive {
			continue
		}
		k := directionNumber(ctx.World, other.GetPosition(), senderPos, other.GetFacing())
		ctx.Tell(other.ID, fmt.Sprintf("message %d, %s\n", k, text))
	}
	ctx.Emit(fmt.Sprintf("pbc #%d %s\n", sender.ID, text))
	return catalog.Ok("ok\n")
}

// directionNumber computes the 0..8 direction code a receiver at `from`,
// facing `receiverFacing`, sees a broadcast originating at `to` (§4.7).
// Ported verbatim (the angle bucketing, not its C syntax) from the
// upstream reference's get_direction_number.
func directionNumber(w *world.World, from, to world.Position, receiverFacing world.Direction) int {
	if from == to {
		return 0
	}
	dx := wrappedAxisDelta(from.X, to.X, w.Grid.Width())
	dy := wrappedAxisDelta(from.Y, to.Y, w.Grid.Height())

	angle := math.Atan2(float64(-dy), float64(dx))
	receiverAngle := directionAngle(receiverFacing)
	relative := normalizeAngle(angle - receiverAngle)
	return angleToDirectionNumber(relative)
}

func wrappedAxisDelta(from, to, size int) int {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

func directionAngle(d world.Direction) float64 {
	switch d {
	case world.North:
		return math.Pi / 2
	case world.East:
		return 0
	case world.South:
		return -math.Pi / 2
	case world.West:
		return math.Pi
	default:
		return 0
	}
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func angleToDirectionNumber(relative float64) int {
	switch {
	case relative >= -math.Pi/8 && relative < math.Pi/8:
		return 1
	case relative >= math.Pi/8 && relative < 3*math.Pi/8:
		return 2
	case relative >= 3*math.Pi/8 && relative < 5*math.Pi/8:
		return 3
	case relative >= 5*math.Pi/8 && relative < 7*math.Pi/8:
		return 4
	case relative >= 7*math.Pi/8 || relative < -7*math.Pi/8:
		return 5
	case relative >= -7*math.Pi/8 && relative < -5*math.Pi/8:
		return 6
	case relative >= -5*math.Pi/8 && relative < -3*math.Pi/8:
		return 7
	default: // -3pi/8 <= relative < -pi/8
		return 8
	}
}
