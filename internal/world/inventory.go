package world

// Resource identifies one of the seven resource kinds tracked on every
// tile and in every player's personal inventory (§3).
type Resource int

const (
	Food Resource = iota
	Linemate
	Deraumere
	Sibur
	Mendiane
	Phiras
	Thystame

	resourceCount
)

// Resources lists every resource kind in wire order — the order `bct`,
// `Look` tile contents and the elevation requirement table all use.
var Resources = [resourceCount]Resource{Food, Linemate, Deraumere, Sibur, Mendiane, Phiras, Thystame}

func (r Resource) String() string {
	switch r {
	case Food:
		return "food"
	case Linemate:
		return "linemate"
	case Deraumere:
		return "deraumere"
	case Sibur:
		return "sibur"
	case Mendiane:
		return "mendiane"
	case Phiras:
		return "phiras"
	case Thystame:
		return "thystame"
	default:
		return "unknown"
	}
}

// ParseResource maps a wire token to a Resource, as used by Take/Set.
func ParseResource(s string) (Resource, bool) {
	for _, r := range Resources {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

// Inventory is the seven-slot, non-negative resource count shared by tiles
// and players (§3). Zero value is a valid empty inventory.
type Inventory struct {
	counts [resourceCount]int
}

// Count returns the quantity of kind r. Never negative (invariant, §3).
func (inv *Inventory) Count(r Resource) int {
	return inv.counts[r]
}

// Set overwrites the count of r, clamping at 0; Player.Claim uses it to
// seed hatch food.
func (inv *Inventory) Set(r Resource, n int) {
	if n < 0 {
		n = 0
	}
	inv.counts[r] = n
}

// Add increments the count of r by delta (delta may be negative). It
// refuses to push a count below zero, returning false in that case and
// leaving the inventory unchanged — callers must check availability before
// calling with a negative delta (e.g. Take/Set/incantation consumption).
func (inv *Inventory) Add(r Resource, delta int) bool {
	if inv.counts[r]+delta < 0 {
		return false
	}
	inv.counts[r] += delta
	return true
}

// Total sums every resource count.
func (inv *Inventory) Total() int {
	total := 0
	for _, c := range inv.counts {
		total += c
	}
	return total
}

// Snapshot returns a plain array copy of the seven counts, in wire order.
func (inv *Inventory) Snapshot() [resourceCount]int {
	return inv.counts
}
