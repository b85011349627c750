package engine

import (
	"net"
	"syscall"

	"github.com/zappy-game/server/internal/netio"
	"github.com/zappy-game/server/internal/queue"
)

// State is a connection's position in the lifecycle state machine (§4.9).
type State int

const (
	BannerSent State = iota
	WaitingRole
	ActiveAI
	ActiveGUI
	Rejected
)

func (s State) String() string {
	switch s {
	case BannerSent:
		return "BANNER_SENT"
	case WaitingRole:
		return "WAITING_ROLE"
	case ActiveAI:
		return "ACTIVE_AI"
	case ActiveGUI:
		return "ACTIVE_GUI"
	case Rejected:
		return "REJECTED"
	default:
		return "?"
	}
}

// connection holds everything the engine tracks per accepted socket: its
// net.Conn, the line framer reading off it, a pending-writes buffer for
// backpressure (§5), its lifecycle state, and — once bound — the AI
// player id or GUI flag it serves.
type connection struct {
	id      int
	conn    net.Conn
	fd      int
	framer  netio.Framer
	pending []byte // queued outbound bytes when a write would block (§5)

	state    State
	playerID int // valid once state == ActiveAI
	queue    queue.Queue
}

func newConnection(id int, conn net.Conn, fd int) *connection {
	return &connection{id: id, conn: conn, fd: fd, state: BannerSent}
}

// write appends a line to the connection's outbound buffer and attempts an
// immediate flush; any unsent remainder stays queued and is retried by the
// next write or from the loop's POLLOUT-readiness branch (§5) — never by
// blocking here.
func (c *connection) write(line string) {
	c.pending = append(c.pending, line...)
	c.flush()
}

// flush attempts to drain the pending outbound buffer without ever
// blocking the engine's single goroutine. It makes exactly one write(2)
// attempt on the socket's non-blocking fd: if the kernel send buffer has
// room, the bytes go out immediately; if it would block, the call returns
// at once with nothing written, and the remainder stays in c.pending for
// the next POLLOUT-readiness retry (§4.6, §5 backpressure). Returns true
// once pending is fully drained.
func (c *connection) flush() bool {
	if len(c.pending) == 0 {
		return true
	}
	n := 0
	if sc, ok := c.conn.(syscall.Conn); ok {
		if raw, err := sc.SyscallConn(); err == nil {
			raw.Write(func(fd uintptr) bool {
				n, _ = syscall.Write(int(fd), c.pending)
				return true // one attempt only; never wait for writability here
			})
		}
	}
	if n > 0 {
		c.pending = c.pending[n:]
	}
	// a hard write error surfaces on the next read as a disconnect
	return len(c.pending) == 0
}
