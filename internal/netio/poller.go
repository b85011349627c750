package netio

import (
	"golang.org/x/sys/unix"
)

// PollTimeoutMillis is the bounded wait at the top of each loop iteration
// (§4.1, §4.6) — short enough that command deadlines are checked at high
// resolution without busy-waiting.
const PollTimeoutMillis = 10

// Poller wraps unix.Poll over a flat, re-used pollfd slice, matching the
// single poll(2) call per iteration the engine's loop makes (§4.6, §9 —
// no async runtime, one cooperative wait point).
type Poller struct {
	fds []unix.PollFd
	ids []int // fd -> opaque id the caller assigned it, parallel to fds
}

// NewPoller creates an empty Poller.
func NewPoller() *Poller {
	return &Poller{}
}

// Reset clears the watch list; callers repopulate it with Watch before
// each Wait, mirroring the loop's reset_pollfds/repopulate cycle.
func (p *Poller) Reset() {
	p.fds = p.fds[:0]
	p.ids = p.ids[:0]
}

// Watch registers fd for read-readiness, tagged with the caller's id (the
// connection this fd belongs to).
func (p *Poller) Watch(fd int, id int) {
	p.fds = append(p.fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	p.ids = append(p.ids, id)
}

// WatchWrite registers fd for both read- and write-readiness. The engine
// arms this instead of Watch for any connection with a non-empty pending
// outbound buffer, so a client that stops draining its receive window
// backpressures onto POLLOUT instead of blocking the loop on Write (§5).
func (p *Poller) WatchWrite(fd int, id int) {
	p.fds = append(p.fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN | unix.POLLOUT})
	p.ids = append(p.ids, id)
}

// Wait blocks up to PollTimeoutMillis and returns the ids of every fd that
// became readable and, separately, writable. EINTR is treated as "nothing
// ready" rather than an error, matching the reference loop's handling of a
// signal-interrupted poll.
func (p *Poller) Wait() (readable []int, writable []int, err error) {
	n, err := unix.Poll(p.fds, PollTimeoutMillis)
	if err == unix.EINTR {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if n == 0 {
		return nil, nil, nil
	}

	for i, pfd := range p.fds {
		if pfd.Revents&unix.POLLIN != 0 {
			readable = append(readable, p.ids[i])
		}
		if pfd.Revents&unix.POLLOUT != 0 {
			writable = append(writable, p.ids[i])
		}
	}
	return readable, writable, nil
}
