// Package netio provides the per-connection line framer and the poll-based
// socket multiplexer the engine's single-threaded loop runs on (§4.5,
// §4.6, §9).
package netio

import (
	"bytes"
	"errors"
)

// MaxBuffer is the hard cap on unconsumed received bytes (§3, §5). A
// connection that exceeds it without ever completing a line is
// disconnected.
const MaxBuffer = 4096

// MaxLine is the longest line the framer will deliver. A line exceeding
// this is discarded as a unit rather than delivered truncated (§4.5).
const MaxLine = 1024

// ErrOverflow is returned by Feed when appending would exceed MaxBuffer.
var ErrOverflow = errors.New("netio: receive buffer overflow")

// ErrDisconnect signals the connection should be torn down: recv returned
// 0 or a hard error other than would-block (§4.5).
var ErrDisconnect = errors.New("netio: disconnected")

// Framer is a bounded byte FIFO that extracts LF-terminated lines,
// tolerating a trailing CR, and silently discarding any line longer than
// MaxLine (§4.5, §9's "ring buffer" contract). The zero value is ready to
// use.
type Framer struct {
	buf []byte
}

// Feed appends newly received bytes. Returns ErrOverflow if doing so would
// push the buffer past MaxBuffer — the caller should disconnect.
func (f *Framer) Feed(data []byte) error {
	if len(f.buf)+len(data) > MaxBuffer {
		return ErrOverflow
	}
	f.buf = append(f.buf, data...)
	return nil
}

// NextLine extracts and returns the next complete line, if any, with its
// trailing CRLF/LF stripped. Overlong lines are discarded as a unit and
// skipped transparently — callers may need to call NextLine repeatedly
// after a single Feed to drain every complete line.
func (f *Framer) NextLine() (line string, ok bool) {
	for {
		idx := bytes.IndexByte(f.buf, '\n')
		if idx < 0 {
			return "", false
		}
		raw := f.buf[:idx]
		f.buf = f.buf[idx+1:]

		if len(raw) > MaxLine {
			continue // discarded as a unit (§4.5)
		}
		raw = bytes.TrimSuffix(raw, []byte{'\r'})
		return string(raw), true
	}
}

// Pending reports how many unconsumed bytes remain buffered.
func (f *Framer) Pending() int {
	return len(f.buf)
}
