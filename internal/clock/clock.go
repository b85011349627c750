// Package clock converts the server's configured tick frequency into
// wall-clock durations and exposes the single monotonic time source the
// engine compares deadlines against.
package clock

import "time"

// Clock resolves time-units (§4.1 of the spec) against a fixed frequency.
type Clock struct {
	frequency int
}

// New creates a Clock for the given frequency in ticks/ticks-per-second.
// Frequency must be positive; callers validate this at startup (§6.2).
func New(frequency int) *Clock {
	return &Clock{frequency: frequency}
}

// Frequency returns the configured ticks-per-second value.
func (c *Clock) Frequency() int {
	return c.frequency
}

// Now returns the current monotonic instant.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// SecondsFor converts a duration expressed in time-units into a wall-clock
// duration: timeUnits / frequency seconds.
func (c *Clock) SecondsFor(timeUnits int) time.Duration {
	return time.Duration(float64(timeUnits) / float64(c.frequency) * float64(time.Second))
}

// Elapsed reports whether at least `timeUnits` worth of wall-clock time has
// passed since start.
func (c *Clock) Elapsed(start time.Time, timeUnits int) bool {
	return c.Now().Sub(start) >= c.SecondsFor(timeUnits)
}
