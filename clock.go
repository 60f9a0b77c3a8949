package bough

import "time"

// Timer is the local countdown owned by a leaf animation. The driver
// advances it by each tick's delta before calling the leaf function.
type Timer struct {
	Total   time.Duration
	Elapsed time.Duration
	Delta   time.Duration // delta of the most recent Advance
}

// NewTimer returns a timer with zero elapsed time and the given total.
func NewTimer(total time.Duration) Timer {
	return Timer{Total: total}
}

// EmptyTimer returns a zero-length timer. It is used by leaves that never
// finish on time, such as per-frame continuous effects.
func EmptyTimer() Timer {
	return NewTimer(0)
}

// Advance adds delta to the elapsed time. Elapsed is not clamped to Total;
// overshoot is how Finished detects completion.
func (t *Timer) Advance(delta time.Duration) {
	t.Delta = delta
	t.Elapsed += delta
}

// Ratio returns Elapsed / Total. Only call it on timers with Total > 0, or
// after checking Finished; a zero-length timer yields NaN or +Inf.
func (t *Timer) Ratio() float64 {
	return float64(t.Elapsed) / float64(t.Total)
}

// Finished reports whether Elapsed has strictly passed Total. A timer driven
// exactly to Total is still running.
func (t *Timer) Finished() bool {
	return t.Elapsed > t.Total
}

// Remaining returns the time left before Total, or zero once past it.
func (t *Timer) Remaining() time.Duration {
	if t.Elapsed >= t.Total {
		return 0
	}
	return t.Total - t.Elapsed
}

// Reset rewinds the timer to zero elapsed time.
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.Delta = 0
}

// fpsWindow is the trailing window FPS is measured over.
const fpsWindow = time.Second

// Clock derives per-frame deltas from wall-clock time and counts the ticks
// that happened within the last second.
type Clock struct {
	now   func() time.Time
	last  time.Time
	delta time.Duration
	ticks []time.Time // tick instants inside the trailing fpsWindow, oldest first
}

// NewClock creates a clock that measures its first delta from now.
func NewClock() *Clock {
	return newClockWithSource(time.Now)
}

func newClockWithSource(now func() time.Time) *Clock {
	return &Clock{
		now:   now,
		last:  now(),
		ticks: make([]time.Time, 0, 128),
	}
}

// Tick samples the time source and returns the time elapsed since the
// previous Tick (or since the clock was created). A source that steps
// backwards yields a zero delta.
func (c *Clock) Tick() time.Duration {
	now := c.now()
	c.delta = now.Sub(c.last)
	if c.delta < 0 {
		c.delta = 0
	}
	c.last = now

	cutoff := now.Add(-fpsWindow)
	drop := 0
	for drop < len(c.ticks) && c.ticks[drop].Before(cutoff) {
		drop++
	}
	if drop > 0 {
		n := copy(c.ticks, c.ticks[drop:])
		c.ticks = c.ticks[:n]
	}
	c.ticks = append(c.ticks, now)
	return c.delta
}

// Delta returns the delta computed by the most recent Tick.
func (c *Clock) Delta() time.Duration {
	return c.delta
}

// FPS returns how many ticks happened within the last second.
func (c *Clock) FPS() int {
	return len(c.ticks)
}

// Now returns the instant of the most recent Tick.
func (c *Clock) Now() time.Time {
	return c.last
}
