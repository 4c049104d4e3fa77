package core

import "time"

// TurnClock paces automatic turn advancement in the viewer.
type TurnClock struct {
	interval time.Duration
	last     time.Time
	paused   bool
	now      func() time.Time
}

// NewTurnClock returns a paused clock firing every interval once resumed.
func NewTurnClock(interval time.Duration) *TurnClock {
	if interval <= 0 {
		interval = time.Second
	}
	return &TurnClock{interval: interval, paused: true, now: time.Now}
}

// SetInterval changes the time between turns.
func (c *TurnClock) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.interval = d
}

// Interval returns the time between turns.
func (c *TurnClock) Interval() time.Duration { return c.interval }

// Paused reports whether automatic turns are suspended.
func (c *TurnClock) Paused() bool { return c.paused }

// Toggle pauses a running clock or resumes a paused one.
func (c *TurnClock) Toggle() {
	c.paused = !c.paused
	c.last = c.now()
}

// Due reports whether a turn should be played now. At most one turn fires per
// call regardless of how much time passed.
func (c *TurnClock) Due() bool {
	if c.paused {
		return false
	}
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return false
	}
	if now.Sub(c.last) < c.interval {
		return false
	}
	c.last = now
	return true
}
