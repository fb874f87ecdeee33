package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable clock for tests that need a known "today".
//
// Thread-safety: all methods are safe for concurrent use.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// NewFixedClockOn creates a clock frozen at noon of the given date in loc.
func NewFixedClockOn(year int, month time.Month, day int, loc *time.Location) *FixedClock {
	return NewFixedClock(time.Date(year, month, day, 12, 0, 0, 0, loc))
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AdvanceDays moves the clock forward n calendar days (backward if n < 0).
func (c *FixedClock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}
