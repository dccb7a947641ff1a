// Package testutil provides deterministic helpers for harness and journal
// tests: a resettable logical clock and a fixed session-ID source, so the
// same scenario produces byte-identical journal rows and golden traces on
// every run.
package testutil

import "sync"

// Clock is a thread-safe monotonic logical clock. Journal rows are
// ordered by these sequence numbers, never by wall-clock time.
type Clock struct {
	mu  sync.Mutex
	seq int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next increments and returns the next sequence number.
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the latest issued sequence number without incrementing.
func (c *Clock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock to 0 so a scenario can rerun with identical
// sequence numbers.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
