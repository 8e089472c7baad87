// Package testutil provides deterministic helpers for probe tests:
// a frozen clock, a fixed run-ID generator, and a sequential nonce
// source. With all three injected, the same scenario set produces a
// byte-identical report for golden comparison.
package testutil

import (
	"sync"
	"time"
)

// FrozenClock is a thread-safe clock that only moves when told to.
//
// Inject its Now method into the runner so report timestamps and
// durations are reproducible across runs.
type FrozenClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFrozenClock creates a clock frozen at t.
func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{t: t}
}

// Now returns the frozen time.
func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *FrozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
