package testutil

import (
	"sync"
	"time"
)

// Epoch is the instant test clocks start from unless told otherwise.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// FixedClock always returns the same instant.
//
// Implements engine.Clock. Stateless after construction and safe for
// concurrent use.
type FixedClock struct {
	at time.Time
}

// NewFixedClock creates a clock frozen at at. A zero time means Epoch.
func NewFixedClock(at time.Time) *FixedClock {
	if at.IsZero() {
		at = Epoch
	}
	return &FixedClock{at: at}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	return c.at
}

// SteppingClock advances by a fixed step on every call to Now.
//
// Unlike FixedClock, consecutive readings are strictly increasing, which lets
// tests check that history retains chronological order across eviction.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SteppingClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int64
}

// NewSteppingClock creates a clock whose first reading is start.
// A zero start means Epoch; a non-positive step means one second.
func NewSteppingClock(start time.Time, step time.Duration) *SteppingClock {
	if start.IsZero() {
		start = Epoch
	}
	if step <= 0 {
		step = time.Second
	}
	return &SteppingClock{start: start, step: step}
}

// Now returns start + calls*step, then advances.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Calls returns how many times Now has been called.
func (c *SteppingClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock so the next reading is start again.
//
// Used for test reuse: the same scenario replayed after Reset sees identical
// timestamps.
func (c *SteppingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
