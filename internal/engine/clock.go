package engine

import "time"

// Clock supplies the instant stamped on generated ideas.
//
// Ordering never depends on the clock: sequence numbers and tick order do.
// CreatedAt is informational only, which is why tests can freely substitute
// a fixed or stepping clock (see internal/testutil).
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current wall-clock time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}
