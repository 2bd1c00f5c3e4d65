package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedClock_DefaultsToEpoch(t *testing.T) {
	c := NewFixedClock(time.Time{})
	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch, c.Now())
}

func TestFixedClock_CustomInstant(t *testing.T) {
	at := time.Date(2030, time.June, 15, 12, 0, 0, 0, time.UTC)
	c := NewFixedClock(at)
	assert.Equal(t, at, c.Now())
}

func TestSteppingClock_AdvancesByStep(t *testing.T) {
	c := NewSteppingClock(time.Time{}, time.Millisecond)

	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch.Add(time.Millisecond), c.Now())
	assert.Equal(t, Epoch.Add(2*time.Millisecond), c.Now())
	assert.Equal(t, int64(3), c.Calls())
}

func TestSteppingClock_DefaultStep(t *testing.T) {
	c := NewSteppingClock(time.Time{}, 0)

	c.Now()
	assert.Equal(t, Epoch.Add(time.Second), c.Now())
}

func TestSteppingClock_Reset(t *testing.T) {
	c := NewSteppingClock(time.Time{}, time.Second)

	c.Now()
	c.Now()
	c.Reset()

	assert.Equal(t, int64(0), c.Calls())
	assert.Equal(t, Epoch, c.Now(), "first reading after reset is start")
}

func TestSteppingClock_ThreadSafe(t *testing.T) {
	c := NewSteppingClock(time.Time{}, time.Nanosecond)
	const goroutines = 50
	const callsPerGoroutine = 100

	var wg sync.WaitGroup
	readings := make(chan time.Time, goroutines*callsPerGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				readings <- c.Now()
			}
		}()
	}
	wg.Wait()
	close(readings)

	seen := make(map[time.Time]bool)
	for r := range readings {
		require.False(t, seen[r], "reading %v returned twice", r)
		seen[r] = true
	}
	assert.Len(t, seen, goroutines*callsPerGoroutine)
}
