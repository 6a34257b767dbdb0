// Package coarsetime is a clock refreshed every 50ms by a background
// goroutine. Pool bookkeeping reads it on every acquire and release, where
// idle and lifetime limits are seconds or more and time.Now is the hot path.
package coarsetime

import (
	"sync/atomic"
	"time"
)

// Resolution is the refresh interval of the clock.
const Resolution = 50 * time.Millisecond

var now atomic.Pointer[time.Time]

func init() {
	store(time.Now())

	ticker := time.NewTicker(Resolution)
	go func() {
		for t := range ticker.C {
			store(t)
		}
	}()
}

func store(t time.Time) {
	now.Store(&t)
}

// Now returns the current time, at most Resolution old.
func Now() time.Time {
	return *now.Load()
}

// Since returns the time elapsed since t, measured on the coarse clock.
func Since(t time.Time) time.Duration {
	return Now().Sub(t)
}
