// Package schedule provides cancellable timers behind an interface so the
// engine can run on the wall clock in production and on a manual clock in tests.
package schedule

import (
	"context"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the timer.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	Now() time.Time
	AfterFunc(delay time.Duration, fn func()) Timer
}

// System schedules on the wall clock.
type System struct{}

// Now returns the current time.
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn on its own goroutine after delay.
func (System) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

// SleepContext waits for duration on scheduler. It returns false when ctx ends first.
func SleepContext(ctx context.Context, scheduler Scheduler, duration time.Duration) bool {
	if duration <= 0 {
		return ctx.Err() == nil
	}
	done := make(chan struct{})
	timer := scheduler.AfterFunc(duration, func() {
		close(done)
	})
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-done:
		return true
	}
}
