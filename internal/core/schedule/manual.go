package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler whose clock only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance, in due order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock *Manual
	at    time.Time
	seq   uint64
	fn    func()
	done  bool
}

// NewManual returns a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock time.
func (clock *Manual) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// AfterFunc schedules fn at Now()+delay. It never runs fn synchronously.
func (clock *Manual) AfterFunc(delay time.Duration, fn func()) Timer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	clock.seq++
	timer := &manualTimer{
		clock: clock,
		at:    clock.now.Add(delay),
		seq:   clock.seq,
		fn:    fn,
	}
	clock.timers = append(clock.timers, timer)
	return timer
}

// Advance moves the clock forward by delta, firing every callback that falls due.
func (clock *Manual) Advance(delta time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(delta)
	for {
		next := clock.nextDueLocked(target)
		if next == nil {
			break
		}
		next.done = true
		clock.removeLocked(next)
		if next.at.After(clock.now) {
			clock.now = next.at
		}
		clock.mu.Unlock()
		next.fn()
		clock.mu.Lock()
	}
	clock.now = target
	clock.mu.Unlock()
}

// Pending returns the number of timers not yet fired or stopped.
func (clock *Manual) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.timers)
}

func (clock *Manual) nextDueLocked(target time.Time) *manualTimer {
	var next *manualTimer
	for _, timer := range clock.timers {
		if timer.at.After(target) {
			continue
		}
		if next == nil || timer.at.Before(next.at) || (timer.at.Equal(next.at) && timer.seq < next.seq) {
			next = timer
		}
	}
	return next
}

func (clock *Manual) removeLocked(target *manualTimer) {
	for i, timer := range clock.timers {
		if timer == target {
			clock.timers = append(clock.timers[:i], clock.timers[i+1:]...)
			return
		}
	}
}

func (timer *manualTimer) Stop() bool {
	clock := timer.clock
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if timer.done {
		return false
	}
	timer.done = true
	clock.removeLocked(timer)
	return true
}
