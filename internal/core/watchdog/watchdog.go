// Package watchdog implements the idle watchdog: a single self-superseding
// timer that fires after a randomized stretch of user inactivity.
package watchdog

import (
	"sync"

	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
)

// Watchdog is a two-state machine (Armed, Fired) over one pending timer.
type Watchdog struct {
	mu        sync.Mutex
	scheduler schedule.Scheduler
	rng       chance.Source
	window    model.Range
	slot      schedule.Slot
	state     State
	onFire    func()
	events    []chan Event
}

// New creates a Watchdog. onFire runs outside the watchdog lock when the
// timer fires.
func New(scheduler schedule.Scheduler, rng chance.Source, window model.Range, onFire func()) *Watchdog {
	return &Watchdog{
		scheduler: scheduler,
		rng:       rng,
		window:    window,
		state:     StateIdle,
		onFire:    onFire,
	}
}

// Subscribe registers a new observer channel.
func (watchdog *Watchdog) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	watchdog.mu.Lock()
	defer watchdog.mu.Unlock()
	if watchdog.state == StateStopped {
		close(ch)
		return ch
	}
	watchdog.events = append(watchdog.events, ch)
	return ch
}

// Reset cancels the pending timer and arms a new one with a random delay
// from the window.
func (watchdog *Watchdog) Reset() {
	watchdog.mu.Lock()
	defer watchdog.mu.Unlock()
	if watchdog.state == StateStopped {
		return
	}
	delay := watchdog.window.Random(watchdog.rng)
	watchdog.slot.Arm(watchdog.scheduler, delay, watchdog.fire)
	watchdog.state = StateArmed
	watchdog.emitLocked(Event{
		Type:  EventArmed,
		State: StateArmed,
		Delay: delay,
		At:    watchdog.scheduler.Now(),
	})
}

// UpdateWindow replaces the delay window used by the next Reset.
func (watchdog *Watchdog) UpdateWindow(window model.Range) {
	watchdog.mu.Lock()
	defer watchdog.mu.Unlock()
	watchdog.window = window
}

// State returns the current state.
func (watchdog *Watchdog) State() State {
	watchdog.mu.Lock()
	defer watchdog.mu.Unlock()
	return watchdog.state
}

// Stop cancels the pending timer for good and closes observers.
func (watchdog *Watchdog) Stop() {
	watchdog.mu.Lock()
	if watchdog.state == StateStopped {
		watchdog.mu.Unlock()
		return
	}
	watchdog.slot.Cancel()
	watchdog.state = StateStopped
	events := watchdog.events
	watchdog.events = nil
	watchdog.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (watchdog *Watchdog) fire(token uint64) {
	watchdog.mu.Lock()
	if watchdog.state == StateStopped || !watchdog.slot.Claim(token) {
		watchdog.mu.Unlock()
		return
	}
	watchdog.state = StateFired
	watchdog.emitLocked(Event{
		Type:  EventFired,
		State: StateFired,
		At:    watchdog.scheduler.Now(),
	})
	onFire := watchdog.onFire
	watchdog.mu.Unlock()

	if onFire != nil {
		onFire()
	}
}

func (watchdog *Watchdog) emitLocked(event Event) {
	for _, ch := range watchdog.events {
		select {
		case ch <- event:
		default:
		}
	}
}
