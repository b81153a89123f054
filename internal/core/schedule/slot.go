package schedule

import "time"

// Slot owns at most one pending timer. Arming it cancels the previous timer.
//
// Slot is not safe for concurrent use; the owner guards it with its own lock
// and calls Claim under that lock from the fired callback, so a callback that
// raced with Cancel or a newer Arm is ignored.
type Slot struct {
	timer   Timer
	next    uint64
	current uint64
}

// Arm cancels any pending timer and schedules fire after delay.
// fire receives the token of this arming.
func (slot *Slot) Arm(scheduler Scheduler, delay time.Duration, fire func(token uint64)) uint64 {
	slot.Cancel()
	slot.next++
	token := slot.next
	slot.current = token
	slot.timer = scheduler.AfterFunc(delay, func() {
		fire(token)
	})
	return token
}

// Claim reports whether token is the pending arming and, if so, clears it.
func (slot *Slot) Claim(token uint64) bool {
	if token == 0 || token != slot.current {
		return false
	}
	slot.current = 0
	slot.timer = nil
	return true
}

// Cancel stops the pending timer, if any.
func (slot *Slot) Cancel() {
	if slot.timer != nil {
		slot.timer.Stop()
		slot.timer = nil
	}
	slot.current = 0
}

// Pending reports whether a timer is armed.
func (slot *Slot) Pending() bool {
	return slot.current != 0
}

// Group owns any number of independent one-shot timers that are torn down together.
// Like Slot, it relies on the owner's lock.
type Group struct {
	timers map[uint64]Timer
	next   uint64
}

// After schedules fire after delay and returns its token.
func (group *Group) After(scheduler Scheduler, delay time.Duration, fire func(token uint64)) uint64 {
	if group.timers == nil {
		group.timers = make(map[uint64]Timer)
	}
	group.next++
	token := group.next
	group.timers[token] = scheduler.AfterFunc(delay, func() {
		fire(token)
	})
	return token
}

// Claim reports whether token is still pending and removes it.
func (group *Group) Claim(token uint64) bool {
	if _, ok := group.timers[token]; !ok {
		return false
	}
	delete(group.timers, token)
	return true
}

// CancelAll stops every pending timer.
func (group *Group) CancelAll() {
	for token, timer := range group.timers {
		timer.Stop()
		delete(group.timers, token)
	}
}

// Len returns the number of pending timers.
func (group *Group) Len() int {
	return len(group.timers)
}
