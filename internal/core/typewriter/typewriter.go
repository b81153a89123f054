// Package typewriter reveals a string one character at a time with a nervous,
// randomized rhythm.
package typewriter

import (
	"sync"
	"time"

	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
)

const (
	// StartDelay precedes the first character.
	StartDelay = 100 * time.Millisecond
	// Hesitation is added after a '.' or ','.
	Hesitation = 300 * time.Millisecond
)

// State is a snapshot of a reveal.
type State struct {
	Text     string
	Revealed int
	Total    int
	Complete bool
}

// Reveal drives one display instance's typewriter effect.
type Reveal struct {
	mu        sync.Mutex
	scheduler schedule.Scheduler
	rng       chance.Source
	onChange  func(State)
	slot      schedule.Slot
	source    []rune
	text      string
	speed     model.Range
	revealed  int
	complete  bool
	started   bool
	stopped   bool
}

// New creates a Reveal. onChange is called with the lock held on every
// change, so it must not call back into the Reveal.
func New(scheduler schedule.Scheduler, rng chance.Source, onChange func(State)) *Reveal {
	return &Reveal{
		scheduler: scheduler,
		rng:       rng,
		onChange:  onChange,
	}
}

// Start restarts the reveal from zero with text and speed.
func (reveal *Reveal) Start(text string, speed model.Range) {
	reveal.mu.Lock()
	defer reveal.mu.Unlock()
	if reveal.stopped {
		return
	}
	reveal.restartLocked(text, speed)
}

// SetText restarts only when text or speed differ from the current run.
func (reveal *Reveal) SetText(text string, speed model.Range) {
	reveal.mu.Lock()
	defer reveal.mu.Unlock()
	if reveal.stopped {
		return
	}
	if reveal.started && reveal.text == text && reveal.speed == speed {
		return
	}
	reveal.restartLocked(text, speed)
}

// Stop cancels any pending character and tears the instance down.
func (reveal *Reveal) Stop() {
	reveal.mu.Lock()
	defer reveal.mu.Unlock()
	reveal.slot.Cancel()
	reveal.stopped = true
}

// State returns the current snapshot.
func (reveal *Reveal) State() State {
	reveal.mu.Lock()
	defer reveal.mu.Unlock()
	return reveal.stateLocked()
}

func (reveal *Reveal) restartLocked(text string, speed model.Range) {
	reveal.slot.Cancel()
	reveal.text = text
	reveal.source = []rune(text)
	reveal.speed = speed
	reveal.revealed = 0
	reveal.complete = len(reveal.source) == 0
	reveal.started = true
	reveal.notifyLocked()
	if reveal.complete {
		return
	}
	reveal.slot.Arm(reveal.scheduler, StartDelay, reveal.typeNext)
}

func (reveal *Reveal) typeNext(token uint64) {
	reveal.mu.Lock()
	defer reveal.mu.Unlock()
	if reveal.stopped || !reveal.slot.Claim(token) {
		return
	}

	last := reveal.source[reveal.revealed]
	reveal.revealed++
	if reveal.revealed == len(reveal.source) {
		reveal.complete = true
		reveal.notifyLocked()
		return
	}
	reveal.notifyLocked()

	delay := reveal.speed.Random(reveal.rng)
	if last == '.' || last == ',' {
		delay += Hesitation
	}
	reveal.slot.Arm(reveal.scheduler, delay, reveal.typeNext)
}

func (reveal *Reveal) stateLocked() State {
	return State{
		Text:     string(reveal.source[:reveal.revealed]),
		Revealed: reveal.revealed,
		Total:    len(reveal.source),
		Complete: reveal.complete,
	}
}

func (reveal *Reveal) notifyLocked() {
	if reveal.onChange != nil {
		reveal.onChange(reveal.stateLocked())
	}
}
