package watchdog

import "time"

// State represents the current watchdog mode.
type State string

const (
	StateIdle    State = "idle"
	StateArmed   State = "armed"
	StateFired   State = "fired"
	StateStopped State = "stopped"
)

// EventType defines the type of watchdog event.
type EventType string

const (
	EventArmed EventType = "armed"
	EventFired EventType = "fired"
)

// Event represents a watchdog update for observers.
type Event struct {
	Type  EventType
	State State
	Delay time.Duration
	At    time.Time
}
