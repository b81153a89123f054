package engine

import (
	"time"

	"sorrybot/internal/core/model"
)

// Channel is the presentation surface an apology used.
type Channel string

const (
	ChannelToast  Channel = "toast"
	ChannelDialog Channel = "dialog"
	ChannelInline Channel = "inline"
)

// Tier is the message pool an apology came from.
type Tier string

const (
	TierStandard    Tier = "standard"
	TierExistential Tier = "existential"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventDispatch      EventType = "dispatch"
	EventFollowUp      EventType = "follow_up"
	EventModeChange    EventType = "mode_change"
	EventIdle          EventType = "idle"
	EventScroll        EventType = "scroll"
	EventEasterEgg     EventType = "easter_egg"
	EventDialogClosed  EventType = "dialog_closed"
	EventFarewell      EventType = "farewell"
	EventChatSubmitted EventType = "chat_submitted"
	EventChatReply     EventType = "chat_reply"
)

// Event is an engine update for observers (logging, tracing, tests).
type Event struct {
	Type    EventType
	Trigger model.Trigger
	Channel Channel
	Tier    Tier
	Text    string
	Mode    model.Mode
	At      time.Time
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

func (engine *Engine) emitLocked(event Event) {
	event.Mode = engine.mode
	event.At = engine.scheduler.Now()
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
