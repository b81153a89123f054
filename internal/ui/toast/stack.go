// Package toast renders the engine's ephemeral notifications as a stack of
// cards with a typewriter reveal.
package toast

import (
	"time"

	"sorrybot/internal/core/engine"

	"github.com/google/uuid"
)

// DefaultLimit is how many toasts stay visible at once.
const DefaultLimit = 5

// Entry is one visible toast.
type Entry struct {
	ID           string
	Notification engine.Notification
	Expires      time.Time
}

// Stack is the ordered list of visible toasts, oldest first. Toasts with a
// stable ID replace their previous instance in place. Not safe for
// concurrent use.
type Stack struct {
	limit   int
	entries []Entry
	newID   func() string
}

// NewStack returns a stack keeping at most limit toasts.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit, newID: uuid.NewString}
}

// Push adds notification at now. It returns the entry id, whether an
// existing entry was replaced, and the ids evicted to respect the limit.
func (stack *Stack) Push(notification engine.Notification, now time.Time) (id string, replaced bool, evicted []string) {
	entry := Entry{
		ID:           notification.ID,
		Notification: notification,
		Expires:      now.Add(notification.Duration),
	}
	if entry.ID != "" {
		for index := range stack.entries {
			if stack.entries[index].ID == entry.ID {
				stack.entries[index] = entry
				return entry.ID, true, nil
			}
		}
	} else {
		entry.ID = stack.newID()
	}

	stack.entries = append(stack.entries, entry)
	for len(stack.entries) > stack.limit {
		evicted = append(evicted, stack.entries[0].ID)
		stack.entries = stack.entries[1:]
	}
	return entry.ID, false, evicted
}

// Remove drops the entry with id, if present.
func (stack *Stack) Remove(id string) bool {
	for index, entry := range stack.entries {
		if entry.ID == id {
			stack.entries = append(stack.entries[:index], stack.entries[index+1:]...)
			return true
		}
	}
	return false
}

// Expired removes and returns the ids whose deadline is not after now.
func (stack *Stack) Expired(now time.Time) []string {
	var expired []string
	kept := stack.entries[:0]
	for _, entry := range stack.entries {
		if entry.Expires.After(now) {
			kept = append(kept, entry)
			continue
		}
		expired = append(expired, entry.ID)
	}
	stack.entries = kept
	return expired
}

// Clear removes everything and returns the removed ids.
func (stack *Stack) Clear() []string {
	ids := make([]string, 0, len(stack.entries))
	for _, entry := range stack.entries {
		ids = append(ids, entry.ID)
	}
	stack.entries = nil
	return ids
}

// Entries returns a copy of the visible entries, oldest first.
func (stack *Stack) Entries() []Entry {
	return append([]Entry(nil), stack.entries...)
}

// Len returns the number of visible toasts.
func (stack *Stack) Len() int {
	return len(stack.entries)
}
