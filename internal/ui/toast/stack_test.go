package toast

import (
	"testing"
	"time"

	"sorrybot/internal/core/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 12, 24, 9, 0, 0, 0, time.UTC)

func TestPushAssignsUUIDs(t *testing.T) {
	stack := NewStack(0)
	id, replaced, evicted := stack.Push(engine.Notification{Text: "sorry", Duration: time.Second}, now)

	assert.False(t, replaced)
	assert.Empty(t, evicted)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Second), stack.Entries()[0].Expires)
}

func TestStableIDReplacesInPlace(t *testing.T) {
	stack := NewStack(3)
	stack.Push(engine.Notification{Text: "first"}, now)
	stack.Push(engine.Notification{ID: engine.ScrollSlotID, Text: "scroll one"}, now)
	stack.Push(engine.Notification{Text: "third"}, now)

	id, replaced, _ := stack.Push(engine.Notification{ID: engine.ScrollSlotID, Text: "scroll two"}, now)
	assert.True(t, replaced)
	assert.Equal(t, engine.ScrollSlotID, id)

	entries := stack.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "scroll two", entries[1].Notification.Text)
}

func TestLimitEvictsOldest(t *testing.T) {
	stack := NewStack(2)
	first, _, _ := stack.Push(engine.Notification{Text: "a"}, now)
	stack.Push(engine.Notification{Text: "b"}, now)
	_, _, evicted := stack.Push(engine.Notification{Text: "c"}, now)

	assert.Equal(t, []string{first}, evicted)
	assert.Equal(t, 2, stack.Len())
}

func TestExpiredAndClear(t *testing.T) {
	stack := NewStack(5)
	short, _, _ := stack.Push(engine.Notification{Text: "short", Duration: 3 * time.Second}, now)
	long, _, _ := stack.Push(engine.Notification{Text: "long", Duration: 6 * time.Second}, now)

	assert.Empty(t, stack.Expired(now.Add(2*time.Second)))
	assert.Equal(t, []string{short}, stack.Expired(now.Add(3*time.Second)))
	assert.True(t, stack.Remove(long))
	assert.False(t, stack.Remove(long))

	stack.Push(engine.Notification{Text: "again"}, now)
	assert.Len(t, stack.Clear(), 1)
	assert.Zero(t, stack.Len())
}
