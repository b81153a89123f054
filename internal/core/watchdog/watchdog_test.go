package watchdog

import (
	"testing"
	"time"

	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	epoch  = time.Date(2024, 12, 24, 9, 0, 0, 0, time.UTC)
	window = model.Millis(5000, 10000)
)

func TestFiresWithinWindow(t *testing.T) {
	for _, offset := range []int64{0, int64(2500 * time.Millisecond), int64(5*time.Second) - 1} {
		clock := schedule.NewManual(epoch)
		fired := 0
		dog := New(clock, chance.NewScript().PushInts(offset), window, func() { fired++ })

		dog.Reset()
		clock.Advance(5*time.Second - time.Nanosecond)
		if offset == 0 {
			assert.Equal(t, 0, fired)
			clock.Advance(time.Nanosecond)
			assert.Equal(t, 1, fired)
			continue
		}
		assert.Equal(t, 0, fired, "never before 5s")
		clock.Advance(5 * time.Second)
		assert.Equal(t, 1, fired, "always by 10s")
		assert.Equal(t, StateFired, dog.State())
	}
}

func TestResetSupersedesPendingTimer(t *testing.T) {
	clock := schedule.NewManual(epoch)
	fired := 0
	dog := New(clock, chance.NewScript(), window, func() { fired++ })

	dog.Reset()
	clock.Advance(4 * time.Second)
	dog.Reset()
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(4 * time.Second)
	assert.Equal(t, 0, fired)
	clock.Advance(time.Second)
	assert.Equal(t, 1, fired)
}

func TestFiredDoesNotRearm(t *testing.T) {
	clock := schedule.NewManual(epoch)
	fired := 0
	dog := New(clock, chance.NewScript(), window, func() { fired++ })

	dog.Reset()
	clock.Advance(time.Minute)
	assert.Equal(t, 1, fired)
	assert.Zero(t, clock.Pending())
	assert.Equal(t, StateFired, dog.State())
}

func TestStopIsFinal(t *testing.T) {
	clock := schedule.NewManual(epoch)
	fired := 0
	dog := New(clock, chance.NewScript(), window, func() { fired++ })
	events := dog.Subscribe(4)

	dog.Reset()
	dog.Stop()
	dog.Reset()
	clock.Advance(time.Minute)

	assert.Equal(t, 0, fired)
	assert.Equal(t, StateStopped, dog.State())

	first, ok := <-events
	require.True(t, ok)
	assert.Equal(t, EventArmed, first.Type)
	assert.Equal(t, 5*time.Second, first.Delay)
	_, ok = <-events
	assert.False(t, ok, "channel closed on stop")
}

func TestEventsAndOnFireOrdering(t *testing.T) {
	clock := schedule.NewManual(epoch)
	var dog *Watchdog
	dog = New(clock, chance.NewScript(), window, func() {
		// onFire may call back into the watchdog.
		dog.Reset()
	})
	events := dog.Subscribe(8)

	dog.Reset()
	clock.Advance(5 * time.Second)

	assert.Equal(t, EventArmed, (<-events).Type)
	fired := <-events
	assert.Equal(t, EventFired, fired.Type)
	assert.Equal(t, epoch.Add(5*time.Second), fired.At)
	assert.Equal(t, EventArmed, (<-events).Type)
	assert.Equal(t, StateArmed, dog.State())
}

func TestUpdateWindow(t *testing.T) {
	clock := schedule.NewManual(epoch)
	fired := 0
	dog := New(clock, chance.NewScript(), window, func() { fired++ })
	dog.UpdateWindow(model.Millis(100, 200))

	dog.Reset()
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, fired)
}
