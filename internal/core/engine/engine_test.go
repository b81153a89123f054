package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"sorrybot/internal/content"
	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/core/watchdog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 12, 24, 9, 0, 0, 0, time.UTC)

type recorder struct {
	mu            sync.Mutex
	toasts        []Notification
	dismissals    int
	dialogs       []DialogMessage
	rejectDialogs bool
	sounds        []string
	avatars       []AvatarState
	confetti      []bool
	pending       []bool
	replies       []string
	replied       chan struct{}
}

func newRecorder() *recorder {
	return &recorder{replied: make(chan struct{}, 8)}
}

func (rec *recorder) Show(notification Notification) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.toasts = append(rec.toasts, notification)
}

func (rec *recorder) DismissAll() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.dismissals++
	rec.toasts = nil
}

func (rec *recorder) Open(message DialogMessage) bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.rejectDialogs {
		return false
	}
	rec.dialogs = append(rec.dialogs, message)
	return true
}

func (rec *recorder) Close() {}

func (rec *recorder) sound(name string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.sounds = append(rec.sounds, name)
}

func (rec *recorder) PlayClick() { rec.sound("click") }

func (rec *recorder) PlayApology(panic bool) {
	if panic {
		rec.sound("apology-panic")
		return
	}
	rec.sound("apology")
}

func (rec *recorder) PlayThemeSwitch(toPanic bool) {
	if toPanic {
		rec.sound("switch-panic")
		return
	}
	rec.sound("switch")
}

func (rec *recorder) RenderAvatar(state AvatarState) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.avatars = append(rec.avatars, state)
}

func (rec *recorder) ShowConfetti(visible bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.confetti = append(rec.confetti, visible)
}

func (rec *recorder) SetPending(pending bool) {
	rec.mu.Lock()
	rec.pending = append(rec.pending, pending)
	rec.mu.Unlock()
	if !pending {
		rec.replied <- struct{}{}
	}
}

func (rec *recorder) ShowReply(reply string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.replies = append(rec.replies, reply)
}

func (rec *recorder) snapshotToasts() []Notification {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Notification(nil), rec.toasts...)
}

func (rec *recorder) snapshotSounds() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.sounds...)
}

func (rec *recorder) lastAvatar() AvatarState {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.avatars) == 0 {
		return AvatarState{}
	}
	return rec.avatars[len(rec.avatars)-1]
}

type generatorFunc func(ctx context.Context, input string) (string, error)

func (fn generatorFunc) Generate(ctx context.Context, input string) (string, error) {
	return fn(ctx, input)
}

type harness struct {
	engine *Engine
	clock  *schedule.Manual
	rng    *chance.Script
	rec    *recorder
}

func newHarness(t *testing.T, generator Generator) *harness {
	t.Helper()
	clock := schedule.NewManual(epoch)
	rng := chance.NewScript()
	rec := newRecorder()
	engine, err := New(model.DefaultEngineConfig(), content.Default(), Ports{
		Notifier:  rec,
		Dialog:    rec,
		Sound:     rec,
		Scene:     rec,
		Chat:      rec,
		Generator: generator,
	}, Options{Scheduler: clock, Random: rng})
	require.NoError(t, err)
	t.Cleanup(engine.Close)
	return &harness{engine: engine, clock: clock, rng: rng, rec: rec}
}

func TestNewRejectsEmptyPools(t *testing.T) {
	pools := content.Default()
	pools.Existential = nil
	_, err := New(model.DefaultEngineConfig(), pools, Ports{}, Options{})
	require.ErrorIs(t, err, content.ErrEmptyPool)
}

func TestDispatchStandardToast(t *testing.T) {
	h := newHarness(t, nil)
	h.rng.PushFloats(0.5, 0.5).PushInts(2)

	h.engine.Dispatch(model.TriggerHeroPrimary)

	toasts := h.rec.snapshotToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, KindApology, toasts[0].Kind)
	assert.Equal(t, content.Default().Standard[2], toasts[0].Text)
	assert.Equal(t, 5*time.Second, toasts[0].Duration)
	assert.Equal(t, model.Millis(10, 40), toasts[0].Speed)
	assert.Equal(t, model.ThemeDefault, toasts[0].Theme)
	assert.Equal(t, []string{"apology"}, h.rec.snapshotSounds())
	assert.True(t, h.engine.Avatar().Reacting)
	assert.Equal(t, watchdog.StateArmed, h.engine.IdleState())
	assert.False(t, h.engine.ConfettiVisible())
}

func TestDispatchDialogAboveThreshold(t *testing.T) {
	h := newHarness(t, nil)
	h.rng.PushFloats(0.9, 0.5)

	h.engine.Dispatch(model.TriggerFeatureCard)

	assert.Empty(t, h.rec.snapshotToasts())
	require.Len(t, h.rec.dialogs, 1)
	assert.Equal(t, "I'm Terrible.", h.rec.dialogs[0].Title)
	assert.True(t, h.engine.DialogOpen())
}

func TestDispatchFallsBackToToastWhileDialogOpen(t *testing.T) {
	h := newHarness(t, nil)
	h.rng.PushFloats(0.9, 0.5, 0.99, 0.5)

	h.engine.Dispatch(model.TriggerHeroPrimary)
	h.engine.Dispatch(model.TriggerHeroPrimary)

	assert.Len(t, h.rec.dialogs, 1)
	assert.Len(t, h.rec.snapshotToasts(), 1)
}

func TestRejectedDialogIsDroppedSilently(t *testing.T) {
	h := newHarness(t, nil)
	h.rec.rejectDialogs = true
	h.rng.PushFloats(0.95, 0.5)

	assert.NotPanics(t, func() { h.engine.Dispatch(model.TriggerHeroSecondary) })
	assert.Empty(t, h.rec.snapshotToasts())
}

func TestExistentialDispatchAddsConfettiAndFollowUp(t *testing.T) {
	h := newHarness(t, nil)
	h.rng.PushFloats(0.5, 0.05)

	h.engine.Dispatch(model.TriggerHeroPrimary)

	toasts := h.rec.snapshotToasts()
	require.Len(t, toasts, 1)
	assert.Contains(t, content.Default().Existential, toasts[0].Text)
	assert.Equal(t, "🌌", toasts[0].Icon)
	assert.True(t, h.engine.ConfettiVisible())

	h.clock.Advance(1499 * time.Millisecond)
	assert.Len(t, h.rec.snapshotToasts(), 1)
	h.clock.Advance(time.Millisecond)
	toasts = h.rec.snapshotToasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, KindDebris, toasts[1].Kind)
	assert.Equal(t, "I'm sorry for the glitter mess.", toasts[1].Text)
	assert.Equal(t, 3*time.Second, toasts[1].Duration)

	h.clock.Advance(2500 * time.Millisecond)
	assert.False(t, h.engine.ConfettiVisible())
	assert.Equal(t, []bool{true, false}, h.rec.confetti)
}

func TestPanicModeShoutsApologies(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.TogglePanic()

	toasts := h.rec.snapshotToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, panicOnText, toasts[0].Text)
	assert.Equal(t, KindTransition, toasts[0].Kind)
	assert.Equal(t, model.ThemePanic, toasts[0].Theme)
	assert.Equal(t, 1, h.rec.dismissals)
	assert.Contains(t, h.rec.snapshotSounds(), "switch-panic")

	h.rng.PushFloats(0.5, 0.5).PushInts(0)
	h.engine.Dispatch(model.TriggerHeroPrimary)

	toasts = h.rec.snapshotToasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, strings.ToUpper(content.Default().Standard[0])+" I AM SO SORRY!!!!", toasts[1].Text)
	assert.Equal(t, model.Millis(5, 20), toasts[1].Speed)
	assert.Equal(t, "😱", toasts[1].Icon)
}

func TestTogglePanicTwiceRestoresMode(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.TogglePanic()
	h.engine.TogglePanic()

	assert.Equal(t, model.Mode{}, h.engine.Mode())
	toasts := h.rec.snapshotToasts()
	require.Len(t, toasts, 1, "each toggle clears previous toasts")
	assert.Equal(t, panicOffText, toasts[0].Text)
}

func TestPanicOverridesHolidayTheme(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.ToggleHoliday()
	h.engine.TogglePanic()

	mode := h.engine.Mode()
	assert.True(t, mode.Holiday)
	assert.False(t, mode.EffectiveHoliday())
	assert.Equal(t, model.ThemePanic, mode.Theme())

	h.engine.TogglePanic()
	assert.Equal(t, model.ThemeHoliday, h.engine.Mode().Theme())
}

func TestHolidayToggleKeepsToasts(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.Dispatch(model.TriggerHeroPrimary)
	h.engine.ToggleHoliday()

	toasts := h.rec.snapshotToasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, holidayOnText, toasts[1].Text)
	assert.Equal(t, model.Millis(20, 40), toasts[1].Speed)
	assert.Equal(t, 0, h.rec.dismissals)
}

func TestIdleApologyAfterInactivity(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.Start()

	h.clock.Advance(4999 * time.Millisecond)
	assert.Empty(t, h.rec.snapshotToasts())
	h.clock.Advance(time.Millisecond)

	toasts := h.rec.snapshotToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, KindIdle, toasts[0].Kind)
	assert.Equal(t, "Are you still there?", toasts[0].Title)
	assert.Equal(t, 6*time.Second, toasts[0].Duration)
	assert.Equal(t, watchdog.StateFired, h.engine.IdleState())

	h.clock.Advance(time.Minute)
	assert.Len(t, h.rec.snapshotToasts(), 1, "idle does not re-arm itself")
}

func TestActivityPostponesIdleApology(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.Start()

	for i := 0; i < 5; i++ {
		h.clock.Advance(4 * time.Second)
		h.engine.PointerMoved()
	}
	h.engine.KeyPressed()
	h.clock.Advance(4 * time.Second)
	assert.Empty(t, h.rec.snapshotToasts())
}

func TestClickedPlaysCueOnlyForInteractiveTargets(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.Clicked(false)
	h.engine.Clicked(true)
	assert.Equal(t, []string{"click"}, h.rec.snapshotSounds())
	assert.Equal(t, watchdog.StateArmed, h.engine.IdleState())
}

func TestScrollCooldown(t *testing.T) {
	h := newHarness(t, nil)
	h.rng.PushFloats(0.9, 0.9, 0.9)

	h.engine.Scrolled(40)
	assert.Empty(t, h.rec.snapshotToasts(), "shallow scrolls never apologize")

	h.engine.Scrolled(200)
	toasts := h.rec.snapshotToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, ScrollSlotID, toasts[0].ID)
	assert.Equal(t, KindScroll, toasts[0].Kind)

	h.clock.Advance(4 * time.Second)
	h.engine.Scrolled(300)
	assert.Len(t, h.rec.snapshotToasts(), 1, "cooldown is exclusive")

	h.clock.Advance(time.Millisecond)
	h.engine.Scrolled(300)
	assert.Len(t, h.rec.snapshotToasts(), 2)
}

func TestScrollBelowThresholdKeepsCooldownOpen(t *testing.T) {
	h := newHarness(t, nil)
	h.rng.PushFloats(0.3, 0.9)

	h.engine.Scrolled(200)
	assert.Empty(t, h.rec.snapshotToasts())
	h.engine.Scrolled(200)
	assert.Len(t, h.rec.snapshotToasts(), 1)
}

func TestAvatarPulseClearsAfterTwoSeconds(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.Dispatch(model.TriggerHeroPrimary)
	assert.Equal(t, "I'm so sorry!", h.rec.lastAvatar().Bubble)

	h.clock.Advance(time.Second)
	h.engine.Dispatch(model.TriggerHeroPrimary)
	h.clock.Advance(1500 * time.Millisecond)
	assert.True(t, h.engine.Avatar().Reacting, "second pulse re-arms the clear")

	h.clock.Advance(500 * time.Millisecond)
	assert.False(t, h.engine.Avatar().Reacting)
	last := h.rec.lastAvatar()
	assert.False(t, last.Reacting)
	assert.Empty(t, last.Bubble)
}

func TestHeartTappedUnlocksSecret(t *testing.T) {
	h := newHarness(t, nil)
	for i := 0; i < 4; i++ {
		h.engine.HeartTapped()
		h.clock.Advance(400 * time.Millisecond)
	}
	assert.Equal(t, 4, h.engine.HeartCount())
	assert.Empty(t, h.rec.dialogs)

	h.engine.HeartTapped()
	require.Len(t, h.rec.dialogs, 1)
	assert.Equal(t, easterEggText, h.rec.dialogs[0].Text)
	assert.Equal(t, model.ThemePanic, h.rec.dialogs[0].Theme)
	assert.Equal(t, 0, h.engine.HeartCount())
	assert.Contains(t, h.rec.snapshotSounds(), "apology-panic")
}

func TestHeartTapGapRestartsCount(t *testing.T) {
	h := newHarness(t, nil)
	for i := 0; i < 3; i++ {
		h.engine.HeartTapped()
		h.clock.Advance(100 * time.Millisecond)
	}
	h.clock.Advance(time.Second)
	h.engine.HeartTapped()
	assert.Equal(t, 1, h.engine.HeartCount())
}

func TestDialogClosedSchedulesFarewell(t *testing.T) {
	h := newHarness(t, nil)
	h.rng.PushFloats(0.9, 0.5)
	h.engine.Dispatch(model.TriggerHeroPrimary)
	require.True(t, h.engine.DialogOpen())

	h.engine.DialogClosed()
	assert.False(t, h.engine.DialogOpen())
	h.clock.Advance(499 * time.Millisecond)
	assert.Empty(t, h.rec.snapshotToasts())
	h.clock.Advance(time.Millisecond)

	toasts := h.rec.snapshotToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, KindFarewell, toasts[0].Kind)
	assert.Equal(t, "I'll miss you. Sorry, that was clingy.", toasts[0].Text)
}

func TestSubmitBlankInputDispatches(t *testing.T) {
	h := newHarness(t, nil)
	events := h.engine.Subscribe(4)

	h.engine.Submit("   ")

	event := <-events
	assert.Equal(t, EventDispatch, event.Type)
	assert.Equal(t, model.TriggerEmptyInput, event.Trigger)
	assert.Empty(t, h.rec.pending)
}

func TestSubmitShowsReply(t *testing.T) {
	h := newHarness(t, generatorFunc(func(_ context.Context, input string) (string, error) {
		return "sorry about " + input, nil
	}))

	h.engine.Submit("the weather")
	<-h.rec.replied

	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	assert.Equal(t, []string{"sorry about the weather"}, h.rec.replies)
	assert.Equal(t, []bool{true, false}, h.rec.pending)
}

func TestSubmitFailureUsesFallback(t *testing.T) {
	h := newHarness(t, generatorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("model offline")
	}))

	h.engine.Submit("hello")
	<-h.rec.replied

	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	assert.Equal(t, []string{ChatFallback}, h.rec.replies)
}

func TestNewerSubmissionSupersedesPending(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, generatorFunc(func(ctx context.Context, input string) (string, error) {
		if input == "first" {
			<-ctx.Done()
			return "", ctx.Err()
		}
		<-release
		return "reply to " + input, nil
	}))

	h.engine.Submit("first")
	h.engine.Submit("second")
	close(release)
	<-h.rec.replied

	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	assert.Equal(t, []string{"reply to second"}, h.rec.replies)
}

func TestCloseStopsEverything(t *testing.T) {
	h := newHarness(t, nil)
	events := h.engine.Subscribe(8)
	h.engine.Start()
	h.rng.PushFloats(0.5, 0.05)
	h.engine.Dispatch(model.TriggerHeroPrimary)
	before := len(h.rec.snapshotToasts())

	h.engine.Close()
	h.clock.Advance(time.Minute)
	h.engine.Dispatch(model.TriggerHeroPrimary)
	h.engine.TogglePanic()
	h.engine.HeartTapped()

	assert.Len(t, h.rec.snapshotToasts(), before)
	assert.Equal(t, watchdog.StateStopped, h.engine.IdleState())
	for range events {
	}
}

func TestSubscribeStampsModeAndTime(t *testing.T) {
	h := newHarness(t, nil)
	events := h.engine.Subscribe(4)
	h.clock.Advance(time.Second)

	h.engine.ToggleHoliday()

	event := <-events
	assert.Equal(t, EventModeChange, event.Type)
	assert.True(t, event.Mode.Holiday)
	assert.Equal(t, epoch.Add(time.Second), event.At)
}

func TestUpdateConfigChangesThresholds(t *testing.T) {
	h := newHarness(t, nil)
	config := model.DefaultEngineConfig()
	config.DialogThreshold = 0.2
	h.engine.UpdateConfig(config)
	h.rng.PushFloats(0.3, 0.5)

	h.engine.Dispatch(model.TriggerHeroTertiary)
	assert.Len(t, h.rec.dialogs, 1)
}

func TestHeadline(t *testing.T) {
	title, _ := Headline(model.Mode{Holiday: true})
	assert.Equal(t, "Season's Apologies.", title)
	title, _ = Headline(model.Mode{Holiday: true, Panic: true})
	assert.Equal(t, "I AM SO SORRY.", title)
}
