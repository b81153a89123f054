// Package engine is the ambient engagement engine. It decides when to surface
// an apology, which one, and on which surface, and it owns the mode flags and
// every timer that drives unprompted reactions.
package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"sorrybot/internal/content"
	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/core/watchdog"
)

// Options contains runtime dependencies for Engine.
type Options struct {
	Scheduler schedule.Scheduler
	Random    chance.Source
	Logger    *slog.Logger
}

type easterEgg struct {
	count int
	last  time.Time
}

// Engine is the session context shared by every component of one UI session.
// All state is guarded by mu; port calls are collected under the lock and run
// after it is released, because views may call back into the engine.
type Engine struct {
	mu        sync.Mutex
	config    model.EngineConfig
	pools     content.Pools
	ports     Ports
	scheduler schedule.Scheduler
	rng       chance.Source
	logger    *slog.Logger
	watchdog  *watchdog.Watchdog

	mode       model.Mode
	dialogOpen bool
	reacting   bool
	confetti   bool
	version    uint64
	lastScroll time.Time
	egg        easterEgg

	avatarSlot   schedule.Slot
	confettiSlot schedule.Slot
	followUps    schedule.Group

	chatSeq    uint64
	chatCancel context.CancelFunc

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	closed  bool
	events  []chan Event
}

// New creates an Engine. It fails when the apology pools cannot be sampled.
func New(config model.EngineConfig, pools content.Pools, ports Ports, options Options) (*Engine, error) {
	if err := pools.Validate(); err != nil {
		return nil, err
	}
	if options.Scheduler == nil {
		options.Scheduler = schedule.System{}
	}
	if options.Random == nil {
		options.Random = chance.New(0)
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	config = config.Normalized()

	ctx, cancel := context.WithCancel(context.Background())
	engine := &Engine{
		config:    config,
		pools:     pools,
		ports:     ports.withDefaults(),
		scheduler: options.Scheduler,
		rng:       options.Random,
		logger:    options.Logger,
		ctx:       ctx,
		cancel:    cancel,
	}
	engine.watchdog = watchdog.New(options.Scheduler, options.Random, config.IdleWindow, engine.idleFired)
	return engine, nil
}

// Start renders the initial scene and arms the idle watchdog.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.started || engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.started = true
	var fx effects
	engine.renderLocked(&fx)
	fx.add(engine.watchdog.Reset)
	engine.mu.Unlock()

	fx.run()
	engine.logger.Info("engine started")
}

// Close tears the session down. No timer fires afterwards and every
// operation becomes a no-op.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.avatarSlot.Cancel()
	engine.confettiSlot.Cancel()
	engine.followUps.CancelAll()
	if engine.chatCancel != nil {
		engine.chatCancel()
		engine.chatCancel = nil
	}
	engine.cancel()
	dialogOpen := engine.dialogOpen
	engine.dialogOpen = false
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	engine.watchdog.Stop()
	if dialogOpen {
		engine.ports.Dialog.Close()
	}
	for _, ch := range events {
		close(ch)
	}
	engine.logger.Info("engine closed")
}

// UpdateConfig swaps thresholds, durations and speeds at runtime.
func (engine *Engine) UpdateConfig(config model.EngineConfig) {
	config = config.Normalized()
	engine.mu.Lock()
	engine.config = config
	engine.mu.Unlock()
	engine.watchdog.UpdateWindow(config.IdleWindow)
}

// Config returns the active configuration.
func (engine *Engine) Config() model.EngineConfig {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.config
}

// Pools returns the content the engine samples from.
func (engine *Engine) Pools() content.Pools {
	return engine.pools
}

// Mode returns a snapshot of the mode flags.
func (engine *Engine) Mode() model.Mode {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.mode
}

// Avatar returns the current avatar state.
func (engine *Engine) Avatar() AvatarState {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.avatarStateLocked()
}

// DialogOpen reports whether the engine believes a blocking dialog is open.
func (engine *Engine) DialogOpen() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.dialogOpen
}

// ConfettiVisible reports whether the confetti window is open.
func (engine *Engine) ConfettiVisible() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.confetti
}

// IdleState exposes the watchdog state.
func (engine *Engine) IdleState() watchdog.State {
	return engine.watchdog.State()
}

// pulseLocked sets the avatar reacting and re-arms its single clear timer.
func (engine *Engine) pulseLocked(fx *effects) {
	engine.reacting = true
	engine.avatarSlot.Arm(engine.scheduler, engine.config.AvatarPulse, engine.clearPulse)
	engine.renderLocked(fx)
}

func (engine *Engine) clearPulse(token uint64) {
	engine.mu.Lock()
	if engine.closed || !engine.avatarSlot.Claim(token) {
		engine.mu.Unlock()
		return
	}
	engine.reacting = false
	var fx effects
	engine.renderLocked(&fx)
	engine.mu.Unlock()
	fx.run()
}

func (engine *Engine) showConfettiLocked(fx *effects) {
	wasVisible := engine.confetti
	engine.confetti = true
	engine.confettiSlot.Arm(engine.scheduler, engine.config.ConfettiWindow, engine.hideConfetti)
	if !wasVisible {
		fx.add(func() { engine.ports.Scene.ShowConfetti(true) })
	}
}

func (engine *Engine) hideConfetti(token uint64) {
	engine.mu.Lock()
	if engine.closed || !engine.confettiSlot.Claim(token) {
		engine.mu.Unlock()
		return
	}
	engine.confetti = false
	engine.mu.Unlock()
	engine.ports.Scene.ShowConfetti(false)
}

func (engine *Engine) renderLocked(fx *effects) {
	engine.version++
	state := engine.avatarStateLocked()
	fx.add(func() { engine.ports.Scene.RenderAvatar(state) })
}

func (engine *Engine) avatarStateLocked() AvatarState {
	state := AvatarState{
		Mode:     engine.mode,
		Reacting: engine.reacting,
		Version:  engine.version,
	}
	if engine.reacting {
		state.Bubble = avatarBubble.pick(engine.mode)
	}
	return state
}

func (engine *Engine) show(fx *effects, notification Notification) {
	fx.add(func() { engine.ports.Notifier.Show(notification) })
}

func (engine *Engine) typingSpeed() model.Range {
	if engine.mode.Panic {
		return engine.config.Typing.Panic
	}
	return engine.config.Typing.Normal
}

// effects are port calls deferred until the engine lock is released.
type effects []func()

func (fx *effects) add(fn func()) {
	*fx = append(*fx, fn)
}

func (fx effects) run() {
	for _, fn := range fx {
		fn()
	}
}
