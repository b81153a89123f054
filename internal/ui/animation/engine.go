// Package animation drives the avatar's idle motions (blinking and nervous
// glances) and merges them with the reaction state pushed by the engine.
package animation

import (
	"sync"
	"time"

	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/schedule"
)

// Config contains animation timing values.
type Config struct {
	BlinkEvery  time.Duration
	BlinkFor    time.Duration
	GlanceEvery time.Duration
	GlanceFor   time.Duration
}

// Avatar manages the avatar pose. onPose runs outside the lock and only
// when the pose changes.
type Avatar struct {
	mu        sync.Mutex
	config    Config
	scheduler schedule.Scheduler
	onPose    func(Pose)

	state    engine.AvatarState
	blinking bool
	glancing bool
	pose     Pose
	running  bool

	blinkTick  schedule.Slot
	blinkEnd   schedule.Slot
	glanceTick schedule.Slot
	glanceEnd  schedule.Slot
}

// New creates an avatar animator.
func New(config Config, scheduler schedule.Scheduler, onPose func(Pose)) *Avatar {
	if scheduler == nil {
		scheduler = schedule.System{}
	}
	return &Avatar{
		config:    config,
		scheduler: scheduler,
		onPose:    onPose,
		pose:      Pose{Frame: FrameCalm},
	}
}

// Start begins the idle loops and publishes the current pose.
func (avatar *Avatar) Start() {
	avatar.mu.Lock()
	if avatar.running {
		avatar.mu.Unlock()
		return
	}
	avatar.running = true
	avatar.blinkTick.Arm(avatar.scheduler, avatar.config.BlinkEvery, avatar.blink)
	avatar.glanceTick.Arm(avatar.scheduler, avatar.config.GlanceEvery, avatar.glance)
	pose := avatar.pose
	avatar.mu.Unlock()

	avatar.publish(pose)
}

// Stop terminates any active animation.
func (avatar *Avatar) Stop() {
	avatar.mu.Lock()
	defer avatar.mu.Unlock()
	avatar.running = false
	avatar.blinkTick.Cancel()
	avatar.blinkEnd.Cancel()
	avatar.glanceTick.Cancel()
	avatar.glanceEnd.Cancel()
}

// Update applies an engine avatar state. States older than the last one
// applied are ignored.
func (avatar *Avatar) Update(state engine.AvatarState) {
	avatar.mu.Lock()
	if state.Version < avatar.state.Version {
		avatar.mu.Unlock()
		return
	}
	avatar.state = state
	if state.Mode.Panic || state.Reacting {
		avatar.glancing = false
		avatar.glanceEnd.Cancel()
	}
	pose, changed := avatar.refreshLocked()
	avatar.mu.Unlock()

	if changed {
		avatar.publish(pose)
	}
}

// Pose returns the current pose.
func (avatar *Avatar) Pose() Pose {
	avatar.mu.Lock()
	defer avatar.mu.Unlock()
	return avatar.pose
}

func (avatar *Avatar) blink(token uint64) {
	avatar.mu.Lock()
	if !avatar.running || !avatar.blinkTick.Claim(token) {
		avatar.mu.Unlock()
		return
	}
	avatar.blinking = true
	avatar.blinkEnd.Arm(avatar.scheduler, avatar.config.BlinkFor, avatar.endBlink)
	avatar.blinkTick.Arm(avatar.scheduler, avatar.config.BlinkEvery, avatar.blink)
	pose, changed := avatar.refreshLocked()
	avatar.mu.Unlock()

	if changed {
		avatar.publish(pose)
	}
}

func (avatar *Avatar) endBlink(token uint64) {
	avatar.mu.Lock()
	if !avatar.blinkEnd.Claim(token) {
		avatar.mu.Unlock()
		return
	}
	avatar.blinking = false
	pose, changed := avatar.refreshLocked()
	avatar.mu.Unlock()

	if changed {
		avatar.publish(pose)
	}
}

func (avatar *Avatar) glance(token uint64) {
	avatar.mu.Lock()
	if !avatar.running || !avatar.glanceTick.Claim(token) {
		avatar.mu.Unlock()
		return
	}
	avatar.glanceTick.Arm(avatar.scheduler, avatar.config.GlanceEvery, avatar.glance)
	// Panic and reactions already look nervous enough.
	if avatar.state.Mode.Panic || avatar.state.Reacting {
		avatar.mu.Unlock()
		return
	}
	avatar.glancing = true
	avatar.glanceEnd.Arm(avatar.scheduler, avatar.config.GlanceFor, avatar.endGlance)
	pose, changed := avatar.refreshLocked()
	avatar.mu.Unlock()

	if changed {
		avatar.publish(pose)
	}
}

func (avatar *Avatar) endGlance(token uint64) {
	avatar.mu.Lock()
	if !avatar.glanceEnd.Claim(token) {
		avatar.mu.Unlock()
		return
	}
	avatar.glancing = false
	pose, changed := avatar.refreshLocked()
	avatar.mu.Unlock()

	if changed {
		avatar.publish(pose)
	}
}

func (avatar *Avatar) refreshLocked() (Pose, bool) {
	pose := Pose{
		Frame:   frameFor(avatar.state, avatar.blinking, avatar.glancing),
		Holiday: avatar.state.Mode.EffectiveHoliday(),
		Bubble:  avatar.state.Bubble,
	}
	if pose == avatar.pose {
		return pose, false
	}
	avatar.pose = pose
	return pose, true
}

func (avatar *Avatar) publish(pose Pose) {
	if avatar.onPose != nil {
		avatar.onPose(pose)
	}
}
