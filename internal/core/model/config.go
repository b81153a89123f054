package model

import "time"

// TypingSpeeds groups the per-character delay ranges used by the typewriter.
type TypingSpeeds struct {
	Normal        Range
	Panic         Range
	PanicSwitch   Range
	HolidaySwitch Range
}

// ToastDurations defines how long each kind of toast stays on screen.
type ToastDurations struct {
	Apology    time.Duration
	Transition time.Duration
	Debris     time.Duration
	Idle       time.Duration
	Scroll     time.Duration
	Farewell   time.Duration
}

// EngineConfig contains runtime settings for the engagement engine.
type EngineConfig struct {
	// DialogThreshold: a draw strictly above it selects the dialog channel.
	DialogThreshold float64
	// ExistentialThreshold: a draw strictly below it selects the existential tier.
	ExistentialThreshold float64
	// ScrollThreshold: a draw strictly above it fires the scroll apology.
	ScrollThreshold float64

	ScrollMinOffset float64
	ScrollCooldown  time.Duration

	IdleWindow Range

	AvatarPulse    time.Duration
	FollowUpDelay  time.Duration
	ConfettiWindow time.Duration
	FarewellDelay  time.Duration

	EasterEggWindow time.Duration
	EasterEggTarget int

	Toasts ToastDurations
	Typing TypingSpeeds
}

// DefaultEngineConfig returns the tuned defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DialogThreshold:      0.85,
		ExistentialThreshold: 0.10,
		ScrollThreshold:      0.5,
		ScrollMinOffset:      50,
		ScrollCooldown:       4 * time.Second,
		IdleWindow: Range{
			Min: 5 * time.Second,
			Max: 10 * time.Second,
		},
		AvatarPulse:     2 * time.Second,
		FollowUpDelay:   1500 * time.Millisecond,
		ConfettiWindow:  4 * time.Second,
		FarewellDelay:   500 * time.Millisecond,
		EasterEggWindow: 500 * time.Millisecond,
		EasterEggTarget: 5,
		Toasts: ToastDurations{
			Apology:    5 * time.Second,
			Transition: 4 * time.Second,
			Debris:     3 * time.Second,
			Idle:       6 * time.Second,
			Scroll:     3 * time.Second,
			Farewell:   4500 * time.Millisecond,
		},
		Typing: TypingSpeeds{
			Normal:        Millis(10, 40),
			Panic:         Millis(5, 20),
			PanicSwitch:   Millis(10, 30),
			HolidaySwitch: Millis(20, 40),
		},
	}
}

// Normalized fills zero values with defaults.
func (config EngineConfig) Normalized() EngineConfig {
	defaults := DefaultEngineConfig()
	if config.DialogThreshold <= 0 {
		config.DialogThreshold = defaults.DialogThreshold
	}
	if config.ExistentialThreshold <= 0 {
		config.ExistentialThreshold = defaults.ExistentialThreshold
	}
	if config.ScrollThreshold <= 0 {
		config.ScrollThreshold = defaults.ScrollThreshold
	}
	if config.ScrollCooldown <= 0 {
		config.ScrollCooldown = defaults.ScrollCooldown
	}
	if config.IdleWindow.Max <= 0 {
		config.IdleWindow = defaults.IdleWindow
	}
	if config.AvatarPulse <= 0 {
		config.AvatarPulse = defaults.AvatarPulse
	}
	if config.FollowUpDelay <= 0 {
		config.FollowUpDelay = defaults.FollowUpDelay
	}
	if config.ConfettiWindow <= 0 {
		config.ConfettiWindow = defaults.ConfettiWindow
	}
	if config.FarewellDelay <= 0 {
		config.FarewellDelay = defaults.FarewellDelay
	}
	if config.EasterEggWindow <= 0 {
		config.EasterEggWindow = defaults.EasterEggWindow
	}
	if config.EasterEggTarget <= 0 {
		config.EasterEggTarget = defaults.EasterEggTarget
	}
	if config.Toasts == (ToastDurations{}) {
		config.Toasts = defaults.Toasts
	}
	if config.Typing == (TypingSpeeds{}) {
		config.Typing = defaults.Typing
	}
	return config
}
