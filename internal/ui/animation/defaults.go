package animation

import "time"

// DefaultConfig returns the avatar's idle rhythm.
func DefaultConfig() Config {
	return Config{
		BlinkEvery:  4 * time.Second,
		BlinkFor:    200 * time.Millisecond,
		GlanceEvery: 3 * time.Second,
		GlanceFor:   800 * time.Millisecond,
	}
}
