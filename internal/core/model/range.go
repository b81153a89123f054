package model

import "time"

// Rand is the subset of a random source needed to sample a Range.
type Rand interface {
	Int63n(n int64) int64
}

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Millis builds a Range from millisecond bounds.
func Millis(min, max int) Range {
	return Range{
		Min: time.Duration(min) * time.Millisecond,
		Max: time.Duration(max) * time.Millisecond,
	}
}

// Random returns a random duration in [Min, Max).
func (value Range) Random(rng Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}
