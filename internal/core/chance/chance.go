// Package chance provides the random source used for every randomized branch
// of the engine, so tests can replace it with a scripted sequence.
package chance

import (
	"math/rand"
	"sync"
	"time"
)

// Source produces random values.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
	// Int63n returns a value in [0, n).
	Int63n(n int64) int64
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a goroutine-safe Source seeded with seed. A zero seed uses the clock.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (source *lockedSource) Float64() float64 {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.rng.Float64()
}

func (source *lockedSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.rng.Intn(n)
}

func (source *lockedSource) Int63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.rng.Int63n(n)
}

// Pick returns a uniformly sampled element of values, or "" when empty.
func Pick(source Source, values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[source.Intn(len(values))]
}
