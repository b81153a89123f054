package chance

import "sync"

// DefaultFallback is returned by Script.Float64 once its floats run out.
// It selects none of the engine's rare branches.
const DefaultFallback = 0.5

// Script is a deterministic Source fed from queues. Float64 draws from Floats
// and Intn/Int63n draw from Ints; exhausted queues return Fallback and 0.
type Script struct {
	mu       sync.Mutex
	floats   []float64
	ints     []int64
	Fallback float64
}

// NewScript returns a Script that yields floats in order.
func NewScript(floats ...float64) *Script {
	return &Script{floats: floats, Fallback: DefaultFallback}
}

// PushFloats appends values to the float queue.
func (script *Script) PushFloats(values ...float64) *Script {
	script.mu.Lock()
	defer script.mu.Unlock()
	script.floats = append(script.floats, values...)
	return script
}

// PushInts appends values to the integer queue.
func (script *Script) PushInts(values ...int64) *Script {
	script.mu.Lock()
	defer script.mu.Unlock()
	script.ints = append(script.ints, values...)
	return script
}

// Remaining reports how many scripted floats and ints are left.
func (script *Script) Remaining() (floats, ints int) {
	script.mu.Lock()
	defer script.mu.Unlock()
	return len(script.floats), len(script.ints)
}

func (script *Script) Float64() float64 {
	script.mu.Lock()
	defer script.mu.Unlock()
	if len(script.floats) == 0 {
		return script.Fallback
	}
	value := script.floats[0]
	script.floats = script.floats[1:]
	return value
}

func (script *Script) Intn(n int) int {
	return int(script.Int63n(int64(n)))
}

func (script *Script) Int63n(n int64) int64 {
	script.mu.Lock()
	defer script.mu.Unlock()
	if n <= 0 || len(script.ints) == 0 {
		return 0
	}
	value := script.ints[0]
	script.ints = script.ints[1:]
	if value < 0 {
		return 0
	}
	if value >= n {
		return n - 1
	}
	return value
}
