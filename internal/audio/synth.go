package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the rate of every synthesized clip.
const SampleRate = 44100

// masterGain lifts the quiet source envelopes to a comfortable level.
const masterGain = 3.0

// Cue names a synthesized sound.
type Cue string

const (
	CueClick         Cue = "click"
	CueApology       Cue = "apology"
	CueApologyPanic  Cue = "apology-panic"
	CueSwitchHoliday Cue = "switch"
	CueSwitchPanic   Cue = "switch-panic"
)

type waveform func(phase float64) float64

func sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func sawtooth(phase float64) float64 {
	return 2*(phase-math.Floor(phase+0.5))
}

func square(phase float64) float64 {
	if phase-math.Floor(phase) < 0.5 {
		return 1
	}
	return -1
}

// voice is one oscillator with a frequency curve and a gain envelope,
// both functions of time in seconds.
type voice struct {
	wave      waveform
	frequency func(t float64) float64
	gain      func(t float64) float64
	start     float64
	stop      float64
}

func constant(value float64) func(float64) float64 {
	return func(float64) float64 { return value }
}

// exponentialRamp moves from a to b over [start, end] the way an audio
// parameter ramp does, holding b afterwards.
func exponentialRamp(a, b, start, end float64) func(float64) float64 {
	return func(t float64) float64 {
		switch {
		case t <= start:
			return a
		case t >= end:
			return b
		}
		return a * math.Pow(b/a, (t-start)/(end-start))
	}
}

func linearRamp(a, b, start, end float64) func(float64) float64 {
	return func(t float64) float64 {
		switch {
		case t <= start:
			return a
		case t >= end:
			return b
		}
		return a + (b-a)*(t-start)/(end-start)
	}
}

// render mixes voices into a clip of the given length.
func render(length time.Duration, voices ...voice) []float64 {
	total := int(length.Seconds() * SampleRate)
	samples := make([]float64, total)
	for _, current := range voices {
		phase := 0.0
		for index := range samples {
			t := float64(index) / SampleRate
			if t < current.start || t >= current.stop {
				continue
			}
			samples[index] += current.wave(phase) * current.gain(t)
			phase += current.frequency(t) / SampleRate
		}
	}
	for index, value := range samples {
		samples[index] = math.Max(-1, math.Min(1, value*masterGain))
	}
	return samples
}

// Synthesize renders cue as mono samples in [-1, 1].
func Synthesize(cue Cue) []float64 {
	switch cue {
	case CueClick:
		return render(50*time.Millisecond, voice{
			wave:      sine,
			frequency: exponentialRamp(600, 300, 0, 0.05),
			gain:      exponentialRamp(0.05, 0.001, 0, 0.05),
			stop:      0.05,
		})
	case CueApologyPanic:
		envelope := exponentialRamp(0.1, 0.01, 0, 0.6)
		return render(600*time.Millisecond,
			voice{wave: sawtooth, frequency: constant(110), gain: envelope, stop: 0.6},
			voice{wave: square, frequency: constant(116.54), gain: envelope, stop: 0.6},
		)
	case CueApology:
		// C4, Eb4, G4 with staggered entrances.
		notes := []float64{261.63, 311.13, 392.00}
		voices := make([]voice, 0, len(notes))
		for index, note := range notes {
			attack := float64(index) * 0.05
			rise := linearRamp(0, 0.03, 0, attack+0.1)
			fall := exponentialRamp(0.03, 0.001, attack+0.1, attack+1.5)
			voices = append(voices, voice{
				wave:      sine,
				frequency: constant(note),
				gain: func(t float64) float64 {
					if t < attack+0.1 {
						return rise(t)
					}
					return fall(t)
				},
				stop: 2,
			})
		}
		return render(2*time.Second, voices...)
	case CueSwitchPanic:
		sweep := exponentialRamp(440, 50, 0, 0.4)
		return render(400*time.Millisecond, voice{
			wave: sawtooth,
			frequency: func(t float64) float64 {
				// 50Hz wobble, 200Hz deep.
				return math.Max(1, sweep(t)+200*math.Sin(2*math.Pi*50*t))
			},
			gain: linearRamp(0.1, 0, 0, 0.4),
			stop: 0.4,
		})
	case CueSwitchHoliday:
		return render(400*time.Millisecond, voice{
			wave:      sine,
			frequency: exponentialRamp(220, 880, 0, 0.3),
			gain:      linearRamp(0.05, 0, 0, 0.3),
			stop:      0.4,
		})
	}
	return nil
}

// EncodeWAV writes samples as a 16-bit mono PCM WAV file.
func EncodeWAV(samples []float64) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := len(samples) * bitsPerSample / 8
	var buffer bytes.Buffer
	buffer.Grow(44 + dataSize)

	write := func(value any) {
		_ = binary.Write(&buffer, binary.LittleEndian, value)
	}
	buffer.WriteString("RIFF")
	write(uint32(36 + dataSize))
	buffer.WriteString("WAVE")
	buffer.WriteString("fmt ")
	write(uint32(16))
	write(uint16(1))
	write(uint16(channels))
	write(uint32(SampleRate))
	write(uint32(SampleRate * channels * bitsPerSample / 8))
	write(uint16(channels * bitsPerSample / 8))
	write(uint16(bitsPerSample))
	buffer.WriteString("data")
	write(uint32(dataSize))
	for _, sample := range samples {
		write(int16(math.Round(sample * math.MaxInt16)))
	}
	return buffer.Bytes()
}
