package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeLengths(t *testing.T) {
	cases := map[Cue]int{
		CueClick:         SampleRate * 50 / 1000,
		CueApology:       SampleRate * 2,
		CueApologyPanic:  SampleRate * 600 / 1000,
		CueSwitchPanic:   SampleRate * 400 / 1000,
		CueSwitchHoliday: SampleRate * 400 / 1000,
	}
	for cue, want := range cases {
		samples := Synthesize(cue)
		assert.InDelta(t, want, len(samples), 1, "cue %s", cue)
		for _, sample := range samples {
			require.LessOrEqual(t, sample, 1.0)
			require.GreaterOrEqual(t, sample, -1.0)
		}
	}
	assert.Nil(t, Synthesize("kazoo"))
}

func TestSynthesizedCuesAreAudible(t *testing.T) {
	peak := 0.0
	for _, sample := range Synthesize(CueApologyPanic) {
		if sample > peak {
			peak = sample
		}
	}
	assert.Greater(t, peak, 0.1)
}

func TestEncodeWAVHeader(t *testing.T) {
	encoded := EncodeWAV([]float64{0, 1, -1})

	require.Len(t, encoded, 44+6)
	assert.Equal(t, "RIFF", string(encoded[0:4]))
	assert.Equal(t, "WAVE", string(encoded[8:12]))
	assert.Equal(t, "data", string(encoded[36:40]))
	assert.Equal(t, uint32(SampleRate), binary.LittleEndian.Uint32(encoded[24:28]))
	assert.Equal(t, uint32(6), binary.LittleEndian.Uint32(encoded[40:44]))
	assert.Equal(t, int16(32767), int16(binary.LittleEndian.Uint16(encoded[46:48])))
}

type fakeRunner struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (runner *fakeRunner) run(_ context.Context, _ string, args ...string) error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.paths = append(runner.paths, args...)
	return runner.err
}

func TestPlayerRendersClipsOnce(t *testing.T) {
	runner := &fakeRunner{}
	player := NewPlayer(Options{Command: "fake-play", Runner: runner.run})

	player.PlayClick()
	player.pending.Wait()
	player.PlayClick()
	player.pending.Wait()
	player.PlayApology(true)
	player.pending.Wait()

	require.Len(t, runner.paths, 3)
	assert.Equal(t, runner.paths[0], runner.paths[1])
	assert.NotEqual(t, runner.paths[0], runner.paths[2])
	_, err := os.Stat(runner.paths[0])
	require.NoError(t, err)

	require.NoError(t, player.Close())
	_, err = os.Stat(runner.paths[0])
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMutedPlayerIsSilent(t *testing.T) {
	runner := &fakeRunner{}
	player := NewPlayer(Options{Command: "fake-play", Runner: runner.run, Muted: true})
	defer player.Close()

	player.PlayThemeSwitch(true)
	player.pending.Wait()
	assert.Empty(t, runner.paths)

	player.SetMuted(false)
	assert.False(t, player.Muted())
	player.PlayThemeSwitch(false)
	player.pending.Wait()
	assert.Len(t, runner.paths, 1)
}

func TestPlayerSwallowsFailures(t *testing.T) {
	runner := &fakeRunner{err: errors.New("device busy")}
	player := NewPlayer(Options{Command: "fake-play", Runner: runner.run})
	defer player.Close()

	assert.NotPanics(t, func() {
		player.PlayApology(false)
		player.pending.Wait()
	})
}

func TestClosedPlayerIgnoresCues(t *testing.T) {
	runner := &fakeRunner{}
	player := NewPlayer(Options{Command: "fake-play", Runner: runner.run})
	require.NoError(t, player.Close())

	player.PlayClick()
	player.pending.Wait()
	assert.Empty(t, runner.paths)
}
