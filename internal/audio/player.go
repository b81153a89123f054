// Package audio synthesizes the app's sound cues and plays them through
// whatever command-line audio player the system provides.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// ErrNoPlayer indicates no supported audio player was found on PATH.
var ErrNoPlayer = errors.New("no audio player found")

// candidates are tried in order by LookupPlayer.
var candidates = []string{"pw-play", "paplay", "aplay", "afplay"}

// maxConcurrent caps overlapping cues; extra cues are dropped.
const maxConcurrent = 4

// Runner executes the player command.
type Runner func(ctx context.Context, command string, args ...string) error

// Options configures a Player.
type Options struct {
	Logger *slog.Logger
	Muted  bool
	// Command overrides player discovery.
	Command string
	Runner  Runner
}

// Player plays synthesized cues. It satisfies the engine's Sound port and
// never returns errors to callers: failures are logged.
type Player struct {
	logger  *slog.Logger
	command string
	run     Runner
	muted   atomic.Bool
	slots   chan struct{}

	mu      sync.Mutex
	dir     string
	clips   sync.Map
	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
}

// LookupPlayer returns the first supported audio player on PATH.
func LookupPlayer() (string, error) {
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoPlayer
}

// NewPlayer creates a Player. Without a usable command it stays silent.
func NewPlayer(options Options) *Player {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	command := options.Command
	if command == "" {
		found, err := LookupPlayer()
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		}
		command = found
	}
	run := options.Runner
	if run == nil {
		run = execRunner
	}
	ctx, cancel := context.WithCancel(context.Background())
	player := &Player{
		logger:  logger,
		command: command,
		run:     run,
		slots:   make(chan struct{}, maxConcurrent),
		ctx:     ctx,
		cancel:  cancel,
	}
	player.muted.Store(options.Muted)
	return player
}

// PlayClick plays the short UI click.
func (player *Player) PlayClick() {
	player.Play(CueClick)
}

// PlayApology plays the sad chord, or the dissonant cluster in panic mode.
func (player *Player) PlayApology(panic bool) {
	if panic {
		player.Play(CueApologyPanic)
		return
	}
	player.Play(CueApology)
}

// PlayThemeSwitch plays the power-down glitch or the ascending chime.
func (player *Player) PlayThemeSwitch(toPanic bool) {
	if toPanic {
		player.Play(CueSwitchPanic)
		return
	}
	player.Play(CueSwitchHoliday)
}

// SetMuted toggles playback.
func (player *Player) SetMuted(muted bool) {
	player.muted.Store(muted)
}

// Muted reports whether playback is off.
func (player *Player) Muted() bool {
	return player.muted.Load()
}

// Play starts cue in the background.
func (player *Player) Play(cue Cue) {
	if player.muted.Load() || player.command == "" || player.ctx.Err() != nil {
		return
	}
	select {
	case player.slots <- struct{}{}:
	default:
		player.logger.Debug("sound cue dropped", "cue", cue)
		return
	}

	player.pending.Add(1)
	go func() {
		defer player.pending.Done()
		defer func() { <-player.slots }()

		path, err := player.clipPath(cue)
		if err != nil {
			player.logger.Warn("prepare sound cue", "cue", cue, "err", err)
			return
		}
		if err := player.run(player.ctx, player.command, path); err != nil && player.ctx.Err() == nil {
			player.logger.Warn("play sound cue", "cue", cue, "err", err)
		}
	}()
}

// Close stops playing cues and removes rendered clips.
func (player *Player) Close() error {
	player.cancel()
	player.pending.Wait()

	player.mu.Lock()
	defer player.mu.Unlock()
	if player.dir == "" {
		return nil
	}
	err := os.RemoveAll(player.dir)
	player.dir = ""
	return err
}

// clipPath renders cue to a WAV file on first use.
func (player *Player) clipPath(cue Cue) (string, error) {
	if cached, ok := player.clips.Load(cue); ok {
		return cached.(string), nil
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	if cached, ok := player.clips.Load(cue); ok {
		return cached.(string), nil
	}
	if player.dir == "" {
		dir, err := os.MkdirTemp("", "sorrybot-audio-")
		if err != nil {
			return "", fmt.Errorf("create clip directory: %w", err)
		}
		player.dir = dir
	}

	samples := Synthesize(cue)
	if samples == nil {
		return "", fmt.Errorf("unknown cue %q", cue)
	}
	path := filepath.Join(player.dir, string(cue)+".wav")
	if err := os.WriteFile(path, EncodeWAV(samples), 0o600); err != nil {
		return "", fmt.Errorf("write clip: %w", err)
	}
	player.clips.Store(cue, path)
	return path, nil
}

func execRunner(ctx context.Context, command string, args ...string) error {
	return exec.CommandContext(ctx, command, args...).Run()
}
