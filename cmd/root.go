package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sorrybot/internal/audio"
	"sorrybot/internal/content"
	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/responder"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/logging"
	"sorrybot/internal/storage"
	"sorrybot/internal/ui/preferences"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName   = "SorryBot"
	appID     = "com.sorrybot.app"
	envPrefix = "SORRYBOT"

	keySettings = "settings"
	keyContent  = "content"
	keyMute     = "mute"
	keySeed     = "seed"
	keyLogFile  = "logging.file"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sorrybot",
		Short:         "An apologetic companion that says sorry for everything",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop()
		},
	}

	cobra.OnInitialize(initConfig)

	flags := cmd.PersistentFlags()
	flags.String(keySettings, "", "Settings file path (defaults to the user config dir).")
	flags.String(keyContent, "", "YAML file overriding the apology pools.")
	flags.Bool(keyMute, false, "Start with sound off.")
	flags.Int64(keySeed, 0, "Random seed; 0 picks one from the clock.")
	flags.String("log-level", "info", "Log level: debug, info, warn or error.")
	flags.String("log-format", "text", "Log format: text or json.")
	flags.Bool("log-add-source", false, "Include source locations in logs.")

	_ = viper.BindPFlag(keySettings, flags.Lookup(keySettings))
	_ = viper.BindPFlag(keyContent, flags.Lookup(keyContent))
	_ = viper.BindPFlag(keyMute, flags.Lookup(keyMute))
	_ = viper.BindPFlag(keySeed, flags.Lookup(keySeed))
	_ = viper.BindPFlag(logging.KeyLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(logging.KeyFormat, flags.Lookup("log-format"))
	_ = viper.BindPFlag(logging.KeyAddSource, flags.Lookup("log-add-source"))

	cmd.AddCommand(newTermCmd())
	return cmd
}

func initConfig() {
	// A .env file in the working directory may carry SORRYBOT_* overrides.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to read .env: %v\n", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// runtime is what both frontends share: settings, content, logging, sound
// and the reply generator.
type runtime struct {
	logger       *slog.Logger
	settingsPath string
	settings     preferences.Settings
	pools        content.Pools
	rng          chance.Source
	player       *audio.Player
	generator    *responder.Responder
}

func loadRuntime(logger *slog.Logger) (*runtime, error) {
	settingsPath := strings.TrimSpace(viper.GetString(keySettings))
	if settingsPath == "" {
		defaultPath, err := storage.DefaultPath(appName)
		if err != nil {
			return nil, fmt.Errorf("resolve settings path: %w", err)
		}
		settingsPath = defaultPath
	}

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "path", settingsPath, "err", err)
		settings = preferences.DefaultSettings()
	}
	if viper.GetBool(keyMute) {
		settings.SoundEnabled = false
	}

	contentPath := strings.TrimSpace(viper.GetString(keyContent))
	if contentPath == "" {
		contentPath = settings.ContentPath
	}
	pools, err := content.Load(contentPath)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	rng := chance.New(viper.GetInt64(keySeed))
	player := audio.NewPlayer(audio.Options{
		Logger: logger,
		Muted:  !settings.SoundEnabled,
	})

	return &runtime{
		logger:       logger,
		settingsPath: settingsPath,
		settings:     settings,
		pools:        pools,
		rng:          rng,
		player:       player,
		generator:    responder.New(pools, schedule.System{}, rng, responder.Config{Latency: responder.DefaultLatency}),
	}, nil
}

func (rt *runtime) newEngine(ports engine.Ports) (*engine.Engine, error) {
	ports.Sound = rt.player
	ports.Generator = rt.generator
	eng, err := engine.New(rt.settings.EngineConfig(), rt.pools, ports, engine.Options{
		Scheduler: schedule.System{},
		Random:    rt.rng,
		Logger:    rt.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return eng, nil
}

// saveSettings persists updated preferences and applies them live.
func (rt *runtime) saveSettings(eng *engine.Engine, updated preferences.Settings) {
	contentChanged := updated.ContentPath != rt.settings.ContentPath
	rt.settings = updated
	if err := storage.SaveSettings(rt.settingsPath, updated); err != nil {
		rt.logger.Error("save settings", "path", rt.settingsPath, "err", err)
	}
	eng.UpdateConfig(updated.EngineConfig())
	rt.player.SetMuted(!updated.SoundEnabled)
	if contentChanged {
		rt.logger.Info("content file changes apply on restart", "path", updated.ContentPath)
	}
}

func logEvents(logger *slog.Logger, events <-chan engine.Event, onEvent func(engine.Event)) {
	for event := range events {
		logger.Debug("engine event",
			"type", event.Type,
			"trigger", event.Trigger,
			"channel", event.Channel,
			"tier", event.Tier,
			"theme", event.Mode.Theme(),
		)
		if onEvent != nil {
			onEvent(event)
		}
	}
}
