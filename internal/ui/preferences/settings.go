package preferences

import (
	"time"

	"sorrybot/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	SoundEnabled bool

	// Thresholds feed the dispatcher draws directly.
	DialogThreshold      float64
	ExistentialThreshold float64
	ScrollThreshold      float64

	IdleMin time.Duration
	IdleMax time.Duration

	// ContentPath optionally points at a YAML file overriding the apology pools.
	ContentPath string
}

// DefaultSettings returns default settings for SorryBot.
func DefaultSettings() Settings {
	config := model.DefaultEngineConfig()
	return Settings{
		SoundEnabled:         true,
		DialogThreshold:      config.DialogThreshold,
		ExistentialThreshold: config.ExistentialThreshold,
		ScrollThreshold:      config.ScrollThreshold,
		IdleMin:              config.IdleWindow.Min,
		IdleMax:              config.IdleWindow.Max,
	}
}

// EngineConfig converts settings to the engine configuration.
func (settings Settings) EngineConfig() model.EngineConfig {
	config := model.DefaultEngineConfig()
	if validProbability(settings.DialogThreshold) {
		config.DialogThreshold = settings.DialogThreshold
	}
	if validProbability(settings.ExistentialThreshold) {
		config.ExistentialThreshold = settings.ExistentialThreshold
	}
	if validProbability(settings.ScrollThreshold) {
		config.ScrollThreshold = settings.ScrollThreshold
	}
	if settings.IdleMin > 0 && settings.IdleMax > settings.IdleMin {
		config.IdleWindow = model.Range{Min: settings.IdleMin, Max: settings.IdleMax}
	}
	return config
}

func validProbability(value float64) bool {
	return value > 0 && value <= 1
}
