// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyLevel     = "logging.level"
	KeyFormat    = "logging.format"
	KeyAddSource = "logging.add_source"
)

// Config selects the handler and minimum level.
type Config struct {
	Level     string
	Format    string
	AddSource bool
}

// ConfigFromViper reads the logging keys from v.
func ConfigFromViper(v *viper.Viper) Config {
	return Config{
		Level:     v.GetString(KeyLevel),
		Format:    v.GetString(KeyFormat),
		AddSource: v.GetBool(KeyAddSource),
	}
}

// FromViper returns a stderr logger configured from v.
func FromViper(v *viper.Viper) (*slog.Logger, error) {
	return New(ConfigFromViper(v), os.Stderr)
}

// New builds a logger writing to out.
func New(config Config, out io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{
		Level:     level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(config.Format)) {
	case "", "text":
		handler = slog.NewTextHandler(out, options)
	case "json":
		handler = slog.NewJSONHandler(out, options)
	default:
		return nil, fmt.Errorf("unknown %s: %s", KeyFormat, config.Format)
	}
	return slog.New(handler), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog level. Blank means info.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown %s: %s", KeyLevel, value)
	}
}
