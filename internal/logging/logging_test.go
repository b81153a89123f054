package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "logging.level")
}

func TestJSONLoggerFromViper(t *testing.T) {
	v := viper.New()
	v.Set(KeyLevel, "warn")
	v.Set(KeyFormat, "json")

	var out bytes.Buffer
	logger, err := New(ConfigFromViper(v), &out)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("apology dropped", "trigger", "scroll")

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "apology dropped", record["msg"])
	assert.Equal(t, "scroll", record["trigger"])
}

func TestUnknownFormat(t *testing.T) {
	_, err := New(Config{Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "logging.format")
}
