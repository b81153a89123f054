package main

import (
	"os"
	"path/filepath"
	"testing"

	"sorrybot/internal/logging"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandExposesFlagsAndTerm(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{keySettings, keyContent, keyMute, keySeed, "log-level", "log-format"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}

	term, _, err := root.Find([]string{"term"})
	require.NoError(t, err)
	assert.Equal(t, "term", term.Name())
	assert.NotNil(t, term.Flags().Lookup("alt-screen"))
	assert.NotNil(t, term.Flags().Lookup("log-file"))
}

func useViper(t *testing.T, values map[string]any) {
	t.Helper()
	viper.Reset()
	for key, value := range values {
		viper.Set(key, value)
	}
	t.Cleanup(viper.Reset)
}

func TestLoadRuntimeDefaultsWhenSettingsMissing(t *testing.T) {
	useViper(t, map[string]any{
		keySettings: filepath.Join(t.TempDir(), "settings.yaml"),
		keyMute:     true,
		keySeed:     int64(7),
	})

	rt, err := loadRuntime(logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.player.Close() })

	assert.False(t, rt.settings.SoundEnabled)
	assert.True(t, rt.player.Muted())
	assert.NotEmpty(t, rt.pools.Standard)
	assert.NotEmpty(t, rt.pools.Existential)
}

func TestLoadRuntimeReadsContentOverride(t *testing.T) {
	dir := t.TempDir()
	contentPath := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(contentPath, []byte("standard:\n  - Sorry from a file.\n"), 0o644))
	useViper(t, map[string]any{
		keySettings: filepath.Join(dir, "settings.yaml"),
		keyContent:  contentPath,
	})

	rt, err := loadRuntime(logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.player.Close() })

	assert.Equal(t, []string{"Sorry from a file."}, rt.pools.Standard)
}

func TestLoadRuntimeRejectsMissingContentFile(t *testing.T) {
	dir := t.TempDir()
	useViper(t, map[string]any{
		keySettings: filepath.Join(dir, "settings.yaml"),
		keyContent:  filepath.Join(dir, "missing.yaml"),
	})

	_, err := loadRuntime(logging.Discard())
	assert.Error(t, err)
}
