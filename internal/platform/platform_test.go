package platform

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondInstanceIsRejectedAndActivates(t *testing.T) {
	name := "sorrybot-test-" + t.Name()
	first, err := AcquireInstance(name)
	require.NoError(t, err)
	defer first.Release()

	activated := make(chan struct{}, 1)
	go first.Serve(func() { activated <- struct{}{} })

	_, err = AcquireInstance(name)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, Activate(name))
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
}

func TestReleaseFreesTheLock(t *testing.T) {
	name := "sorrybot-test-" + t.Name()
	first, err := AcquireInstance(name)
	require.NoError(t, err)
	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	second, err := AcquireInstance(name)
	require.NoError(t, err)
	assert.Equal(t, first.Address(), second.Address())
	require.NoError(t, second.Release())
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("sorrybot")
	assert.Equal(t, port, portFromName("sorrybot"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir, err := ConfigDir("sorrybot")
	require.NoError(t, err)
	assert.Equal(t, "sorrybot", filepath.Base(dir))

	_, err = ConfigDir("  ")
	assert.Error(t, err)
}
