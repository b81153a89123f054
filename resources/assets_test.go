package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarSpritesAreEmbedded(t *testing.T) {
	for _, name := range []string{
		"avatar-calm.svg",
		"avatar-blink.svg",
		"avatar-glance.svg",
		"avatar-sorry.svg",
		"avatar-panic.svg",
		"avatar-panic-react.svg",
		HolidayHat,
	} {
		resource, err := Sprite(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(resource.Content()), "<svg", name)
	}
}

func TestResourcesAreCached(t *testing.T) {
	first := MustLogo(AppLogo)
	second := MustLogo(AppLogo)
	assert.Same(t, first, second)
}

func TestMissingSprite(t *testing.T) {
	_, err := Sprite("avatar-smug.svg")
	assert.ErrorContains(t, err, "load resource")
	assert.Panics(t, func() { MustSprite("avatar-smug.svg") })
}
