package page

import (
	"testing"

	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/model"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func TestConfettiStaysInsideArea(t *testing.T) {
	area := fyne.NewSize(400, 300)
	pieces := confettiPieces(chance.New(7), area, 50)

	assert.Len(t, pieces, 50)
	for _, piece := range pieces {
		assert.GreaterOrEqual(t, piece.Position.X, float32(0))
		assert.LessOrEqual(t, piece.Position.X+piece.Size.Width, area.Width)
		assert.LessOrEqual(t, piece.Position.Y+piece.Size.Height, area.Height)
	}
}

func TestConfettiNeedsAnArea(t *testing.T) {
	assert.Empty(t, confettiPieces(chance.New(1), fyne.NewSize(0, 0), 10))
}

func TestToggleLabel(t *testing.T) {
	assert.Equal(t, "Panic: ON", toggleLabel("Panic", true))
	assert.Equal(t, "Holiday: off", toggleLabel("Holiday", false))
}

func TestHeadlineTypesFasterInPanic(t *testing.T) {
	assert.Less(t, headlineSpeed(model.Mode{Panic: true}).Max, headlineSpeed(model.Mode{}).Max)
}
