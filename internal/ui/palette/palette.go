// Package palette maps presentation themes to colors shared by every view.
package palette

import (
	"image/color"

	"sorrybot/internal/core/model"
)

// Palette is the color set for one theme.
type Palette struct {
	Background color.NRGBA
	Surface    color.NRGBA
	Text       color.NRGBA
	Muted      color.NRGBA
	Accent     color.NRGBA
}

var palettes = map[model.Theme]Palette{
	model.ThemeDefault: {
		Background: color.NRGBA{R: 248, G: 246, B: 252, A: 255},
		Surface:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Text:       color.NRGBA{R: 45, G: 42, B: 50, A: 255},
		Muted:      color.NRGBA{R: 120, G: 114, B: 132, A: 255},
		Accent:     color.NRGBA{R: 116, G: 143, B: 252, A: 255},
	},
	model.ThemeHoliday: {
		Background: color.NRGBA{R: 236, G: 248, B: 240, A: 255},
		Surface:    color.NRGBA{R: 255, G: 250, B: 250, A: 255},
		Text:       color.NRGBA{R: 30, G: 60, B: 40, A: 255},
		Muted:      color.NRGBA{R: 90, G: 120, B: 100, A: 255},
		Accent:     color.NRGBA{R: 224, G: 49, B: 49, A: 255},
	},
	model.ThemePanic: {
		Background: color.NRGBA{R: 24, G: 4, B: 6, A: 255},
		Surface:    color.NRGBA{R: 60, G: 8, B: 12, A: 255},
		Text:       color.NRGBA{R: 255, G: 235, B: 235, A: 255},
		Muted:      color.NRGBA{R: 255, G: 160, B: 160, A: 255},
		Accent:     color.NRGBA{R: 255, G: 59, B: 48, A: 255},
	},
}

// For returns the palette for theme, falling back to the default one.
func For(theme model.Theme) Palette {
	if value, ok := palettes[theme]; ok {
		return value
	}
	return palettes[model.ThemeDefault]
}

// Confetti colors cycle through the festive range.
var Confetti = []color.NRGBA{
	{R: 255, G: 107, B: 107, A: 255},
	{R: 255, G: 212, B: 59, A: 255},
	{R: 105, G: 219, B: 124, A: 255},
	{R: 116, G: 192, B: 252, A: 255},
	{R: 218, G: 119, B: 242, A: 255},
}
