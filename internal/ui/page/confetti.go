package page

import (
	"sorrybot/internal/core/chance"

	"fyne.io/fyne/v2"
)

const confettiCount = 60

type confettiPiece struct {
	Position fyne.Position
	Size     fyne.Size
}

// confettiPieces scatters count pieces over area.
func confettiPieces(rng chance.Source, area fyne.Size, count int) []confettiPiece {
	pieces := make([]confettiPiece, 0, count)
	if area.Width <= 0 || area.Height <= 0 {
		return pieces
	}
	for i := 0; i < count; i++ {
		width := float32(6 + rng.Intn(8))
		height := float32(4 + rng.Intn(10))
		pieces = append(pieces, confettiPiece{
			Position: fyne.NewPos(
				float32(rng.Float64())*(area.Width-width),
				float32(rng.Float64())*(area.Height-height),
			),
			Size: fyne.NewSize(width, height),
		})
	}
	return pieces
}
