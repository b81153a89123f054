package term

import (
	"sorrybot/internal/core/model"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header   lipgloss.Style
	headline lipgloss.Style
	muted    lipgloss.Style
	avatar   lipgloss.Style
	bubble   lipgloss.Style
	toast    lipgloss.Style
	title    lipgloss.Style
	dialog   lipgloss.Style
	reply    lipgloss.Style
	confetti lipgloss.Style
}

var themes = map[model.Theme]styles{
	model.ThemeDefault: newStyles(
		lipgloss.Color("#748ffc"), lipgloss.Color("#2d2a32"), lipgloss.Color("#d4d4d8"), lipgloss.Color("#71717a"),
	),
	model.ThemeHoliday: newStyles(
		lipgloss.Color("#e03131"), lipgloss.Color("#1e3c28"), lipgloss.Color("#d3f9d8"), lipgloss.Color("#69db7c"),
	),
	model.ThemePanic: newStyles(
		lipgloss.Color("#ff3b30"), lipgloss.Color("#18040a"), lipgloss.Color("#ffebeb"), lipgloss.Color("#ffa0a0"),
	),
}

func newStyles(accent, dark, text, muted lipgloss.Color) styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			Background(accent).
			Padding(0, 1),
		headline: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			MarginTop(1),
		muted: lipgloss.NewStyle().
			Foreground(muted),
		avatar: lipgloss.NewStyle().
			Foreground(accent).
			MarginRight(2),
		bubble: lipgloss.NewStyle().
			Italic(true).
			Foreground(accent),
		toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(text).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Background(dark).
			Foreground(text).
			Padding(1, 2),
		reply: lipgloss.NewStyle().
			Foreground(text),
		confetti: lipgloss.NewStyle().
			Foreground(muted),
	}
}

func stylesFor(theme model.Theme) styles {
	if value, ok := themes[theme]; ok {
		return value
	}
	return themes[model.ThemeDefault]
}
