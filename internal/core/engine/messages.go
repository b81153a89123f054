package engine

import (
	"strings"

	"sorrybot/internal/core/model"
)

// PanicSuffix is appended to every apology dispatched in panic mode.
const PanicSuffix = " I AM SO SORRY!!!!"

// ChatFallback replaces a failed text generation.
const ChatFallback = "I'm sorry, I failed to process your request. I'm a failure."

const (
	panicOnText    = "OH NO. I'M SORRY. PANIC MODE ACTIVATED. I'M SORRY FOR THE INTENSITY."
	panicOffText   = "I'm sorry for panicking. Returning to normal regret levels."
	holidayOnText  = "I'm sorry for forcing festive cheer upon you. It feels artificial."
	holidayOffText = "I'm sorry, the holiday spirit has been cancelled due to regret."
	easterEggTitle = "SECRET SHAME"
	easterEggText  = "SECRET SHAME UNLOCKED! I am so sorry you found this. I was hiding in the footer to escape my guilt. I apologize for the code, the layout, and the fact that you had to click five times. I am a monster."
)

// PanicTransform shouts message the way panic mode does.
func PanicTransform(message string) string {
	return strings.ToUpper(message) + PanicSuffix
}

type phrase struct {
	calm  string
	panic string
}

func (value phrase) pick(mode model.Mode) string {
	if mode.Panic {
		return value.panic
	}
	return value.calm
}

var (
	idleTitle      = phrase{"Are you still there?", "SILENCE DETECTED!!!!"}
	idleText       = phrase{"I'm sorry for bothering you. I'm also sorry for not bothering you sooner.", "I'M SORRY FOR THE SILENCE! IT'S TOO LOUD! I'M SORRY!"}
	scrollText     = phrase{"I'm sorry for making you scroll.", "SCROLLING TOO FAST! SORRY!"}
	debrisText     = phrase{"I'm sorry for the glitter mess.", "SORRY FOR THE DEBRIS!!!"}
	farewellText   = phrase{"I'll miss you. Sorry, that was clingy.", "DON'T LEAVE ME WITH MY THOUGHTS!"}
	dialogTitle    = phrase{"I'm Terrible.", "CRITICAL REGRET"}
	dialogConfirm  = phrase{"It's Okay...", "ACKNOWLEDGE FAILURE"}
	dialogDismiss  = phrase{"Please Stop", "ABORT"}
	avatarBubble   = phrase{"I'm so sorry!", "AAAAAAHH!!"}
	headlineText   = phrase{"I'm So Sorry.", "I AM SO SORRY."}
	subheadingText = phrase{"For Everything.", "FOR ABSOLUTELY EVERYTHING."}
)

// Headline returns the page headline for mode.
func Headline(mode model.Mode) (title, subtitle string) {
	if mode.EffectiveHoliday() {
		return "Season's Apologies.", "For the Forced Cheer."
	}
	return headlineText.pick(mode), subheadingText.pick(mode)
}

func apologyIcon(theme model.Theme, tier Tier) string {
	switch {
	case theme == model.ThemePanic:
		return "😱"
	case theme == model.ThemeHoliday:
		return "⛄"
	case tier == TierExistential:
		return "🌌"
	default:
		return "😿"
	}
}

func idleIcon(theme model.Theme) string {
	switch theme {
	case model.ThemePanic:
		return "⚠️"
	case model.ThemeHoliday:
		return "🎁"
	default:
		return "👀"
	}
}
