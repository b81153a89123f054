package model

// Theme selects the visual variant of a surface.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeHoliday Theme = "holiday"
	ThemePanic   Theme = "panic"
)

// Mode holds the two presentation flags.
type Mode struct {
	Panic   bool
	Holiday bool
}

// EffectiveHoliday reports whether holiday visuals apply. Panic suppresses them.
func (mode Mode) EffectiveHoliday() bool {
	return mode.Holiday && !mode.Panic
}

// Theme returns the theme by precedence panic > holiday > default.
func (mode Mode) Theme() Theme {
	switch {
	case mode.Panic:
		return ThemePanic
	case mode.EffectiveHoliday():
		return ThemeHoliday
	default:
		return ThemeDefault
	}
}

// Trigger identifies the source of an apology dispatch.
type Trigger string

const (
	TriggerIdle              Trigger = "idle"
	TriggerScroll            Trigger = "scroll"
	TriggerHeroPrimary       Trigger = "hero_primary"
	TriggerHeroSecondary     Trigger = "hero_secondary"
	TriggerHeroTertiary      Trigger = "hero_tertiary"
	TriggerFeatureCard       Trigger = "feature_card"
	TriggerTestimonial       Trigger = "testimonial"
	TriggerTestimonialAuthor Trigger = "testimonial_author"
	TriggerFooter            Trigger = "footer"
	TriggerEmptyInput        Trigger = "empty_input"
	TriggerTray              Trigger = "tray"
	TriggerKeyboard          Trigger = "keyboard"
)
