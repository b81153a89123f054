package engine

import "sorrybot/internal/core/model"

// Clicked records a click anywhere. Interactive targets also get the click cue.
func (engine *Engine) Clicked(interactive bool) {
	if engine.isClosed() {
		return
	}
	if interactive {
		engine.ports.Sound.PlayClick()
	}
	engine.watchdog.Reset()
}

// PointerMoved records pointer movement.
func (engine *Engine) PointerMoved() {
	if engine.isClosed() {
		return
	}
	engine.watchdog.Reset()
}

// KeyPressed records a key press.
func (engine *Engine) KeyPressed() {
	if engine.isClosed() {
		return
	}
	engine.watchdog.Reset()
}

// Scrolled records a scroll to offsetY and may apologize for it, at most
// once per cooldown window.
func (engine *Engine) Scrolled(offsetY float64) {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	var fx effects
	fx.add(engine.watchdog.Reset)

	config := engine.config
	now := engine.scheduler.Now()
	if offsetY > config.ScrollMinOffset && now.Sub(engine.lastScroll) > config.ScrollCooldown {
		if engine.rng.Float64() > config.ScrollThreshold {
			engine.lastScroll = now
			mode := engine.mode
			fx.add(func() { engine.ports.Sound.PlayApology(mode.Panic) })
			engine.pulseLocked(&fx)
			text := scrollText.pick(mode)
			engine.show(&fx, Notification{
				ID:       ScrollSlotID,
				Kind:     KindScroll,
				Text:     text,
				Icon:     "📉",
				Theme:    mode.Theme(),
				Duration: config.Toasts.Scroll,
				Speed:    config.Typing.Normal,
			})
			engine.emitLocked(Event{Type: EventScroll, Trigger: model.TriggerScroll, Channel: ChannelToast, Text: text})
		}
	}
	engine.mu.Unlock()
	fx.run()
}

// HeartTapped counts rapid taps on the hidden footer heart. The fifth tap
// in a row, each within the window of the previous one, opens the secret dialog.
func (engine *Engine) HeartTapped() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	var fx effects
	fx.add(engine.ports.Sound.PlayClick)

	now := engine.scheduler.Now()
	if now.Sub(engine.egg.last) > engine.config.EasterEggWindow {
		engine.egg.count = 1
	} else {
		engine.egg.count++
	}
	engine.egg.last = now

	if engine.egg.count == engine.config.EasterEggTarget {
		fx.add(func() { engine.ports.Sound.PlayApology(true) })
		engine.pulseLocked(&fx)
		engine.dialogOpen = true
		engine.openDialog(&fx, DialogMessage{
			Title:   easterEggTitle,
			Text:    easterEggText,
			Confirm: dialogConfirm.pick(engine.mode),
			Dismiss: dialogDismiss.pick(engine.mode),
			Theme:   model.ThemePanic,
			Speed:   engine.config.Typing.Panic,
		})
		engine.egg = easterEgg{}
		engine.emitLocked(Event{Type: EventEasterEgg, Trigger: model.TriggerFooter, Channel: ChannelDialog, Text: easterEggText})
		engine.logger.Info("easter egg found")
	}
	engine.mu.Unlock()
	fx.run()
}

// HeartCount returns the current easter-egg count.
func (engine *Engine) HeartCount() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.egg.count
}

func (engine *Engine) isClosed() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.closed
}
