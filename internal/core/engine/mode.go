package engine

// TogglePanic flips panic mode, clears visible toasts and announces the switch.
func (engine *Engine) TogglePanic() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.mode.Panic = !engine.mode.Panic
	mode := engine.mode

	var fx effects
	fx.add(engine.ports.Notifier.DismissAll)
	fx.add(func() { engine.ports.Sound.PlayThemeSwitch(mode.Panic) })
	text, icon := panicOffText, "😌"
	if mode.Panic {
		text, icon = panicOnText, "🚨"
	}
	engine.show(&fx, Notification{
		Kind:     KindTransition,
		Text:     text,
		Icon:     icon,
		Theme:    mode.Theme(),
		Duration: engine.config.Toasts.Transition,
		Speed:    engine.config.Typing.PanicSwitch,
	})
	engine.renderLocked(&fx)
	engine.emitLocked(Event{Type: EventModeChange, Channel: ChannelToast, Text: text})
	engine.mu.Unlock()

	engine.logger.Info("panic mode toggled", "panic", mode.Panic)
	fx.run()
}

// ToggleHoliday flips holiday mode and announces the switch with the pleasant cue.
func (engine *Engine) ToggleHoliday() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.mode.Holiday = !engine.mode.Holiday
	mode := engine.mode

	var fx effects
	fx.add(func() { engine.ports.Sound.PlayThemeSwitch(false) })
	text, icon := holidayOffText, "❄️"
	if mode.Holiday {
		text, icon = holidayOnText, "🎄"
	}
	engine.show(&fx, Notification{
		Kind:     KindTransition,
		Text:     text,
		Icon:     icon,
		Theme:    mode.Theme(),
		Duration: engine.config.Toasts.Transition,
		Speed:    engine.config.Typing.HolidaySwitch,
	})
	engine.renderLocked(&fx)
	engine.emitLocked(Event{Type: EventModeChange, Channel: ChannelToast, Text: text})
	engine.mu.Unlock()

	engine.logger.Info("holiday mode toggled", "holiday", mode.Holiday)
	fx.run()
}
