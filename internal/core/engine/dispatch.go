package engine

import (
	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/model"
)

// Dispatch surfaces one apology for trigger: a toast or, rarely, a blocking
// dialog; existential apologies add confetti and a follow-up toast.
func (engine *Engine) Dispatch(trigger model.Trigger) {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	fx := engine.dispatchLocked(trigger)
	engine.mu.Unlock()
	fx.run()
}

func (engine *Engine) dispatchLocked(trigger model.Trigger) effects {
	var fx effects
	mode := engine.mode
	config := engine.config

	fx.add(func() { engine.ports.Sound.PlayApology(mode.Panic) })
	engine.pulseLocked(&fx)

	channel := ChannelToast
	if engine.rng.Float64() > config.DialogThreshold && !engine.dialogOpen {
		channel = ChannelDialog
	}

	tier := TierStandard
	pool := engine.pools.Standard
	if engine.rng.Float64() < config.ExistentialThreshold {
		tier = TierExistential
		pool = engine.pools.Existential
		engine.showConfettiLocked(&fx)
		engine.followUps.After(engine.scheduler, config.FollowUpDelay, engine.debrisFollowUp)
	}

	message := chance.Pick(engine.rng, pool)
	if mode.Panic {
		message = PanicTransform(message)
	}

	theme := mode.Theme()
	if channel == ChannelDialog {
		engine.dialogOpen = true
		engine.openDialog(&fx, DialogMessage{
			Title:   dialogTitle.pick(mode),
			Text:    message,
			Confirm: dialogConfirm.pick(mode),
			Dismiss: dialogDismiss.pick(mode),
			Theme:   theme,
			Speed:   engine.typingSpeed(),
		})
	} else {
		engine.show(&fx, Notification{
			Kind:        KindApology,
			Text:        message,
			Icon:        apologyIcon(theme, tier),
			Theme:       theme,
			Duration:    config.Toasts.Apology,
			Speed:       engine.typingSpeed(),
			Dismissible: true,
		})
	}

	engine.emitLocked(Event{
		Type:    EventDispatch,
		Trigger: trigger,
		Channel: channel,
		Tier:    tier,
		Text:    message,
	})
	engine.logger.Debug("apology dispatched",
		"trigger", trigger,
		"channel", channel,
		"tier", tier,
		"panic", mode.Panic,
	)

	fx.add(engine.watchdog.Reset)
	return fx
}

func (engine *Engine) openDialog(fx *effects, message DialogMessage) {
	fx.add(func() {
		if !engine.ports.Dialog.Open(message) {
			engine.logger.Debug("dialog already open, apology dropped")
		}
	})
}

func (engine *Engine) debrisFollowUp(token uint64) {
	engine.mu.Lock()
	if engine.closed || !engine.followUps.Claim(token) {
		engine.mu.Unlock()
		return
	}
	var fx effects
	mode := engine.mode
	fx.add(func() { engine.ports.Sound.PlayApology(mode.Panic) })
	engine.pulseLocked(&fx)
	text := debrisText.pick(mode)
	engine.show(&fx, Notification{
		Kind:     KindDebris,
		Text:     text,
		Icon:     "🧹",
		Theme:    mode.Theme(),
		Duration: engine.config.Toasts.Debris,
		Speed:    engine.config.Typing.Normal,
	})
	engine.emitLocked(Event{Type: EventFollowUp, Channel: ChannelToast, Text: text})
	engine.mu.Unlock()
	fx.run()
}

func (engine *Engine) idleFired() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	var fx effects
	mode := engine.mode
	fx.add(func() { engine.ports.Sound.PlayApology(mode.Panic) })
	engine.pulseLocked(&fx)
	theme := mode.Theme()
	text := idleText.pick(mode)
	engine.show(&fx, Notification{
		Kind:     KindIdle,
		Title:    idleTitle.pick(mode),
		Text:     text,
		Icon:     idleIcon(theme),
		Theme:    theme,
		Duration: engine.config.Toasts.Idle,
		Speed:    engine.config.Typing.Normal,
	})
	engine.emitLocked(Event{Type: EventIdle, Trigger: model.TriggerIdle, Channel: ChannelToast, Text: text})
	engine.mu.Unlock()

	engine.logger.Debug("idle apology", "panic", mode.Panic)
	fx.run()
}

// DialogClosed records that the user dismissed the dialog. The avatar reacts
// and a clingy farewell toast follows shortly after.
func (engine *Engine) DialogClosed() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.dialogOpen = false
	var fx effects
	fx.add(engine.ports.Sound.PlayClick)
	engine.pulseLocked(&fx)
	engine.followUps.After(engine.scheduler, engine.config.FarewellDelay, engine.farewell)
	engine.emitLocked(Event{Type: EventDialogClosed, Channel: ChannelDialog})
	engine.mu.Unlock()
	fx.run()
}

func (engine *Engine) farewell(token uint64) {
	engine.mu.Lock()
	if engine.closed || !engine.followUps.Claim(token) {
		engine.mu.Unlock()
		return
	}
	var fx effects
	mode := engine.mode
	fx.add(func() { engine.ports.Sound.PlayApology(mode.Panic) })
	text := farewellText.pick(mode)
	engine.show(&fx, Notification{
		Kind:     KindFarewell,
		Text:     text,
		Icon:     "💔",
		Theme:    mode.Theme(),
		Duration: engine.config.Toasts.Farewell,
		Speed:    engine.config.Typing.Normal,
	})
	engine.emitLocked(Event{Type: EventFarewell, Channel: ChannelToast, Text: text})
	engine.mu.Unlock()
	fx.run()
}
