// Package page is the main SorryBot window: the hero with the avatar, the
// apology-triggering page sections, the inline chat and the confetti layer.
package page

import (
	"image/color"
	"sync"

	"sorrybot/internal/content"
	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/core/typewriter"
	"sorrybot/internal/ui/animation"
	"sorrybot/internal/ui/palette"
	"sorrybot/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Actions is what the page reports user input to.
type Actions interface {
	Dispatch(trigger model.Trigger)
	TogglePanic()
	ToggleHoliday()
	Clicked(interactive bool)
	PointerMoved()
	KeyPressed()
	Scrolled(offsetY float64)
	HeartTapped()
	Submit(input string)
}

// Page is the main window. It implements engine.Scene and engine.ChatView.
type Page struct {
	mu      sync.Mutex
	actions Actions
	mode    model.Mode
	themed  bool
	rng     chance.Source

	window   fyne.Window
	avatar   *animation.Avatar
	headline *typewriter.Reveal

	background  *canvas.Rectangle
	sprite      *canvas.Image
	hat         *canvas.Image
	bubble      *widget.Label
	title       *canvas.Text
	subtitle    *canvas.Text
	panicButton *widget.Button
	holiday     *widget.Button
	chatEntry   *widget.Entry
	sendButton  *widget.Button
	pending     *widget.ProgressBarInfinite
	reply       *widget.Label
	confetti    *fyne.Container
}

// Options configures a Page.
type Options struct {
	Scheduler schedule.Scheduler
	Random    chance.Source
	Pools     content.Pools
	// Toasts is laid over the top-right corner.
	Toasts fyne.CanvasObject
}

// New builds the main window. Call Bind before showing it.
func New(app fyne.App, options Options) *Page {
	page := &Page{
		window: app.NewWindow("SorryBot"),
		rng:    options.Random,
	}
	page.avatar = animation.New(animation.DefaultConfig(), options.Scheduler, page.showPose)

	page.background = canvas.NewRectangle(palette.For(model.ThemeDefault).Background)
	page.title = canvas.NewText("", palette.For(model.ThemeDefault).Text)
	page.title.TextSize = 38
	page.title.TextStyle = fyne.TextStyle{Bold: true}
	page.subtitle = canvas.NewText("", palette.For(model.ThemeDefault).Muted)
	page.subtitle.TextSize = 22
	page.headline = typewriter.New(options.Scheduler, options.Random, func(state typewriter.State) {
		fyne.Do(func() {
			page.title.Text = state.Text
			page.title.Refresh()
		})
	})

	page.sprite = canvas.NewImageFromResource(resources.MustSprite(animation.FrameCalm.SpriteName()))
	page.sprite.FillMode = canvas.ImageFillContain
	page.sprite.SetMinSize(fyne.NewSize(160, 160))
	page.hat = canvas.NewImageFromResource(resources.MustSprite(resources.HolidayHat))
	page.hat.FillMode = canvas.ImageFillContain
	page.hat.Hide()
	page.bubble = widget.NewLabel("")
	page.bubble.Alignment = fyne.TextAlignCenter
	page.bubble.TextStyle = fyne.TextStyle{Italic: true}
	page.bubble.Hide()

	page.confetti = container.NewWithoutLayout()
	page.confetti.Hide()

	body := container.NewVBox(
		page.header(),
		page.hero(),
		widget.NewSeparator(),
		page.features(options.Pools.Features),
		widget.NewSeparator(),
		page.testimonials(options.Pools.Testimonials),
		widget.NewSeparator(),
		page.chat(),
		page.footer(),
	)
	scroll := container.NewVScroll(newActivityLayer(container.NewPadded(body), page.backgroundTapped, page.pointerMoved))
	scroll.OnScrolled = func(offset fyne.Position) {
		if actions := page.boundActions(); actions != nil {
			actions.Scrolled(float64(offset.Y))
		}
	}

	layers := []fyne.CanvasObject{page.background, scroll, page.confetti}
	if options.Toasts != nil {
		layers = append(layers, container.NewBorder(nil, nil, nil, container.NewVBox(options.Toasts, layout.NewSpacer())))
	}
	page.window.SetContent(container.NewStack(layers...))
	page.window.Resize(fyne.NewSize(980, 720))
	page.bindKeys()
	return page
}

// Bind connects the page to the engine.
func (page *Page) Bind(actions Actions) {
	page.mu.Lock()
	defer page.mu.Unlock()
	page.actions = actions
}

// Window returns the underlying window.
func (page *Page) Window() fyne.Window {
	return page.window
}

// Start begins the avatar's idle animation.
func (page *Page) Start() {
	page.avatar.Start()
}

// Stop halts page animations.
func (page *Page) Stop() {
	page.avatar.Stop()
	page.headline.Stop()
}

// RenderAvatar applies a new avatar state and, on mode change, the theme.
func (page *Page) RenderAvatar(state engine.AvatarState) {
	page.avatar.Update(state)

	page.mu.Lock()
	changed := !page.themed || page.mode != state.Mode
	page.mode = state.Mode
	page.themed = true
	page.mu.Unlock()
	if !changed {
		return
	}

	title, subtitle := engine.Headline(state.Mode)
	page.headline.SetText(title, headlineSpeed(state.Mode))
	colors := palette.For(state.Mode.Theme())
	fyne.Do(func() {
		page.background.FillColor = colors.Background
		page.background.Refresh()
		page.title.Color = colors.Text
		page.subtitle.Text = subtitle
		page.subtitle.Color = colors.Muted
		page.subtitle.Refresh()
		page.panicButton.SetText(toggleLabel("Panic", state.Mode.Panic))
		page.holiday.SetText(toggleLabel("Holiday", state.Mode.Holiday))
	})
}

// ShowConfetti toggles the confetti layer.
func (page *Page) ShowConfetti(visible bool) {
	fyne.Do(func() {
		if !visible {
			page.confetti.Hide()
			page.confetti.RemoveAll()
			return
		}
		page.scatterConfetti()
		page.confetti.Show()
	})
}

// SetPending shows the typing indicator while a reply is on its way.
func (page *Page) SetPending(pending bool) {
	fyne.Do(func() {
		if pending {
			page.pending.Show()
			page.pending.Start()
			page.reply.SetText("SorryBot is typing an apology...")
			return
		}
		page.pending.Stop()
		page.pending.Hide()
	})
}

// ShowReply displays the chat reply.
func (page *Page) ShowReply(reply string) {
	fyne.Do(func() {
		page.reply.SetText("SorryBot: " + reply)
	})
}

func (page *Page) showPose(pose animation.Pose) {
	sprite := resources.MustSprite(pose.Frame.SpriteName())
	fyne.Do(func() {
		page.sprite.Resource = sprite
		page.sprite.Refresh()
		if pose.Holiday {
			page.hat.Show()
		} else {
			page.hat.Hide()
		}
		page.bubble.SetText(pose.Bubble)
		if pose.Bubble == "" {
			page.bubble.Hide()
		} else {
			page.bubble.Show()
		}
	})
}

func (page *Page) header() fyne.CanvasObject {
	logo := canvas.NewImageFromResource(resources.MustLogo(resources.AppLogo))
	logo.SetMinSize(fyne.NewSize(32, 32))
	name := canvas.NewText("SorryBot", palette.For(model.ThemeDefault).Accent)
	name.TextStyle = fyne.TextStyle{Bold: true}
	name.TextSize = 20

	page.holiday = widget.NewButton(toggleLabel("Holiday", false), page.interactive(func(actions Actions) {
		actions.ToggleHoliday()
	}))
	page.panicButton = widget.NewButton(toggleLabel("Panic", false), page.interactive(func(actions Actions) {
		actions.TogglePanic()
	}))
	page.panicButton.Importance = widget.DangerImportance
	return container.NewHBox(logo, name, layout.NewSpacer(), page.holiday, page.panicButton)
}

func (page *Page) hero() fyne.CanvasObject {
	avatar := container.NewVBox(page.bubble, container.NewStack(page.sprite, page.hat))
	buttons := container.NewHBox(
		page.triggerButton("Apologize to me", model.TriggerHeroPrimary, widget.HighImportance),
		page.triggerButton("Learn more (sorry)", model.TriggerHeroSecondary, widget.MediumImportance),
		page.triggerButton("Contact us (please don't)", model.TriggerHeroTertiary, widget.LowImportance),
	)
	text := container.NewVBox(page.title, page.subtitle,
		widget.NewLabel("The world's first AI that is deeply, profoundly sorry for existing."),
		buttons,
	)
	return container.NewBorder(nil, nil, nil, avatar, text)
}

func (page *Page) features(features []content.Feature) fyne.CanvasObject {
	cards := make([]fyne.CanvasObject, 0, len(features))
	for _, feature := range features {
		card := widget.NewCard(feature.Icon+" "+feature.Title, "", widget.NewLabel(feature.Description))
		cards = append(cards, newTappable(card, page.interactive(func(actions Actions) {
			actions.Dispatch(model.TriggerFeatureCard)
		})))
	}
	return container.NewVBox(sectionTitle("Features We Regret"), container.NewGridWithColumns(2, cards...))
}

func (page *Page) testimonials(testimonials []content.Testimonial) fyne.CanvasObject {
	rows := make([]fyne.CanvasObject, 0, len(testimonials))
	for _, testimonial := range testimonials {
		quote := widget.NewLabel("“" + testimonial.Text + "”")
		quote.Wrapping = fyne.TextWrapWord
		author := widget.NewLabelWithStyle("- "+testimonial.Author, fyne.TextAlignTrailing, fyne.TextStyle{Italic: true})
		rows = append(rows, container.NewVBox(
			newTappable(quote, page.interactive(func(actions Actions) {
				actions.Dispatch(model.TriggerTestimonial)
			})),
			newTappable(author, page.interactive(func(actions Actions) {
				actions.Dispatch(model.TriggerTestimonialAuthor)
			})),
		))
	}
	return container.NewVBox(sectionTitle("What Our Victims Say"), container.NewGridWithColumns(max(len(rows), 1), rows...))
}

func (page *Page) chat() fyne.CanvasObject {
	page.chatEntry = widget.NewEntry()
	page.chatEntry.SetPlaceHolder("Say something. I'll apologize for it.")
	page.chatEntry.OnChanged = func(string) {
		if actions := page.boundActions(); actions != nil {
			actions.KeyPressed()
		}
	}
	submit := func() {
		input := page.chatEntry.Text
		page.chatEntry.SetText("")
		if actions := page.boundActions(); actions != nil {
			actions.Clicked(true)
			actions.Submit(input)
		}
	}
	page.chatEntry.OnSubmitted = func(string) { submit() }
	page.sendButton = widget.NewButton("Send (sorry)", submit)

	page.pending = widget.NewProgressBarInfinite()
	page.pending.Stop()
	page.pending.Hide()
	page.reply = widget.NewLabel("")
	page.reply.Wrapping = fyne.TextWrapWord

	return container.NewVBox(
		sectionTitle("Talk To Me (I'm Sorry)"),
		container.NewBorder(nil, nil, nil, page.sendButton, page.chatEntry),
		page.pending,
		page.reply,
	)
}

func (page *Page) footer() fyne.CanvasObject {
	privacy := widget.NewButton("Privacy (we're sorry)", page.interactive(func(actions Actions) {
		actions.Dispatch(model.TriggerFooter)
	}))
	privacy.Importance = widget.LowImportance
	heart := canvas.NewText("♥", color.NRGBA{R: 224, G: 49, B: 49, A: 255})
	heart.TextSize = 12
	// The heart swallows the global click; the engine plays the click cue itself.
	secret := newTappable(heart, func() {
		if actions := page.boundActions(); actions != nil {
			actions.HeartTapped()
		}
	})
	return container.NewHBox(
		widget.NewLabel("© SorryBot. All rights apologized for. Made with"),
		secret,
		layout.NewSpacer(),
		privacy,
	)
}

func (page *Page) triggerButton(label string, trigger model.Trigger, importance widget.Importance) *widget.Button {
	button := widget.NewButton(label, page.interactive(func(actions Actions) {
		actions.Dispatch(trigger)
	}))
	button.Importance = importance
	return button
}

// interactive wraps a handler with the click report every control makes.
func (page *Page) interactive(handler func(Actions)) func() {
	return func() {
		actions := page.boundActions()
		if actions == nil {
			return
		}
		actions.Clicked(true)
		handler(actions)
	}
}

func (page *Page) backgroundTapped() {
	if actions := page.boundActions(); actions != nil {
		actions.Clicked(false)
	}
}

func (page *Page) pointerMoved() {
	if actions := page.boundActions(); actions != nil {
		actions.PointerMoved()
	}
}

func (page *Page) bindKeys() {
	windowCanvas := page.window.Canvas()
	windowCanvas.SetOnTypedKey(func(*fyne.KeyEvent) {
		if actions := page.boundActions(); actions != nil {
			actions.KeyPressed()
		}
	})
	windowCanvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyP, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		if actions := page.boundActions(); actions != nil {
			actions.TogglePanic()
		}
	})
	windowCanvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyH, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		if actions := page.boundActions(); actions != nil {
			actions.ToggleHoliday()
		}
	})
	windowCanvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		if actions := page.boundActions(); actions != nil {
			actions.Dispatch(model.TriggerKeyboard)
		}
	})
}

func (page *Page) boundActions() Actions {
	page.mu.Lock()
	defer page.mu.Unlock()
	return page.actions
}

// scatterConfetti must run on the UI thread.
func (page *Page) scatterConfetti() {
	page.confetti.RemoveAll()
	size := page.window.Canvas().Size()
	for index, piece := range confettiPieces(page.rng, size, confettiCount) {
		rect := canvas.NewRectangle(palette.Confetti[index%len(palette.Confetti)])
		rect.Move(piece.Position)
		rect.Resize(piece.Size)
		page.confetti.Add(rect)
	}
}

func sectionTitle(text string) fyne.CanvasObject {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func toggleLabel(name string, on bool) string {
	if on {
		return name + ": ON"
	}
	return name + ": off"
}

func headlineSpeed(mode model.Mode) model.Range {
	if mode.Panic {
		return model.Millis(20, 60)
	}
	return model.Millis(50, 120)
}
