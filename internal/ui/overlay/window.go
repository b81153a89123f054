// Package overlay implements the blocking apology dialog as an undecorated
// window that stays on top of the page until acknowledged.
package overlay

import (
	"strings"
	"sync"

	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/core/typewriter"
	"sorrybot/internal/ui/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Window manages the dialog UI. It implements engine.Dialog.
type Window struct {
	mu       sync.Mutex
	open     bool
	window   fyne.Window
	reveal   *typewriter.Reveal
	onClosed func()

	background *canvas.Rectangle
	titleLabel *canvas.Text
	message    *widget.Label
	confirm    *widget.Button
	dismiss    *widget.Button
}

const (
	dialogWidth  = float32(460)
	dialogHeight = float32(260)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the dialog window. onClosed runs when the user dismisses it.
func New(app fyne.App, scheduler schedule.Scheduler, rng chance.Source, onClosed func()) *Window {
	window := app.NewWindow("SorryBot")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	colors := palette.For(model.ThemeDefault)
	background := canvas.NewRectangle(colors.Surface)
	background.StrokeWidth = 3
	background.StrokeColor = colors.Accent

	titleLabel := canvas.NewText("", colors.Accent)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	message := widget.NewLabel("")
	message.Wrapping = fyne.TextWrapWord
	message.TextStyle = fyne.TextStyle{Bold: true}

	confirm := widget.NewButton("", nil)
	confirm.Importance = widget.HighImportance
	dismiss := widget.NewButton("", nil)

	buttons := container.NewGridWithColumns(2, dismiss, confirm)
	content := container.New(&dialogLayout{}, titleLabel, message, buttons)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(dialogWidth, dialogHeight))

	overlay := &Window{
		window:     window,
		onClosed:   onClosed,
		background: background,
		titleLabel: titleLabel,
		message:    message,
		confirm:    confirm,
		dismiss:    dismiss,
	}
	overlay.reveal = typewriter.New(scheduler, rng, func(state typewriter.State) {
		fyne.Do(func() { message.SetText(state.Text) })
	})
	confirm.OnTapped = overlay.acknowledge
	dismiss.OnTapped = overlay.acknowledge
	window.SetCloseIntercept(overlay.acknowledge)
	return overlay
}

// Open shows message. It returns false when a dialog is already open.
func (overlay *Window) Open(message engine.DialogMessage) bool {
	overlay.mu.Lock()
	if overlay.open {
		overlay.mu.Unlock()
		return false
	}
	overlay.open = true
	overlay.mu.Unlock()

	colors := palette.For(message.Theme)
	fyne.Do(func() {
		overlay.background.FillColor = colors.Surface
		overlay.background.StrokeColor = colors.Accent
		overlay.background.Refresh()
		overlay.titleLabel.Text = message.Title
		overlay.titleLabel.Color = colors.Accent
		overlay.titleLabel.Refresh()
		overlay.confirm.SetText(message.Confirm)
		overlay.dismiss.SetText(message.Dismiss)
		overlay.window.CenterOnScreen()
		overlay.window.Show()
		overlay.window.RequestFocus()
	})
	overlay.reveal.Start(Quote(message.Text), message.Speed)
	return true
}

// Close hides the dialog without reporting a user dismissal.
func (overlay *Window) Close() {
	overlay.hide()
}

// IsOpen reports whether the dialog is showing.
func (overlay *Window) IsOpen() bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.open
}

func (overlay *Window) acknowledge() {
	if overlay.hide() && overlay.onClosed != nil {
		overlay.onClosed()
	}
}

func (overlay *Window) hide() bool {
	overlay.mu.Lock()
	wasOpen := overlay.open
	overlay.open = false
	overlay.mu.Unlock()
	if !wasOpen {
		return false
	}
	fyne.Do(overlay.window.Hide)
	return true
}

// Quote renders a dialog message the way the dialog shows it: shouted and quoted.
func Quote(text string) string {
	return `"` + strings.ToUpper(text) + `"`
}

type dialogLayout struct{}

func (layout *dialogLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	title := objects[0]
	message := objects[1]
	buttons := objects[2]

	pad := size.Height * 0.05
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	buttonsSize := buttons.MinSize()
	buttonsY := size.Height - pad - buttonsSize.Height
	if buttonsY < 0 {
		buttonsY = 0
	}
	buttons.Move(fyne.NewPos(pad, buttonsY))
	buttons.Resize(fyne.NewSize(availableWidth, buttonsSize.Height))

	messageY := pad + titleSize.Height + 8
	messageHeight := buttonsY - messageY - 8
	if messageHeight < 0 {
		messageHeight = 0
	}
	message.Move(fyne.NewPos(pad, messageY))
	message.Resize(fyne.NewSize(availableWidth, messageHeight))
}

func (layout *dialogLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	titleSize := objects[0].MinSize()
	messageSize := objects[1].MinSize()
	buttonsSize := objects[2].MinSize()

	width := titleSize.Width
	if buttonsSize.Width > width {
		width = buttonsSize.Width
	}
	height := titleSize.Height + messageSize.Height + buttonsSize.Height + 40
	return fyne.NewSize(width+20, height)
}
