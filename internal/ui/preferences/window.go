package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	sound       *widget.Check
	dialog      *widget.Slider
	existential *widget.Slider
	scroll      *widget.Slider
	idleMin     *widget.Entry
	idleMax     *widget.Entry
	contentPath *widget.Entry
	labels      map[string]*widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("SorryBot Settings")

	sound := widget.NewCheck("Play apology sounds", nil)
	dialog := newChanceSlider()
	existential := newChanceSlider()
	scroll := newChanceSlider()
	idleMin := widget.NewEntry()
	idleMax := widget.NewEntry()
	contentPath := widget.NewEntry()
	contentPath.SetPlaceHolder("Built-in apologies")

	labels := map[string]*widget.Label{
		"dialog":      widget.NewLabel(""),
		"existential": widget.NewLabel(""),
		"scroll":      widget.NewLabel(""),
	}
	bindPercent(dialog, labels["dialog"])
	bindPercent(existential, labels["existential"])
	bindPercent(scroll, labels["scroll"])

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sound,
		container.NewHBox(widget.NewLabel("Idle apology after"), idleMin, widget.NewLabel("to"), idleMax, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Regret levels", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Blocking dialog chance"), labels["dialog"], dialog),
		container.NewBorder(nil, nil, widget.NewLabel("Existential crisis chance"), labels["existential"], existential),
		container.NewBorder(nil, nil, widget.NewLabel("Scroll apology chance"), labels["scroll"], scroll),
		widget.NewLabel("Apology content file (YAML)"),
		contentPath,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(460, 420))

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		sound:       sound,
		dialog:      dialog,
		existential: existential,
		scroll:      scroll,
		idleMin:     idleMin,
		idleMax:     idleMax,
		contentPath: contentPath,
		labels:      labels,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = window.Hide
	window.SetCloseIntercept(window.Hide)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.sound.SetChecked(settings.SoundEnabled)
	// Dialog and scroll thresholds are "draw above" cutoffs; the sliders show the chance.
	prefs.dialog.SetValue(1 - settings.DialogThreshold)
	prefs.existential.SetValue(settings.ExistentialThreshold)
	prefs.scroll.SetValue(1 - settings.ScrollThreshold)
	prefs.idleMin.SetText(strconv.Itoa(int(settings.IdleMin / time.Second)))
	prefs.idleMax.SetText(strconv.Itoa(int(settings.IdleMax / time.Second)))
	prefs.contentPath.SetText(settings.ContentPath)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.SoundEnabled = prefs.sound.Checked
	settings.DialogThreshold = 1 - prefs.dialog.Value
	settings.ExistentialThreshold = prefs.existential.Value
	settings.ScrollThreshold = 1 - prefs.scroll.Value

	minSeconds, minOK := parsePositiveInt(prefs.idleMin.Text)
	maxSeconds, maxOK := parsePositiveInt(prefs.idleMax.Text)
	if minOK && maxOK && maxSeconds > minSeconds {
		settings.IdleMin = time.Duration(minSeconds) * time.Second
		settings.IdleMax = time.Duration(maxSeconds) * time.Second
	}
	settings.ContentPath = strings.TrimSpace(prefs.contentPath.Text)

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func newChanceSlider() *widget.Slider {
	slider := widget.NewSlider(0.01, 0.99)
	slider.Step = 0.01
	return slider
}

func bindPercent(slider *widget.Slider, label *widget.Label) {
	slider.OnChanged = func(value float64) {
		label.SetText(fmt.Sprintf("%d%%", int(value*100+0.5)))
	}
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
