package toast

import (
	"sync"

	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/core/typewriter"
	"sorrybot/internal/ui/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Notifier shows toasts in a vertical stack. It implements engine.Notifier
// and may be called from any goroutine.
type Notifier struct {
	mu        sync.Mutex
	stack     *Stack
	scheduler schedule.Scheduler
	rng       chance.Source
	cards     map[string]*card
	box       *fyne.Container
}

type card struct {
	root   fyne.CanvasObject
	text   *widget.Label
	reveal *typewriter.Reveal
	timer  schedule.Timer
}

// NewNotifier creates a notifier drawing into its own container.
func NewNotifier(scheduler schedule.Scheduler, rng chance.Source, limit int) *Notifier {
	return &Notifier{
		stack:     NewStack(limit),
		scheduler: scheduler,
		rng:       rng,
		cards:     make(map[string]*card),
		box:       container.NewVBox(),
	}
}

// Object returns the container to place in the window.
func (notifier *Notifier) Object() fyne.CanvasObject {
	return notifier.box
}

// Show displays notification. A stable ID replaces the previous toast.
func (notifier *Notifier) Show(notification engine.Notification) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	id, replaced, evicted := notifier.stack.Push(notification, notifier.scheduler.Now())
	for _, old := range evicted {
		notifier.dropCardLocked(old)
	}
	if replaced {
		notifier.dropCardLocked(id)
	}

	current := notifier.newCard(id, notification)
	notifier.cards[id] = current
	current.timer = notifier.scheduler.AfterFunc(notification.Duration, func() {
		notifier.expire(id, current)
	})
	current.reveal.Start(notification.Text, notification.Speed)
	notifier.relayoutLocked()
}

// DismissAll removes every visible toast.
func (notifier *Notifier) DismissAll() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	for _, id := range notifier.stack.Clear() {
		notifier.dropCardLocked(id)
	}
	notifier.relayoutLocked()
}

func (notifier *Notifier) dismiss(id string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.stack.Remove(id) {
		notifier.dropCardLocked(id)
		notifier.relayoutLocked()
	}
}

func (notifier *Notifier) expire(id string, expected *card) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.cards[id] != expected {
		return
	}
	notifier.stack.Remove(id)
	notifier.dropCardLocked(id)
	notifier.relayoutLocked()
}

func (notifier *Notifier) dropCardLocked(id string) {
	existing, ok := notifier.cards[id]
	if !ok {
		return
	}
	existing.reveal.Stop()
	if existing.timer != nil {
		existing.timer.Stop()
	}
	delete(notifier.cards, id)
}

func (notifier *Notifier) relayoutLocked() {
	entries := notifier.stack.Entries()
	objects := make([]fyne.CanvasObject, 0, len(entries))
	for _, entry := range entries {
		if current, ok := notifier.cards[entry.ID]; ok {
			objects = append(objects, current.root)
		}
	}
	fyne.Do(func() {
		notifier.box.Objects = objects
		notifier.box.Refresh()
	})
}

func (notifier *Notifier) newCard(id string, notification engine.Notification) *card {
	colors := palette.For(notification.Theme)

	background := canvas.NewRectangle(colors.Surface)
	background.StrokeColor = colors.Accent
	background.StrokeWidth = 2
	background.CornerRadius = theme.InputRadiusSize()

	text := widget.NewLabel("")
	text.Wrapping = fyne.TextWrapWord

	icon := canvas.NewText(notification.Icon, colors.Text)
	icon.TextSize = 22

	body := container.NewVBox()
	if notification.Title != "" {
		title := canvas.NewText(notification.Title, colors.Accent)
		title.TextStyle = fyne.TextStyle{Bold: true}
		body.Add(title)
	}
	body.Add(text)

	var trailing fyne.CanvasObject
	if notification.Dismissible {
		trailing = container.NewVBox(widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
			notifier.dismiss(id)
		}), layout.NewSpacer())
	}

	content := container.NewBorder(nil, nil, container.NewPadded(icon), trailing, body)
	root := container.NewGridWrap(fyne.NewSize(cardWidth, cardMinHeight), container.NewStack(background, container.NewPadded(content)))

	current := &card{root: root, text: text}
	current.reveal = typewriter.New(notifier.scheduler, notifier.rng, func(state typewriter.State) {
		fyne.Do(func() { text.SetText(state.Text) })
	})
	return current
}

const (
	cardWidth     = float32(320)
	cardMinHeight = float32(88)
)
