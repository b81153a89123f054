package term

import (
	"strings"
	"time"

	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/core/typewriter"
	"sorrybot/internal/ui/animation"
	"sorrybot/internal/ui/toast"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	tickEvery     = 200 * time.Millisecond
	scrollStep    = 120
	defaultWidth  = 80
	toastWidth    = 44
	confettiWidth = 40
	dialogKey     = "dialog"
)

var confettiGlyphs = []string{"✦", "✧", "•", "*", "+", "°", "·"}

var faces = map[animation.Frame]string{
	animation.FrameCalm:       "( •‿• )",
	animation.FrameBlink:      "( -‿- )",
	animation.FrameGlance:     "( •‿•)>",
	animation.FrameSorry:      "( ╥﹏╥ )",
	animation.FramePanic:      "( ⊙_⊙ )",
	animation.FramePanicReact: "(╯°□°)╯",
}

type (
	toastMsg      struct{ notification engine.Notification }
	dismissAllMsg struct{}
	dialogMsg     struct {
		message engine.DialogMessage
		closed  bool
	}
	avatarMsg   struct{ state engine.AvatarState }
	poseMsg     struct{}
	confettiMsg struct{ visible bool }
	pendingMsg  struct{ pending bool }
	replyMsg    struct{ reply string }
	revealMsg   struct {
		key    string
		reveal *typewriter.Reveal
		state  typewriter.State
	}
	tickMsg time.Time
)

type dialogState struct {
	message engine.DialogMessage
	open    bool
}

// Model is the Bubble Tea model of the terminal page.
type Model struct {
	options   Options
	actions   Actions
	onDismiss func()
	onReady   func()
	send      func(tea.Msg)
	now       func() time.Time
	avatar    *animation.Avatar
	toasts    *toast.Stack
	reveals   map[string]*typewriter.Reveal
	revealed  map[string]typewriter.State
	dialog    dialogState
	state     engine.AvatarState
	pose      animation.Pose
	confetti  string
	input     textinput.Model
	spinner   spinner.Model
	pending   bool
	reply     string
	scrollY   float64
	width     int
	quitting  bool
}

func newModel(options Options, actions Actions, onDismiss, onReady func()) *Model {
	if options.Scheduler == nil {
		options.Scheduler = schedule.System{}
	}
	if options.Random == nil {
		options.Random = chance.New(0)
	}

	input := textinput.New()
	input.Placeholder = "Tell me what I did wrong..."
	input.Prompt = "> "
	input.CharLimit = 280
	input.Focus()

	current := &Model{
		options:   options,
		actions:   actions,
		onDismiss: onDismiss,
		onReady:   onReady,
		now:       options.Scheduler.Now,
		toasts:    toast.NewStack(toast.DefaultLimit),
		reveals:   make(map[string]*typewriter.Reveal),
		revealed:  make(map[string]typewriter.State),
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:     defaultWidth,
	}
	current.avatar = animation.New(animation.DefaultConfig(), options.Scheduler, func(animation.Pose) {
		current.post(poseMsg{})
	})
	return current
}

// post delivers msg from outside the update loop. Reveals and the avatar
// publish while holding their own locks, so delivery never blocks them.
func (current *Model) post(msg tea.Msg) {
	if current.send != nil {
		go current.send(msg)
	}
}

func (current *Model) act(fn func(Actions)) tea.Cmd {
	if current.actions == nil {
		return nil
	}
	actions := current.actions
	return func() tea.Msg {
		fn(actions)
		return nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickEvery, func(at time.Time) tea.Msg { return tickMsg(at) })
}

// Init starts the avatar loops and hands control to onReady.
func (current *Model) Init() tea.Cmd {
	current.avatar.Start()
	ready := func() tea.Msg {
		if current.onReady != nil {
			current.onReady()
		}
		return nil
	}
	return tea.Batch(textinput.Blink, tick(), ready)
}

// Update handles one message.
func (current *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		current.width = msg.Width
		return current, nil

	case tea.KeyMsg:
		return current.handleKey(msg)

	case tea.MouseMsg:
		return current.handleMouse(msg)

	case tickMsg:
		for _, id := range current.toasts.Expired(current.now()) {
			current.dropReveal(id)
		}
		return current, tick()

	case toastMsg:
		id, _, evicted := current.toasts.Push(msg.notification, current.now())
		for _, old := range evicted {
			current.dropReveal(old)
		}
		current.startReveal(id, msg.notification.Text, msg.notification.Speed)
		return current, nil

	case dismissAllMsg:
		for _, id := range current.toasts.Clear() {
			current.dropReveal(id)
		}
		return current, nil

	case dialogMsg:
		if msg.closed {
			current.dialog = dialogState{}
			current.dropReveal(dialogKey)
			return current, nil
		}
		current.dialog = dialogState{message: msg.message, open: true}
		current.startReveal(dialogKey, msg.message.Text, msg.message.Speed)
		return current, nil

	case avatarMsg:
		if msg.state.Version < current.state.Version {
			return current, nil
		}
		current.state = msg.state
		current.avatar.Update(msg.state)
		current.pose = current.avatar.Pose()
		return current, nil

	case poseMsg:
		current.pose = current.avatar.Pose()
		return current, nil

	case confettiMsg:
		current.confetti = ""
		if msg.visible {
			current.confetti = confettiLine(current.options.Random, confettiWidth)
		}
		return current, nil

	case pendingMsg:
		current.pending = msg.pending
		if msg.pending {
			return current, current.spinner.Tick
		}
		return current, nil

	case replyMsg:
		current.reply = msg.reply
		return current, nil

	case revealMsg:
		if current.reveals[msg.key] != msg.reveal {
			return current, nil
		}
		if msg.state.Revealed >= current.revealed[msg.key].Revealed || msg.state.Complete {
			current.revealed[msg.key] = msg.state
		}
		return current, nil

	case spinner.TickMsg:
		if !current.pending {
			return current, nil
		}
		var cmd tea.Cmd
		current.spinner, cmd = current.spinner.Update(msg)
		return current, cmd
	}

	var cmd tea.Cmd
	current.input, cmd = current.input.Update(msg)
	return current, cmd
}

func (current *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	activity := current.act(func(actions Actions) { actions.KeyPressed() })

	if current.dialog.open {
		switch msg.String() {
		case "enter", "esc", " ":
			return current, tea.Batch(activity, current.dismissDialog())
		case "ctrl+c":
			current.quitting = true
			return current, tea.Quit
		}
		return current, activity
	}

	switch msg.String() {
	case "ctrl+c":
		current.quitting = true
		return current, tea.Quit
	case "ctrl+a":
		return current, tea.Batch(activity, current.act(func(actions Actions) {
			actions.Dispatch(model.TriggerKeyboard)
		}))
	case "ctrl+p":
		return current, tea.Batch(activity, current.act(func(actions Actions) { actions.TogglePanic() }))
	case "ctrl+t":
		return current, tea.Batch(activity, current.act(func(actions Actions) { actions.ToggleHoliday() }))
	case "ctrl+l":
		return current, tea.Batch(activity, current.act(func(actions Actions) { actions.HeartTapped() }))
	case "ctrl+x":
		current.dismissNewest()
		return current, activity
	case "pgdown":
		return current, tea.Batch(activity, current.scroll(scrollStep))
	case "pgup":
		return current, tea.Batch(activity, current.scroll(-scrollStep))
	case "enter":
		value := current.input.Value()
		current.input.Reset()
		return current, tea.Batch(activity, current.act(func(actions Actions) { actions.Submit(value) }))
	}

	var cmd tea.Cmd
	current.input, cmd = current.input.Update(msg)
	return current, tea.Batch(activity, cmd)
}

func (current *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionMotion:
		return current, current.act(func(actions Actions) { actions.PointerMoved() })
	case msg.Button == tea.MouseButtonWheelDown:
		return current, current.scroll(scrollStep / 3)
	case msg.Button == tea.MouseButtonWheelUp:
		return current, current.scroll(-scrollStep / 3)
	case msg.Action == tea.MouseActionPress:
		return current, current.act(func(actions Actions) { actions.Clicked(false) })
	}
	return current, nil
}

func (current *Model) scroll(delta float64) tea.Cmd {
	current.scrollY = max(current.scrollY+delta, 0)
	offset := current.scrollY
	return current.act(func(actions Actions) { actions.Scrolled(offset) })
}

func (current *Model) dismissDialog() tea.Cmd {
	current.dialog = dialogState{}
	current.dropReveal(dialogKey)
	onDismiss := current.onDismiss
	if onDismiss == nil {
		return nil
	}
	return func() tea.Msg {
		onDismiss()
		return nil
	}
}

func (current *Model) dismissNewest() {
	entries := current.toasts.Entries()
	for index := len(entries) - 1; index >= 0; index-- {
		if entries[index].Notification.Dismissible {
			current.toasts.Remove(entries[index].ID)
			current.dropReveal(entries[index].ID)
			return
		}
	}
}

func (current *Model) startReveal(key, text string, speed model.Range) {
	current.dropReveal(key)
	current.revealed[key] = typewriter.State{Total: len([]rune(text))}
	var reveal *typewriter.Reveal
	reveal = typewriter.New(current.options.Scheduler, current.options.Random, func(state typewriter.State) {
		current.post(revealMsg{key: key, reveal: reveal, state: state})
	})
	current.reveals[key] = reveal
	reveal.Start(text, speed)
}

func (current *Model) dropReveal(key string) {
	if reveal, ok := current.reveals[key]; ok {
		reveal.Stop()
		delete(current.reveals, key)
	}
	delete(current.revealed, key)
}

func confettiLine(rng chance.Source, width int) string {
	var builder strings.Builder
	for i := 0; i < width; i++ {
		if rng.Float64() < 0.5 {
			builder.WriteByte(' ')
			continue
		}
		builder.WriteString(confettiGlyphs[rng.Intn(len(confettiGlyphs))])
	}
	return builder.String()
}

// View renders the page.
func (current *Model) View() string {
	if current.quitting {
		return ""
	}
	style := stylesFor(current.state.Mode.Theme())
	width := max(current.width, 20)

	title, subtitle := engine.Headline(current.state.Mode)
	face := faces[current.pose.Frame]
	if current.pose.Holiday {
		face = "🎄" + face
	}
	avatar := style.avatar.Render(face)
	if current.pose.Bubble != "" {
		avatar = lipgloss.JoinHorizontal(lipgloss.Center, avatar, style.bubble.Render(current.pose.Bubble))
	}

	sections := []string{
		style.header.Render(runewidth.Truncate("SorryBot · "+modeLabel(current.state.Mode), width, "…")),
		style.headline.Render(runewidth.Truncate(title, width, "…")),
		style.muted.Render(runewidth.Truncate(subtitle, width, "…")),
		"",
		avatar,
	}
	if current.confetti != "" {
		sections = append(sections, style.confetti.Render(current.confetti))
	}
	if current.dialog.open {
		sections = append(sections, "", current.renderDialog(style, width))
	}
	for _, entry := range current.toasts.Entries() {
		sections = append(sections, current.renderToast(style, entry, width))
	}

	sections = append(sections, "")
	switch {
	case current.pending:
		sections = append(sections, style.muted.Render(current.spinner.View()+" typing..."))
	case current.reply != "":
		sections = append(sections, style.reply.Render(runewidth.Truncate(current.reply, width, "…")))
	}
	sections = append(sections,
		current.input.View(),
		"",
		style.muted.Render(runewidth.Truncate(
			"ctrl+a apologize · ctrl+p panic · ctrl+t holiday · ctrl+l ♥ · ctrl+x dismiss · pgup/pgdn scroll · ctrl+c quit",
			width, "…")),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (current *Model) renderToast(style styles, entry toast.Entry, width int) string {
	notification := entry.Notification
	limit := min(toastWidth, width-4)
	text := current.revealed[entry.ID].Text
	lines := []string{}
	if notification.Title != "" {
		lines = append(lines, style.title.Render(runewidth.Truncate(notification.Icon+" "+notification.Title, limit, "…")))
		lines = append(lines, runewidth.Truncate(text, limit, "…"))
	} else {
		lines = append(lines, runewidth.Truncate(strings.TrimSpace(notification.Icon+" "+text), limit, "…"))
	}
	return stylesFor(notification.Theme).toast.Render(strings.Join(lines, "\n"))
}

func (current *Model) renderDialog(style styles, width int) string {
	message := current.dialog.message
	dialogStyle := stylesFor(message.Theme)
	limit := min(toastWidth+10, width-8)
	text := lipgloss.NewStyle().Width(limit).Render(current.revealed[dialogKey].Text)
	buttons := style.muted.Render("[enter] " + message.Confirm + "   [esc] " + message.Dismiss)
	return dialogStyle.dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
		dialogStyle.title.Render(message.Title),
		"",
		text,
		"",
		buttons,
	))
}

func modeLabel(mode model.Mode) string {
	switch mode.Theme() {
	case model.ThemePanic:
		return "PANIC MODE"
	case model.ThemeHoliday:
		return "holiday mode"
	default:
		return "calm regret"
	}
}
