// Package term is the terminal frontend: the same engine driven from a
// Bubble Tea program instead of the desktop window.
package term

import (
	"context"
	"sync"

	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"

	tea "github.com/charmbracelet/bubbletea"
)

// Actions is the engine surface the terminal drives.
type Actions interface {
	Dispatch(trigger model.Trigger)
	TogglePanic()
	ToggleHoliday()
	Clicked(interactive bool)
	PointerMoved()
	KeyPressed()
	Scrolled(offsetY float64)
	HeartTapped()
	DialogClosed()
	Submit(input string)
}

// Options configures a Frontend.
type Options struct {
	Scheduler schedule.Scheduler
	Random    chance.Source
	// AltScreen runs the program full screen.
	AltScreen bool
}

// Frontend implements the engine's Notifier, Dialog, Scene and ChatView
// ports on top of a Bubble Tea program. Port methods may be called from
// any goroutine except the program's own update loop.
type Frontend struct {
	mu         sync.Mutex
	program    *tea.Program
	dialogOpen bool
	options    Options
	actions    Actions
}

// New creates a terminal frontend.
func New(options Options) *Frontend {
	if options.Scheduler == nil {
		options.Scheduler = schedule.System{}
	}
	if options.Random == nil {
		options.Random = chance.New(0)
	}
	return &Frontend{options: options}
}

// Bind connects the frontend to the engine.
func (frontend *Frontend) Bind(actions Actions) {
	frontend.mu.Lock()
	defer frontend.mu.Unlock()
	frontend.actions = actions
}

// Run blocks until the user quits or ctx is cancelled. onReady runs once
// the program accepts messages.
func (frontend *Frontend) Run(ctx context.Context, onReady func()) error {
	frontend.mu.Lock()
	actions := frontend.actions
	frontend.mu.Unlock()

	current := newModel(frontend.options, actions, frontend.dialogDismissed, onReady)
	programOptions := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseAllMotion()}
	if frontend.options.AltScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	program := tea.NewProgram(current, programOptions...)
	current.send = program.Send

	frontend.mu.Lock()
	frontend.program = program
	frontend.mu.Unlock()

	_, err := program.Run()

	frontend.mu.Lock()
	frontend.program = nil
	frontend.mu.Unlock()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (frontend *Frontend) send(msg tea.Msg) {
	frontend.mu.Lock()
	program := frontend.program
	frontend.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}

// Show displays a toast.
func (frontend *Frontend) Show(notification engine.Notification) {
	frontend.send(toastMsg{notification: notification})
}

// DismissAll clears every toast.
func (frontend *Frontend) DismissAll() {
	frontend.send(dismissAllMsg{})
}

// Open shows the dialog box. It returns false when one is already open.
func (frontend *Frontend) Open(message engine.DialogMessage) bool {
	frontend.mu.Lock()
	if frontend.dialogOpen {
		frontend.mu.Unlock()
		return false
	}
	frontend.dialogOpen = true
	frontend.mu.Unlock()
	frontend.send(dialogMsg{message: message})
	return true
}

// Close hides the dialog without reporting a dismissal.
func (frontend *Frontend) Close() {
	frontend.mu.Lock()
	frontend.dialogOpen = false
	frontend.mu.Unlock()
	frontend.send(dialogMsg{closed: true})
}

// RenderAvatar updates the avatar and theme.
func (frontend *Frontend) RenderAvatar(state engine.AvatarState) {
	frontend.send(avatarMsg{state: state})
}

// ShowConfetti toggles the confetti line.
func (frontend *Frontend) ShowConfetti(visible bool) {
	frontend.send(confettiMsg{visible: visible})
}

// SetPending toggles the typing indicator.
func (frontend *Frontend) SetPending(pending bool) {
	frontend.send(pendingMsg{pending: pending})
}

// ShowReply shows the chat reply.
func (frontend *Frontend) ShowReply(reply string) {
	frontend.send(replyMsg{reply: reply})
}

func (frontend *Frontend) dialogDismissed() {
	frontend.mu.Lock()
	wasOpen := frontend.dialogOpen
	frontend.dialogOpen = false
	actions := frontend.actions
	frontend.mu.Unlock()
	if wasOpen && actions != nil {
		actions.DialogClosed()
	}
}
