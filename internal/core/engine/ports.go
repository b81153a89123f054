package engine

import (
	"context"
	"errors"
	"time"

	"sorrybot/internal/core/model"
)

// NotificationKind tells the view which toast layout to use.
type NotificationKind string

const (
	KindApology    NotificationKind = "apology"
	KindTransition NotificationKind = "transition"
	KindDebris     NotificationKind = "debris"
	KindIdle       NotificationKind = "idle"
	KindScroll     NotificationKind = "scroll"
	KindFarewell   NotificationKind = "farewell"
)

// ScrollSlotID is the stable id of the scroll toast; showing it replaces the previous one.
const ScrollSlotID = "scroll-apology"

// Notification is an ephemeral toast.
type Notification struct {
	// ID, when set, replaces any visible toast with the same ID.
	ID          string
	Kind        NotificationKind
	Title       string
	Text        string
	Icon        string
	Theme       model.Theme
	Duration    time.Duration
	Speed       model.Range
	Dismissible bool
}

// DialogMessage is the content of the blocking dialog.
type DialogMessage struct {
	Title   string
	Text    string
	Confirm string
	Dismiss string
	Theme   model.Theme
	Speed   model.Range
}

// AvatarState is what the avatar view renders.
type AvatarState struct {
	Mode     model.Mode
	Reacting bool
	Bubble   string
	// Version increases with every render; views drop states older than the last one seen.
	Version uint64
}

// Notifier shows ephemeral notifications.
type Notifier interface {
	Show(notification Notification)
	DismissAll()
}

// Dialog is the blocking dialog channel. Open returns false when a dialog is already open.
type Dialog interface {
	Open(message DialogMessage) bool
	Close()
}

// Sound plays fire-and-forget cues. Implementations never fail loudly.
type Sound interface {
	PlayClick()
	PlayApology(panic bool)
	PlayThemeSwitch(toPanic bool)
}

// Scene renders the avatar and the confetti layer.
type Scene interface {
	RenderAvatar(state AvatarState)
	ShowConfetti(visible bool)
}

// ChatView shows inline chat replies.
type ChatView interface {
	SetPending(pending bool)
	ShowReply(reply string)
}

// Generator produces a chat reply. It may fail.
type Generator interface {
	Generate(ctx context.Context, input string) (string, error)
}

// Ports bundles the collaborators. Nil entries are replaced with no-ops.
type Ports struct {
	Notifier  Notifier
	Dialog    Dialog
	Sound     Sound
	Scene     Scene
	Chat      ChatView
	Generator Generator
}

var errNoGenerator = errors.New("no text generator configured")

type nopPorts struct{}

func (nopPorts) Show(Notification) {}
func (nopPorts) DismissAll() {}
func (nopPorts) Open(DialogMessage) bool { return true }
func (nopPorts) Close() {}
func (nopPorts) PlayClick() {}
func (nopPorts) PlayApology(bool) {}
func (nopPorts) PlayThemeSwitch(bool) {}
func (nopPorts) RenderAvatar(AvatarState) {}
func (nopPorts) ShowConfetti(bool) {}
func (nopPorts) SetPending(bool) {}
func (nopPorts) ShowReply(string) {}
func (nopPorts) Generate(context.Context, string) (string, error) {
	return "", errNoGenerator
}

func (ports Ports) withDefaults() Ports {
	if ports.Notifier == nil {
		ports.Notifier = nopPorts{}
	}
	if ports.Dialog == nil {
		ports.Dialog = nopPorts{}
	}
	if ports.Sound == nil {
		ports.Sound = nopPorts{}
	}
	if ports.Scene == nil {
		ports.Scene = nopPorts{}
	}
	if ports.Chat == nil {
		ports.Chat = nopPorts{}
	}
	if ports.Generator == nil {
		ports.Generator = nopPorts{}
	}
	return ports
}
