package animation

import "sorrybot/internal/core/engine"

// Frame is one avatar pose.
type Frame int

const (
	FrameCalm Frame = iota
	FrameBlink
	FrameGlance
	FrameSorry
	FramePanic
	FramePanicReact
)

var spriteNames = map[Frame]string{
	FrameCalm:       "avatar-calm.svg",
	FrameBlink:      "avatar-blink.svg",
	FrameGlance:     "avatar-glance.svg",
	FrameSorry:      "avatar-sorry.svg",
	FramePanic:      "avatar-panic.svg",
	FramePanicReact: "avatar-panic-react.svg",
}

// SpriteName returns the embedded sprite file for frame.
func (frame Frame) SpriteName() string {
	if name, ok := spriteNames[frame]; ok {
		return name
	}
	return spriteNames[FrameCalm]
}

// Pose is what the avatar view draws.
type Pose struct {
	Frame   Frame
	Holiday bool
	Bubble  string
}

// frameFor resolves the visible frame. A reaction beats the idle motions,
// and a blink beats a glance.
func frameFor(state engine.AvatarState, blinking, glancing bool) Frame {
	switch {
	case state.Mode.Panic && state.Reacting:
		return FramePanicReact
	case state.Reacting:
		return FrameSorry
	case blinking:
		return FrameBlink
	case state.Mode.Panic:
		return FramePanic
	case glancing:
		return FrameGlance
	default:
		return FrameCalm
	}
}
