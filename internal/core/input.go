package core

import "strings"

// Action is a semantic game input, independent of the key that produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionLeft           // Rotate the launcher left
	ActionRight          // Rotate the launcher right
	ActionFire           // Shoot the current marble
	ActionSwap           // Exchange current and next marble
	ActionConfirm        // Go on to the next level
	ActionBack           // Leave for the menu
	ActionRestart        // Replay the level
	ActionQuit           // Exit
	ActionPause          // Toggle pause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Left", "Right", "Fire", "Swap", "Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions pressed during one tick. The zero
// value is an empty frame; frames are plain values and safe to copy.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set adds an action. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

// Has reports whether the action was pressed.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was pressed.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// String lists the pressed actions, for debug logs.
func (f InputFrame) String() string {
	var names []string
	for a := ActionLeft; a < actionCount; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
