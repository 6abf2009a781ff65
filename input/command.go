// Package input turns keyboard, touch and gamepad state into engine
// commands. It knows nothing about the window system; hosts feed it the
// raw pressed/released state each frame.
package input

import (
	"fmt"

	"github.com/plus3/neonpulse/engine"
)

type Command uint8

const (
	None Command = iota
	MoveLeft
	MoveRight
	SoftDown
	Rotate
	HardDrop
	Hold
	Pause
	Reset
)

// Commands lists every command in dispatch order.
var Commands = [...]Command{MoveLeft, MoveRight, SoftDown, Rotate, HardDrop, Hold, Pause, Reset}

var commandNames = [...]string{"none", "move_left", "move_right", "soft_down", "rotate", "hard_drop", "hold", "pause", "reset"}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", c)
}

func ParseCommand(name string) (Command, error) {
	for _, c := range Commands {
		if commandNames[c] == name {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown command %q", name)
}

// Gameplay reports whether c moves pieces. Pause and Reset are control
// commands and stay available after game over.
func (c Command) Gameplay() bool {
	return c >= MoveLeft && c <= Hold
}

// Target is the engine command surface the dispatcher drives.
type Target interface {
	MoveLeft() bool
	MoveRight() bool
	SoftDown() engine.LockResult
	RotateClockwise() bool
	HardDrop() engine.LockResult
	Hold() bool
	TogglePause()
	Reset()
}

var _ Target = (*engine.Engine)(nil)

// Dispatch applies one command to t and returns the lock outcome for the
// commands that can lock a piece.
func Dispatch(t Target, c Command) engine.LockResult {
	switch c {
	case MoveLeft:
		t.MoveLeft()
	case MoveRight:
		t.MoveRight()
	case SoftDown:
		return t.SoftDown()
	case Rotate:
		t.RotateClockwise()
	case HardDrop:
		return t.HardDrop()
	case Hold:
		t.Hold()
	case Pause:
		t.TogglePause()
	case Reset:
		t.Reset()
	}
	return engine.LockResult{}
}
