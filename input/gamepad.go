package input

import "time"

// Standard gamepad button indices.
const (
	ButtonA         = 0
	ButtonB         = 1
	ButtonX         = 2
	ButtonY         = 3
	ButtonL1        = 4
	ButtonR1        = 5
	ButtonStart     = 9
	ButtonDPadUp    = 12
	ButtonDPadDown  = 13
	ButtonDPadLeft  = 14
	ButtonDPadRight = 15

	ButtonCount = 17
)

const DefaultDeadZone = 0.5

// PadState is one poll of a gamepad in the standard layout.
type PadState struct {
	Connected bool
	Buttons   [ButtonCount]bool
	// LeftX and LeftY are the left stick axes in [-1, 1], positive right
	// and down.
	LeftX, LeftY float64
}

// Gamepad maps pad state to commands. Every action fires on its press edge
// except soft-down, which fires every poll while held.
type Gamepad struct {
	DeadZone float64
	tracker  *Tracker
}

func NewGamepad(deadZone float64) *Gamepad {
	if deadZone <= 0 || deadZone >= 1 {
		deadZone = DefaultDeadZone
	}
	return &Gamepad{
		DeadZone: deadZone,
		tracker:  NewTracker(0, 0, SoftDown),
	}
}

// Held reports whether the pad currently requests c.
func (g *Gamepad) Held(s PadState, c Command) bool {
	b := s.Buttons
	switch c {
	case MoveLeft:
		return b[ButtonDPadLeft] || s.LeftX < -g.DeadZone
	case MoveRight:
		return b[ButtonDPadRight] || s.LeftX > g.DeadZone
	case SoftDown:
		return b[ButtonDPadDown] || s.LeftY > g.DeadZone
	case Rotate:
		return b[ButtonA] || b[ButtonY]
	case HardDrop:
		return b[ButtonB] || b[ButtonX]
	case Hold:
		return b[ButtonL1] || b[ButtonR1]
	case Pause:
		return b[ButtonStart]
	}
	return false
}

// Poll returns the commands fired by this poll. A disconnected pad releases
// everything.
func (g *Gamepad) Poll(dt time.Duration, s PadState) []Command {
	if !s.Connected {
		g.tracker.Release()
		return nil
	}
	return g.tracker.Step(nil, dt, func(c Command) bool {
		return g.Held(s, c)
	})
}
