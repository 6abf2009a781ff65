package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"

	"github.com/plus3/neonpulse/audio"
	"github.com/plus3/neonpulse/input"
	"github.com/plus3/neonpulse/view"
)

// Screen is the render target of the current Draw call and the layout for
// the window size.
type Screen struct {
	Image  *ebiten.Image
	Layout view.Layout
	Fonts  *Fonts
}

// Pad is one polled gamepad.
type Pad struct {
	ID    ebiten.GamepadID
	State input.PadState
}

// RawInput is the device state polled at the start of each Update.
type RawInput struct {
	Keys []ebiten.Key
	Pads []Pad
	// Presses are the touches and clicks that began this frame.
	Presses [][2]float64
}

// Capture reports input consumed by the debug overlay.
type Capture struct {
	Mouse    bool
	Keyboard bool
}

// Controls holds the per-device command trackers.
type Controls struct {
	Keyboard *input.Keyboard[ebiten.Key]
	Gamepads *intmap.Map[ebiten.GamepadID, *input.Gamepad]
	DeadZone float64
}

// Sound owns the soundtrack. Enabled turns false when output fails.
type Sound struct {
	Soundtrack *audio.Soundtrack
	Enabled    bool
}
