package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/neonpulse/input"
)

// poller reads device state from ebiten into RawInput, reusing its
// buffers between frames.
type poller struct {
	gamepads []ebiten.GamepadID
	touches  []ebiten.TouchID
}

func (p *poller) poll(raw *RawInput) {
	raw.Keys = inpututil.AppendPressedKeys(raw.Keys[:0])

	raw.Pads = raw.Pads[:0]
	p.gamepads = ebiten.AppendGamepadIDs(p.gamepads[:0])
	for _, id := range p.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		raw.Pads = append(raw.Pads, Pad{ID: id, State: padState(id)})
	}

	raw.Presses = raw.Presses[:0]
	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		raw.Presses = append(raw.Presses, [2]float64{float64(x), float64(y)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		raw.Presses = append(raw.Presses, [2]float64{float64(x), float64(y)})
	}
}

// padState reads a pad in the standard layout. ebiten numbers standard
// buttons in the same order as input's button indices.
func padState(id ebiten.GamepadID) input.PadState {
	s := input.PadState{Connected: true}
	for b := range input.ButtonCount {
		s.Buttons[b] = ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButton(b))
	}
	s.LeftX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	s.LeftY = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	return s
}
