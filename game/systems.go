package game

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"

	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/fx"
	"github.com/plus3/neonpulse/input"
	"github.com/plus3/neonpulse/play"
	"github.com/plus3/neonpulse/view"
)

// InputSystem turns the polled device state into queued commands.
type InputSystem struct {
	Raw      ecs.Singleton[RawInput]
	Capture  ecs.Singleton[Capture]
	Controls ecs.Singleton[Controls]
	Screen   ecs.Singleton[Screen]
	Session  ecs.Singleton[play.Session]
	Queue    ecs.Singleton[play.Queue]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	raw, capture, controls := s.Raw.Get(), s.Capture.Get(), s.Controls.Get()
	session, queue := s.Session.Get(), s.Queue.Get()

	keys, presses := raw.Keys, raw.Presses
	if capture.Keyboard {
		keys = nil
	}
	if capture.Mouse {
		presses = nil
	}

	phase := session.Engine.Phase()
	pressed := func(k ebiten.Key) bool { return slices.Contains(keys, k) }
	queue.Push(controls.Keyboard.Poll(frame.DeltaTime, pressed, phase == engine.GameOver)...)
	queue.Push(controls.pollPads(frame.DeltaTime, raw.Pads)...)
	queue.Push(pointerCommands(s.Screen.Get().Layout, session.Started, phase, presses)...)
}

func (c *Controls) pollPads(dt time.Duration, pads []Pad) []input.Command {
	var cmds []input.Command
	for _, p := range pads {
		pad, ok := c.Gamepads.Get(p.ID)
		if !ok {
			pad = input.NewGamepad(c.DeadZone)
			c.Gamepads.Put(p.ID, pad)
		}
		cmds = append(cmds, pad.Poll(dt, p.State)...)
	}

	if c.Gamepads.Len() > len(pads) {
		var gone []ebiten.GamepadID
		for id := range c.Gamepads.All() {
			if !slices.ContainsFunc(pads, func(p Pad) bool { return p.ID == id }) {
				gone = append(gone, id)
			}
		}
		for _, id := range gone {
			c.Gamepads.Del(id)
		}
	}
	return cmds
}

// pointerCommands maps new touches and clicks to commands: the start
// button before the first game, the overlay button while paused or after
// game over, and the on-screen controls otherwise.
func pointerCommands(l view.Layout, started bool, phase engine.Phase, presses [][2]float64) []input.Command {
	var cmds []input.Command
	for _, p := range presses {
		x, y := p[0], p[1]
		switch {
		case !started:
			if l.StartButton().Contains(x, y) {
				cmds = append(cmds, input.Reset)
			}
		case phase == engine.Paused && l.OverlayButton().Contains(x, y):
			cmds = append(cmds, input.Pause)
		case phase == engine.GameOver && l.OverlayButton().Contains(x, y):
			cmds = append(cmds, input.Reset)
		default:
			if c, ok := input.HitTest(l.Controls, x, y); ok {
				cmds = append(cmds, c)
			}
		}
	}
	return cmds
}

// AudioSystem starts the soundtrack with the first game, pauses it with
// the engine and publishes the spectrum.
type AudioSystem struct {
	Sound    ecs.Singleton[Sound]
	Session  ecs.Singleton[play.Session]
	Spectrum ecs.Singleton[fx.Spectrum]
}

func (s *AudioSystem) Execute(frame *ecs.UpdateFrame) {
	sound, session := s.Sound.Get(), s.Session.Get()
	track := sound.Soundtrack

	if sound.Enabled && session.Started && !track.Started() {
		if err := track.StartEbiten(); err != nil {
			track.Degrade(err)
			sound.Enabled = false
		}
	}
	track.SetPaused(session.Engine.Phase() != engine.Running)
	s.Spectrum.Get().Set(track.Update())
}

func newControls(keyboard *input.Keyboard[ebiten.Key], deadZone float64) Controls {
	return Controls{
		Keyboard: keyboard,
		Gamepads: intmap.New[ebiten.GamepadID, *input.Gamepad](4),
		DeadZone: deadZone,
	}
}
