package input_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/plus3/neonpulse/config"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func TestParseCommandCoversConfigNames(t *testing.T) {
	for _, name := range config.CommandNames {
		c, err := input.ParseCommand(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.String())
	}
	_, err := input.ParseCommand("teleport")
	assert.Error(t, err)
}

func TestDispatchDrivesEngine(t *testing.T) {
	e := engine.New(engine.WithSource(engine.Sequence(engine.O, engine.T)))
	input.Dispatch(e, input.Pause)
	require.Equal(t, engine.Running, e.Phase(), "pause from idle starts the game")

	x := e.Snapshot().Active.X
	input.Dispatch(e, input.MoveLeft)
	assert.Equal(t, x-1, e.Snapshot().Active.X)

	res := input.Dispatch(e, input.HardDrop)
	assert.True(t, res.Locked)
	assert.Equal(t, 36, res.DropBonus)

	input.Dispatch(e, input.Pause)
	assert.Equal(t, engine.Paused, e.Phase())
	input.Dispatch(e, input.Reset)
	assert.Equal(t, engine.Running, e.Phase())
	assert.Zero(t, e.Snapshot().Score)
}

func TestTrackerEdgesAndRepeat(t *testing.T) {
	tr := input.NewTracker(100*time.Millisecond, 50*time.Millisecond, input.MoveLeft)
	held := map[input.Command]bool{input.MoveLeft: true, input.Rotate: true}
	pressed := func(c input.Command) bool { return held[c] }

	assert.Equal(t, []input.Command{input.MoveLeft, input.Rotate}, tr.Step(nil, frame, pressed))

	var fired []int
	for i := range 12 {
		for _, c := range tr.Step(nil, 20*time.Millisecond, pressed) {
			assert.Equal(t, input.MoveLeft, c, "rotate does not repeat")
			fired = append(fired, i)
		}
	}
	// 100ms delay reached on the 5th step, then every 50ms.
	assert.Equal(t, []int{4, 7, 9}, fired)

	held[input.MoveLeft] = false
	assert.Empty(t, tr.Step(nil, frame, pressed))
	assert.False(t, tr.Held(input.MoveLeft))

	held[input.MoveLeft] = true
	assert.Equal(t, []input.Command{input.MoveLeft}, tr.Step(nil, frame, pressed))
}

func TestKeymap(t *testing.T) {
	parse := func(name string) (string, error) {
		if name == "" {
			return "", fmt.Errorf("empty key")
		}
		return name, nil
	}

	km, err := input.NewKeymap(config.Default().Input.Keys, parse)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"P", "Escape"}, km.Keys(input.Pause))
	assert.Empty(t, km.Keys(input.Reset))

	pressed := func(k string) bool { return k == "Escape" }
	assert.True(t, km.Held(input.Pause, pressed))
	assert.False(t, km.Held(input.HardDrop, pressed))

	_, err = input.NewKeymap(map[string][]string{"jump": {"J"}, "hold": {""}}, parse)
	assert.ErrorContains(t, err, `unknown command "jump"`)
	assert.ErrorContains(t, err, "binding hold")
}

func TestKeyboardIgnoresGameplayAfterGameOver(t *testing.T) {
	km := &input.Keymap[string]{}
	km.Bind("Space", input.HardDrop)
	km.Bind("Escape", input.Pause)
	km.Bind("R", input.Reset)
	kb := input.NewKeyboard(km, 170*time.Millisecond, 50*time.Millisecond)

	all := func(string) bool { return true }
	assert.Equal(t, []input.Command{input.Pause, input.Reset}, kb.Poll(frame, all, true))

	kb = input.NewKeyboard(km, 170*time.Millisecond, 50*time.Millisecond)
	assert.Equal(t, []input.Command{input.HardDrop, input.Pause, input.Reset}, kb.Poll(frame, all, false))
}

func TestGamepad(t *testing.T) {
	pad := input.NewGamepad(0)
	assert.Equal(t, input.DefaultDeadZone, pad.DeadZone)

	var s input.PadState
	s.Connected = true
	s.Buttons[input.ButtonA] = true
	s.Buttons[input.ButtonY] = true
	s.LeftX = -0.9
	s.LeftY = 0.7

	assert.Equal(t, []input.Command{input.MoveLeft, input.SoftDown, input.Rotate}, pad.Poll(frame, s))
	assert.Equal(t, []input.Command{input.SoftDown}, pad.Poll(frame, s), "only soft-down repeats")

	s.Buttons[input.ButtonA] = false
	assert.Equal(t, []input.Command{input.SoftDown}, pad.Poll(frame, s), "Y still holds rotate")

	s.Buttons[input.ButtonY] = false
	s.LeftX = -0.4
	s.LeftY = 0
	assert.Empty(t, pad.Poll(frame, s), "inside the dead zone")

	s.Buttons[input.ButtonStart] = true
	s.Buttons[input.ButtonR1] = true
	assert.Equal(t, []input.Command{input.Hold, input.Pause}, pad.Poll(frame, s))

	assert.Empty(t, pad.Poll(frame, input.PadState{}))
	assert.Equal(t, []input.Command{input.Hold, input.Pause}, pad.Poll(frame, s), "reconnect is a fresh press")
}

func TestTouches(t *testing.T) {
	buttons := []input.Button{
		{Command: input.MoveLeft, Bounds: input.Rect{X: 0, Y: 100, W: 50, H: 50}},
		{Command: input.Rotate, Bounds: input.Rect{X: 200, Y: 100, W: 80, H: 80}},
	}
	c, ok := input.HitTest(buttons, 10, 120)
	assert.True(t, ok)
	assert.Equal(t, input.MoveLeft, c)

	_, ok = input.HitTest(buttons, 50, 120)
	assert.False(t, ok, "right edge is exclusive")

	assert.Equal(t, []input.Command{input.Rotate, input.MoveLeft},
		input.Touches(buttons, [][2]float64{{240, 140}, {500, 500}, {1, 101}}))
}
