package term

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/neonpulse/config"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/input"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	m, err := NewModel(Options{Config: cfg})
	require.NoError(t, err)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ArrowLeft", "arrowleft"},
		{"left", "arrowleft"},
		{"Space", "space"},
		{"Escape", "escape"},
		{"Esc", "escape"},
		{"C", "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := canonicalKey(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := canonicalKey("F3")
	assert.ErrorContains(t, err, `key "F3" is not available in a terminal`)
}

func TestCommandFor(t *testing.T) {
	m := newTestModel(t)
	tests := []struct {
		msg  tea.KeyMsg
		want input.Command
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, input.MoveLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, input.MoveRight},
		{tea.KeyMsg{Type: tea.KeyUp}, input.Rotate},
		{tea.KeyMsg{Type: tea.KeyDown}, input.SoftDown},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, input.HardDrop},
		{tea.KeyMsg{Type: tea.KeyEscape}, input.Pause},
		{runes("c"), input.Hold},
		{runes("C"), input.Hold},
		{runes("r"), input.Reset},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			c, ok := commandFor(m.keymap, tt.msg)
			require.True(t, ok)
			assert.Equal(t, tt.want, c)
		})
	}

	_, ok := commandFor(m.keymap, runes("x"))
	assert.False(t, ok)
}

func TestNewModelRejectsBadBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Keys = map[string][]string{"hold": {"Insert"}}
	_, err := NewModel(Options{Config: cfg})
	assert.ErrorContains(t, err, "key bindings")
}

func TestAnyKeyStartsSession(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "START SESSION")

	m.Update(runes("x"))
	s := m.session.Get()
	require.True(t, s.Started)
	assert.Equal(t, engine.Running, s.Snapshot.Phase)
	assert.Equal(t, 1, s.Games)
	assert.Contains(t, m.View(), "Pontos")
}

func TestKeysDriveTheEngine(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("x"))
	x := m.session.Get().Snapshot.Active.X

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, x-1, m.session.Get().Snapshot.Active.X)

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, 1, m.session.Get().Locks)

	m.Update(runes("p"))
	assert.Equal(t, engine.Paused, m.session.Get().Snapshot.Phase)
	assert.Contains(t, m.View(), "PAUSADO")

	m.Update(runes("p"))
	assert.Equal(t, engine.Running, m.session.Get().Snapshot.Phase)
}

func TestUnboundKeysAreIgnoredWhilePlaying(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("x"))
	before := m.session.Get().Snapshot
	m.Update(runes("x"))
	assert.Equal(t, before, m.session.Get().Snapshot)
}

func TestGameOverOnlyAcceptsControlKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("x"))
	for range 500 {
		if m.session.Get().Snapshot.Phase == engine.GameOver {
			break
		}
		m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	require.Equal(t, engine.GameOver, m.session.Get().Snapshot.Phase)
	locks := m.session.Get().Locks
	assert.Contains(t, m.View(), "FIM DE JOGO")

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, locks, m.session.Get().Locks)
	assert.Equal(t, engine.GameOver, m.session.Get().Snapshot.Phase)

	m.Update(runes("r"))
	s := m.session.Get()
	assert.Equal(t, engine.Running, s.Snapshot.Phase)
	assert.Equal(t, 2, s.Games)
	assert.Zero(t, s.Snapshot.Score)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestTickAdvancesGravity(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("x"))
	y := m.session.Get().Snapshot.Active.Y

	start := time.Now()
	m.Update(tickMsg(start))
	_, cmd := m.Update(tickMsg(start.Add(1100 * time.Millisecond)))
	assert.NotNil(t, cmd)
	assert.Greater(t, m.session.Get().Snapshot.Active.Y, y)
}

func TestWindowSizeCentersView(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Len(t, splitLines(m.View()), 40)
}

func TestSpectrumBar(t *testing.T) {
	bins := make([]uint8, 4)
	bins[1], bins[2], bins[3] = 128, 200, 255
	assert.Contains(t, renderSpectrum(bins), " ▄▆█")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
