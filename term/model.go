// Package term is the terminal client. It drives the same play systems as
// the graphical client from bubbletea messages and renders the snapshot
// with lipgloss.
package term

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plus3/neonpulse/audio"
	"github.com/plus3/neonpulse/config"
	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/input"
	"github.com/plus3/neonpulse/logging"
	"github.com/plus3/neonpulse/mirror"
	"github.com/plus3/neonpulse/play"
)

var logger = logging.New("term")

const frameInterval = time.Second / 30

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type Options struct {
	Config config.Config
	Hub    *mirror.Hub
	// Soundtrack plays through the beep speaker; nil or silent runs quiet.
	Soundtrack *audio.Soundtrack
}

type Model struct {
	scheduler *ecs.Scheduler
	session   *ecs.Singleton[play.Session]
	queue     *ecs.Singleton[play.Queue]
	keymap    *input.Keymap[string]
	sound     *audio.Soundtrack

	spectrum []uint8
	width    int
	height   int
	last     time.Time
}

func NewModel(opts Options) (*Model, error) {
	cfg := opts.Config
	keymap, err := input.NewKeymap(cfg.Input.Keys, canonicalKey)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}
	keymap.Bind("r", input.Reset)

	var engineOpts []engine.Option
	if cfg.Seed != 0 {
		engineOpts = append(engineOpts, engine.WithSeed(cfg.Seed))
	}

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	queue := play.Register(storage, scheduler, engine.New(engineOpts...))
	play.RegisterMirror(storage, scheduler, opts.Hub)

	sound := opts.Soundtrack
	if sound == nil {
		sound = audio.Silent()
	}
	return &Model{
		scheduler: scheduler,
		session:   ecs.NewSingleton[play.Session](storage),
		queue:     queue,
		keymap:    keymap,
		sound:     sound,
		spectrum:  make([]uint8, audio.BinCount),
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		c, ok := commandFor(m.keymap, msg)
		if !ok {
			if !m.session.Get().Started {
				c, ok = input.Reset, true
			} else {
				return m, nil
			}
		}
		if c.Gameplay() && m.session.Get().Engine.Phase() == engine.GameOver {
			return m, nil
		}
		m.queue.Get().Push(c)
		m.step(0)
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		dt := frameInterval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.step(dt)
		return m, tickCmd()
	}
	return m, nil
}

// step runs one scheduler pass and keeps the soundtrack in line with the
// session.
func (m *Model) step(dt time.Duration) {
	m.scheduler.Once(dt)

	session := m.session.Get()
	if session.Started && !m.sound.Started() && m.sound.Synth != nil {
		if err := m.sound.StartSpeaker(); err != nil {
			m.sound.Degrade(err)
		}
	}
	m.sound.SetPaused(session.Engine.Phase() != engine.Running)
	m.spectrum = m.sound.Update()
}

// Close stops audio output.
func (m *Model) Close() {
	if err := m.sound.Close(); err != nil {
		logger.Printf("closing soundtrack: %v", err)
	}
}
