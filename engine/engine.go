// Package engine implements the falling-block simulation: the playfield,
// the active/next/held piece pipeline, scoring and the gravity clock.
//
// An Engine is a single-owner value. Every command runs synchronously and is
// silently ignored when it is not legal in the current phase.
package engine

import (
	"fmt"
	"time"
)

// Phase is the engine's lifecycle state.
type Phase uint8

const (
	// IdlePaused is the state before the first game starts.
	IdlePaused Phase = iota
	Running
	Paused
	GameOver
)

var phaseNames = [...]string{"idle", "running", "paused", "game-over"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

type Engine struct {
	grid    Grid
	active  *Piece
	ghostY  int
	next    Kind
	held    Kind
	canHold bool

	score int
	lines int
	level int
	combo int

	phase       Phase
	dropCounter time.Duration
	source      Source
}

type Option func(*Engine)

// WithSource replaces the piece randomizer.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.source = src
		}
	}
}

// WithSeed makes piece selection reproducible.
func WithSeed(seed uint64) Option {
	return WithSource(NewSeededSource(seed))
}

// New returns an engine in the IdlePaused phase with the next piece drawn and
// no active piece.
func New(opts ...Option) *Engine {
	e := &Engine{
		level:  1,
		source: globalSource{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.next = e.draw()
	return e
}

func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) draw() Kind {
	return Kinds[e.source.IntN(len(Kinds))]
}

func (e *Engine) playable() bool {
	return e.phase == Running && e.active != nil
}

func (e *Engine) collides(shape Shape, x, y int) bool {
	return e.grid.Collides(shape, x, y)
}

func (e *Engine) updateGhost() {
	if e.active == nil {
		return
	}
	y := e.active.Y
	for !e.collides(e.active.Shape, e.active.X, y+1) {
		y++
	}
	e.ghostY = y
}

// Start begins the first game. It only acts in the IdlePaused phase.
func (e *Engine) Start() bool {
	if e.phase != IdlePaused {
		return false
	}
	e.Reset()
	return true
}

// Reset clears the playfield, score and queues and starts a new game.
func (e *Engine) Reset() {
	e.grid = Grid{}
	e.active = nil
	e.held = None
	e.score = 0
	e.lines = 0
	e.level = 1
	e.combo = 0
	e.dropCounter = 0
	e.next = e.draw()
	e.phase = Running
	e.spawn()
}

// TogglePause switches between Running and Paused. From IdlePaused it starts
// the game. It has no effect after game over.
func (e *Engine) TogglePause() {
	switch e.phase {
	case Running:
		e.phase = Paused
	case Paused:
		e.phase = Running
	case IdlePaused:
		e.Reset()
	}
}
