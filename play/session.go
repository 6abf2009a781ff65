// Package play holds the ECS systems that drive an engine: a command queue
// fed by whatever host owns the input devices, gravity, and snapshot
// publishing. It has no window or audio dependencies so every host,
// including headless ones, runs the same pipeline.
package play

import (
	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/input"
)

// Session is the singleton owning the engine for one host.
type Session struct {
	Engine   *engine.Engine
	Snapshot engine.Snapshot
	// Started is false until the first command dismisses the start screen.
	Started bool

	// Games counts started games, including resets.
	Games    int
	Locks    int
	MaxLevel int
	// Clears counts locks by number of rows cleared.
	Clears   [5]int
	LastLock engine.LockResult
}

func NewSession(e *engine.Engine) Session {
	return Session{Engine: e, Snapshot: e.Snapshot(), MaxLevel: 1}
}

// Begin leaves the start screen and starts a fresh game.
func (s *Session) Begin() {
	s.Started = true
	s.Engine.Reset()
	s.Games++
	s.Refresh()
}

// Apply dispatches c to the engine and records the outcome.
func (s *Session) Apply(c input.Command) engine.LockResult {
	res := input.Dispatch(s.Engine, c)
	if c == input.Reset {
		s.Games++
	}
	s.record(res)
	return res
}

func (s *Session) record(res engine.LockResult) {
	if !res.Locked {
		return
	}
	s.LastLock = res
	s.Locks++
	if res.Cleared < len(s.Clears) {
		s.Clears[res.Cleared]++
	}
}

// Refresh copies the engine state into Snapshot.
func (s *Session) Refresh() {
	s.Snapshot = s.Engine.Snapshot()
	s.MaxLevel = max(s.MaxLevel, s.Snapshot.Level)
}

// Queue collects the commands produced by input devices during a frame.
type Queue struct {
	Commands []input.Command
}

func (q *Queue) Push(cmds ...input.Command) {
	q.Commands = append(q.Commands, cmds...)
}

// CommandSystem applies queued commands in order. While the start screen
// is up, any command begins the session and the rest of the frame's
// commands are dropped.
type CommandSystem struct {
	Session ecs.Singleton[Session]
	Queue   ecs.Singleton[Queue]
}

func (s *CommandSystem) Execute(frame *ecs.UpdateFrame) {
	session, queue := s.Session.Get(), s.Queue.Get()
	defer func() { queue.Commands = queue.Commands[:0] }()
	if len(queue.Commands) == 0 {
		return
	}
	if !session.Started {
		session.Begin()
		return
	}
	for _, c := range queue.Commands {
		session.Apply(c)
	}
}

// GravitySystem advances the fall timer and refreshes the snapshot that
// renderers and the mirror read.
type GravitySystem struct {
	Session ecs.Singleton[Session]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Started {
		session.record(session.Engine.Advance(frame.DeltaTime))
	}
	session.Refresh()
}

// Register adds the session singletons and the command and gravity
// systems, in that order.
func Register(storage *ecs.Storage, scheduler *ecs.Scheduler, e *engine.Engine) *ecs.Singleton[Queue] {
	ecs.NewSingleton(storage, NewSession(e))
	queue := ecs.NewSingleton(storage, Queue{})
	scheduler.Register(&CommandSystem{})
	scheduler.Register(&GravitySystem{})
	return queue
}
