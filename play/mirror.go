package play

import (
	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/mirror"
)

// Mirror is the singleton connecting a session to a spectator hub.
type Mirror struct {
	Hub *mirror.Hub

	games     int
	last      snapshotKey
	published bool
}

// snapshotKey is the comparable part of a snapshot that spectators can
// see change.
type snapshotKey struct {
	grid     engine.Grid
	kind     engine.Kind
	x, y     int
	rotation int
	next     engine.Kind
	held     engine.Kind
	score    int
	lines    int
	phase    engine.Phase
}

func keyOf(s engine.Snapshot) snapshotKey {
	k := snapshotKey{
		grid:  s.Grid,
		next:  s.Next,
		held:  s.Held,
		score: s.Score,
		lines: s.Lines,
		phase: s.Phase,
	}
	if s.Active != nil {
		k.kind = s.Active.Kind
		k.x, k.y = s.Active.X, s.Active.Y
		k.rotation = s.Active.Rotation
	}
	return k
}

// MirrorSystem publishes the session snapshot whenever it visibly changes
// and starts a new spectator session id on every reset after the first
// game.
type MirrorSystem struct {
	Session ecs.Singleton[Session]
	Mirror  ecs.Singleton[Mirror]
}

func (s *MirrorSystem) Execute(frame *ecs.UpdateFrame) {
	m := s.Mirror.Get()
	if m == nil || m.Hub == nil {
		return
	}
	session := s.Session.Get()
	if session.Games != m.games {
		if m.games != 0 {
			m.Hub.NewSession()
		}
		m.games = session.Games
		m.published = false
	}

	key := keyOf(session.Snapshot)
	if m.published && key == m.last {
		return
	}
	m.last, m.published = key, true
	m.Hub.Publish(session.Snapshot)
}

// RegisterMirror adds the mirror singleton and system. A nil hub registers
// nothing.
func RegisterMirror(storage *ecs.Storage, scheduler *ecs.Scheduler, hub *mirror.Hub) {
	if hub == nil {
		return
	}
	ecs.NewSingleton(storage, Mirror{Hub: hub})
	scheduler.Register(&MirrorSystem{})
}
