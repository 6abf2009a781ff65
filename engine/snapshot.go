package engine

// Snapshot is a detached copy of the engine state for renderers and
// spectators. Mutating it has no effect on the engine.
type Snapshot struct {
	Grid     Grid   `json:"grid"`
	Active   *Piece `json:"active,omitempty"`
	GhostY   int    `json:"ghost_y"`
	Next     Kind   `json:"next"`
	Held     Kind   `json:"held"`
	CanHold  bool   `json:"can_hold"`
	Score    int    `json:"score"`
	Lines    int    `json:"lines"`
	Level    int    `json:"level"`
	Combo    int    `json:"combo"`
	Phase    Phase  `json:"phase"`
	Paused   bool   `json:"paused"`
	GameOver bool   `json:"game_over"`
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Grid:     e.grid,
		Next:     e.next,
		Held:     e.held,
		CanHold:  e.canHold,
		Score:    e.score,
		Lines:    e.lines,
		Level:    e.level,
		Combo:    e.combo,
		Phase:    e.phase,
		Paused:   e.phase == Paused || e.phase == IdlePaused,
		GameOver: e.phase == GameOver,
	}
	if e.active != nil {
		s.Active = e.active.clone()
		s.GhostY = e.ghostY
	}
	return s
}

// Ghost returns the active piece at its landing row, or nil.
func (s Snapshot) Ghost() *Piece {
	if s.Active == nil {
		return nil
	}
	g := s.Active.clone()
	g.Y = s.GhostY
	return g
}
