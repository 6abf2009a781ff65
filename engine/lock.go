package engine

var lineScores = [...]int{0, 100, 300, 500, 800}

const comboStep = 50

// LockResult describes what happened when a piece locked. The zero value
// means nothing locked.
type LockResult struct {
	Locked    bool  `json:"locked"`
	Rows      []int `json:"rows,omitempty"`
	Cleared   int   `json:"cleared"`
	Points    int   `json:"points"`
	DropBonus int   `json:"drop_bonus"`
	Combo     int   `json:"combo"`
	GameOver  bool  `json:"game_over"`
}

func (e *Engine) lock(dropBonus int) LockResult {
	e.grid.merge(e.active)
	rows := e.grid.clearFull()
	cleared := len(rows)

	points := lineScores[cleared] * e.level
	if cleared > 0 {
		e.combo++
		if e.combo > 1 {
			points += (e.combo - 1) * comboStep
		}
	} else {
		e.combo = 0
	}

	e.score += points
	e.lines += cleared
	e.level = e.lines/10 + 1
	e.active = nil

	res := LockResult{
		Locked:    true,
		Rows:      rows,
		Cleared:   cleared,
		Points:    points,
		DropBonus: dropBonus,
		Combo:     e.combo,
	}
	e.spawn()
	res.GameOver = e.phase == GameOver
	return res
}

// spawn promotes the next piece and draws a new one.
func (e *Engine) spawn() {
	kind := e.next
	e.next = e.draw()
	e.canHold = true
	e.place(kind)
}

// place puts a fresh piece of kind at the spawn position. A collision ends
// the game without touching the grid.
func (e *Engine) place(kind Kind) bool {
	p := &Piece{Kind: kind, Shape: BaseShape(kind), X: SpawnX, Y: SpawnY}
	if e.collides(p.Shape, p.X, p.Y) {
		e.active = nil
		e.phase = GameOver
		return false
	}
	e.active = p
	e.updateGhost()
	return true
}
