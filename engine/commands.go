package engine

// Column offsets tried in order when a rotation collides.
var kicks = [...]int{0, 1, -1}

func (e *Engine) MoveLeft() bool {
	return e.shift(-1)
}

func (e *Engine) MoveRight() bool {
	return e.shift(1)
}

func (e *Engine) shift(dx int) bool {
	if !e.playable() || Collides(e.active, &e.grid, dx, 0) {
		return false
	}
	e.active.X += dx
	e.updateGhost()
	return true
}

// SoftDown moves the active piece one row down, or locks it when the row
// below is blocked.
func (e *Engine) SoftDown() LockResult {
	if !e.playable() {
		return LockResult{}
	}
	if !Collides(e.active, &e.grid, 0, 1) {
		e.active.Y++
		e.updateGhost()
		return LockResult{}
	}
	return e.lock(0)
}

// RotateClockwise turns the active piece a quarter turn, trying the kick
// offsets in order. It returns false and leaves the piece untouched when
// every candidate collides.
func (e *Engine) RotateClockwise() bool {
	if !e.playable() {
		return false
	}
	rotated := e.active.Shape.Rotated()
	for _, dx := range kicks {
		x := e.active.X + dx
		if e.collides(rotated, x, e.active.Y) {
			continue
		}
		e.active.Shape = rotated
		e.active.X = x
		e.active.Rotation = (e.active.Rotation + 1) % 4
		e.updateGhost()
		return true
	}
	return false
}

// HardDrop moves the active piece to its ghost position, scores two points
// per row travelled and locks it.
func (e *Engine) HardDrop() LockResult {
	if !e.playable() {
		return LockResult{}
	}
	bonus := 2 * (e.ghostY - e.active.Y)
	e.active.Y = e.ghostY
	e.score += bonus
	return e.lock(bonus)
}

// Hold swaps the active piece with the held slot. It can be used once per
// spawned piece; the swap and the spawn that follows it are one step.
func (e *Engine) Hold() bool {
	if !e.playable() || !e.canHold {
		return false
	}
	current := e.active.Kind
	e.canHold = false
	e.active = nil

	incoming := e.held
	if incoming == None {
		incoming = e.next
		e.next = e.draw()
	}
	e.held = current
	e.place(incoming)
	return true
}
