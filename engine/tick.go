package engine

import "time"

const (
	InitialFallInterval = 800 * time.Millisecond
	MinFallInterval     = 100 * time.Millisecond
	fallStep            = 100 * time.Millisecond
)

// FallInterval is the gravity period at the current level.
func (e *Engine) FallInterval() time.Duration {
	return FallIntervalAt(e.level)
}

// FallIntervalAt is the gravity period for level.
func FallIntervalAt(level int) time.Duration {
	return max(MinFallInterval, InitialFallInterval-time.Duration(level-1)*fallStep)
}

// Advance feeds elapsed wall time into the gravity clock. Once the
// accumulated time exceeds the fall interval the active piece moves down one
// row and the clock restarts.
func (e *Engine) Advance(elapsed time.Duration) LockResult {
	if !e.playable() {
		return LockResult{}
	}
	e.dropCounter += elapsed
	if e.dropCounter <= e.FallInterval() {
		return LockResult{}
	}
	e.dropCounter = 0
	return e.SoftDown()
}
