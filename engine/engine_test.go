package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/plus3/neonpulse/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func started(t *testing.T, kinds ...engine.Kind) *engine.Engine {
	t.Helper()
	e := engine.New(engine.WithSource(engine.Sequence(kinds...)))
	require.True(t, e.Start())
	return e
}

func TestNewEngineIsIdle(t *testing.T) {
	e := engine.New(engine.WithSource(engine.Sequence(engine.T)))
	s := e.Snapshot()

	assert.Equal(t, engine.IdlePaused, s.Phase)
	assert.True(t, s.Paused)
	assert.Nil(t, s.Active)
	assert.Equal(t, engine.T, s.Next)
	assert.Equal(t, engine.None, s.Held)
	assert.Equal(t, 1, s.Level)

	assert.False(t, e.MoveLeft())
	assert.False(t, e.RotateClockwise())
	assert.False(t, e.Hold())
	assert.Equal(t, engine.LockResult{}, e.HardDrop())
	assert.Equal(t, engine.LockResult{}, e.Advance(time.Hour))
	assert.Equal(t, s, e.Snapshot())
}

func TestStartSpawnsAtSpawnPosition(t *testing.T) {
	e := started(t, engine.T)
	s := e.Snapshot()

	require.NotNil(t, s.Active)
	assert.Equal(t, engine.Running, s.Phase)
	assert.Equal(t, engine.T, s.Active.Kind)
	assert.Equal(t, 4, s.Active.X)
	assert.Equal(t, 0, s.Active.Y)
	assert.Equal(t, 0, s.Active.Rotation)
	assert.True(t, s.CanHold)
	assert.False(t, s.Paused)

	assert.False(t, e.Start(), "start only acts from idle")
}

func TestTogglePauseFromIdleStarts(t *testing.T) {
	e := engine.New(engine.WithSource(engine.Sequence(engine.O)))
	e.TogglePause()
	assert.Equal(t, engine.Running, e.Phase())
	assert.NotNil(t, e.Snapshot().Active)
}

func TestOPieceWallScenario(t *testing.T) {
	e := started(t, engine.O)

	for i := range 4 {
		assert.True(t, e.MoveLeft(), "move %d", i+1)
	}
	assert.Equal(t, 0, e.Snapshot().Active.X)

	before := e.Snapshot()
	assert.False(t, e.MoveLeft())
	assert.Equal(t, before, e.Snapshot())
}

func TestGhostTracksLandingRow(t *testing.T) {
	e := started(t, engine.O)
	s := e.Snapshot()
	assert.Equal(t, 18, s.GhostY)

	ghost := s.Ghost()
	require.NotNil(t, ghost)
	assert.Equal(t, s.Active.X, ghost.X)
	assert.Equal(t, 18, ghost.Y)
}

func TestHardDropOnEmptyGrid(t *testing.T) {
	e := started(t, engine.O)

	res := e.HardDrop()
	assert.True(t, res.Locked)
	assert.Equal(t, 36, res.DropBonus)
	assert.Equal(t, 0, res.Cleared)
	assert.False(t, res.GameOver)

	s := e.Snapshot()
	assert.Equal(t, 36, s.Score)
	for _, row := range []int{18, 19} {
		for _, col := range []int{4, 5} {
			assert.Equal(t, engine.O, s.Grid[row][col], "row %d col %d", row, col)
		}
	}
	require.NotNil(t, s.Active)
	assert.Equal(t, 0, s.Active.Y)
}

func TestStackingToTheTopEndsTheGame(t *testing.T) {
	e := started(t, engine.O)

	var res engine.LockResult
	for range 10 {
		require.Equal(t, engine.Running, e.Phase())
		res = e.HardDrop()
	}
	assert.True(t, res.GameOver)

	s := e.Snapshot()
	assert.Equal(t, engine.GameOver, s.Phase)
	assert.True(t, s.GameOver)
	assert.Nil(t, s.Active)
	assert.Equal(t, 180, s.Score)
	for row := range engine.Rows {
		assert.Equal(t, engine.O, s.Grid[row][4], "row %d", row)
		assert.Equal(t, engine.O, s.Grid[row][5], "row %d", row)
		assert.Equal(t, engine.None, s.Grid[row][3], "row %d", row)
	}

	e.TogglePause()
	assert.Equal(t, engine.GameOver, e.Phase())
	assert.False(t, e.MoveLeft())

	e.Reset()
	s = e.Snapshot()
	assert.Equal(t, engine.Running, s.Phase)
	assert.Equal(t, engine.Grid{}, s.Grid)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, s.Level)
	assert.NotNil(t, s.Active)
}

func TestRotateFourTimesRestoresShape(t *testing.T) {
	e := started(t, engine.T)
	base := e.Snapshot().Active.Shape

	for i := range 4 {
		require.True(t, e.RotateClockwise(), "rotation %d", i+1)
		assert.Equal(t, (i+1)%4, e.Snapshot().Active.Rotation)
	}
	assert.Equal(t, base, e.Snapshot().Active.Shape)
}

func TestRotateKicksOffTheWall(t *testing.T) {
	e := started(t, engine.I)

	require.True(t, e.RotateClockwise())
	for range 3 {
		require.True(t, e.MoveRight())
	}
	assert.False(t, e.MoveRight())
	assert.Equal(t, 7, e.Snapshot().Active.X)

	require.True(t, e.RotateClockwise())
	s := e.Snapshot()
	assert.Equal(t, 6, s.Active.X, "kick -1 applied")
	assert.Equal(t, 2, s.Active.Rotation)
}

func TestHoldOncePerSpawn(t *testing.T) {
	e := started(t, engine.T, engine.I, engine.O, engine.S)
	s := e.Snapshot()
	require.Equal(t, engine.I, s.Active.Kind)
	require.Equal(t, engine.O, s.Next)

	require.True(t, e.Hold())
	s = e.Snapshot()
	assert.Equal(t, engine.O, s.Active.Kind)
	assert.Equal(t, engine.I, s.Held)
	assert.Equal(t, engine.S, s.Next)
	assert.False(t, s.CanHold)
	assert.Equal(t, engine.SpawnX, s.Active.X)

	assert.False(t, e.Hold())
	assert.Equal(t, s, e.Snapshot())

	e.HardDrop()
	s = e.Snapshot()
	require.Equal(t, engine.S, s.Active.Kind)
	assert.True(t, s.CanHold)

	require.True(t, e.Hold())
	s = e.Snapshot()
	assert.Equal(t, engine.I, s.Active.Kind)
	assert.Equal(t, engine.S, s.Held)
	assert.Equal(t, engine.SpawnX, s.Active.X)
	assert.Equal(t, engine.SpawnY, s.Active.Y)
	assert.Equal(t, 0, s.Active.Rotation)
	assert.Equal(t, engine.BaseShape(engine.I), s.Active.Shape)
}

func TestPauseGatesCommands(t *testing.T) {
	e := started(t, engine.T)
	e.TogglePause()
	require.Equal(t, engine.Paused, e.Phase())

	before := e.Snapshot()
	assert.True(t, before.Paused)
	assert.False(t, e.MoveLeft())
	assert.False(t, e.MoveRight())
	assert.False(t, e.RotateClockwise())
	assert.False(t, e.Hold())
	assert.Equal(t, engine.LockResult{}, e.SoftDown())
	assert.Equal(t, engine.LockResult{}, e.HardDrop())
	assert.Equal(t, engine.LockResult{}, e.Advance(time.Minute))
	assert.Equal(t, before, e.Snapshot())

	e.TogglePause()
	assert.Equal(t, engine.Running, e.Phase())
	assert.True(t, e.MoveLeft())
}

func TestAdvanceDropsAfterIntervalExceeded(t *testing.T) {
	e := started(t, engine.O)

	e.Advance(800 * time.Millisecond)
	assert.Equal(t, 0, e.Snapshot().Active.Y, "interval must be exceeded, not reached")

	e.Advance(time.Millisecond)
	assert.Equal(t, 1, e.Snapshot().Active.Y)

	e.Advance(800 * time.Millisecond)
	assert.Equal(t, 1, e.Snapshot().Active.Y, "accumulator restarts after a drop")
}

func TestFallIntervalAt(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 800 * time.Millisecond},
		{2, 700 * time.Millisecond},
		{7, 200 * time.Millisecond},
		{8, 100 * time.Millisecond},
		{9, 100 * time.Millisecond},
		{30, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.FallIntervalAt(tt.level), "level %d", tt.level)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	e := started(t, engine.T)
	s := e.Snapshot()
	s.Grid[19][0] = engine.Z
	s.Active.Shape[0][0] = true
	s.Active.X = 0

	fresh := e.Snapshot()
	assert.Equal(t, engine.None, fresh.Grid[19][0])
	assert.False(t, fresh.Active.Shape[0][0])
	assert.Equal(t, 4, fresh.Active.X)
}

func TestSnapshotJSON(t *testing.T) {
	e := started(t, engine.O)
	e.HardDrop()

	data, err := json.Marshal(e.Snapshot())
	require.NoError(t, err)

	var decoded engine.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, e.Snapshot(), decoded)
	assert.Contains(t, string(data), `"phase":"running"`)
	assert.Contains(t, string(data), `"next":"O"`)
}

func TestSeededEnginesAgree(t *testing.T) {
	a := engine.New(engine.WithSeed(42))
	b := engine.New(engine.WithSeed(42))
	a.Start()
	b.Start()
	for range 20 {
		a.HardDrop()
		b.HardDrop()
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}
