package ecs_test

import (
	"testing"

	"github.com/plus3/neonpulse/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	moving := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Glow{Hue: 200})
	storage.Spawn(Position{X: 3})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Velocity
	}](storage)

	var sum float32
	seen := map[ecs.EntityId]bool{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		sum += item.Position.X
		item.Position.Y = item.Velocity.DX * 10
		seen[id] = true
	}
	assert.Equal(t, float32(3), sum)
	assert.Len(t, seen, 2)
	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, moving).Y)
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2}, Glow{Hue: 210})

	view := ecs.NewView[struct {
		Pos  *Position
		Glow *Glow `ecs:"optional"`
	}](storage)

	glowing := 0
	total := 0
	for item := range view.Values() {
		total++
		if item.Glow != nil {
			glowing++
			assert.Equal(t, float32(2), item.Pos.X)
		}
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, glowing)
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 5}, Velocity{DX: 1})
	other := storage.Spawn(Position{X: 6})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	got := view.Get(id)
	require.NotNil(t, got)
	assert.Equal(t, float32(5), got.Position.X)
	assert.Nil(t, view.Get(other))
}

func TestViewRejectsBadStructs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Pos Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Pos *Position `ecs:"maybe"`
		}](storage)
	})
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	storage.Spawn(Position{})
	assert.Equal(t, 1, query.Count())

	storage.Spawn(Position{}, Glow{})
	assert.Equal(t, 2, query.Count())

	storage.Spawn(Label("ignored"))
	assert.Equal(t, 2, query.Count())
}
