package ecs_test

import (
	"testing"

	"github.com/plus3/neonpulse/ecs"
	"github.com/stretchr/testify/assert"
)

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Label("old"))

	var cmds ecs.Commands
	var order []string
	cmds.Defer(func() {
		order = append(order, "defer")
		assert.Nil(t, ecs.ReadComponent[Label](storage, victim), "deletes applied before defers")
		assert.Equal(t, 1, storage.CollectStats().TotalEntityCount, "spawns applied before defers")
	})
	cmds.Spawn(Position{X: 1})
	cmds.Delete(victim)
	assert.Equal(t, 3, cmds.Pending())

	cmds.Flush(storage)
	assert.Equal(t, []string{"defer"}, order)
	assert.Zero(t, cmds.Pending())

	cmds.Flush(storage)
	assert.Equal(t, []string{"defer"}, order, "buffer is emptied")
}
