package ecs

// Commands buffers structural changes and callbacks issued while systems run.
// The Scheduler flushes it after the last system of a frame, so queries never
// observe a half-updated world.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

func (c *Commands) Delete(id EntityId) {
	c.deletes = append(c.deletes, id)
}

// Defer runs fn during Flush, after spawns and deletes have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies deletes, then spawns, then deferred calls, and empties the
// buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}

// Pending is the number of buffered operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}
