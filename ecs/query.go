package ecs

import "iter"

// Query is a View that remembers which archetypes match, rebuilding the list
// only when new archetypes appear. Systems declare Query fields and the
// Scheduler binds them on registration.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	matched    []*Archetype
	archetypes int
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.matched = nil
	q.archetypes = -1
}

func (q *Query[T]) refresh() {
	if n := len(q.storage.archetypes); n != q.archetypes {
		q.archetypes = n
		q.matched = q.matched[:0]
		for _, a := range q.storage.archetypes {
			if q.view.matches(a) {
				q.matched = append(q.matched, a)
			}
		}
	}
}

func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if q.storage == nil {
		panic("ecs: Query used before Init")
	}
	q.refresh()
	return func(yield func(EntityId, T) bool) {
		for _, a := range q.matched {
			if !q.view.iterArchetype(a, yield) {
				return
			}
		}
	}
}

func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range q.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count is the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}

func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}
