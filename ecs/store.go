package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Each Storage
// owns one, so independent worlds never share component tables.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStore
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStore),
	}
}

// RegisterComponent makes T usable as a component in storages built on r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStore {
		return &blockStore[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newStore(t reflect.Type) componentStore {
	factory, ok := r.factories[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

// componentStore is the type-erased column of one component type inside an
// archetype. Slots are stable until deleted and deleted slots are reused.
type componentStore interface {
	put(item any) int
	get(index int) any
	remove(index int)
	live() iter.Seq[int]
	count() int
}

const blockSize = 64

type block[T any] struct {
	items [blockSize]T
	used  [blockSize]bool
}

// blockStore keeps components in fixed-size blocks so pointers handed out by
// get stay valid while new blocks are appended.
type blockStore[T any] struct {
	blocks []*block[T]
	free   []int
	next   int
	size   int
}

func (s *blockStore[T]) put(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		index = s.next
		s.next++
		if index/blockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, &block[T]{})
		}
	}

	b := s.blocks[index/blockSize]
	b.items[index%blockSize] = value
	b.used[index%blockSize] = true
	s.size++
	return index
}

func (s *blockStore[T]) slot(index int) (*block[T], int, bool) {
	if index < 0 || index >= s.next {
		return nil, 0, false
	}
	b := s.blocks[index/blockSize]
	i := index % blockSize
	return b, i, b.used[i]
}

func (s *blockStore[T]) get(index int) any {
	b, i, ok := s.slot(index)
	if !ok {
		return nil
	}
	return &b.items[i]
}

func (s *blockStore[T]) remove(index int) {
	b, i, ok := s.slot(index)
	if !ok {
		return
	}
	var zero T
	b.items[i] = zero
	b.used[i] = false
	s.free = append(s.free, index)
	s.size--
}

func (s *blockStore[T]) live() iter.Seq[int] {
	return func(yield func(int) bool) {
		for index := range s.next {
			if s.blocks[index/blockSize].used[index%blockSize] && !yield(index) {
				return
			}
		}
	}
}

func (s *blockStore[T]) count() int {
	return s.size
}
