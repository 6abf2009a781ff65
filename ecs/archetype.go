package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// Archetype holds every entity that has exactly the same set of component
// types. Each type gets its own column and all columns share slot indices.
type Archetype struct {
	id     uint32
	types  []reflect.Type
	stores []componentStore
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:     id,
		types:  types,
		stores: make([]componentStore, len(types)),
	}
	for i, t := range types {
		a.stores[i] = registry.newStore(t)
	}
	return a
}

func (a *Archetype) column(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) spawn(components []any) uint32 {
	index := -1
	for _, comp := range components {
		col := a.column(componentType(comp))
		if col < 0 {
			continue
		}
		index = a.stores[col].put(comp)
	}
	return uint32(index)
}

func (a *Archetype) component(index uint32, t reflect.Type) any {
	col := a.column(t)
	if col < 0 {
		return nil
	}
	return a.stores[col].get(int(index))
}

func (a *Archetype) remove(index uint32) {
	for _, s := range a.stores {
		s.remove(int(index))
	}
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's component types sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.column(t) >= 0
}

// Len is the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.stores) == 0 {
		return 0
	}
	return a.stores[0].count()
}

// Entities yields the ids of all live entities in the archetype.
func (a *Archetype) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.stores) == 0 {
			return
		}
		for index := range a.stores[0].live() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// archetypeId is an FNV-1a hash over the runtime type pointers of the
// sorted component types.
func archetypeId(types []reflect.Type) uint32 {
	const prime uint32 = 16777619
	h := uint32(2166136261)
	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		h ^= uint32(ptr) ^ uint32(uint64(ptr)>>32)
		h *= prime
	}
	return h
}
