package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	offset   uintptr
	typ      reflect.Type // component type, nil for an EntityId field
	optional bool
}

// View iterates entities through a struct of component pointers. Every
// pointer field names a component type; fields tagged `ecs:"optional"` may
// be nil. A field of type EntityId receives the entity's id.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := range structType.NumField() {
		field := structType.Field(i)
		if field.Type == entityIdType {
			fields = append(fields, viewField{offset: field.Offset})
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: View struct fields must be component pointers or EntityId")
		}

		optional := false
		switch tag := field.Tag.Get("ecs"); tag {
		case "":
		case "optional":
			optional = !field.Anonymous
		default:
			panic("ecs: invalid ecs tag value \"" + tag + "\"")
		}
		fields = append(fields, viewField{
			offset:   field.Offset,
			typ:      field.Type.Elem(),
			optional: optional,
		})
	}

	return &View[T]{storage: storage, fields: fields}
}

// Init binds the view to storage.
func (v *View[T]) Init(storage *Storage) {
	*v = *NewView[T](storage)
}

func (v *View[T]) matches(a *Archetype) bool {
	for _, f := range v.fields {
		if f.typ != nil && !f.optional && !a.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (v *View[T]) columns(a *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = -1
		if f.typ != nil {
			cols[i] = a.column(f.typ)
		}
	}
	return cols
}

// populate writes the component pointers of one entity into the struct at
// dst. It reports false when a required component is missing.
func (v *View[T]) populate(dst unsafe.Pointer, a *Archetype, index int, cols []int) bool {
	for i, f := range v.fields {
		fieldPtr := unsafe.Add(dst, f.offset)
		if f.typ == nil {
			*(*EntityId)(fieldPtr) = NewEntityId(a.id, uint32(index))
			continue
		}

		var comp any
		if cols[i] >= 0 {
			comp = a.stores[cols[i]].get(index)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&comp)).data
	}
	return true
}

// Fill loads the entity's components into dst.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	a, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return v.populate(unsafe.Pointer(dst), a, int(id.Index()), v.columns(a))
}

// Get returns the populated view for id, or nil if a required component is
// missing.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(a *Archetype, yield func(EntityId, T) bool) bool {
	if len(a.stores) == 0 {
		return true
	}
	cols := v.columns(a)
	var result T
	for index := range a.stores[0].live() {
		if !v.populate(unsafe.Pointer(&result), a, index, cols) {
			continue
		}
		if !yield(NewEntityId(a.id, uint32(index)), result) {
			return false
		}
	}
	return true
}

// Iter yields every entity that has all required components.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, a := range v.storage.archetypes {
			if v.matches(a) && !v.iterArchetype(a, yield) {
				return
			}
		}
	}
}

func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
