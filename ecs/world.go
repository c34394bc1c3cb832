package ecs

import (
	"fmt"

	"github.com/milk9111/jamble/ecs/component"
)

type storage interface {
	removeEntity(e Entity)
	len() int
}

// World owns entities and one sparse set per component kind.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]storage
}

func NewWorld() *World {
	return &World{stores: map[component.ComponentID]storage{}}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.removeEntity(e)
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns live entities in slot order.
func Entities(w *World) []Entity {
	return w.entities.entities()
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if s, ok := w.stores[kind.ID()]; ok {
		return s.(*sparseSet[T])
	}
	if !create {
		return nil
	}
	s := &sparseSet[T]{}
	w.stores[kind.ID()] = s
	return s
}

// Add attaches or replaces the component of kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return fmt.Errorf("add %s: %w", kind, component.ErrInvalidComponentKind)
	}
	if value == nil {
		return fmt.Errorf("add %s: %w", kind, component.ErrNilComponent)
	}
	if !w.entities.isAlive(e) {
		return fmt.Errorf("add %s to entity %s: %w", kind, e, component.ErrEntityNotAlive)
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	return s != nil && s.has(e)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	return s != nil && s.remove(e)
}

func Count[T any](w *World, kind component.ComponentKind[T]) int {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0
	}
	return s.len()
}

// ForEach visits every entity holding kind. The callback may add or remove
// components; iteration runs over a snapshot.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil {
		return
	}
	ents := append([]Entity(nil), s.dense...)
	for _, e := range ents {
		if v, ok := s.get(e); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities holding both kinds, iterating the smaller store.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	var ents []Entity
	if sa.len() <= sb.len() {
		ents = append(ents, sa.dense...)
	} else {
		ents = append(ents, sb.dense...)
	}
	for _, e := range ents {
		a, okA := sa.get(e)
		b, okB := sb.get(e)
		if okA && okB {
			fn(e, a, b)
		}
	}
}
