package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is a typed key into a world's component stores. The zero
// value is invalid.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

func (k ComponentKind[T]) String() string {
	if k.name == "" {
		return "component"
	}
	return k.name
}

// ComponentHandle is the package-level registration of one component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent allocates a fresh kind. name only shows up in errors.
func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: name,
	}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
