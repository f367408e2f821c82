// Package component declares the component types stored in the ECS world.
// Each type gets a process-unique handle from NewComponent; systems address
// storage through the handle's Kind.
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

// Kind is the type-erased view of a ComponentKind, used where a query needs
// to mix component types.
type Kind interface {
	ID() ComponentID
	Valid() bool
}

// ComponentKind identifies storage for values of type T.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

// Valid is false for the zero kind, which was never registered.
func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// ComponentHandle is what component files export, one per type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
