// Package component declares the component kinds stored in the ECS world.
package component

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies a component kind inside a world. Zero is never issued.
type ComponentID uint32

// String reports the Go type registered for the id, e.g. "component.Mesh".
func (id ComponentID) String() string {
	if name, ok := kindNames.Load(id); ok {
		return name.(string)
	}
	return fmt.Sprintf("component#%d", uint32(id))
}

var (
	nextComponentID atomic.Uint32
	kindNames       sync.Map // ComponentID -> string
)

// ComponentKind is the typed key used by the generic world accessors.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	kindNames.Store(id, reflect.TypeFor[T]().String())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

func (k ComponentKind[T]) String() string {
	return k.id.String()
}

// ComponentHandle is what component files export; systems call Kind() on it.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
