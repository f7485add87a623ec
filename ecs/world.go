package ecs

import "github.com/milk9111/modelviewer/ecs/component"

// World owns entities, components, and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler Scheduler
	events    EventQueue
}

// kindRef is satisfied by every component.ComponentKind[T].
type kindRef interface {
	ID() component.ComponentID
	Valid() bool
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. It reports false
// when the handle was already stale.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in ascending slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.alive)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// AddComponent attaches or replaces a component value.
func (w *World) AddComponent(e Entity, k kindRef, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if k == nil || !k.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(k.ID(), true).Set(e, value)
	return nil
}

// RemoveComponent detaches a component, reporting whether it was present.
func (w *World) RemoveComponent(e Entity, k kindRef) bool {
	if w == nil || k == nil {
		return false
	}
	return w.store(k.ID(), false).Remove(e)
}

// HasComponent reports whether e carries a component of kind k.
func (w *World) HasComponent(e Entity, k kindRef) bool {
	if w == nil || k == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(k.ID(), false).Has(e)
}

// GetComponent returns the raw stored value.
func (w *World) GetComponent(e Entity, k kindRef) (any, bool) {
	if w == nil || k == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	store := w.store(k.ID(), false)
	if !store.Has(e) {
		return nil, false
	}
	return store.Get(e), true
}

// First returns the lowest live entity carrying kind k.
func (w *World) First(k kindRef) (Entity, bool) {
	if w == nil || k == nil {
		return 0, false
	}
	ents := IntersectEntities(w.store(k.ID(), false))
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Query returns the live entities that carry every listed kind, in ascending
// slot order.
func (w *World) Query(kinds ...kindRef) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	return IntersectEntities(sets...)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = map[component.ComponentID]*SparseSet{}
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.scheduler.Add(s)
}

// Systems returns the registered systems in update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Update runs all systems once, then drops the tick's events.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.scheduler.Update(w)
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
