package ecs

import "github.com/milk9111/seasons/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// First returns the lowest-index entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	store := w.store(kind, false)
	if store == nil {
		return 0, false
	}
	var best Entity
	for _, e := range store.denseEntities {
		if !w.entities.isAlive(e) {
			continue
		}
		if best == 0 || e.id() < best.id() {
			best = e
		}
	}
	return best, best != 0
}

// Query returns entities that hold every listed kind, in ascending id order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k, false)
		if s == nil {
			return nil
		}
		stores = append(stores, s)
	}
	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	var out []Entity
	for _, e := range sortedEntities(smallest) {
		if !w.entities.isAlive(e) {
			continue
		}
		all := true
		for _, s := range stores {
			if !s.Has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) store(kind component.Kind, create bool) *SparseSet {
	if w == nil || kind == nil || !kind.Valid() {
		return nil
	}
	s, ok := w.stores[kind.ID()]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = newSparseSet()
		w.stores[kind.ID()] = s
	}
	return s
}

func (w *World) addComponent(e Entity, kind component.Kind, value any) error {
	if kind == nil || !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind, true).Set(e, value)
	return nil
}

func (w *World) getComponent(e Entity, kind component.Kind) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s := w.store(kind, false)
	if s == nil || !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

func (w *World) removeComponent(e Entity, kind component.Kind) bool {
	s := w.store(kind, false)
	if s == nil {
		return false
	}
	return s.Remove(e)
}

func sortedEntities(s *SparseSet) []Entity {
	ents := s.Entities()
	// insertion sort; stores are small and mostly ordered already
	for i := 1; i < len(ents); i++ {
		for j := i; j > 0 && ents[j].id() < ents[j-1].id(); j-- {
			ents[j], ents[j-1] = ents[j-1], ents[j]
		}
	}
	return ents
}

// CreateEntity allocates a new entity in w.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity destroys e, reporting whether it was alive.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether e is alive in w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every alive entity in w.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}
