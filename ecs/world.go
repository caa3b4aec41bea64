package ecs

import "github.com/milk9111/climbing/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes all components of e and invalidates the handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func (w *World) CreateEntity() Entity {
	return CreateEntity(w)
}

func (w *World) DestroyEntity(e Entity) bool {
	return DestroyEntity(w, e)
}

func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// Query returns live entities that have every listed component kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		store, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, store)
	}
	// iterate the smallest store
	smallest := 0
	for i, s := range stores {
		if len(s.ids()) < len(stores[smallest].ids()) {
			smallest = i
		}
	}

	var out []Entity
	for _, id := range stores[smallest].ids() {
		match := true
		for i, s := range stores {
			if i != smallest && !s.has(id) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity with the component kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if existing, ok := w.stores[kind.ID()]; ok {
		set, _ := existing.(*sparseSet[T])
		return set
	}
	if !create {
		return nil
	}
	set := newSparseSet[T]()
	w.stores[kind.ID()] = set
	return set
}
