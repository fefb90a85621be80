package ecs

import "github.com/hollis909/ledgerunner/ecs/component"

// World owns entities and per-kind component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity handle.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and drops all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, set := range w.stores {
		set.Remove(e)
	}
	return true
}

// IsAlive reports whether the handle refers to a live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

func (w *World) store(id component.ComponentID) *SparseSet {
	set, ok := w.stores[id]
	if !ok {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}

func (w *World) storeIfExists(id component.ComponentID) *SparseSet {
	return w.stores[id]
}

// AddComponent attaches a value to an entity under the given kind id.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(id).Set(e, value)
	return nil
}

// GetComponent returns the stored value for the entity, if any.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	set := w.storeIfExists(id)
	if set == nil {
		return nil, false
	}
	v := set.Get(e)
	if v == nil {
		return nil, false
	}
	return v, true
}

// HasComponent reports whether the entity carries the kind.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	set := w.storeIfExists(id)
	return set != nil && set.Has(e)
}

// RemoveComponent detaches the kind from the entity.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	set := w.storeIfExists(id)
	return set != nil && set.Remove(e)
}

// Query returns live entities carrying every given kind. The smallest store
// drives the iteration.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, len(kinds))
	smallest := 0
	for i, k := range kinds {
		set := w.storeIfExists(k.ID())
		if set == nil {
			return nil
		}
		sets[i] = set
		if set.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	out := make([]Entity, 0, sets[smallest].Len())
outer:
	for _, e := range sets[smallest].Entities() {
		if !w.IsAlive(e) {
			continue
		}
		for i, set := range sets {
			if i == smallest {
				continue
			}
			if !set.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns any one live entity carrying the kind.
func (w *World) First(kind component.AnyKind) (Entity, bool) {
	set := w.storeIfExists(kind.ID())
	if set == nil {
		return 0, false
	}
	for _, e := range set.Entities() {
		if w.IsAlive(e) {
			return e, true
		}
	}
	return 0, false
}
