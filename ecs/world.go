package ecs

import (
	"sync"

	"github.com/milk9111/overworld/ecs/component"
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, pending deletions and the tick event
// queue. Entity creation and immediate destruction are not safe to call from
// systems running in a parallel batch; deferred deletion is.
type World struct {
	entities entityStore

	mu     sync.RWMutex
	stores map[component.ComponentID]store

	pendingMu sync.Mutex
	pending   []Entity
	marked    map[Entity]struct{}

	events EventQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]store),
		marked: make(map[Entity]struct{}),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle
// immediately. Destroying a dead entity is a no-op that returns false.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	w.mu.RLock()
	for _, s := range w.stores {
		s.remove(e.id())
	}
	w.mu.RUnlock()
	return w.entities.destroy(e)
}

// IsAlive reports whether e refers to a live entity.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

// MarkForDeletion schedules e for removal at the next Maintain. Marking twice,
// or marking a dead entity, has no further effect.
func (w *World) MarkForDeletion(e Entity) {
	if w == nil || !w.entities.isAlive(e) {
		return
	}
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if _, ok := w.marked[e]; ok {
		return
	}
	w.marked[e] = struct{}{}
	w.pending = append(w.pending, e)
}

// MarkedForDeletion reports whether e is waiting for the next Maintain.
func (w *World) MarkedForDeletion(e Entity) bool {
	if w == nil {
		return false
	}
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	_, ok := w.marked[e]
	return ok
}

// Maintain applies pending deletions and returns how many entities were
// removed.
func (w *World) Maintain() int {
	if w == nil {
		return 0
	}
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = nil
	clear(w.marked)
	w.pendingMu.Unlock()

	removed := 0
	for _, e := range pending {
		if DestroyEntity(w, e) {
			removed++
		}
	}
	return removed
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) lookup(id component.ComponentID) store {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stores[id]
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.lookup(kind.ID()).(*sparseSet[T]); ok {
		return s
	}
	if !create {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.stores[kind.ID()].(*sparseSet[T]); ok {
		return s
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s
}

// Add attaches value to e, overwriting any previous component of that kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

// Remove detaches the component of the given kind and reports whether one was
// present.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// Has reports whether e carries a component of the given kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	return s != nil && s.has(e.id())
}

// Get returns the component of the given kind attached to e.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}
