package silo

import "iter"

const defaultStoreCapacity = 16

// Record augments a user component value with the entity that owns it
// and an optional back-reference to the owning Manager, per spec.md
// §3's ComponentRecord<T>.
type Record[T any] struct {
	EntityID EntityId
	Value    T

	manager *Manager
}

// Manager returns the Manager this record's store belongs to, or nil
// if the store was created standalone (outside of a Manager).
func (r *Record[T]) Manager() *Manager {
	return r.manager
}

// erasedStore is the type-erased boundary a Manager uses to operate on
// a ComponentStore[T] without knowing T, per spec.md §4.C/§9. Downcasts
// back to the concrete *ComponentStore[T] happen in storeFor,
// GetComponent, and the View1..View4 ForEach/ParallelForEach methods.
type erasedStore interface {
	Contains(id EntityId) bool
	IndexOf(id EntityId) (int, bool)
	RemoveByEntity(id EntityId)
	Len() int
	Entities() iter.Seq[EntityId]
}

// ComponentStore is a dense, swap-removing sparse set of components of
// type T, grounded on the Store[T] pattern in
// other_examples/…lixenwraith-vi-fighter__engine-store.go.go: a dense
// slice for cache-friendly iteration plus a map for O(1) lookup.
type ComponentStore[T any] struct {
	records []Record[T]
	slotOf  map[EntityId]int
	manager *Manager
}

var _ erasedStore = (*ComponentStore[struct{}])(nil)

func newComponentStore[T any](m *Manager) *ComponentStore[T] {
	return &ComponentStore[T]{
		records: make([]Record[T], 0, defaultStoreCapacity),
		slotOf:  make(map[EntityId]int, defaultStoreCapacity),
		manager: m,
	}
}

// Add returns the component record for id, creating a zero-valued one
// if id doesn't already own one. Re-adding an existing entity is a
// no-op that returns the existing record.
func (s *ComponentStore[T]) Add(id EntityId) *T {
	if i, ok := s.slotOf[id]; ok {
		return &s.records[i].Value
	}
	s.records = append(s.records, Record[T]{EntityID: id, manager: s.manager})
	idx := len(s.records) - 1
	s.slotOf[id] = idx
	return &s.records[idx].Value
}

// Remove deletes id's record via swap-remove, preserving density but
// not insertion order. No-op if id is absent.
func (s *ComponentStore[T]) Remove(id EntityId) {
	i, ok := s.slotOf[id]
	if !ok {
		return
	}
	last := len(s.records) - 1
	if i != last {
		s.records[i] = s.records[last]
		s.slotOf[s.records[i].EntityID] = i
	}
	var zero Record[T]
	s.records[last] = zero
	s.records = s.records[:last]
	delete(s.slotOf, id)
}

// RemoveByEntity implements erasedStore.
func (s *ComponentStore[T]) RemoveByEntity(id EntityId) {
	s.Remove(id)
}

// Get returns a pointer to id's component and true, or (nil, false) if
// id owns no record in this store.
func (s *ComponentStore[T]) Get(id EntityId) (*T, bool) {
	i, ok := s.slotOf[id]
	if !ok {
		return nil, false
	}
	return &s.records[i].Value, true
}

// Contains reports whether id owns a record in this store.
func (s *ComponentStore[T]) Contains(id EntityId) bool {
	_, ok := s.slotOf[id]
	return ok
}

// IndexOf returns id's current physical slot. The second return is
// false if id is absent; callers that have already checked Contains
// may ignore it.
func (s *ComponentStore[T]) IndexOf(id EntityId) (int, bool) {
	i, ok := s.slotOf[id]
	return i, ok
}

// Len returns the number of records currently stored.
func (s *ComponentStore[T]) Len() int {
	return len(s.records)
}

// at returns a pointer to the component at physical index idx,
// bypassing the entity lookup. Used by views, which already know the
// physical index from packedIndices.
func (s *ComponentStore[T]) at(idx int) *T {
	return &s.records[idx].Value
}

// Entities iterates the entities currently owning a record in this
// store, in physical (not insertion) order.
func (s *ComponentStore[T]) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, r := range s.records {
			if !yield(r.EntityID) {
				return
			}
		}
	}
}
