package silo

import "github.com/TheBitDrifter/bark"

// ComponentHandle is a re-resolving reference to an entity's T record:
// it stores only the owning entity and a manager back-reference, never
// a raw pointer, so it survives the swap-removes that relocate records
// within a ComponentStore. See spec.md §9 ("Cyclic ownership").
type ComponentHandle[T any] struct {
	manager *Manager
	entity  EntityId
}

// NewComponentHandle returns a handle for id's T record on m. The
// handle is valid to construct whether or not id currently owns a T;
// IsValid/Get report that at dereference time.
func NewComponentHandle[T any](m *Manager, id EntityId) ComponentHandle[T] {
	return ComponentHandle[T]{manager: m, entity: id}
}

// IsValid reports whether the handle's entity is alive and still owns
// a T record.
func (h ComponentHandle[T]) IsValid() bool {
	_, ok := GetComponent[T](h.manager, h.entity)
	return ok
}

// Get resolves the handle, returning (nil, false) if the entity is
// dead or no longer owns a T.
func (h ComponentHandle[T]) Get() (*T, bool) {
	return GetComponent[T](h.manager, h.entity)
}

// MustGet resolves the handle or panics with a traced
// ComponentNotFoundError. Intended for call sites that have already
// established the component must be present.
func (h ComponentHandle[T]) MustGet() *T {
	v, ok := h.Get()
	if !ok {
		panic(bark.AddTrace(ComponentNotFoundError{
			Entity:        h.entity,
			ComponentType: reflectTypeOf[T](),
		}))
	}
	return v
}

// Entity returns the entity this handle was constructed for.
func (h ComponentHandle[T]) Entity() EntityId {
	return h.entity
}
