package silo

import (
	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// viewSubscriber is the boundary a Manager notifies through; baseView
// is the only implementation. Kept as an interface so ViewRegistry
// logic in Manager never needs to know a view's component arity.
type viewSubscriber interface {
	typeIDs() []ComponentTypeID
	onComponentAdded(t ComponentTypeID, id EntityId)
	onComponentRemoved(t ComponentTypeID, id EntityId)
}

// Manager owns the EntityAllocator, every ComponentStore, and the
// ViewRegistry, and is the sole orchestrator spec.md §4.H describes.
type Manager struct {
	allocator   *entityAllocator
	stores      map[ComponentTypeID]erasedStore
	views       map[ComponentTypeID][]viewSubscriber
	entityMasks map[EntityId]mask.Mask

	mutating  bool
	locks     mask.Mask256
	lockDepth int

	operationQueue entityOperationQueue
}

func newManager() *Manager {
	return &Manager{
		allocator:   newEntityAllocator(),
		stores:      make(map[ComponentTypeID]erasedStore),
		views:       make(map[ComponentTypeID][]viewSubscriber),
		entityMasks: make(map[EntityId]mask.Mask),
	}
}

// beginMutation panics if a mutation is already underway on this
// Manager — the only reentrancy a single-threaded world must forbid,
// per spec.md §9 ("Notification reentrancy").
func (m *Manager) beginMutation() {
	if m.mutating {
		panic(bark.AddTrace(ReentrantMutationError{}))
	}
	m.mutating = true
}

func (m *Manager) endMutation() {
	m.mutating = false
}

// AddEntity allocates a fresh EntityId. Entity allocation never touches
// component storage or views, so it is never gated by Lock/Unlock.
func (m *Manager) AddEntity() EntityId {
	id := m.allocator.allocate()
	Config.entityCreated(id)
	return id
}

// GetEntity validates id against the allocator, returning it unchanged
// if it is still alive.
func (m *Manager) GetEntity(id EntityId) (EntityId, bool) {
	slot, ok := m.allocator.resolve(id)
	if !ok {
		return EntityId{}, false
	}
	return slot.id, true
}

// DestroyEntity removes every component id owns, fans out removal
// notifications to interested views, frees id's slot for reuse, and
// reports whether id was alive beforehand.
func (m *Manager) DestroyEntity(id EntityId) bool {
	if _, ok := m.allocator.resolve(id); !ok {
		return false
	}

	m.beginMutation()
	defer m.endMutation()

	for t, store := range m.stores {
		if store.Contains(id) {
			m.notifyRemoved(t, id)
			store.RemoveByEntity(id)
		}
	}
	delete(m.entityMasks, id)
	m.allocator.destroy(id)
	Config.entityDestroyed(id)
	return true
}

// AddComponent attaches a T to id, creating its store on first use.
// The store is mutated before views are notified, so notified view
// handlers already see the new record. Re-adding an already-owned T is
// a no-op that returns the existing record and issues no notification.
func AddComponent[T any](m *Manager, id EntityId) (*T, error) {
	if _, ok := m.allocator.resolve(id); !ok {
		return nil, EntityNotAliveError{Entity: id}
	}

	m.beginMutation()
	defer m.endMutation()

	store := storeFor[T](m)
	existed := store.Contains(id)
	value := store.Add(id)
	tid := TypeIDFor[T]()
	if !existed {
		m.markComponent(id, tid)
		m.notifyAdded(tid, id)
		Config.componentAdded(id, tid)
	}
	return value, nil
}

// RemoveComponent detaches T from id. No-op if id never owned one (or
// the store doesn't exist yet). Views are notified before the store is
// mutated, mirroring AddComponent's ordering in reverse.
func RemoveComponent[T any](m *Manager, id EntityId) {
	tid := TypeIDFor[T]()
	store, ok := m.storeForID(tid)
	if !ok || !store.Contains(id) {
		return
	}

	m.beginMutation()
	defer m.endMutation()

	m.notifyRemoved(tid, id)
	store.RemoveByEntity(id)
	m.unmarkComponent(id, tid)
	Config.componentRemoved(id, tid)
}

// GetComponent returns id's T record, or (nil, false) if id doesn't
// own one (including when no store for T has ever been created).
func GetComponent[T any](m *Manager, id EntityId) (*T, bool) {
	tid := TypeIDFor[T]()
	erased, ok := m.storeForID(tid)
	if !ok {
		return nil, false
	}
	return erased.(*ComponentStore[T]).Get(id)
}

func (m *Manager) markComponent(id EntityId, t ComponentTypeID) {
	em := m.entityMasks[id]
	em.Mark(uint32(t))
	m.entityMasks[id] = em
}

func (m *Manager) unmarkComponent(id EntityId, t ComponentTypeID) {
	em := m.entityMasks[id]
	em.Unmark(uint32(t))
	m.entityMasks[id] = em
}

// RegisterView subscribes v to every type id in typeIDs, in
// registration order. A view watching multiple types appears in
// multiple subscriber lists, per spec.md §4.F.
func (m *Manager) RegisterView(v viewSubscriber) {
	for _, t := range v.typeIDs() {
		m.views[t] = append(m.views[t], v)
	}
}

// UnregisterView removes v from every subscriber list it appears in.
func (m *Manager) UnregisterView(v viewSubscriber) {
	for _, t := range v.typeIDs() {
		list := m.views[t]
		for i, sub := range list {
			if sub == v {
				list[i] = list[len(list)-1]
				list = list[:len(list)-1]
				break
			}
		}
		m.views[t] = list
	}
}

func (m *Manager) notifyAdded(t ComponentTypeID, id EntityId) {
	for _, v := range m.views[t] {
		v.onComponentAdded(t, id)
	}
}

func (m *Manager) notifyRemoved(t ComponentTypeID, id EntityId) {
	for _, v := range m.views[t] {
		v.onComponentRemoved(t, id)
	}
}

// iterationLockBit is the single Manager.locks bit used to gate
// structural mutation during View iteration, mirroring the teacher's
// storage.locks mask.Mask256 usage (there: per-cursor bits; here: one
// bit since silo's world model is strictly single-threaded).
const iterationLockBit = 0

// Lock marks the manager as mid-iteration. While locked,
// EnqueueAddComponent/EnqueueRemoveComponent/EnqueueDestroyEntity defer
// their work instead of applying it immediately. Lock/Unlock nest: a
// View.ForEach callback that iterates a second view keeps the manager
// locked until the outermost call returns, tracked by lockDepth since
// the mask bit itself carries no count.
func (m *Manager) Lock() {
	m.lockDepth++
	m.locks.Mark(iterationLockBit)
}

// Unlock releases one level of iteration lock and, once the outermost
// Lock has been matched and no locks remain, drains any operations
// queued while locked.
func (m *Manager) Unlock() {
	m.lockDepth--
	if m.lockDepth > 0 {
		return
	}
	m.lockDepth = 0
	m.locks.Unmark(iterationLockBit)
	if m.locks.IsEmpty() {
		if err := m.operationQueue.processAll(m); err != nil {
			panic(bark.AddTrace(err))
		}
	}
}

// Locked reports whether the manager is currently mid-iteration.
func (m *Manager) Locked() bool {
	return !m.locks.IsEmpty()
}
