package silo

import "github.com/TheBitDrifter/mask"

// baseView holds the arity-independent bookkeeping shared by View1..View4:
// the packed membership block, the required-type mask, and the
// subscription glue a Manager talks to through viewSubscriber. The typed
// View1..View4 wrappers in view_typed.go add nothing but ForEach/
// ParallelForEach over this shared state (plus the WorkerPool that
// ParallelForEach dispatches onto), since Go has no variadic
// generics to express View<T...> directly.
type baseView struct {
	manager *Manager
	types   []ComponentTypeID
	want    mask.Mask

	// members maps an entity to its block index m; the block's k
	// entries live at packedIndices[m*k : m*k+k]. Per spec.md §9's
	// open question, storing the block index rather than m*k keeps
	// every mutation site deriving the same offset formula.
	members       map[EntityId]int
	order         []EntityId // order[m] == the entity owning block m
	packedIndices []int      // packedIndices[m*k+j] is types[j]'s store index for block m's entity
}

func newBaseView(m *Manager, types []ComponentTypeID) *baseView {
	var want mask.Mask
	for _, t := range types {
		want.Mark(uint32(t))
	}
	v := &baseView{
		manager: m,
		types:   types,
		want:    want,
		members: make(map[EntityId]int),
	}
	v.rebuild()
	m.RegisterView(v)
	return v
}

func (v *baseView) typeIDs() []ComponentTypeID {
	return v.types
}

func (v *baseView) arity() int {
	return len(v.types)
}

func (v *baseView) size() int {
	return len(v.order)
}

// rebuild discards the current packed block and re-derives it from
// scratch by scanning the smallest of the watched stores, keeping only
// entities whose entityMask satisfies v.want. Used on construction and
// whenever a caller explicitly asks for a full Rebuild.
func (v *baseView) rebuild() {
	v.members = make(map[EntityId]int)
	v.order = v.order[:0]
	v.packedIndices = v.packedIndices[:0]

	scan, ok := v.smallestStore()
	if !ok {
		return
	}
	for id := range scan.Entities() {
		if v.qualifies(id) {
			v.appendMember(id)
		}
	}
}

// smallestStore returns the watched store with the fewest records, to
// minimize the work rebuild does scanning for candidate entities.
func (v *baseView) smallestStore() (erasedStore, bool) {
	var best erasedStore
	for _, t := range v.types {
		s, ok := v.manager.storeForID(t)
		if !ok {
			return nil, false
		}
		if best == nil || s.Len() < best.Len() {
			best = s
		}
	}
	return best, best != nil
}

func (v *baseView) qualifies(id EntityId) bool {
	em := v.manager.entityMasks[id]
	return em.ContainsAll(v.want)
}

// onComponentAdded is called by Manager after a watched type is added to
// id. id joins the view's packed block the moment it owns every watched
// type, and never again until it leaves and re-qualifies.
func (v *baseView) onComponentAdded(_ ComponentTypeID, id EntityId) {
	if _, already := v.members[id]; already {
		return
	}
	if v.qualifies(id) {
		v.appendMember(id)
	}
}

// onComponentRemoved is called by Manager before a watched type is
// removed from id. If id is currently a member it is evicted; the
// membership check makes every later notification for the same id a
// no-op, so eviction never runs twice even if id owns several watched
// types and all are removed in the same DestroyEntity sweep.
func (v *baseView) onComponentRemoved(_ ComponentTypeID, id EntityId) {
	if _, ok := v.members[id]; ok {
		v.removeMember(id)
	}
}

// appendMember adds id as a new block at the end of the packed region,
// resolving and caching its physical index in each watched store.
func (v *baseView) appendMember(id EntityId) {
	m := len(v.order)
	v.order = append(v.order, id)
	v.members[id] = m
	for _, t := range v.types {
		s, _ := v.manager.storeForID(t)
		idx, _ := s.IndexOf(id)
		v.packedIndices = append(v.packedIndices, idx)
	}
}

// removeMember evicts id's block via swap-remove: the last block is
// copied into id's slot and its own members map entry is repointed,
// then the tail block is dropped.
func (v *baseView) removeMember(id EntityId) {
	k := v.arity()
	m, ok := v.members[id]
	if !ok {
		return
	}
	last := len(v.order) - 1
	if m != last {
		v.order[m] = v.order[last]
		copy(v.packedIndices[m*k:m*k+k], v.packedIndices[last*k:last*k+k])
		v.members[v.order[m]] = m
	}
	v.order = v.order[:last]
	v.packedIndices = v.packedIndices[:last*k]
	delete(v.members, id)
}

// refreshSlot re-derives and caches block m's physical index for
// watched type slot j. A store swap-remove triggered by removing some
// *other* entity can silently shift the physical index of any entity
// still resident in that store, with no notification reaching views
// that don't own the removed entity's block. Rather than have stores
// broadcast every internal swap, ForEach/ParallelForEach call this
// immediately before dereferencing each slot, which keeps
// packedIndices equal to the live slotOf position invariant §4.F
// describes without requiring a second notification channel.
func (v *baseView) refreshSlot(m, j int) int {
	s, _ := v.manager.storeForID(v.types[j])
	idx, _ := s.IndexOf(v.order[m])
	k := v.arity()
	v.packedIndices[m*k+j] = idx
	return idx
}
