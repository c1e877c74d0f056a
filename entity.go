package silo

import (
	"fmt"
	"math/bits"
)

// EntityId is a generational handle: a dense slot index paired with a
// salt that increments every time the slot is recycled. index == 0
// means dead/null; valid indices start at 1.
type EntityId struct {
	index uint32
	salt  uint16
}

// Index returns the slot index this id refers to.
func (id EntityId) Index() uint32 {
	return id.index
}

// Salt returns the generation counter of this id.
func (id EntityId) Salt() uint16 {
	return id.salt
}

// IsAlive reports whether this id is non-null. It does not by itself
// prove the id is still valid for a given Manager; use
// Manager.GetEntity for that.
func (id EntityId) IsAlive() bool {
	return id.index != 0
}

// markDead zeroes the index field, the spec's definition of "dead",
// while leaving the salt untouched so it can be reported in errors.
func (id *EntityId) markDead() {
	id.index = 0
}

// Hash mixes the salt into the high bits of the index, shifting as far
// as the index's own bit width allows without losing bits off the top
// of the 64-bit result. This keeps salt entropy visible even for worlds
// with small, densely packed indices.
func (id EntityId) Hash() uint64 {
	index := uint64(id.index)
	indexWidth := bits.Len64(index)
	const hashWidth = 64

	k := indexWidth
	if room := hashWidth - indexWidth - 1; room < k {
		k = room
	}
	if k < 0 {
		k = 0
	}
	return (uint64(id.salt) << uint(k)) ^ index
}

func (id EntityId) String() string {
	return fmt.Sprintf("Entity(%d,%d)", id.index, id.salt)
}

// entitySlot is the per-index allocator record. A dead slot carries
// lastSalt forward so the next allocation for this index issues a
// strictly greater generation.
type entitySlot struct {
	id       EntityId
	lastSalt uint16
}

func (s entitySlot) alive() bool {
	return s.id.index != 0
}

// entityAllocator allocates, recycles, and validates EntityIds. Index 0
// is permanently reserved as the null slot.
type entityAllocator struct {
	slots       []entitySlot
	freeIndices []uint32
	freeHead    int
	nextIndex   uint32
}

func newEntityAllocator() *entityAllocator {
	return &entityAllocator{
		slots:     make([]entitySlot, 1, 16),
		nextIndex: 1,
	}
}

// allocate returns a fresh EntityId, recycling the oldest freed index
// when one is available.
func (a *entityAllocator) allocate() EntityId {
	var index uint32
	if a.freeHead < len(a.freeIndices) {
		index = a.freeIndices[a.freeHead]
		a.freeHead++
		if a.freeHead == len(a.freeIndices) {
			a.freeIndices = a.freeIndices[:0]
			a.freeHead = 0
		}
	} else {
		index = a.nextIndex
		a.nextIndex++
		if a.nextIndex == 0 {
			// wrapped past the representable maximum; index 0 stays reserved
			a.nextIndex = 1
		}
	}

	for uint32(len(a.slots)) <= index {
		a.slots = append(a.slots, entitySlot{})
	}

	prevSalt := a.slots[index].lastSalt
	newSalt := prevSalt + 1
	id := EntityId{index: index, salt: newSalt}
	a.slots[index] = entitySlot{id: id, lastSalt: newSalt}
	return id
}

// resolve returns the live slot for id, or false if id is null, stale,
// or refers to a dead index.
func (a *entityAllocator) resolve(id EntityId) (*entitySlot, bool) {
	if id.index == 0 || int(id.index) >= len(a.slots) {
		return nil, false
	}
	slot := &a.slots[id.index]
	if !slot.alive() || slot.id.salt != id.salt {
		return nil, false
	}
	return slot, true
}

// destroy marks id's slot dead and returns its index to the free list.
// Reports false if id was already dead or stale.
func (a *entityAllocator) destroy(id EntityId) bool {
	slot, ok := a.resolve(id)
	if !ok {
		return false
	}
	slot.id.markDead()
	a.freeIndices = append(a.freeIndices, id.index)
	return true
}
