package silo

import "testing"

func TestEntityAllocatorGenerationalSafety(t *testing.T) {
	a := newEntityAllocator()

	e1 := a.allocate()
	if !a.destroy(e1) {
		t.Fatalf("destroy(e1) = false, want true")
	}
	e2 := a.allocate()

	if e2.Index() != e1.Index() {
		t.Fatalf("e2.Index() = %d, want %d (reused)", e2.Index(), e1.Index())
	}
	if e2.Salt() != e1.Salt()+1 {
		t.Fatalf("e2.Salt() = %d, want %d", e2.Salt(), e1.Salt()+1)
	}
	if _, ok := a.resolve(e1); ok {
		t.Fatalf("resolve(e1) succeeded after recycling, want failure")
	}
	if _, ok := a.resolve(e2); !ok {
		t.Fatalf("resolve(e2) failed, want success")
	}
}

func TestEntityAllocatorFreeListIsFIFO(t *testing.T) {
	a := newEntityAllocator()
	e1 := a.allocate()
	e2 := a.allocate()
	a.destroy(e1)
	a.destroy(e2)

	e3 := a.allocate()
	if e3.Index() != e1.Index() {
		t.Fatalf("e3.Index() = %d, want %d (FIFO reuse)", e3.Index(), e1.Index())
	}
}

func TestEntityAllocatorNullEntityNeverResolves(t *testing.T) {
	a := newEntityAllocator()
	var null EntityId
	if _, ok := a.resolve(null); ok {
		t.Fatalf("resolve(null) succeeded, want failure")
	}
	if null.IsAlive() {
		t.Fatalf("null.IsAlive() = true, want false")
	}
}

func TestEntityAllocatorDestroyUnknownFails(t *testing.T) {
	a := newEntityAllocator()
	fake := EntityId{index: 99, salt: 1}
	if a.destroy(fake) {
		t.Fatalf("destroy(fake) = true, want false")
	}
}

func TestEntityIdHashDiffersBySalt(t *testing.T) {
	a := EntityId{index: 5, salt: 1}
	b := EntityId{index: 5, salt: 2}
	if a.Hash() == b.Hash() {
		t.Fatalf("Hash() collided across salts: %d", a.Hash())
	}
}

func TestEntityIdHashDeterministic(t *testing.T) {
	a := EntityId{index: 7, salt: 3}
	b := EntityId{index: 7, salt: 3}
	if a.Hash() != b.Hash() {
		t.Fatalf("Hash() not deterministic: %d != %d", a.Hash(), b.Hash())
	}
}

func TestEntityAllocatorGrowsSlotsOnDemand(t *testing.T) {
	a := newEntityAllocator()
	var last EntityId
	for i := 0; i < 100; i++ {
		last = a.allocate()
	}
	if last.Index() != 100 {
		t.Fatalf("last.Index() = %d, want 100", last.Index())
	}
}
