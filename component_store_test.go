package silo

import "testing"

type position struct {
	X, Y float64
}

func TestComponentStoreAddReturnsExistingOnReAdd(t *testing.T) {
	s := newComponentStore[position](nil)
	e := EntityId{index: 1, salt: 1}

	first := s.Add(e)
	first.X = 42

	second := s.Add(e)
	if second.X != 42 {
		t.Fatalf("Add on existing entity returned a fresh record, want the existing one")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

// TestComponentStoreAddRemoveSwap exercises seed scenario 1: create
// entities e1,e2,e3, add component A to all, remove A from e1 and
// confirm e3 swapped into e1's slot.
func TestComponentStoreAddRemoveSwap(t *testing.T) {
	s := newComponentStore[position](nil)
	e1 := EntityId{index: 1, salt: 1}
	e2 := EntityId{index: 2, salt: 1}
	e3 := EntityId{index: 3, salt: 1}

	s.Add(e1)
	s.Add(e2)
	s.Add(e3)

	s.Remove(e1)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if i, _ := s.IndexOf(e3); i != 0 {
		t.Fatalf("IndexOf(e3) = %d, want 0 (swapped into e1's slot)", i)
	}
	if i, _ := s.IndexOf(e2); i != 1 {
		t.Fatalf("IndexOf(e2) = %d, want 1 (unmoved)", i)
	}
	if s.Contains(e1) {
		t.Fatalf("Contains(e1) = true after removal")
	}
}

func TestComponentStoreRemoveLastTakesPopOnlyPath(t *testing.T) {
	s := newComponentStore[position](nil)
	e1 := EntityId{index: 1, salt: 1}
	e2 := EntityId{index: 2, salt: 1}
	s.Add(e1)
	s.Add(e2)

	s.Remove(e2)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if i, _ := s.IndexOf(e1); i != 0 {
		t.Fatalf("IndexOf(e1) = %d, want 0 (unmoved by pop-only remove)", i)
	}
}

func TestComponentStoreRemoveAbsentIsNoop(t *testing.T) {
	s := newComponentStore[position](nil)
	e1 := EntityId{index: 1, salt: 1}
	s.Remove(e1)
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}

func TestComponentStoreGetAbsentReturnsFalse(t *testing.T) {
	s := newComponentStore[position](nil)
	if _, ok := s.Get(EntityId{index: 1, salt: 1}); ok {
		t.Fatalf("Get(absent) = true, want false")
	}
}

func TestComponentStoreEntitiesIteratesAllMembers(t *testing.T) {
	s := newComponentStore[position](nil)
	want := map[EntityId]bool{
		{index: 1, salt: 1}: true,
		{index: 2, salt: 1}: true,
		{index: 3, salt: 1}: true,
	}
	for id := range want {
		s.Add(id)
	}

	seen := map[EntityId]bool{}
	for id := range s.Entities() {
		seen[id] = true
	}
	if len(seen) != len(want) {
		t.Fatalf("Entities() visited %d ids, want %d", len(seen), len(want))
	}
	for id := range want {
		if !seen[id] {
			t.Fatalf("Entities() missed %v", id)
		}
	}
}

func TestComponentStoreEntitiesStopsOnFalse(t *testing.T) {
	s := newComponentStore[position](nil)
	s.Add(EntityId{index: 1, salt: 1})
	s.Add(EntityId{index: 2, salt: 1})

	count := 0
	for range s.Entities() {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("Entities() iterated %d times after break, want 1", count)
	}
}
