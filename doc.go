/*
Package silo provides the storage-and-view core of a small, embeddable
Entity-Component-System (ECS) runtime for game-like simulations.

Silo lets client code model a world as a set of lightweight entities
(identifiers only), attach strongly-typed components to those entities,
and run views that iterate in bulk over every entity that simultaneously
owns a chosen set of component types. Storage is a sparse set per
component type: a dense contiguous array of records plus an entity-to-slot
map, with O(1) insert and swap-remove.

Core Concepts:

  - Entity: a generational identifier (index, salt) naming a logical object.
  - Component: a plain data record attached to at most one entity per type.
  - Store: the dense array of all records of one component type.
  - View: an object that incrementally tracks every entity owning a given
    conjunction of component types and iterates them, sequentially or in
    parallel.

Basic Usage:

	manager := silo.Factory.NewManager()

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	e := manager.AddEntity()
	pos, _ := silo.AddComponent[Position](manager, e)
	pos.X, pos.Y = 1, 2
	vel, _ := silo.AddComponent[Velocity](manager, e)
	vel.X, vel.Y = 0.5, 0

	view := silo.FactoryNewView2[Position, Velocity](manager)
	defer view.Close()

	view.ForEach(func(id silo.EntityId, pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

Silo is primarily single-threaded: every mutation (entity/component
add/remove, view rebuild, view notification) must happen on one
"world" goroutine. Only View*.ParallelForEach fans work out to the
WorkerPool attached to that view with SetPool, and only for callbacks that read/write fields local to the
entity passed to them.
*/
package silo
