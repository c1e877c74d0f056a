package silo

import (
	"fmt"
	"reflect"
)

// ReentrantMutationError is raised when a view callback attempts to
// mutate the Manager while a notification fan-out from an earlier
// mutation is still in progress.
type ReentrantMutationError struct{}

func (e ReentrantMutationError) Error() string {
	return fmt.Sprintf("silo: reentrant mutation attempted from a view callback")
}

// EntityNotAliveError reports an operation attempted against an entity
// id that has never been allocated, or has already been destroyed.
type EntityNotAliveError struct {
	Entity EntityId
}

func (e EntityNotAliveError) Error() string {
	return fmt.Sprintf("silo: entity %v is not alive", e.Entity)
}

// ComponentNotFoundError reports a handle dereference against an
// entity that does not own a component of the requested type.
type ComponentNotFoundError struct {
	Entity        EntityId
	ComponentType reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("silo: entity %v has no component %v", e.Entity, e.ComponentType)
}

// ParallelIterationError is raised when WorkerPool.ParallelRange is
// invoked re-entrantly on the same pool from within an in-flight call.
type ParallelIterationError struct{}

func (e ParallelIterationError) Error() string {
	return fmt.Sprintf("silo: parallelForEach is not reentrant on a shared WorkerPool")
}
