package silo

// EntityOperation is a deferred mutation applied once a Manager's
// iteration lock clears, grounded on the teacher's
// EntityOperation/Apply(Storage) pattern in operation_queue.go. Since
// silo's operations are generic over T and Go forbids generic methods,
// EntityOperation wraps a closure rather than exposing typed
// Add/Remove/Destroy structs the way the teacher does.
type EntityOperation interface {
	apply(*Manager) error
}

type funcOperation func(*Manager) error

func (f funcOperation) apply(m *Manager) error { return f(m) }

// entityOperationQueue buffers operations enqueued while a Manager is
// locked, applying them in FIFO order once every lock clears.
type entityOperationQueue struct {
	operations []EntityOperation
}

func (q *entityOperationQueue) enqueue(op EntityOperation) {
	q.operations = append(q.operations, op)
}

// processAll applies every queued operation in order and clears the
// queue. If the manager is still locked (a queued operation re-locked
// it, for instance) processing stops and the remainder stays queued
// for the next Unlock.
func (q *entityOperationQueue) processAll(m *Manager) error {
	for len(q.operations) > 0 {
		if m.Locked() {
			return nil
		}
		op := q.operations[0]
		q.operations = q.operations[1:]
		if err := op.apply(m); err != nil {
			return err
		}
	}
	return nil
}

// EnqueueAddComponent defers AddComponent[T] until m next unlocks. If m
// is not currently locked, the operation runs immediately.
func EnqueueAddComponent[T any](m *Manager, id EntityId) {
	op := funcOperation(func(m *Manager) error {
		_, err := AddComponent[T](m, id)
		return err
	})
	if !m.Locked() {
		_ = op.apply(m)
		return
	}
	m.operationQueue.enqueue(op)
}

// EnqueueRemoveComponent defers RemoveComponent[T] until m next
// unlocks. If m is not currently locked, the operation runs
// immediately.
func EnqueueRemoveComponent[T any](m *Manager, id EntityId) {
	op := funcOperation(func(m *Manager) error {
		RemoveComponent[T](m, id)
		return nil
	})
	if !m.Locked() {
		_ = op.apply(m)
		return
	}
	m.operationQueue.enqueue(op)
}

// EnqueueDestroyEntity defers DestroyEntity until m next unlocks. If m
// is not currently locked, the operation runs immediately.
func EnqueueDestroyEntity(m *Manager, id EntityId) {
	op := funcOperation(func(m *Manager) error {
		m.DestroyEntity(id)
		return nil
	})
	if !m.Locked() {
		_ = op.apply(m)
		return
	}
	m.operationQueue.enqueue(op)
}
