package silo

// factory implements the factory pattern for silo's exported
// constructors, mirroring the teacher's single Factory instance.
type factory struct{}

// Factory is the global factory instance for creating silo components.
var Factory factory

// NewManager creates a new, empty Manager.
func (f factory) NewManager() *Manager {
	return newManager()
}

// NewWorkerPool creates a new WorkerPool with workers goroutines. A
// workers value of 0 or less sizes the pool from
// runtime.GOMAXPROCS(0).
func (f factory) NewWorkerPool(workers int) *WorkerPool {
	return newWorkerPool(workers)
}

// FactoryNewView1 creates a View1 watching component type A on m.
// Kept as a free function rather than a factory method since Go
// forbids generic methods.
func FactoryNewView1[A any](m *Manager) *View1[A] {
	return newView1[A](m)
}

// FactoryNewView2 creates a View2 watching component types A and B
// on m.
func FactoryNewView2[A, B any](m *Manager) *View2[A, B] {
	return newView2[A, B](m)
}

// FactoryNewView3 creates a View3 watching component types A, B, and C
// on m.
func FactoryNewView3[A, B, C any](m *Manager) *View3[A, B, C] {
	return newView3[A, B, C](m)
}

// FactoryNewView4 creates a View4 watching component types A, B, C,
// and D on m.
func FactoryNewView4[A, B, C, D any](m *Manager) *View4[A, B, C, D] {
	return newView4[A, B, C, D](m)
}
