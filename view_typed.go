package silo

// defaultParallelThreshold is the minimum block count below which
// ParallelForEach simply delegates to ForEach, per spec.md §4.F.
const defaultParallelThreshold = 256

// View1 tracks every entity owning a component of type A. Go has no
// variadic generics, so each arity gets its own thin wrapper over
// baseView rather than a single View<T...>.
type View1[A any] struct {
	base *baseView
	pool *WorkerPool
}

// newView1 constructs a View1 watching A on m, building its initial
// packed block immediately and registering for future notifications.
func newView1[A any](m *Manager) *View1[A] {
	types := []ComponentTypeID{TypeIDFor[A]()}
	return &View1[A]{base: newBaseView(m, types)}
}

func (v *View1[A]) Size() int { return v.base.size() }

func (v *View1[A]) Rebuild() { v.base.rebuild() }

// Close deregisters the view from its manager; further use is invalid.
func (v *View1[A]) Close() { v.base.manager.UnregisterView(v.base) }

// ForEach invokes fn once per member block, in view (not entity-id)
// order.
func (v *View1[A]) ForEach(fn func(id EntityId, a *A)) {
	b := v.base
	b.manager.Lock()
	defer b.manager.Unlock()
	if len(b.order) == 0 {
		return
	}
	sA, _ := b.manager.storeForID(b.types[0])
	storeA := sA.(*ComponentStore[A])
	for m, id := range b.order {
		iA := b.refreshSlot(m, 0)
		fn(id, storeA.at(iA))
	}
}

// ParallelForEach behaves like ForEach but fans work out across the
// WorkerPool attached with SetPool once member count reaches minSize
// (default defaultParallelThreshold). With no pool attached it always
// runs ForEach. The callback must only touch the fields
// of the block it was handed; see spec.md §5 for the concurrency
// contract this relies on.
func (v *View1[A]) ParallelForEach(fn func(id EntityId, a *A), minSize ...int) {
	threshold := defaultParallelThreshold
	if len(minSize) > 0 {
		threshold = minSize[0]
	}
	b := v.base
	n := b.size()
	if n < threshold || v.pool == nil {
		v.ForEach(fn)
		return
	}
	b.manager.Lock()
	defer b.manager.Unlock()
	sA, _ := b.manager.storeForID(b.types[0])
	storeA := sA.(*ComponentStore[A])
	chunks := runtimeChunks(v.pool)
	v.pool.ParallelRange(n, chunks, func(start, end int) {
		for m := start; m < end; m++ {
			id := b.order[m]
			iA := b.refreshSlot(m, 0)
			fn(id, storeA.at(iA))
		}
	})
}

// SetPool attaches the WorkerPool ParallelForEach dispatches onto.
func (v *View1[A]) SetPool(p *WorkerPool) { v.pool = p }

// View2 tracks every entity owning components of types A and B.
type View2[A, B any] struct {
	base *baseView
	pool *WorkerPool
}

func newView2[A, B any](m *Manager) *View2[A, B] {
	types := []ComponentTypeID{TypeIDFor[A](), TypeIDFor[B]()}
	return &View2[A, B]{base: newBaseView(m, types)}
}

func (v *View2[A, B]) Size() int    { return v.base.size() }
func (v *View2[A, B]) Rebuild()     { v.base.rebuild() }
func (v *View2[A, B]) Close()       { v.base.manager.UnregisterView(v.base) }
func (v *View2[A, B]) SetPool(p *WorkerPool) { v.pool = p }

func (v *View2[A, B]) ForEach(fn func(id EntityId, a *A, b *B)) {
	base := v.base
	base.manager.Lock()
	defer base.manager.Unlock()
	if len(base.order) == 0 {
		return
	}
	sA, _ := base.manager.storeForID(base.types[0])
	sB, _ := base.manager.storeForID(base.types[1])
	storeA := sA.(*ComponentStore[A])
	storeB := sB.(*ComponentStore[B])
	for m, id := range base.order {
		iA := base.refreshSlot(m, 0)
		iB := base.refreshSlot(m, 1)
		fn(id, storeA.at(iA), storeB.at(iB))
	}
}

func (v *View2[A, B]) ParallelForEach(fn func(id EntityId, a *A, b *B), minSize ...int) {
	threshold := defaultParallelThreshold
	if len(minSize) > 0 {
		threshold = minSize[0]
	}
	base := v.base
	n := base.size()
	if n < threshold || v.pool == nil {
		v.ForEach(fn)
		return
	}
	base.manager.Lock()
	defer base.manager.Unlock()
	sA, _ := base.manager.storeForID(base.types[0])
	sB, _ := base.manager.storeForID(base.types[1])
	storeA := sA.(*ComponentStore[A])
	storeB := sB.(*ComponentStore[B])
	chunks := runtimeChunks(v.pool)
	v.pool.ParallelRange(n, chunks, func(start, end int) {
		for m := start; m < end; m++ {
			id := base.order[m]
			iA := base.refreshSlot(m, 0)
			iB := base.refreshSlot(m, 1)
			fn(id, storeA.at(iA), storeB.at(iB))
		}
	})
}

// View3 tracks every entity owning components of types A, B, and C.
type View3[A, B, C any] struct {
	base *baseView
	pool *WorkerPool
}

func newView3[A, B, C any](m *Manager) *View3[A, B, C] {
	types := []ComponentTypeID{TypeIDFor[A](), TypeIDFor[B](), TypeIDFor[C]()}
	return &View3[A, B, C]{base: newBaseView(m, types)}
}

func (v *View3[A, B, C]) Size() int    { return v.base.size() }
func (v *View3[A, B, C]) Rebuild()     { v.base.rebuild() }
func (v *View3[A, B, C]) Close()       { v.base.manager.UnregisterView(v.base) }
func (v *View3[A, B, C]) SetPool(p *WorkerPool) { v.pool = p }

func (v *View3[A, B, C]) ForEach(fn func(id EntityId, a *A, b *B, c *C)) {
	base := v.base
	base.manager.Lock()
	defer base.manager.Unlock()
	if len(base.order) == 0 {
		return
	}
	sA, _ := base.manager.storeForID(base.types[0])
	sB, _ := base.manager.storeForID(base.types[1])
	sC, _ := base.manager.storeForID(base.types[2])
	storeA := sA.(*ComponentStore[A])
	storeB := sB.(*ComponentStore[B])
	storeC := sC.(*ComponentStore[C])
	for m, id := range base.order {
		iA := base.refreshSlot(m, 0)
		iB := base.refreshSlot(m, 1)
		iC := base.refreshSlot(m, 2)
		fn(id, storeA.at(iA), storeB.at(iB), storeC.at(iC))
	}
}

func (v *View3[A, B, C]) ParallelForEach(fn func(id EntityId, a *A, b *B, c *C), minSize ...int) {
	threshold := defaultParallelThreshold
	if len(minSize) > 0 {
		threshold = minSize[0]
	}
	base := v.base
	n := base.size()
	if n < threshold || v.pool == nil {
		v.ForEach(fn)
		return
	}
	base.manager.Lock()
	defer base.manager.Unlock()
	sA, _ := base.manager.storeForID(base.types[0])
	sB, _ := base.manager.storeForID(base.types[1])
	sC, _ := base.manager.storeForID(base.types[2])
	storeA := sA.(*ComponentStore[A])
	storeB := sB.(*ComponentStore[B])
	storeC := sC.(*ComponentStore[C])
	chunks := runtimeChunks(v.pool)
	v.pool.ParallelRange(n, chunks, func(start, end int) {
		for m := start; m < end; m++ {
			id := base.order[m]
			iA := base.refreshSlot(m, 0)
			iB := base.refreshSlot(m, 1)
			iC := base.refreshSlot(m, 2)
			fn(id, storeA.at(iA), storeB.at(iB), storeC.at(iC))
		}
	})
}

// View4 tracks every entity owning components of types A, B, C, and D.
type View4[A, B, C, D any] struct {
	base *baseView
	pool *WorkerPool
}

func newView4[A, B, C, D any](m *Manager) *View4[A, B, C, D] {
	types := []ComponentTypeID{TypeIDFor[A](), TypeIDFor[B](), TypeIDFor[C](), TypeIDFor[D]()}
	return &View4[A, B, C, D]{base: newBaseView(m, types)}
}

func (v *View4[A, B, C, D]) Size() int    { return v.base.size() }
func (v *View4[A, B, C, D]) Rebuild()     { v.base.rebuild() }
func (v *View4[A, B, C, D]) Close()       { v.base.manager.UnregisterView(v.base) }
func (v *View4[A, B, C, D]) SetPool(p *WorkerPool) { v.pool = p }

func (v *View4[A, B, C, D]) ForEach(fn func(id EntityId, a *A, b *B, c *C, d *D)) {
	base := v.base
	base.manager.Lock()
	defer base.manager.Unlock()
	if len(base.order) == 0 {
		return
	}
	sA, _ := base.manager.storeForID(base.types[0])
	sB, _ := base.manager.storeForID(base.types[1])
	sC, _ := base.manager.storeForID(base.types[2])
	sD, _ := base.manager.storeForID(base.types[3])
	storeA := sA.(*ComponentStore[A])
	storeB := sB.(*ComponentStore[B])
	storeC := sC.(*ComponentStore[C])
	storeD := sD.(*ComponentStore[D])
	for m, id := range base.order {
		iA := base.refreshSlot(m, 0)
		iB := base.refreshSlot(m, 1)
		iC := base.refreshSlot(m, 2)
		iD := base.refreshSlot(m, 3)
		fn(id, storeA.at(iA), storeB.at(iB), storeC.at(iC), storeD.at(iD))
	}
}

func (v *View4[A, B, C, D]) ParallelForEach(fn func(id EntityId, a *A, b *B, c *C, d *D), minSize ...int) {
	threshold := defaultParallelThreshold
	if len(minSize) > 0 {
		threshold = minSize[0]
	}
	base := v.base
	n := base.size()
	if n < threshold || v.pool == nil {
		v.ForEach(fn)
		return
	}
	base.manager.Lock()
	defer base.manager.Unlock()
	sA, _ := base.manager.storeForID(base.types[0])
	sB, _ := base.manager.storeForID(base.types[1])
	sC, _ := base.manager.storeForID(base.types[2])
	sD, _ := base.manager.storeForID(base.types[3])
	storeA := sA.(*ComponentStore[A])
	storeB := sB.(*ComponentStore[B])
	storeC := sC.(*ComponentStore[C])
	storeD := sD.(*ComponentStore[D])
	chunks := runtimeChunks(v.pool)
	v.pool.ParallelRange(n, chunks, func(start, end int) {
		for m := start; m < end; m++ {
			id := base.order[m]
			iA := base.refreshSlot(m, 0)
			iB := base.refreshSlot(m, 1)
			iC := base.refreshSlot(m, 2)
			iD := base.refreshSlot(m, 3)
			fn(id, storeA.at(iA), storeB.at(iB), storeC.at(iC), storeD.at(iD))
		}
	})
}

// runtimeChunks sizes the chunk count to the pool's own worker count,
// per spec.md §4.I's "one [chunk] per worker pool thread".
func runtimeChunks(p *WorkerPool) int {
	return p.NumWorkers()
}
