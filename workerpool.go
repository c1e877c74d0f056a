package silo

import (
	"runtime"
	"sync"

	"github.com/TheBitDrifter/bark"
)

// task is a unit of work submitted to a WorkerPool.
type task func()

// WorkerPool is a fixed-size pool of goroutines. Its size is the workers
// argument given at construction, or runtime.GOMAXPROCS(0) when that is
// 0 or less. There is no process-wide default pool: a View's
// ParallelForEach uses only the pool attached to that view with
// SetPool, and several views share a pool only when the same one is
// attached to each. There is no library in the
// retrieved pack that models a bounded worker pool with completion
// signaling, so this is built directly on sync primitives (see
// DESIGN.md).
type WorkerPool struct {
	tasks   chan task
	workers int

	mu      sync.Mutex
	cond    *sync.Cond
	pending int
	busy    bool
}

func newWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 1 {
		workers = 1
	}
	p := &WorkerPool{
		tasks:   make(chan task),
		workers: workers,
	}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < workers; i++ {
		go p.loop()
	}
	return p
}

// NumWorkers reports the fixed number of goroutines backing the pool,
// so callers that partition work (View*.ParallelForEach) can size
// chunk count to it instead of guessing.
func (p *WorkerPool) NumWorkers() int {
	return p.workers
}

func (p *WorkerPool) loop() {
	for t := range p.tasks {
		t()
		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Signal()
		}
		p.mu.Unlock()
	}
}

// Submit enqueues a single task; any idle worker may pick it up.
func (p *WorkerPool) Submit(t task) {
	p.mu.Lock()
	p.pending++
	p.mu.Unlock()
	p.tasks <- t
}

// ParallelRange partitions [0,n) into at most chunks contiguous blocks
// of ceil(n/chunks) indices each (the last block may be shorter),
// submits one call of fn per block to the pool, and blocks until every
// block has completed. It is not reentrant: ParallelRange must not be
// called again on the same pool while a prior call is still blocked,
// mirroring the single-caller contract spec.md §9 describes for the
// source's mutex/CV pairing.
func (p *WorkerPool) ParallelRange(n, chunks int, fn func(start, end int)) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		panic(bark.AddTrace(ParallelIterationError{}))
	}
	p.busy = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	if n == 0 || chunks <= 0 {
		return
	}
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks

	p.mu.Lock()
	p.pending = 0
	p.mu.Unlock()

	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		s, e := start, end
		p.Submit(func() { fn(s, e) })
	}

	p.mu.Lock()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.mu.Unlock()
}
