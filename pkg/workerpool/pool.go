// Package workerpool provides a bounded goroutine pool for CPU-bound
// analysis work. Based on patterns from cloudwego/netpoll gopool and
// panjf2000/ants.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool manages a fixed pool of worker goroutines. Reusing workers keeps
// goroutine creation off the batch-analysis hot path and caps parallelism
// at a known bound.
type Pool struct {
	workers int32
	tasks   chan func()
	running int32
	closed  int32
	wg      sync.WaitGroup
}

// New creates a pool with the given number of workers. Response analysis
// is pure computation, so sizing defaults to GOMAXPROCS rather than the
// inflated counts an I/O-bound pool would use. Workers start lazily on
// the first Submit.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		workers: int32(workers),
		tasks:   make(chan func(), workers*4),
	}
}

// Submit adds a task to the pool. If all workers are busy the task waits
// in the queue. Returns false if the pool is closed.
func (p *Pool) Submit(task func()) bool {
	if atomic.LoadInt32(&p.closed) == 1 {
		return false
	}

	// Spawn a worker if below the limit
	for {
		running := atomic.LoadInt32(&p.running)
		if running >= p.workers {
			break
		}
		if atomic.CompareAndSwapInt32(&p.running, running, running+1) {
			p.wg.Add(1)
			go p.worker()
			break
		}
	}

	p.tasks <- task
	return true
}

func (p *Pool) worker() {
	defer func() {
		if r := recover(); r != nil {
			// Replace ourselves so a panicking task does not shrink the pool
			if atomic.LoadInt32(&p.closed) == 0 {
				go p.worker()
				return
			}
		}
		atomic.AddInt32(&p.running, -1)
		p.wg.Done()
	}()

	for task := range p.tasks {
		if task != nil {
			task()
		}
	}
}

// Running returns the current number of running workers.
func (p *Pool) Running() int {
	return int(atomic.LoadInt32(&p.running))
}

// Cap returns the worker capacity.
func (p *Pool) Cap() int {
	return int(atomic.LoadInt32(&p.workers))
}

// Close shuts down the pool gracefully. All pending tasks complete
// before Close returns.
func (p *Pool) Close() {
	if !atomic.CompareAndSwapInt32(&p.closed, 0, 1) {
		return
	}
	close(p.tasks)
	p.wg.Wait()
}

// IsClosed returns true if the pool is closed.
func (p *Pool) IsClosed() bool {
	return atomic.LoadInt32(&p.closed) == 1
}

// ParallelFor executes fn for each index from 0 to n-1 in parallel and
// blocks until all iterations complete. fn must write only to the slot
// it owns; the index-per-task shape is what keeps batch output aligned
// with batch input regardless of completion order.
func (p *Pool) ParallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		idx := i
		if !p.Submit(func() {
			defer wg.Done()
			fn(idx)
		}) {
			wg.Done()
		}
	}

	wg.Wait()
}

// Map applies fn to each item in parallel and returns results in input
// order. Returns partial results if the pool is closed during execution.
func Map[T, R any](p *Pool, items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	var wg sync.WaitGroup
	wg.Add(len(items))

	for i, item := range items {
		idx := i
		val := item
		if !p.Submit(func() {
			defer wg.Done()
			results[idx] = fn(val)
		}) {
			wg.Done()
		}
	}

	wg.Wait()
	return results
}
