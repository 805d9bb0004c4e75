package game

import (
	"fmt"
	"runtime"
	"sync"
)

// DefaultWorkerCount returns GOMAXPROCS-1: the orchestrating goroutine
// takes one share of every tick itself.
func DefaultWorkerCount() int {
	n := runtime.GOMAXPROCS(0) - 1
	if n < 0 {
		n = 0
	}
	return n
}

// poolWorker is one long-lived goroutine with a single work slot.
// ready carries a task to the worker; done carries the acknowledgement back.
type poolWorker[T any] struct {
	ready chan T
	done  chan struct{}
	busy  bool // owned by the submitting goroutine
}

// Pool is a fixed set of persistent worker goroutines. Each worker holds at
// most one outstanding task. The submitting goroutine hands tasks out with
// Submit, does its own share inline, then blocks in Wait until every busy
// worker has acknowledged.
//
// Submit, Wait and Close must be called from a single goroutine.
type Pool[T any] struct {
	workers []*poolWorker[T]
	handle  func(worker int, task T)

	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    bool
}

// NewPool starts n workers running handle for each submitted task.
func NewPool[T any](n int, handle func(worker int, task T)) *Pool[T] {
	if n < 0 {
		panic(fmt.Sprintf("game: negative worker count %d", n))
	}
	p := &Pool[T]{
		workers:  make([]*poolWorker[T], n),
		handle:   handle,
		stopChan: make(chan struct{}),
	}
	for i := range p.workers {
		p.workers[i] = &poolWorker[T]{
			ready: make(chan T, 1),
			done:  make(chan struct{}, 1),
		}
		p.wg.Add(1)
		go p.run(i)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool[T]) Size() int { return len(p.workers) }

// run processes tasks for one worker until the pool is closed.
func (p *Pool[T]) run(id int) {
	defer p.wg.Done()
	w := p.workers[id]

	for {
		select {
		case <-p.stopChan:
			return
		case task := <-w.ready:
			p.handle(id, task)
			w.done <- struct{}{}
		}
	}
}

// Submit hands task to worker id. Panics if that worker still has an
// unacknowledged task or the pool is closed.
func (p *Pool[T]) Submit(id int, task T) {
	if p.closed {
		panic(fmt.Sprintf("game: submit to worker %d after close", id))
	}
	w := p.workers[id]
	if w.busy {
		panic(fmt.Sprintf("game: worker %d already has outstanding work", id))
	}
	w.busy = true
	w.ready <- task
}

// Wait blocks until every worker with outstanding work has finished it.
func (p *Pool[T]) Wait() {
	for _, w := range p.workers {
		if !w.busy {
			continue
		}
		<-w.done
		w.busy = false
	}
}

// Close waits for outstanding work, signals workers to exit and joins them.
// Safe to call more than once.
func (p *Pool[T]) Close() {
	p.closeOnce.Do(func() {
		p.Wait()
		p.closed = true
		close(p.stopChan)
		p.wg.Wait()
	})
}
