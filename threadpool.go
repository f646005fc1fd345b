// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph

import (
	"sync"
	"sync/atomic"

	"github.com/gammazero/deque"

	"github.com/xaoctech/jobgraph-go/internal/wake"
)

// ThreadPool is a [System] that runs jobs on a fixed set of worker
// goroutines. Jobs are executed in the order their dependency counters reach
// zero; jobs queued together as a batch start in batch order.
//
// A ThreadPool must be created with [NewThreadPool] and shut down with
// [ThreadPool.Stop].
type ThreadPool struct {
	numWorkers int

	mu    sync.Mutex
	queue deque.Deque[*Job]

	idle    wake.Queue
	jobPool sync.Pool
	done    chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// NewThreadPool creates a pool with the given number of worker goroutines.
// numWorkers may be zero, in which case jobs only execute on goroutines that
// wait on a barrier containing them.
func NewThreadPool(numWorkers int) *ThreadPool {
	if numWorkers < 0 {
		panic("negative worker count")
	}
	p := &ThreadPool{
		numWorkers: numWorkers,
		done:       make(chan struct{}),
	}
	p.jobPool.New = func() any { return new(Job) }
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Stop shuts down the worker goroutines and waits for them to exit. Jobs
// still in the queue are not executed; wait on a barrier before stopping if
// that matters. Stop may be called more than once.
func (p *ThreadPool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	close(p.done)
	p.wg.Wait()

	// Drop the queue's references to jobs that were never picked up.
	for {
		j, ok := p.popJob()
		if !ok {
			return
		}
		j.Release()
	}
}

// MaxConcurrency implements [System]. The goroutine blocked in
// [ThreadPool.WaitForJobs] executes jobs too, so it counts toward the total.
func (p *ThreadPool) MaxConcurrency() int {
	return p.numWorkers + 1
}

// CreateJob implements [System].
func (p *ThreadPool) CreateJob(name string, color Color, function JobFunc, numDependencies int) Handle {
	j := p.jobPool.Get().(*Job)
	j.init(name, color, p, function, numDependencies)
	h := NewHandle(j)

	// A job with no dependencies is runnable the instant it exists.
	if numDependencies == 0 {
		p.QueueJob(j)
	}
	return h
}

// QueueJob implements [Scheduler].
func (p *ThreadPool) QueueJob(j *Job) {
	// The queue holds its own reference so the job cannot be reclaimed
	// while a worker might still pick it up.
	j.AddRef()
	p.mu.Lock()
	p.queue.PushBack(j)
	p.mu.Unlock()
	p.idle.Notify()
}

// QueueJobs implements [Scheduler]. The whole batch becomes visible to
// workers under a single lock acquisition, in the order given.
func (p *ThreadPool) QueueJobs(jobs []*Job) {
	if len(jobs) == 0 {
		return
	}
	for _, j := range jobs {
		j.AddRef()
	}
	p.mu.Lock()
	for _, j := range jobs {
		p.queue.PushBack(j)
	}
	p.mu.Unlock()
	for i := 0; i < len(jobs); i++ {
		p.idle.Notify()
	}
}

// FreeJob implements [Scheduler]. The job's storage is recycled for a later
// CreateJob. The reference count gates this call, so a job can only arrive
// here once it has no handles and is out of the queue.
func (p *ThreadPool) FreeJob(j *Job) {
	// Drop the payload so captured values become collectable while the
	// struct sits in the pool.
	j.function = nil
	p.jobPool.Put(j)
}

// CreateBarrier implements [System].
func (p *ThreadPool) CreateBarrier() Barrier {
	return newSyncBarrier()
}

// DestroyBarrier implements [System].
func (p *ThreadPool) DestroyBarrier(b Barrier) {
	sb, ok := b.(*syncBarrier)
	if !ok {
		panic("barrier was not created by this system")
	}
	sb.destroy()
}

// WaitForJobs implements [System].
func (p *ThreadPool) WaitForJobs(b Barrier) {
	sb, ok := b.(*syncBarrier)
	if !ok {
		panic("barrier was not created by this system")
	}
	sb.wait()
}

func (p *ThreadPool) popJob() (*Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.queue.Len() == 0 {
		return nil, false
	}
	return p.queue.PopFront(), true
}

func (p *ThreadPool) worker() {
	defer p.wg.Done()
	for {
		if j, ok := p.popJob(); ok {
			j.Execute()
			j.Release()
			continue
		}

		w := p.idle.Add()
		// A job may have been queued between the failed pop and adding the
		// waiter, in which case its notification may already have found no
		// one to wake. Re-check before parking.
		if j, ok := p.popJob(); ok {
			w.Close()
			j.Execute()
			j.Release()
			continue
		}
		select {
		case <-w.Done():
		case <-p.done:
			w.Close()
			return
		}
	}
}
