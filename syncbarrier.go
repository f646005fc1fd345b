// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph

import (
	"sync"
	"sync/atomic"

	"github.com/gammazero/deque"
)

// syncBarrier is the waitable [Barrier] implementation used by [ThreadPool].
// It tracks the number of outstanding jobs with an atomic counter and keeps
// a reference to every job added so that the waiting goroutine can execute
// runnable jobs itself instead of idling.
type syncBarrier struct {
	mu      sync.Mutex
	pending deque.Deque[*Job]

	// Count of jobs added to the barrier that have not yet finished.
	outstanding atomic.Int64

	// True while a goroutine is inside wait.
	waiting atomic.Bool

	// wake carries at most one token. Every job finish deposits a token so
	// the waiter re-scans; coalescing is fine because the waiter re-checks
	// everything on each pass.
	wake chan struct{}
}

func newSyncBarrier() *syncBarrier {
	return &syncBarrier{wake: make(chan struct{}, 1)}
}

// AddJob implements [Barrier].
func (b *syncBarrier) AddJob(h Handle) {
	b.addJob(h)
}

// AddJobs implements [Barrier].
func (b *syncBarrier) AddJobs(handles []Handle) {
	for _, h := range handles {
		b.addJob(h)
	}
}

func (b *syncBarrier) addJob(h Handle) {
	j := h.Job()
	if j == nil {
		panic("empty job handle")
	}
	// Count the job before attaching it. The finish notification can fire
	// on a worker the instant SetBarrier succeeds, and counting afterwards
	// would let that decrement drive the counter through zero and release
	// the waiter early.
	b.outstanding.Add(1)
	if !j.SetBarrier(b) {
		// The job finished before it could be attached; there is nothing to
		// wait for. Undo the provisional count and re-wake any parked
		// waiter so it re-checks.
		b.outstanding.Add(-1)
		b.kick()
		return
	}

	// The barrier keeps the job alive until the pending list is swept.
	j.AddRef()
	b.mu.Lock()
	b.pending.PushBack(j)
	b.mu.Unlock()

	// Let the waiter pick up a job that is already runnable.
	if j.CanBeExecuted() {
		b.kick()
	}
}

// OnJobFinished implements [Barrier].
func (b *syncBarrier) OnJobFinished(j *Job) {
	b.outstanding.Add(-1)
	b.kick()
}

func (b *syncBarrier) kick() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// wait blocks the calling goroutine until every job added to the barrier,
// including jobs added while waiting, has finished. Instead of idling it
// executes runnable jobs from the barrier's own pending list; a job that is
// concurrently picked up by a worker is skipped by the claim in
// [Job.Execute].
func (b *syncBarrier) wait() {
	if !b.waiting.CompareAndSwap(false, true) {
		panic("another goroutine is already waiting on this barrier")
	}
	defer b.waiting.Store(false)

	for b.outstanding.Load() > 0 {
		b.helpPending()
		if b.outstanding.Load() == 0 {
			break
		}
		// Block until some job in the barrier finishes, then re-scan. The
		// final finisher always deposits a token after bringing the count
		// to zero, so this cannot miss the last wake.
		<-b.wake
	}

	// Everything added has finished; drop the barrier's references.
	b.sweep()
}

// helpPending drains the pending list once, executing every runnable job and
// releasing every finished one. Jobs that are neither go back for the next
// pass.
func (b *syncBarrier) helpPending() {
	var again []*Job
	for {
		j, ok := b.popPending()
		if !ok {
			break
		}
		if j.CanBeExecuted() {
			j.Execute()
		}
		if j.IsDone() {
			j.Release()
		} else {
			again = append(again, j)
		}
	}
	if len(again) > 0 {
		b.mu.Lock()
		for _, j := range again {
			b.pending.PushBack(j)
		}
		b.mu.Unlock()
	}
}

func (b *syncBarrier) popPending() (*Job, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending.Len() == 0 {
		return nil, false
	}
	return b.pending.PopFront(), true
}

// sweep releases any finished jobs still held by the pending list.
func (b *syncBarrier) sweep() {
	for {
		j, ok := b.popPending()
		if !ok {
			return
		}
		j.Release()
	}
}

// destroy checks that the barrier is empty and drops any references still
// held for jobs that finished without a wait sweeping them up.
func (b *syncBarrier) destroy() {
	if b.outstanding.Load() != 0 {
		panic("barrier destroyed with jobs still outstanding")
	}
	b.sweep()
}
