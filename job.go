// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph

import (
	"sync/atomic"
)

// A JobFunc is the main function of a job. Any inputs are expected to be
// captured via lexical closure. A JobFunc is invoked at most once, on
// whichever goroutine claims the job, and must be thread-safe with respect
// to any captured state it shares with other jobs.
//
// If a JobFunc panics, the panic unwinds through the worker that claimed the
// job and the whole program terminates as per the Go specification. Recover
// inside the function itself if that behavior is not acceptable.
type JobFunc func()

// Sentinel values of the dependency counter. Normal counts occupy the low
// range; these two mark the execution states that the counter multiplexes
// onto the same atomic word.
const (
	// ExecutingState is the value of the dependency counter while the job's
	// function is running.
	ExecutingState uint32 = 0xe0e0e0e0

	// DoneState is the value of the dependency counter once the job's
	// function has returned.
	DoneState uint32 = 0xd0d0d0d0
)

// barrierRef boxes a [Barrier] interface value so the barrier slot can be a
// single atomic pointer word.
type barrierRef struct {
	barrier Barrier
}

// barrierDone marks a frozen barrier slot. Once a job's slot holds this
// value it never changes again, and [Job.SetBarrier] fails.
var barrierDone = &barrierRef{}

// A Job is a single schedulable unit of work. It tracks how many
// predecessors it is still waiting on, how many [Handle] values refer to it,
// and at most one [Barrier] to notify when it finishes.
//
// The dependency counter only ever moves from a positive count down toward
// zero, then to [ExecutingState], then to [DoneState]. It never returns to a
// numeric count. All three shared fields are maintained exclusively with
// atomic read-modify-write operations.
//
// Application code should manipulate jobs through [Handle] values; the
// exported methods on Job exist for [System] and [Barrier] implementations.
type Job struct {
	name      string
	color     Color
	scheduler Scheduler
	function  JobFunc
	barrier   atomic.Pointer[barrierRef]
	refCount  atomic.Uint32
	numDeps   atomic.Uint32
}

// NewJob creates a job with the given diagnostic name and color, owning
// scheduler, function, and initial dependency count. The returned job
// carries one reference, which the caller hands over to a [Handle] via
// [NewHandle]. NewJob does not queue the job; a [System.CreateJob]
// implementation must queue it itself when numDependencies is zero.
//
// Only to be used by System implementations.
func NewJob(name string, color Color, scheduler Scheduler, function JobFunc, numDependencies int) *Job {
	j := &Job{}
	j.init(name, color, scheduler, function, numDependencies)
	return j
}

// init prepares a fresh or recycled job. The creator mints the first
// reference.
func (j *Job) init(name string, color Color, scheduler Scheduler, function JobFunc, numDependencies int) {
	j.name = name
	j.color = color
	j.scheduler = scheduler
	j.function = function
	j.barrier.Store(nil)
	j.refCount.Store(1)
	j.numDeps.Store(uint32(numDependencies))
}

// Name returns the job's diagnostic name.
func (j *Job) Name() string {
	return j.name
}

// Color returns the job's diagnostic color.
func (j *Job) Color() Color {
	return j.color
}

// AddRef registers an additional reference to the job.
//
// Only to be used by Handle and System implementations.
func (j *Job) AddRef() {
	j.refCount.Add(1)
}

// Release removes a reference to the job. When the last reference is
// released the job is handed to its scheduler's [Scheduler.FreeJob] for
// reclamation. A queued job always carries the queue's own reference, so a
// job can never be freed while a worker might still pick it up.
//
// Only to be used by Handle and System implementations.
func (j *Job) Release() {
	if j.refCount.Add(^uint32(0)) == 0 {
		j.scheduler.FreeJob(j)
	}
}

// AddDependency adds n to the dependency counter.
//
// Precondition: the caller must hold a reference and must know that the job
// cannot start before the add lands, i.e. no existing dependency can reach
// zero concurrently. Adding to a job that has already started is a contract
// violation that this method only detects after the fact, when the counter
// already holds a sentinel.
func (j *Job) AddDependency(n int) {
	before := j.numDeps.Add(uint32(n)) - uint32(n)
	if before >= DoneState {
		panic("job already executing or done")
	}
}

// RemoveDependency subtracts n from the dependency counter and reports
// whether the counter reached exactly zero, meaning the caller must queue
// the job. Under concurrent removal by multiple predecessors exactly one
// call observes the transition to zero: the check is against the value
// returned by the atomic subtract, never a separate read, so there is no
// lost-update window.
//
// Most callers want [Job.RemoveDependencyAndQueue] instead; this split form
// exists so that a batch of removals can share one queue submission.
func (j *Job) RemoveDependency(n int) bool {
	after := j.numDeps.Add(-uint32(n))
	if after >= DoneState {
		panic("job dependency counter underflow or job already started")
	}
	return after == 0
}

// RemoveDependencyAndQueue subtracts n from the dependency counter and, if
// the counter reached zero, hands the job to the scheduler's queue. After
// the counter has reached zero it is no longer valid to call the dependency
// methods.
func (j *Job) RemoveDependencyAndQueue(n int) {
	if j.RemoveDependency(n) {
		j.scheduler.QueueJob(j)
	}
}

// SetBarrier attaches a barrier to the job so that it will be notified when
// the job finishes. Returns false if the job already finished, in which case
// the barrier must not count the job as outstanding. That is an expected
// race under normal operation, not a fault.
//
// A job can belong to at most one barrier ever; attaching a second one is a
// contract violation and panics.
func (j *Job) SetBarrier(b Barrier) bool {
	if j.barrier.CompareAndSwap(nil, &barrierRef{barrier: b}) {
		return true
	}
	if j.barrier.Load() != barrierDone {
		panic("job already belongs to a barrier")
	}
	return false
}

// Execute attempts to run the job's function. Only the caller that
// transitions the dependency counter from zero to [ExecutingState] runs the
// function; any other caller gets the state it observed back and performs no
// work, which makes Execute safe to invoke more than once for the same job.
//
// Returns the resulting state of the job: [DoneState] after a successful
// run, or the observed counter value when the claim failed.
func (j *Job) Execute() uint32 {
	// Only a counter of exactly zero can be claimed.
	if !j.numDeps.CompareAndSwap(0, ExecutingState) {
		return j.numDeps.Load()
	}

	j.function()

	// Freeze the barrier slot before publishing the done state so that a
	// concurrent SetBarrier either lands in time to be notified below or
	// observably fails. The slot may be written between the load and the
	// swap, hence the retry loop.
	var ref *barrierRef
	for {
		ref = j.barrier.Load()
		if j.barrier.CompareAndSwap(ref, barrierDone) {
			break
		}
	}

	// Publish the done state before the barrier callback runs, so that any
	// observer triggered by the callback sees the job as done.
	if !j.numDeps.CompareAndSwap(ExecutingState, DoneState) {
		panic("job state changed while executing")
	}

	if ref != nil {
		ref.barrier.OnJobFinished(j)
	}
	return DoneState
}

// CanBeExecuted reports whether the dependency counter is exactly zero, i.e.
// the job is runnable but not yet claimed.
func (j *Job) CanBeExecuted() bool {
	return j.numDeps.Load() == 0
}

// IsDone reports whether the job's function has finished.
func (j *Job) IsDone() bool {
	return j.numDeps.Load() == DoneState
}
