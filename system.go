// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph

// A Scheduler is the side of a [System] that jobs themselves interact with.
// Implementations must provide thread-safe queueing; this package calls
// these methods from arbitrary goroutines.
type Scheduler interface {
	// QueueJob accepts a job whose dependency counter is (or just became)
	// zero and arranges for [Job.Execute] to eventually be called from some
	// worker context.
	QueueJob(j *Job)

	// QueueJobs accepts a batch of jobs that became runnable together. The
	// jobs must be made available to workers in the order given, since for
	// jobs of otherwise-equal readiness this determines observed start
	// order.
	QueueJobs(jobs []*Job)

	// FreeJob reclaims the storage of a job whose reference count reached
	// zero. It is called exactly once per job.
	FreeJob(j *Job)
}

// A System allows units of work to be scheduled across multiple goroutines,
// with dependencies between the jobs so that they form a graph. See the
// package documentation for the usage pattern.
type System interface {
	Scheduler

	// MaxConcurrency returns the maximum number of jobs that can execute
	// concurrently. Callers use it to size batches of work.
	MaxConcurrency() int

	// CreateJob creates a new job. The job is queued immediately if
	// numDependencies is zero; otherwise it starts when RemoveDependency
	// calls bring the counter to zero. The returned handle owns one
	// reference and must be released.
	CreateJob(name string, color Color, function JobFunc, numDependencies int) Handle

	// CreateBarrier creates a new barrier, used to wait on jobs.
	CreateBarrier() Barrier

	// DestroyBarrier destroys a barrier that is no longer used. The barrier
	// must have no outstanding jobs at this point.
	DestroyBarrier(b Barrier)

	// WaitForJobs blocks until every job added to the barrier has finished,
	// including jobs added while the wait is in progress. The calling
	// goroutine executes runnable jobs from the barrier instead of idling.
	// Only one goroutine may wait on a given barrier at a time.
	WaitForJobs(b Barrier)
}
