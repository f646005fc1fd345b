// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph

// A Handle is a reference-counted handle to a [Job]. The job is reclaimed as
// soon as no handles refer to it and it is no longer in the system's queue
// or being executed.
//
// The zero value is an empty handle that refers to no job. Each handle
// minted by [System.CreateJob], [NewHandle], or [Handle.Clone] owns exactly
// one reference and must be released exactly once with [Handle.Release].
// Copying a Handle value does not take a reference; use Clone when two
// owners need the job independently.
type Handle struct {
	job *Job
}

// NewHandle wraps a job in a handle, taking over the reference minted by the
// job's creator without incrementing the count.
//
// Only to be used by System implementations.
func NewHandle(j *Job) Handle {
	return Handle{job: j}
}

// IsValid reports whether the handle refers to a job.
func (h Handle) IsValid() bool {
	return h.job != nil
}

// IsDone reports whether the handle refers to a job that finished executing.
func (h Handle) IsDone() bool {
	return h.job != nil && h.job.IsDone()
}

// Job returns the underlying job, or nil for an empty handle.
//
// Only to be used by System and Barrier implementations.
func (h Handle) Job() *Job {
	return h.job
}

// Clone returns a new handle to the same job, incrementing its reference
// count. The clone must be released independently.
func (h Handle) Clone() Handle {
	if h.job != nil {
		h.job.AddRef()
	}
	return h
}

// Release gives up the handle's reference and empties the handle. Releasing
// the last reference reclaims the job. Calling Release on an empty handle
// has no effect.
func (h *Handle) Release() {
	if h.job != nil {
		j := h.job
		h.job = nil
		j.Release()
	}
}

// AddDependency adds n to the job's dependency counter. See
// [Job.AddDependency] for the precondition.
func (h Handle) AddDependency(n int) {
	h.job.AddDependency(n)
}

// RemoveDependency removes n from the job's dependency counter. The job is
// queued when the counter reaches zero, after which it is no longer valid to
// call AddDependency or RemoveDependency.
func (h Handle) RemoveDependency(n int) {
	h.job.RemoveDependencyAndQueue(n)
}

// RemoveDependencies removes n dependencies from every job in the batch,
// handing all jobs that become runnable to the scheduler's queue in a single
// call, in the order they appear in handles. This is cheaper than removing
// one handle at a time under heavy fan-out, since the queue is locked once
// per batch instead of once per job.
//
// All handles must be valid and refer to jobs created by the same scheduler.
func RemoveDependencies(handles []Handle, n int) {
	if len(handles) == 0 {
		return
	}
	scheduler := handles[0].job.scheduler

	// Collect the jobs whose counters hit zero so they can share one queue
	// submission.
	runnable := make([]*Job, 0, len(handles))
	for _, h := range handles {
		j := h.job
		if j.scheduler != scheduler {
			panic("handles belong to different schedulers")
		}
		if j.RemoveDependency(n) {
			runnable = append(runnable, j)
		}
	}
	if len(runnable) > 0 {
		scheduler.QueueJobs(runnable)
	}
}
