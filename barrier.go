// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph

// A Barrier keeps track of a number of jobs and allows waiting until they
// are all completed. Jobs can keep being added while another goroutine is
// waiting on the barrier.
//
// Barriers are created and destroyed through a [System]; see
// [System.CreateBarrier] and [System.WaitForJobs].
type Barrier interface {
	// AddJob adds a job to the barrier. A job that already finished is not
	// counted as outstanding and requires no further waiting.
	AddJob(h Handle)

	// AddJobs adds a batch of jobs to the barrier.
	AddJobs(handles []Handle)

	// OnJobFinished is called by a job to mark that it is finished. It runs
	// after the job is observably done, so state inspected from the
	// callback sees the terminal state.
	//
	// Only to be called by Job.
	OnJobFinished(j *Job)
}
