// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package jobgraph provides a low-level scheduler primitive for units of
// work (jobs) with explicit dependencies between them, so that the jobs form
// a graph. Jobs are executed concurrently, in dependency order, by a pool of
// workers behind the [System] interface.
//
// Each [Job] carries a dependency counter. A job becomes runnable the moment
// its counter reaches zero, at which point it is handed to the system's
// queue exactly once. Predecessors release their successors by calling
// [Handle.RemoveDependency] when they finish, typically from inside their
// own payload. A [Barrier] aggregates completion of a set of jobs and lets a
// single goroutine block until all of them are done, helping to execute
// runnable jobs rather than idling.
//
// All per-job state (dependency counter, reference count, barrier slot) is
// maintained with single-word atomic operations; no locks are taken on the
// job itself. This keeps the hot path cheap but places some responsibility
// on callers: most misuse, such as adding a dependency to a job that has
// already started, is a documented precondition rather than a detected
// error. See the individual operations for their contracts.
//
// The typical pattern:
//
//	system := jobgraph.NewThreadPool(runtime.NumCPU())
//	defer system.Stop()
//
//	second := system.CreateJob("second", jobgraph.ColorRed, func() { ... }, 1)
//	first := system.CreateJob("first", jobgraph.ColorGreen, func() {
//		second.RemoveDependency(1)
//	}, 0)
//
//	barrier := system.CreateBarrier()
//	barrier.AddJob(first)
//	barrier.AddJob(second)
//	system.WaitForJobs(barrier)
//
//	system.DestroyBarrier(barrier)
//	first.Release()
//	second.Release()
package jobgraph
