// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	jobgraph "github.com/xaoctech/jobgraph-go"
)

func TestHandleEmpty(t *testing.T) {
	chk := require.New(t)

	var h jobgraph.Handle
	chk.False(h.IsValid())
	chk.False(h.IsDone())
	h.Release() // no-op
	h.Release()
}

func TestHandleReleaseReclaimsOnce(t *testing.T) {
	chk := require.New(t)
	sched := &recordingScheduler{}

	j := jobgraph.NewJob("shared", jobgraph.ColorGreen, sched, func() {}, 0)
	h := jobgraph.NewHandle(j)
	chk.Equal(jobgraph.DoneState, j.Execute())

	const clones = 100
	handles := make([]jobgraph.Handle, clones)
	for i := range handles {
		handles[i] = h.Clone()
	}

	// Release every handle from its own goroutine; the job must be handed
	// to FreeJob exactly once no matter the order.
	var wg sync.WaitGroup
	for i := range handles {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			handles[i].Release()
		}()
	}
	wg.Wait()
	chk.Equal(0, sched.freedCount())

	h.Release()
	chk.Equal(1, sched.freedCount())
	chk.Same(j, sched.freed[0])
	chk.False(h.IsValid())
}

func TestHandleCloneKeepsQueuedJobAlive(t *testing.T) {
	chk := require.New(t)
	sched := &recordingScheduler{}

	// A job that has not run is kept alive by its handles even though it is
	// runnable.
	j := jobgraph.NewJob("alive", jobgraph.ColorBlue, sched, func() {}, 0)
	h := jobgraph.NewHandle(j)
	clone := h.Clone()

	h.Release()
	chk.Equal(0, sched.freedCount())
	chk.True(clone.IsValid())
	chk.False(clone.IsDone())

	clone.Release()
	chk.Equal(1, sched.freedCount())
}

func TestHandleRemoveDependencyQueues(t *testing.T) {
	chk := require.New(t)
	sched := &recordingScheduler{}

	j := jobgraph.NewJob("gated", jobgraph.ColorRed, sched, func() {}, 2)
	h := jobgraph.NewHandle(j)

	h.RemoveDependency(1)
	chk.Equal(0, sched.queueCount())
	h.RemoveDependency(1)
	chk.Equal(1, sched.queueCount())
	chk.Same(j, sched.queued[0])

	h.Release()
}

func TestRemoveDependenciesBatch(t *testing.T) {
	chk := require.New(t)
	sched := &recordingScheduler{}

	// Ten jobs one removal away from runnable, interleaved with two that
	// still have a dependency left afterwards.
	var handles []jobgraph.Handle
	var ready []*jobgraph.Job
	for i := 0; i < 12; i++ {
		deps := 1
		if i%6 == 5 {
			deps = 2
		}
		j := jobgraph.NewJob("batch", jobgraph.DistinctColor(i), sched, func() {}, deps)
		handles = append(handles, jobgraph.NewHandle(j))
		if deps == 1 {
			ready = append(ready, j)
		}
	}

	jobgraph.RemoveDependencies(handles, 1)

	// One batch submission, containing exactly the now-runnable jobs in
	// enumeration order.
	chk.Len(sched.batches, 1)
	chk.Equal(ready, sched.batches[0])

	for i := range handles {
		handles[i].Release()
	}
}

func TestRemoveDependenciesEmpty(t *testing.T) {
	jobgraph.RemoveDependencies(nil, 1) // must not panic
}

func TestRemoveDependenciesMixedSchedulersPanics(t *testing.T) {
	chk := require.New(t)

	a := jobgraph.NewHandle(jobgraph.NewJob("a", jobgraph.ColorRed, &recordingScheduler{}, func() {}, 1))
	b := jobgraph.NewHandle(jobgraph.NewJob("b", jobgraph.ColorBlue, &recordingScheduler{}, func() {}, 1))

	chk.Panics(func() {
		jobgraph.RemoveDependencies([]jobgraph.Handle{a, b}, 1)
	})
}
