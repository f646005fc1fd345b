// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package wake provides a queue of parked goroutines that notifications can
// be handed to, first come first served. It is used to park idle workers
// without spinning and without losing wakeups.
package wake

import (
	"sync"

	"github.com/gammazero/deque"
)

// A Queue hands notifications to parked waiters in FIFO order.
type Queue struct {
	mu    sync.Mutex
	queue deque.Deque[Waiter]
}

// Add registers a new waiter with an empty notification channel of buffer
// length one. It never blocks.
func (q *Queue) Add() Waiter {
	w := Waiter{
		q:          q,
		notifyChan: make(chan struct{}, 1),
	}
	q.mu.Lock()
	q.queue.PushBack(w)
	q.mu.Unlock()
	return w
}

func (q *Queue) popFront() (Waiter, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.queue.Len() == 0 {
		return Waiter{}, false
	}
	return q.queue.PopFront(), true
}

// Notify signals the waiter at the front of the queue, if any.
func (q *Queue) Notify() {
	for {
		w, ok := q.popFront()
		if !ok {
			return
		}
		select {
		case w.notifyChan <- struct{}{}:
			// The notification was sent.
			return
		default:
			// The channel was full, meaning that the waiter was closed.
			// Loop and try the next one.
		}
	}
}
