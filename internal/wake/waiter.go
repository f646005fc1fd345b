// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wake

// A Waiter is one parked goroutine's slot in a [Queue].
//
// The zero value is a waiter that will never be signaled: [Waiter.Done]
// returns a nil channel and [Waiter.Close] panics. [Queue.Add] returns a
// live waiter. Receiving from Done consumes a notification delivered by
// [Queue.Notify]; a waiter that gives up without having received must call
// Close so that a notification aimed at it is passed on to another waiter
// instead of being lost.
//
// Waiter values may be safely copied and are designed to be passed by value.
type Waiter struct {
	q          *Queue
	notifyChan chan struct{}
}

// Done returns the channel a notification is delivered on.
func (w Waiter) Done() <-chan struct{} {
	return w.notifyChan
}

// Close abandons the waiter. If a notification already arrived, it is handed
// to the next waiter in the queue; otherwise the channel buffer is filled so
// that [Queue.Notify] skips this waiter when it reaches it.
func (w Waiter) Close() {
	select {
	case w.notifyChan <- struct{}{}:
		// Filled notifyChan so that if this waiter is still in the queue,
		// Notify knows it is no longer listening.
	default:
		// notifyChan was full, meaning that this waiter was notified but
		// never received it. Pass the notification on.
		w.q.Notify()
	}
}
