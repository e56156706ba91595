// SPDX-License-Identifier: MIT
// Package mtqueue is a generic multi-producer/single-consumer FIFO queue,
// ported from the original tool's MTQueue<T>. It backs the pipeline's
// worker-thread event channel (spec §5): blocking Push/Pop, non-blocking
// TryPop, WaitEmpty, and Clear.
package mtqueue

import "sync"

// Queue is a blocking FIFO queue safe for concurrent producers and a
// single consumer.
type Queue[T any] struct {
	mu       sync.Mutex
	items    []T
	notEmpty *sync.Cond
	empty    *sync.Cond
}

// New returns an empty Queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.notEmpty = sync.NewCond(&q.mu)
	q.empty = sync.NewCond(&q.mu)
	return q
}

// Push appends item to the back of the queue and wakes any blocked Pop.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
	if len(q.items) == 1 {
		q.notEmpty.Broadcast()
	}
}

// TryPop removes and returns the front item without blocking. ok is false
// if the queue was empty.
func (q *Queue[T]) TryPop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return item, false
	}
	item = q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.empty.Broadcast()
	}
	return item, true
}

// Pop removes and returns the front item, blocking until one is available.
func (q *Queue[T]) Pop() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.notEmpty.Wait()
	}
	item := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.empty.Broadcast()
	}
	return item
}

// Clear empties the queue without notifying waiters that it has drained.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// WaitEmpty blocks until the queue has no pending items.
func (q *Queue[T]) WaitEmpty() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) != 0 {
		q.empty.Wait()
	}
}

// Len returns the number of items currently queued.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty reports whether the queue currently holds no items.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}
