// Package queue provides an unbounded, blocking FIFO shared between one or
// more producers and a consumer goroutine.
//
// Push never blocks on capacity and never drops entries. Pop blocks until an
// entry is available. Both run under a single mutex; waiting uses a
// sync.Cond bound to that mutex and re-checks emptiness after every wakeup.
package queue

import (
	"sync"

	list "github.com/bahlo/generic-list-go"
)

// Queue is an unbounded FIFO with blocking Pop.
// The zero value is not usable; create queues with New.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	items    *list.List[T]
}

// New creates an empty Queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{items: list.New[T]()}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push appends v to the tail and wakes one waiting consumer.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items.PushBack(v)
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// Pop removes and returns the head, blocking while the queue is empty.
func (q *Queue[T]) Pop() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Len() == 0 {
		q.notEmpty.Wait()
	}
	return q.items.Remove(q.items.Front())
}

// TryPop removes and returns the head without blocking.
// ok is false when the queue is empty.
func (q *Queue[T]) TryPop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	front := q.items.Front()
	if front == nil {
		return v, false
	}
	return q.items.Remove(front), true
}

// Len returns the number of queued entries.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}
