package taskpool

import (
	"container/heap"
	"sync"
)

const (
	prioCap = 2048
)

// prioQueue implements a priority-based task queue.
// Tasks with a numerically larger priority are polled first; tasks of
// equal priority come out in the order they were created.
type prioQueue struct {
	mu sync.Mutex
	h  taskHeap
}

// newPrioQueue creates an empty priority queue initialized as a max-heap.
func newPrioQueue() *prioQueue {
	q := &prioQueue{h: make(taskHeap, 0, prioCap)} // preallocate
	heap.Init(&q.h)
	return q
}

// Push inserts a task respecting the Compare ordering.
func (q *prioQueue) Push(t *Task) {
	q.mu.Lock()
	heap.Push(&q.h, t)
	q.mu.Unlock()
}

// Poll removes and returns the task with the highest priority.
// If the queue is empty, Poll returns nil and false.
func (q *prioQueue) Poll() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(*Task), true
}

// Len returns the number of tasks currently stored in the queue.
func (q *prioQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.h.Len()
}

// Clear drops every queued task.
func (q *prioQueue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.h)
	clear(q.h)
	q.h = q.h[:0]
	return n
}
