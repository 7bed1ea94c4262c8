// fifo_queue.go
package taskpool

import "sync"

const (
	initialFifoCapacity = 1024
)

// fifoQueue is a first-in–first-out task queue backed by a circular
// buffer that doubles when full. Tasks are returned strictly in the
// order they were pushed. No priorities, no reordering.
type fifoQueue struct {
	mu         sync.Mutex
	buf        []*Task // circular buffer
	head, tail int     // read/write indices
	size       int     // number of tasks currently buffered
	capacity   int
}

// newFifoQueue creates a FIFO queue with the given initial capacity.
func newFifoQueue(capacity int) *fifoQueue {
	if capacity <= 0 {
		capacity = initialFifoCapacity
	}
	return &fifoQueue{
		buf:      make([]*Task, capacity),
		capacity: capacity,
	}
}

// Len returns the number of tasks currently waiting in the queue.
func (q *fifoQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Push inserts a task at the tail, growing the buffer if needed.
func (q *fifoQueue) Push(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == q.capacity {
		q.grow()
	}
	q.buf[q.tail] = t
	q.tail++
	if q.tail == q.capacity {
		q.tail = 0
	}
	q.size++
}

// Poll removes and returns the oldest task.
func (q *fifoQueue) Poll() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		return nil, false
	}
	t := q.buf[q.head]
	q.buf[q.head] = nil
	q.head++
	if q.head == q.capacity {
		q.head = 0
	}
	q.size--
	return t, true
}

// Clear drops all buffered tasks. Capacity is kept.
func (q *fifoQueue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.size
	clear(q.buf)
	q.head, q.tail, q.size = 0, 0, 0
	return n
}

// grow doubles the buffer and unwraps the ring so head lands at index 0.
// Caller holds q.mu.
func (q *fifoQueue) grow() {
	newCap := q.capacity * 2
	buf := make([]*Task, newCap)

	if q.head < q.tail {
		copy(buf, q.buf[q.head:q.tail])
	} else {
		n := copy(buf, q.buf[q.head:])
		copy(buf[n:], q.buf[:q.tail])
	}

	q.buf = buf
	q.head = 0
	q.tail = q.size
	q.capacity = newCap
}
