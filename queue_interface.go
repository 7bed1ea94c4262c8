package taskpool

// Queue holds pending tasks shared by the pool and its workers.
//
// Implementations must be safe for concurrent producers and consumers
// without external locking. The pool may hold its own lifecycle mutex
// while calling Push, Len and Clear, so implementations must not call
// back into the pool.
//
// The interface is small so that ordering strategies (FIFO, priority)
// can be swapped without touching the worker loop.
type Queue interface {
	// Push adds a task. It never blocks and never fails for a non-nil task.
	Push(t *Task)

	// Poll removes and returns the next task. It returns immediately with
	// (nil, false) when the queue is empty.
	Poll() (*Task, bool)

	// Len returns the number of tasks currently waiting.
	Len() int

	// Clear discards every queued task and returns how many were dropped.
	Clear() int
}
