package taskpool

// makeQueue builds the queue selected by the options. A caller-supplied
// Queue wins over QT.
func makeQueue(opts Options) Queue {
	if opts.Queue != nil {
		return opts.Queue
	}
	switch opts.QT {
	case FifoQueue:
		return newFifoQueue(opts.FifoCapacity)
	case PriorityQueue:
		return newPrioQueue()
	default:
		return newFifoQueue(opts.FifoCapacity)
	}
}

// NewFifoQueue returns the built-in FIFO queue, for callers that wrap it
// and pass the result as Options.Queue.
func NewFifoQueue(capacity int) Queue { return newFifoQueue(capacity) }

// NewPriorityQueue returns the built-in priority queue.
func NewPriorityQueue() Queue { return newPrioQueue() }
