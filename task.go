package taskpool

import (
	"cmp"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Priority is the scheduling weight of a task. Larger values run first.
type Priority uint8

const (
	MinPriority     Priority = 1
	DefaultPriority Priority = 5
	MaxPriority     Priority = 10
)

// Valid reports whether p lies in [MinPriority, MaxPriority].
func (p Priority) Valid() bool { return p >= MinPriority && p <= MaxPriority }

// taskSeq orders tasks of equal priority by construction time.
var taskSeq atomic.Uint64

// Task pairs a unit of work with its priority.
//
// A Task is owned by the queue until it is polled and by the executing
// worker afterwards. It must be executed at most once.
type Task struct {
	id       uuid.UUID
	work     func()
	priority Priority
	seq      uint64

	// submitted is set by the first accepted SubmitTask.
	submitted atomic.Bool
}

// NewTask validates priority and wraps work into a Task.
func NewTask(work func(), priority int) (*Task, error) {
	if work == nil {
		return nil, ErrNilFunc
	}
	if priority < int(MinPriority) || priority > int(MaxPriority) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPriority, priority)
	}
	return &Task{
		id:       uuid.New(),
		work:     work,
		priority: Priority(priority),
		seq:      taskSeq.Add(1),
	}, nil
}

func (t *Task) ID() uuid.UUID      { return t.id }
func (t *Task) Priority() Priority { return t.priority }

// Execute runs the wrapped work on the calling goroutine. A panic raised by
// the work is not recovered here.
func (t *Task) Execute() {
	t.work()
}

// Compare orders tasks for the priority queue. It returns a negative number
// when a must be dequeued before b: higher priority first, then the task
// created earlier.
func Compare(a, b *Task) int {
	if c := cmp.Compare(b.priority, a.priority); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}
