package taskpool

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPriority is returned when a task priority is outside
	// [MinPriority, MaxPriority]. The task never reaches the queue.
	ErrInvalidPriority = errors.New("taskpool: priority must be between 1 and 10")

	// ErrNilFunc is returned when a task is built around a nil func.
	ErrNilFunc = errors.New("taskpool: task func is nil")

	// ErrTaskReused is returned when a task that was already accepted by a
	// pool is submitted again.
	ErrTaskReused = errors.New("taskpool: task already submitted")

	// ErrInvalidWorkers is returned by New when the worker count is below one.
	ErrInvalidWorkers = errors.New("taskpool: worker count must be at least 1")

	// ErrPoolTerminating is returned by Submit once Stop or Terminate has
	// been called. It is an expected condition during shutdown.
	ErrPoolTerminating = errors.New("taskpool: pool is terminating")

	// ErrPoolStillRunning is returned by WaitForCompletion when neither
	// Stop nor Terminate has been called.
	ErrPoolStillRunning = errors.New("taskpool: pool not terminated")

	// ErrExecutionFault matches every *ExecutionFault via errors.Is.
	ErrExecutionFault = errors.New("taskpool: task execution fault")
)

// ExecutionFault wraps a panic raised by user work while a worker was
// executing it.
type ExecutionFault struct {
	TaskID   uuid.UUID
	Priority Priority
	Worker   int

	// Value is whatever was passed to panic.
	Value any

	// Stack is the goroutine stack captured at recovery time.
	Stack []byte
}

func (f *ExecutionFault) Error() string {
	return fmt.Sprintf("taskpool: worker %d: task %s (priority %d) panicked: %v",
		f.Worker, f.TaskID, f.Priority, f.Value)
}

// Unwrap exposes the panic value when it is an error.
func (f *ExecutionFault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

func (f *ExecutionFault) Is(target error) bool {
	return target == ErrExecutionFault
}
