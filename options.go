package taskpool

import (
	"context"
	"fmt"
	"runtime"
)

// QueueType defines the ordering strategy of the shared queue.
//
// The type is configured via Options.QT when creating a new Pool.
type QueueType int

const (
	// FifoQueue polls tasks in submission order.
	FifoQueue QueueType = iota

	// PriorityQueue polls tasks with the highest priority first.
	PriorityQueue
)

func (qt QueueType) String() string {
	switch qt {
	case FifoQueue:
		return "FifoQueue"
	case PriorityQueue:
		return "PriorityQueue"
	default:
		return "Unknown"
	}
}

// Options configure a Pool.
//
// All zero values are replaced with sensible defaults in FillDefaults.
type Options struct {
	// Workers is the fixed number of workers. Zero means runtime.NumCPU().
	Workers int

	QT QueueType

	// Queue overrides QT with a caller-provided implementation.
	Queue Queue

	// FifoCapacity is the initial ring size of the FIFO queue.
	FifoCapacity int

	FaultPolicy FaultPolicy
	Restart     RestartPolicy

	// OnFault is called from the worker goroutine for every recovered
	// task panic. It must not block for long.
	OnFault func(*ExecutionFault)

	Metrics MetricsPolicy

	// LockOSThread wires every worker goroutine to its own OS thread.
	LockOSThread bool

	// PinWorkers additionally pins each worker thread to one CPU (Linux only).
	// It implies LockOSThread.
	PinWorkers bool

	// Ctx is the parent of the pool context and carries the logger.
	Ctx context.Context

	// Name tags log lines of this pool.
	Name string
}

func (o *Options) FillDefaults() {
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.FifoCapacity <= 0 {
		o.FifoCapacity = initialFifoCapacity
	}
	rp := GetDefaultRP()
	if o.Restart.Initial <= 0 {
		o.Restart.Initial = rp.Initial
	}
	if o.Restart.Max <= 0 {
		o.Restart.Max = rp.Max
	}
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Name == "" {
		o.Name = "taskpool"
	}
	if o.PinWorkers {
		o.LockOSThread = true
	}
}

// Validate reports configuration errors that FillDefaults cannot repair.
func (o Options) Validate() error {
	if o.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, o.Workers)
	}
	if o.QT != FifoQueue && o.QT != PriorityQueue && o.Queue == nil {
		return fmt.Errorf("taskpool: unknown queue type %d", o.QT)
	}
	if o.Restart.Max < o.Restart.Initial {
		return fmt.Errorf("taskpool: restart max %s is below initial %s", o.Restart.Max, o.Restart.Initial)
	}
	return nil
}
