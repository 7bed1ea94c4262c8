// Package taskpool provides a fixed-size worker pool that executes
// submitted functions concurrently, optionally ordered by priority.
//
// Design goals
//
// The package is designed around the following principles:
//
//   - A fixed set of workers, created once and never resized
//   - Submissions that never block on worker availability
//   - Idle workers that park instead of spinning
//   - An explicit, observable lifecycle
//
// Architecture overview
//
// The pool is composed of three loosely coupled layers:
//
//   1. Queueing (Queue)
//      Responsible for ordering pending tasks. Two strategies are built
//      in: FifoQueue (submission order) and PriorityQueue (priority 10
//      first, ties in submission order). Any Queue implementation may be
//      supplied through Options.Queue.
//
//   2. Execution (workers)
//      Each worker polls the shared queue and runs tasks one at a time on
//      its own goroutine. When the queue is empty a worker parks on a
//      condition variable and is woken by Submit, Stop or Terminate.
//
//   3. Lifecycle (Pool)
//      The pool owns the running flag. Workers only read it.
//
// Lifecycle
//
//	running ──Stop──▶ draining ──queue empty──▶ stopped
//	   │                                          ▲
//	   └──────────────Terminate───────────────────┘
//
// Stop rejects new submissions with ErrPoolTerminating and lets queued
// tasks finish. Terminate additionally discards queued tasks and cancels
// Pool.Context; a task that is already running is never aborted, but it
// can watch that context to return early. WaitForCompletion blocks until
// every worker has stopped and fails with ErrPoolStillRunning when called
// on a running pool. Once the last worker exits Pool.Context is cancelled
// as well. A Task is accepted at most once; submitting it again fails
// with ErrTaskReused.
//
// Error handling
//
// The pool distinguishes between two classes of errors:
//
//   - Lifecycle errors: ErrInvalidPriority, ErrTaskReused,
//     ErrPoolTerminating and ErrPoolStillRunning are returned
//     synchronously to the caller
//   - Execution faults: a panic inside a task is recovered into an
//     *ExecutionFault and handled according to Options.FaultPolicy
//
// Faults are logged, counted by the MetricsPolicy and passed to
// Options.OnFault. With FaultStopWorker the worker exits and the fault is
// returned from WaitForCompletion; with FaultRestartWorker the worker
// re-enters its loop after a backoff delay. The delay doubles on
// consecutive faults and starts over once the worker completes a task.
// Stop ends a pending delay so the worker can drain the queue.
//
// CPU pinning
//
// Options.LockOSThread gives every worker its own OS thread. On Linux,
// Options.PinWorkers additionally restricts each worker thread to a
// single CPU.
//
// Basic usage:
//
//	p, err := taskpool.New(4)
//	if err != nil {
//		return err
//	}
//	for _, item := range items {
//		item := item
//		if err := p.Submit(func() { process(item) }); err != nil {
//			return err
//		}
//	}
//	return p.Shutdown()
package taskpool
