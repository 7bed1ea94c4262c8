package taskpool

import (
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"
)

// WorkerState is the lifecycle state of a single worker.
//
//	Active → Draining → Stopped
type WorkerState uint32

const (
	WorkerActive WorkerState = iota
	WorkerDraining
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerActive:
		return "active"
	case WorkerDraining:
		return "draining"
	case WorkerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// worker is one goroutine bound to the pool's queue and running flag.
// It never writes the running flag.
type worker struct {
	id    int
	pool  *Pool
	state atomic.Uint32
}

func newWorker(id int, p *Pool) *worker {
	return &worker{id: id, pool: p}
}

func (w *worker) State() WorkerState { return WorkerState(w.state.Load()) }

// start launches the worker goroutine. It is called once per slot.
func (w *worker) start() {
	p := w.pool
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer w.state.Store(uint32(WorkerStopped))

		if p.opts.LockOSThread {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
		}
		if p.opts.PinWorkers {
			if err := PinToCPU(w.id % runtime.NumCPU()); err != nil {
				lg.FromContext(p.ctx).Warn("cpu pinning failed",
					lg.Int("worker", w.id),
					lg.Any("error", err),
				)
			}
		}
		w.supervise()
	}()
}

// supervise runs the worker loop and applies the fault policy whenever the
// loop returns with a fault. The restart backoff starts over once the loop
// has completed a task.
func (w *worker) supervise() {
	p := w.pool
	logger := lg.FromContext(p.ctx).With(lg.Int("worker", w.id))
	bo := restartBackoff(p.opts.Restart)

	for {
		fault, executed := w.loop()
		if fault == nil {
			return
		}
		if p.opts.FaultPolicy != FaultRestartWorker {
			logger.Error("worker stopped by task fault", lg.String("task_id", fault.TaskID.String()))
			p.recordTerminal(fault)
			return
		}
		if executed > 0 {
			bo.Reset(p.opts.Restart.Initial)
		}

		delay := bo.Next()
		logger.Warn("worker faulted; restarting after backoff",
			lg.String("task_id", fault.TaskID.String()),
			lg.String("sleep", delay.String()),
		)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-p.stopped:
			// draining: go straight back to the queue
			timer.Stop()
		case <-p.ctx.Done():
			timer.Stop()
			return
		}
		p.metrics.IncRestarted()
	}
}

// loop pulls and executes tasks until the pool is stopped and the queue is
// empty, the pool is interrupted, or a task faults under a policy other
// than FaultContinue. It also returns how many tasks completed.
func (w *worker) loop() (*ExecutionFault, int) {
	p := w.pool
	executed := 0
	for {
		if p.interrupted() {
			return nil, executed
		}
		t, ok := p.queue.Poll()
		if !ok {
			if !p.waitForWork() {
				return nil, executed
			}
			continue
		}
		if !p.running.Load() {
			w.state.Store(uint32(WorkerDraining))
		}
		if fault := w.execute(t); fault != nil {
			p.reportFault(fault)
			if p.opts.FaultPolicy != FaultContinue {
				return fault, executed
			}
			continue
		}
		executed++
		p.metrics.IncExecuted()
	}
}

// execute runs t and converts a panic into an *ExecutionFault.
func (w *worker) execute(t *Task) (fault *ExecutionFault) {
	defer func() {
		if r := recover(); r != nil {
			fault = &ExecutionFault{
				TaskID:   t.ID(),
				Priority: t.Priority(),
				Worker:   w.id,
				Value:    r,
				Stack:    debug.Stack(),
			}
		}
	}()
	t.Execute()
	return nil
}

// restartBackoff returns a jittered, doubling restart delay bounded by rp.
func restartBackoff(rp RestartPolicy) *boff.Backoff {
	return boff.New(rp.Initial, rp.Max, time.Now().UnixNano())
}
