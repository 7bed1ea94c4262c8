package taskpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Pool is a fixed-size worker pool.
//
// A Pool starts in the running state. Stop moves it to draining: no new
// submissions, queued tasks still run. Terminate drops queued tasks and
// interrupts the workers. Either way the workers eventually stop and
// WaitForCompletion returns.
type Pool struct {
	opts    Options
	queue   Queue
	metrics MetricsPolicy

	// running is written only by Stop and Terminate, under mu.
	running    atomic.Bool
	terminated bool

	// mu serializes submissions against lifecycle transitions and backs
	// cond, on which idle workers park.
	mu   sync.Mutex
	cond *sync.Cond

	// stopped is closed by the first Stop or Terminate.
	stopped chan struct{}

	// ctx is cancelled by Terminate and serves as the interrupt signal.
	// It is also cancelled once every worker has exited.
	ctx         context.Context
	cancel      context.CancelFunc
	stopWatcher func() bool

	workers []*worker
	wg      sync.WaitGroup
	done    chan struct{}

	faultsMu sync.Mutex
	terminal []error
}

// New starts a pool with n workers and the FIFO queue.
func New(n int) (*Pool, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, n)
	}
	return NewFromOptions(Options{Workers: n})
}

// NewDefault starts a pool with one worker per logical CPU.
func NewDefault() (*Pool, error) {
	return NewFromOptions(Options{})
}

// NewFromOptions starts a pool configured by opts. It returns as soon as
// the workers are launched.
func NewFromOptions(opts Options) (*Pool, error) {
	opts.FillDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(opts.Ctx)
	p := &Pool{
		opts:    opts,
		queue:   makeQueue(opts),
		metrics: opts.Metrics,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	p.running.Store(true)

	p.workers = make([]*worker, opts.Workers)
	for i := range p.workers {
		p.workers[i] = newWorker(i, p)
	}
	for _, w := range p.workers {
		w.start()
	}

	// a cancelled parent context terminates the pool
	p.stopWatcher = context.AfterFunc(opts.Ctx, p.Terminate)

	go func() {
		p.wg.Wait()
		p.stopWatcher()
		p.cancel()
		close(p.done)
	}()

	queueName := opts.QT.String()
	if opts.Queue != nil {
		queueName = fmt.Sprintf("%T", opts.Queue)
	}
	lg.FromContext(ctx).Info("pool started",
		lg.String("pool", opts.Name),
		lg.Int("workers", opts.Workers),
		lg.String("queue", queueName),
		lg.String("fault_policy", opts.FaultPolicy.String()),
	)
	return p, nil
}

// Submit enqueues work with DefaultPriority.
func (p *Pool) Submit(work func()) error {
	return p.SubmitPriority(work, int(DefaultPriority))
}

// SubmitPriority enqueues work with the given priority. The priority only
// affects ordering when the pool uses PriorityQueue.
func (p *Pool) SubmitPriority(work func(), priority int) error {
	t, err := NewTask(work, priority)
	if err != nil {
		return err
	}
	return p.SubmitTask(t)
}

// SubmitTask enqueues a task built with NewTask. It never blocks on
// worker availability. A task is accepted at most once; resubmitting it
// fails with ErrTaskReused.
func (p *Pool) SubmitTask(t *Task) error {
	if t == nil || t.work == nil {
		return ErrNilFunc
	}
	if !t.priority.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, t.priority)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.Load() {
		return ErrPoolTerminating
	}
	if !t.submitted.CompareAndSwap(false, true) {
		return ErrTaskReused
	}
	p.queue.Push(t)
	p.metrics.IncSubmitted()
	p.cond.Signal()
	return nil
}

// Stop rejects further submissions and lets the workers drain the queue.
// It does not interrupt running tasks. Calling Stop more than once has no
// additional effect.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.CompareAndSwap(true, false) {
		close(p.stopped)
		lg.FromContext(p.ctx).Info("pool stopping",
			lg.String("pool", p.opts.Name),
			lg.Int("queued", p.queue.Len()),
		)
	}
	p.cond.Broadcast()
}

// Terminate rejects further submissions, discards every queued task and
// cancels Context so that tasks watching it can return early. Tasks that
// are already executing are not aborted.
func (p *Pool) Terminate() {
	p.mu.Lock()
	first := !p.terminated
	p.terminated = true
	if p.running.Swap(false) {
		close(p.stopped)
	}
	p.cancel()
	n := p.queue.Clear()
	p.cond.Broadcast()
	p.mu.Unlock()

	p.metrics.AddDiscarded(n)
	if first {
		lg.FromContext(p.ctx).Info("pool terminated",
			lg.String("pool", p.opts.Name),
			lg.Int("discarded", n),
		)
	}
}

// WaitForCompletion blocks until every worker has stopped. It fails with
// ErrPoolStillRunning if neither Stop nor Terminate was called.
//
// Under FaultStopWorker the faults that ended workers are returned joined.
func (p *Pool) WaitForCompletion() error {
	return p.WaitForCompletionContext(context.Background())
}

// WaitForCompletionContext is WaitForCompletion bounded by ctx. When ctx
// ends first its error is returned and tasks may still be running.
func (p *Pool) WaitForCompletionContext(ctx context.Context) error {
	if p.running.Load() {
		return ErrPoolStillRunning
	}
	select {
	case <-p.done:
		return p.terminalErr()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown is Stop followed by WaitForCompletion.
func (p *Pool) Shutdown() error {
	p.Stop()
	return p.WaitForCompletion()
}

// ShutdownContext is Stop followed by WaitForCompletionContext.
func (p *Pool) ShutdownContext(ctx context.Context) error {
	p.Stop()
	return p.WaitForCompletionContext(ctx)
}

// Running reports whether the pool still accepts submissions.
func (p *Pool) Running() bool { return p.running.Load() }

// Workers returns the fixed number of workers.
func (p *Pool) Workers() int { return len(p.workers) }

// QueueLength returns the number of tasks waiting to be polled.
func (p *Pool) QueueLength() int { return p.queue.Len() }

// Context is cancelled by Terminate and, after a graceful Stop, once
// every worker has exited. Tasks may close over it to wake up from long
// waits when the pool is torn down.
func (p *Pool) Context() context.Context { return p.ctx }

// WorkerStates returns a snapshot of every worker's state, indexed by
// worker id.
func (p *Pool) WorkerStates() []WorkerState {
	states := make([]WorkerState, len(p.workers))
	for i, w := range p.workers {
		states[i] = w.State()
	}
	return states
}

func (p *Pool) interrupted() bool { return p.ctx.Err() != nil }

// waitForWork parks the calling worker until the queue is non-empty or the
// pool leaves the running state. It reports whether the worker should
// poll again.
func (p *Pool) waitForWork() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.queue.Len() == 0 && p.running.Load() {
		p.cond.Wait()
	}
	return p.queue.Len() > 0 && !p.interrupted()
}

func (p *Pool) terminalErr() error {
	p.faultsMu.Lock()
	defer p.faultsMu.Unlock()
	return errors.Join(p.terminal...)
}
