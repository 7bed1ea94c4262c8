package taskpool

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// cachePad is used to prevent false sharing between hot fields.
type cachePad = cpu.CacheLinePad

// MetricsPolicy defines hooks used by the pool to report task activity.
//
// Implementations must be safe for concurrent use.
// All methods are expected to be lightweight and non-blocking.
type MetricsPolicy interface {
	// IncSubmitted increments the accepted submissions counter.
	IncSubmitted()

	// IncExecuted increments the counter of tasks that ran to completion.
	IncExecuted()

	// IncFaulted increments the counter of tasks that panicked.
	IncFaulted()

	// IncRestarted counts worker restarts under FaultRestartWorker.
	IncRestarted()

	// AddDiscarded adds the number of queued tasks dropped by Terminate.
	AddDiscarded(n int)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
//
// Writes are optimized for hot paths.
// Reads are intended for cold-path observation.
type AtomicMetrics struct {
	submitted atomic.Uint64
	_         cachePad

	executed atomic.Uint64
	_        cachePad

	faulted   atomic.Uint64
	restarted atomic.Uint64
	discarded atomic.Uint64
}

func (m *AtomicMetrics) Submitted() uint64 { return m.submitted.Load() }
func (m *AtomicMetrics) Executed() uint64  { return m.executed.Load() }
func (m *AtomicMetrics) Faulted() uint64   { return m.faulted.Load() }
func (m *AtomicMetrics) Restarted() uint64 { return m.restarted.Load() }
func (m *AtomicMetrics) Discarded() uint64 { return m.discarded.Load() }

func (m *AtomicMetrics) IncSubmitted() { m.submitted.Add(1) }
func (m *AtomicMetrics) IncExecuted()  { m.executed.Add(1) }
func (m *AtomicMetrics) IncFaulted()   { m.faulted.Add(1) }
func (m *AtomicMetrics) IncRestarted() { m.restarted.Add(1) }

func (m *AtomicMetrics) AddDiscarded(n int) {
	if n > 0 {
		m.discarded.Add(uint64(n))
	}
}

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards
// all metric updates.
type NoopMetrics struct{}

func (m *NoopMetrics) IncSubmitted()      {}
func (m *NoopMetrics) IncExecuted()       {}
func (m *NoopMetrics) IncFaulted()        {}
func (m *NoopMetrics) IncRestarted()      {}
func (m *NoopMetrics) AddDiscarded(n int) {}
