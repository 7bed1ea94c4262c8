package taskpool_test

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	tp "github.com/Andrej220/go-utils/taskpool"
)

func newTestPool(t *testing.T, workers int, qt tp.QueueType) *tp.Pool {
	t.Helper()

	p, err := tp.NewFromOptions(tp.Options{
		Workers: workers,
		QT:      qt,
	})
	require.NoError(t, err)
	return p
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		runtime.Gosched()
	}
	t.Fatal("condition not satisfied before timeout")
}

func waitUntilB(b *testing.B, timeout time.Duration, cond func() bool) {
	b.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		runtime.Gosched()
	}
	b.Fatal("condition not satisfied before timeout")
}

func percentile(samples []int64, q float64) time.Duration {
	pos := int(float64(len(samples)-1) * q)
	return time.Duration(samples[pos])
}

func getenvInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// spyQueue wraps a Queue and tracks how many tasks of each priority
// are still queued. Counts are updated under the same lock as the
// inner Push/Poll.
type spyQueue struct {
	mu     sync.Mutex
	inner  tp.Queue
	queued map[tp.Priority]int
}

func newSpyQueue(inner tp.Queue) *spyQueue {
	return &spyQueue{inner: inner, queued: make(map[tp.Priority]int)}
}

func (s *spyQueue) Push(t *tp.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Push(t)
	s.queued[t.Priority()]++
}

func (s *spyQueue) Poll() (*tp.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.inner.Poll()
	if ok {
		s.queued[t.Priority()]--
	}
	return t, ok
}

func (s *spyQueue) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Len()
}

func (s *spyQueue) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.queued)
	return s.inner.Clear()
}

func (s *spyQueue) Queued(p tp.Priority) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queued[p]
}
