package taskpool

import "github.com/prometheus/client_golang/prometheus"

// PrometheusMetrics is a MetricsPolicy backed by Prometheus collectors.
type PrometheusMetrics struct {
	TasksSubmitted prometheus.Counter
	TasksExecuted  prometheus.Counter
	TasksFaulted   prometheus.Counter
	TasksDiscarded prometheus.Counter
	WorkerRestarts prometheus.Counter
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
// A nil reg means prometheus.DefaultRegisterer.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace, subsystem string) (*PrometheusMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	m := &PrometheusMetrics{
		TasksSubmitted: counter("tasks_submitted_total", "Total number of tasks accepted by the pool."),
		TasksExecuted:  counter("tasks_executed_total", "Total number of tasks that ran to completion."),
		TasksFaulted:   counter("tasks_faulted_total", "Total number of tasks that panicked."),
		TasksDiscarded: counter("tasks_discarded_total", "Total number of queued tasks dropped by Terminate."),
		WorkerRestarts: counter("worker_restarts_total", "Total number of worker restarts after a fault."),
	}
	for _, c := range []prometheus.Collector{
		m.TasksSubmitted,
		m.TasksExecuted,
		m.TasksFaulted,
		m.TasksDiscarded,
		m.WorkerRestarts,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) IncSubmitted() { m.TasksSubmitted.Inc() }
func (m *PrometheusMetrics) IncExecuted()  { m.TasksExecuted.Inc() }
func (m *PrometheusMetrics) IncFaulted()   { m.TasksFaulted.Inc() }
func (m *PrometheusMetrics) IncRestarted() { m.WorkerRestarts.Inc() }

func (m *PrometheusMetrics) AddDiscarded(n int) {
	if n > 0 {
		m.TasksDiscarded.Add(float64(n))
	}
}
