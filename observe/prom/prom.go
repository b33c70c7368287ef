// Package prom provides a Prometheus-backed implementation of the
// task.Observer interface.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics observes pool lifecycle events and exports them as Prometheus
// collectors: started/finished counters, an in-flight gauge and a task
// duration histogram.
type Metrics struct {
	started  prometheus.Counter
	finished prometheus.Counter
	active   prometheus.Gauge
	duration prometheus.Histogram
}

// New registers the collectors with reg and returns the observer. Pass
// prometheus.DefaultRegisterer to use the default registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		started: f.NewCounter(prometheus.CounterOpts{
			Namespace: "task",
			Subsystem: "pool",
			Name:      "started_total",
			Help:      "Tasks that began executing on the pool.",
		}),
		finished: f.NewCounter(prometheus.CounterOpts{
			Namespace: "task",
			Subsystem: "pool",
			Name:      "finished_total",
			Help:      "Tasks that finished executing on the pool.",
		}),
		active: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "task",
			Subsystem: "pool",
			Name:      "active",
			Help:      "Tasks currently executing on the pool.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "task",
			Subsystem: "pool",
			Name:      "duration_seconds",
			Help:      "Wall-clock task execution time.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// TaskStarted records a task beginning execution.
func (m *Metrics) TaskStarted() {
	m.started.Inc()
	m.active.Inc()
}

// TaskFinished records a task completing after dur.
func (m *Metrics) TaskFinished(dur time.Duration) {
	m.finished.Inc()
	m.active.Dec()
	m.duration.Observe(dur.Seconds())
}
