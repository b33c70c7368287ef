package prom

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCounts(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewPedanticRegistry()
	m := New(reg)

	m.TaskStarted()
	m.TaskStarted()
	m.TaskFinished(5 * time.Millisecond)

	if got := testutil.ToFloat64(m.started); got != 2 {
		t.Fatalf("started: got %v", got)
	}
	if got := testutil.ToFloat64(m.finished); got != 1 {
		t.Fatalf("finished: got %v", got)
	}
	if got := testutil.ToFloat64(m.active); got != 1 {
		t.Fatalf("active: got %v", got)
	}
}

func TestMetricsRegistersCollectors(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewPedanticRegistry()
	New(reg)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"task_pool_started_total",
		"task_pool_finished_total",
		"task_pool_active",
		"task_pool_duration_seconds",
	} {
		if !names[want] {
			t.Fatalf("collector %s not registered; have %v", want, names)
		}
	}
}

func TestMetricsDoubleRegistrationPanics(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewPedanticRegistry()
	New(reg)
	defer func() {
		if recover() == nil {
			t.Fatal("promauto should panic on duplicate registration")
		}
	}()
	New(reg)
}
