package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsStartUpstream(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	done := m.StartUpstream()
	if got := testutil.ToFloat64(m.inFlight); got != 1 {
		t.Fatalf("expected 1 in-flight call, got %v", got)
	}
	done(OutcomeSuccess)
	m.StartUpstream()(OutcomeError)
	m.StartUpstream()(OutcomeError)

	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Fatalf("expected 0 in-flight calls, got %v", got)
	}
	if got := testutil.ToFloat64(m.predictions.WithLabelValues(OutcomeSuccess)); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.predictions.WithLabelValues(OutcomeError)); got != 2 {
		t.Fatalf("expected 2 errors, got %v", got)
	}
	if n := testutil.CollectAndCount(m.upstreamDuration); n != 2 {
		t.Fatalf("expected 2 histogram series, got %d", n)
	}
}

func TestMetricsReuseRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	second, err := New(reg)
	if err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}

	second.StartUpstream()(OutcomeIncomplete)
	if got := testutil.ToFloat64(first.predictions.WithLabelValues(OutcomeIncomplete)); got != 1 {
		t.Fatalf("expected shared counter, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.StartUpstream()(OutcomeSuccess)
}
