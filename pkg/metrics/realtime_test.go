package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRealtimeMetricsExports(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRealtimeMetrics(reg)

	metrics.ConnOpened()
	metrics.ConnOpened()
	metrics.ConnClosed()
	metrics.IncPublished("new-order")
	metrics.IncDelivered("new-order")
	metrics.IncDropped("new-order")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	gauge, err := findMetric(mfs, "realtime_connections", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := gauge.GetGauge().GetValue(); got != 1 {
		t.Fatalf("expected 1 open connection, got %f", got)
	}

	for _, name := range []string{"realtime_events_published", "realtime_events_delivered", "realtime_events_dropped"} {
		if got := counterValue(t, mfs, name, map[string]string{"event": "new-order"}); got != 1 {
			t.Fatalf("expected %s=1, got %f", name, got)
		}
	}
}

func TestRealtimeMetricsNilRegistererIsSafe(t *testing.T) {
	metrics := NewRealtimeMetrics(nil)
	metrics.ConnOpened()
	metrics.ConnClosed()
	metrics.IncPublished("")
	metrics.IncDelivered("x")
	metrics.IncDropped("x")
}
