package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCronMetricsCountRunsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronMetrics(reg)

	m.ObserveRun("sweep", 250*time.Millisecond, nil)
	m.ObserveRun("sweep", 100*time.Millisecond, errors.New("boom"))
	m.IncLockSkip()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	if got := counterValue(t, mfs, "cron_job_runs_total", map[string]string{"job": "sweep", "status": "ok"}); got != 1 {
		t.Fatalf("expected one ok run, got %f", got)
	}
	if got := counterValue(t, mfs, "cron_job_runs_total", map[string]string{"job": "sweep", "status": "error"}); got != 1 {
		t.Fatalf("expected one failed run, got %f", got)
	}
	if got := histogramSum(t, mfs, "cron_job_duration_seconds", map[string]string{"job": "sweep"}); got <= 0 {
		t.Fatalf("expected positive duration sum, got %f", got)
	}
	if got := counterValue(t, mfs, "cron_lock_skips_total", nil); got != 1 {
		t.Fatalf("expected one lock skip, got %f", got)
	}
}

func TestCronMetricsUnnamedJobLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronMetrics(reg)
	m.ObserveRun("", time.Second, nil)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := counterValue(t, mfs, "cron_job_runs_total", map[string]string{"job": "unknown", "status": "ok"}); got != 1 {
		t.Fatalf("expected unnamed job under unknown, got %f", got)
	}
}

func TestCronMetricsNilSafe(t *testing.T) {
	var m *CronMetrics
	m.ObserveRun("noop", time.Second, nil)
	m.IncLockSkip()

	inert := NewCronMetrics(nil)
	inert.ObserveRun("noop", time.Second, errors.New("boom"))
	inert.IncLockSkip()
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	metric, err := findMetric(mfs, name, labels)
	if err != nil {
		t.Fatal(err)
	}
	return metric.GetCounter().GetValue()
}

func histogramSum(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	metric, err := findMetric(mfs, name, labels)
	if err != nil {
		t.Fatal(err)
	}
	return metric.GetHistogram().GetSampleSum()
}

func findMetric(mfs []*dto.MetricFamily, name string, labels map[string]string) (*dto.Metric, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, metric := range mf.GetMetric() {
			for k, v := range labels {
				if !hasLabel(metric.GetLabel(), k, v) {
					continue next
				}
			}
			return metric, nil
		}
		return nil, fmt.Errorf("metric %q has no series matching %v", name, labels)
	}
	return nil, fmt.Errorf("metric %q not found", name)
}

func hasLabel(pairs []*dto.LabelPair, name, value string) bool {
	for _, pair := range pairs {
		if pair.GetName() == name && pair.GetValue() == value {
			return true
		}
	}
	return false
}
