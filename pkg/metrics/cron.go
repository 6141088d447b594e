package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CronMetrics tracks scheduled job outcomes and lock contention. All
// methods are safe on a nil receiver or an unregistered instance.
type CronMetrics struct {
	runs      *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	lockSkips prometheus.Counter
}

// NewCronMetrics registers the cron collectors on reg. A nil reg yields
// an inert instance for tests and tools that run without metrics.
func NewCronMetrics(reg prometheus.Registerer) *CronMetrics {
	if reg == nil {
		return &CronMetrics{}
	}

	m := &CronMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cron_job_runs_total",
			Help: "Cron job executions by outcome.",
		}, []string{"job", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cron_job_duration_seconds",
			Help:    "Cron job wall time in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		lockSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cron_lock_skips_total",
			Help: "Cycles skipped because another worker held the lock.",
		}),
	}
	reg.MustRegister(m.runs, m.duration, m.lockSkips)
	return m
}

// ObserveRun records one job execution: its duration and its outcome.
func (m *CronMetrics) ObserveRun(job string, elapsed time.Duration, err error) {
	if m == nil || m.runs == nil {
		return
	}
	if job == "" {
		job = "unknown"
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.runs.WithLabelValues(job, status).Inc()
	m.duration.WithLabelValues(job).Observe(elapsed.Seconds())
}

// IncLockSkip counts a cycle ceded to another worker.
func (m *CronMetrics) IncLockSkip() {
	if m == nil || m.lockSkips == nil {
		return
	}
	m.lockSkips.Inc()
}
