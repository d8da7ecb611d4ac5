// Package metrics exports reconciliation and recompute metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"trolley/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	passes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trolley",
			Subsystem: "reconcile",
			Name:      "passes_total",
			Help:      "Total reconcile passes.",
		},
		[]string{"mode", "success"},
	)
	requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trolley",
			Subsystem: "reconcile",
			Name:      "requests_total",
			Help:      "Change requests processed, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	passDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "trolley",
			Subsystem: "reconcile",
			Name:      "pass_duration_seconds",
			Help:      "Reconcile pass duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
	recomputes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trolley",
			Subsystem: "recompute",
			Name:      "total",
			Help:      "Total recompute units by status.",
		},
		[]string{"status"},
	)
	recomputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "trolley",
			Subsystem: "recompute",
			Name:      "duration_seconds",
			Help:      "Recompute duration in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)
)

// RegisterMetrics registers all collectors with the default registry. Safe to call repeatedly.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(passes, requests, passDuration, recomputes, recomputeDuration)
	})
}

// RecordPass records one reconcile pass and its per-request outcomes.
func RecordPass(mode string, summary reconcile.Summary, duration time.Duration, success bool) {
	RegisterMetrics()
	passes.WithLabelValues(mode, strconv.FormatBool(success)).Inc()
	passDuration.WithLabelValues(mode).Observe(duration.Seconds())

	add := func(kind reconcile.RequestKind, outcome string, n int) {
		if n > 0 {
			requests.WithLabelValues(string(kind), outcome).Add(float64(n))
		}
	}
	add(reconcile.KindRemoval, "applied", summary.Removed)
	add(reconcile.KindRemoval, "missed", summary.MissedRemovals)
	add(reconcile.KindAddition, "applied", summary.Added)
	add(reconcile.KindEdit, "effective", summary.Effective)
	add(reconcile.KindEdit, "noop", summary.NoOp)
	add(reconcile.KindEdit, "dropped", summary.DroppedEdits)
}

// RecordRecompute records one finished recompute unit.
func RecordRecompute(status string, duration time.Duration) {
	RegisterMetrics()
	recomputes.WithLabelValues(status).Inc()
	recomputeDuration.Observe(duration.Seconds())
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}
