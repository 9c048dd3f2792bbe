// Package metrics provides Prometheus metrics instrumentation for the controller.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector provides metrics recording interface.
// This allows components to record metrics without direct prometheus dependency.
type Collector interface {
	// Reconcile metrics
	RecordReconcile(ctx context.Context, outcome string, duration time.Duration)
	RecordPodHealth(ctx context.Context, health string)
	RecordPodRecycle(ctx context.Context)

	// Cleanup metrics
	RecordCleanup(ctx context.Context, outcome string)

	// Cluster API metrics
	RecordAPIError(ctx context.Context, operation, errorType string)
}

// prometheusCollector implements Collector using Prometheus metrics.
type prometheusCollector struct {
	reconcileDuration *prometheus.HistogramVec
	podHealthTotal    *prometheus.CounterVec
	podRecyclesTotal  prometheus.Counter
	cleanupsTotal     *prometheus.CounterVec
	apiErrorsTotal    *prometheus.CounterVec
}

// NewCollector creates a new Prometheus metrics collector and registers metrics.
func NewCollector(reg prometheus.Registerer) Collector {
	c := &prometheusCollector{
		reconcileDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webhooksink_reconcile_duration_seconds",
				Help:    "Duration of WebhookSink reconcile passes",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"outcome"},
		),
		podHealthTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooksink_pod_health_total",
				Help: "Pod health evaluations by outcome",
			},
			[]string{"health"},
		),
		podRecyclesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "webhooksink_pod_recycles_total",
				Help: "Total stale terminated pods deleted for recreation",
			},
		),
		cleanupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooksink_cleanups_total",
				Help: "Total cleanup invocations for deleted sinks",
			},
			[]string{"outcome"},
		),
		apiErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooksink_api_errors_total",
				Help: "Total cluster API errors by operation and type",
			},
			[]string{"operation", "error_type"},
		),
	}

	reg.MustRegister(
		c.reconcileDuration,
		c.podHealthTotal,
		c.podRecyclesTotal,
		c.cleanupsTotal,
		c.apiErrorsTotal,
	)

	return c
}

// RecordReconcile records the duration and outcome of a reconcile pass.
func (c *prometheusCollector) RecordReconcile(_ context.Context, outcome string, duration time.Duration) {
	c.reconcileDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordPodHealth records a pod health evaluation outcome.
func (c *prometheusCollector) RecordPodHealth(_ context.Context, health string) {
	c.podHealthTotal.WithLabelValues(health).Inc()
}

// RecordPodRecycle records the deletion of a stale terminated pod.
func (c *prometheusCollector) RecordPodRecycle(_ context.Context) {
	c.podRecyclesTotal.Inc()
}

// RecordCleanup records a cleanup invocation outcome.
func (c *prometheusCollector) RecordCleanup(_ context.Context, outcome string) {
	c.cleanupsTotal.WithLabelValues(outcome).Inc()
}

// RecordAPIError records a cluster API error.
func (c *prometheusCollector) RecordAPIError(_ context.Context, operation, errorType string) {
	c.apiErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// NoopCollector is a no-op implementation of Collector for testing.
type NoopCollector struct{}

// NewNoopCollector creates a new no-op collector.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

// RecordReconcile is a no-op.
func (c *NoopCollector) RecordReconcile(_ context.Context, _ string, _ time.Duration) {}

// RecordPodHealth is a no-op.
func (c *NoopCollector) RecordPodHealth(_ context.Context, _ string) {}

// RecordPodRecycle is a no-op.
func (c *NoopCollector) RecordPodRecycle(_ context.Context) {}

// RecordCleanup is a no-op.
func (c *NoopCollector) RecordCleanup(_ context.Context, _ string) {}

// RecordAPIError is a no-op.
func (c *NoopCollector) RecordAPIError(_ context.Context, _, _ string) {}
