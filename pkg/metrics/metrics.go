package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector provides Prometheus metrics collection for pipeline nodes
type PrometheusCollector struct {
	executionsTotal   *prometheus.CounterVec
	executionDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	registry          *prometheus.Registry
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()

	executionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrapeline_node_executions_total",
			Help: "Total number of node executions by node and status",
		},
		[]string{"node", "status"},
	)

	executionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scrapeline_node_duration_seconds",
			Help:    "Duration of node executions by node",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"node"},
	)

	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrapeline_node_errors_total",
			Help: "Total number of node errors by node and error type",
		},
		[]string{"node", "error_type"},
	)

	registry.MustRegister(executionsTotal)
	registry.MustRegister(executionDuration)
	registry.MustRegister(errorsTotal)

	return &PrometheusCollector{
		executionsTotal:   executionsTotal,
		executionDuration: executionDuration,
		errorsTotal:       errorsTotal,
		registry:          registry,
	}
}

// RecordNodeExecution records the completion of a node execution
func (m *PrometheusCollector) RecordNodeExecution(ctx context.Context, node string, status string, durationMs int64) {
	m.executionsTotal.WithLabelValues(node, status).Inc()
	m.executionDuration.WithLabelValues(node).Observe(float64(durationMs) / 1000.0)
}

// RecordError records an error occurrence
func (m *PrometheusCollector) RecordError(ctx context.Context, node string, errorType string) {
	m.errorsTotal.WithLabelValues(node, errorType).Inc()
}

// Registry returns the Prometheus registry for HTTP exposure
func (m *PrometheusCollector) Registry() *prometheus.Registry {
	return m.registry
}
