package metrics

import "context"

// Collector is the interface for metrics collection.
// Implementations include the Prometheus-backed collector and the no-op
// collector (default build without the 'metrics' tag).
type Collector interface {
	RecordNodeExecution(ctx context.Context, node string, status string, durationMs int64)
	RecordError(ctx context.Context, node string, errorType string)
}
