//go:build !metrics

package metrics

import "context"

// NoopCollector is a no-op implementation when metrics are disabled.
// This file is only compiled when the 'metrics' build tag is NOT present.
type NoopCollector struct{}

// NewNoopCollector creates a no-op collector
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

// RecordNodeExecution does nothing when metrics are disabled
func (n *NoopCollector) RecordNodeExecution(ctx context.Context, node string, status string, durationMs int64) {
}

// RecordError does nothing when metrics are disabled
func (n *NoopCollector) RecordError(ctx context.Context, node string, errorType string) {
}
