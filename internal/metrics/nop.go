// Package metrics provides internal metrics utilities for shardgrid.
package metrics

import "github.com/arloliu/shardgrid/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is
// configured, avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// ----------------------
// Reload
// ----------------------

// IncReloadTotal discards the metric.
func (m *NopMetrics) IncReloadTotal() {}

// IncReloadError discards the metric.
func (m *NopMetrics) IncReloadError() {}

// ObserveReloadDuration discards the metric.
func (m *NopMetrics) ObserveReloadDuration(_ float64) {}

// SetShardCount discards the metric.
func (m *NopMetrics) SetShardCount(_ int) {}

// ----------------------
// Lookups
// ----------------------

// IncLookupTotal discards the metric.
func (m *NopMetrics) IncLookupTotal() {}

// IncLookupMiss discards the metric.
func (m *NopMetrics) IncLookupMiss() {}

// IncRetryReload discards the metric.
func (m *NopMetrics) IncRetryReload() {}

// ----------------------
// Placement
// ----------------------

// IncPlacementTotal discards the metric.
func (m *NopMetrics) IncPlacementTotal() {}

// IncPlacementError discards the metric.
func (m *NopMetrics) IncPlacementError() {}

// ObserveProbeDuration discards the metric.
func (m *NopMetrics) ObserveProbeDuration(_ float64) {}
