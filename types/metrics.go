package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations should be thread-safe as methods may be called
// concurrently. Use contrib/metrics/vm for a VictoriaMetrics-backed
// implementation with Prometheus-compatible metric names.
type MetricsCollector interface {
	// ----------------------
	// Reload
	// ----------------------

	// IncReloadTotal increments the registry reload counter.
	IncReloadTotal()

	// IncReloadError increments the failed-reload counter.
	IncReloadError()

	// ObserveReloadDuration records a reload duration in seconds.
	ObserveReloadDuration(seconds float64)

	// SetShardCount sets the gauge of distinct shards after a reload.
	SetShardCount(count int)

	// ----------------------
	// Lookups
	// ----------------------

	// IncLookupTotal increments the lookup counter.
	IncLookupTotal()

	// IncLookupMiss increments the lookup miss counter.
	IncLookupMiss()

	// IncRetryReload increments the counter of reloads triggered by a
	// lookup miss during FindWithRetry/FindCopy.
	IncRetryReload()

	// ----------------------
	// Placement
	// ----------------------

	// IncPlacementTotal increments the placement decision counter.
	IncPlacementTotal()

	// IncPlacementError increments the failed-placement counter.
	IncPlacementError()

	// ObserveProbeDuration records a shard status probe duration in seconds.
	ObserveProbeDuration(seconds float64)
}
