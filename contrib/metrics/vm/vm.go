package vm

import (
	"io"
	"net/http"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"

	"github.com/arloliu/shardgrid/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "shardgrid"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead
// of creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All metrics are pre-created at initialization time using the NewXXX
// pattern for optimal performance in hot paths.
type Collector struct {
	prefix string
	set    *metrics.Set

	// Reload metrics
	reloadTotal    *metrics.Counter
	reloadErrors   *metrics.Counter
	reloadDuration *metrics.Histogram
	shardCount     atomic.Int64

	// Lookup metrics
	lookupTotal  *metrics.Counter
	lookupMisses *metrics.Counter
	retryReloads *metrics.Counter

	// Placement metrics
	placementTotal  *metrics.Counter
	placementErrors *metrics.Counter
	probeDuration   *metrics.Histogram
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally.
// All metrics are pre-created at initialization for optimal performance.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	reg := shardgrid.NewRegistry(source,
//	    shardgrid.WithMetrics(collector),
//	)
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "shardgrid",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	// Reload metrics
	c.reloadTotal = c.set.NewCounter(p + `_reload_total`)
	c.reloadErrors = c.set.NewCounter(p + `_reload_errors_total`)
	c.reloadDuration = c.set.NewHistogram(p + `_reload_duration_seconds`)
	c.set.NewGauge(p+`_shard_count`, func() float64 {
		return float64(c.shardCount.Load())
	})

	// Lookup metrics
	c.lookupTotal = c.set.NewCounter(p + `_lookup_total`)
	c.lookupMisses = c.set.NewCounter(p + `_lookup_misses_total`)
	c.retryReloads = c.set.NewCounter(p + `_retry_reloads_total`)

	// Placement metrics
	c.placementTotal = c.set.NewCounter(p + `_placement_total`)
	c.placementErrors = c.set.NewCounter(p + `_placement_errors_total`)
	c.probeDuration = c.set.NewHistogram(p + `_probe_duration_seconds`)
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// ----------------------
// Reload
// ----------------------

// IncReloadTotal increments the registry reload counter.
func (c *Collector) IncReloadTotal() {
	c.reloadTotal.Inc()
}

// IncReloadError increments the failed-reload counter.
func (c *Collector) IncReloadError() {
	c.reloadErrors.Inc()
}

// ObserveReloadDuration records a reload duration in seconds.
func (c *Collector) ObserveReloadDuration(seconds float64) {
	c.reloadDuration.Update(seconds)
}

// SetShardCount sets the gauge of distinct shards after a reload.
func (c *Collector) SetShardCount(count int) {
	c.shardCount.Store(int64(count))
}

// ----------------------
// Lookups
// ----------------------

// IncLookupTotal increments the lookup counter.
func (c *Collector) IncLookupTotal() {
	c.lookupTotal.Inc()
}

// IncLookupMiss increments the lookup miss counter.
func (c *Collector) IncLookupMiss() {
	c.lookupMisses.Inc()
}

// IncRetryReload increments the counter of reloads triggered by a lookup
// miss during FindWithRetry/FindCopy.
func (c *Collector) IncRetryReload() {
	c.retryReloads.Inc()
}

// ----------------------
// Placement
// ----------------------

// IncPlacementTotal increments the placement decision counter.
func (c *Collector) IncPlacementTotal() {
	c.placementTotal.Inc()
}

// IncPlacementError increments the failed-placement counter.
func (c *Collector) IncPlacementError() {
	c.placementErrors.Inc()
}

// ObserveProbeDuration records a shard status probe duration in seconds.
func (c *Collector) ObserveProbeDuration(seconds float64) {
	c.probeDuration.Update(seconds)
}
