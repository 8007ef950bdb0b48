// Package vm provides a VictoriaMetrics-based implementation of the
// MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with the default prefix "shardgrid":
//
//	collector := vm.New()
//	reg := shardgrid.NewRegistry(source,
//	    shardgrid.WithMetrics(collector),
//	)
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// Or use WritePrometheus to write metrics to a custom writer.
//
// # Metrics Provided
//
// Reload:
//   - {prefix}_reload_total - Counter of registry reloads
//   - {prefix}_reload_errors_total - Counter of failed reloads
//   - {prefix}_reload_duration_seconds - Histogram of reload latencies
//   - {prefix}_shard_count - Gauge of distinct shards after the last reload
//
// Lookups:
//   - {prefix}_lookup_total - Counter of registry lookups
//   - {prefix}_lookup_misses_total - Counter of lookup misses
//   - {prefix}_retry_reloads_total - Counter of reloads triggered by retry lookups
//
// Placement:
//   - {prefix}_placement_total - Counter of placement decisions
//   - {prefix}_placement_errors_total - Counter of aborted placements
//   - {prefix}_probe_duration_seconds - Histogram of status probe latencies
//
// # Performance Notes
//
// This implementation pre-creates all metrics at initialization time
// using the NewXXX pattern (instead of GetOrCreateXXX) for optimal
// performance in hot paths, as recommended by the VictoriaMetrics
// documentation.
package vm
