// Package shardgrid provides a concurrent cache of cluster shard topology
// and a load-aware placement policy for choosing a destination shard.
//
// The Registry is a two-index cache (shard identifiers and replica set
// names) refreshed on demand from an authoritative config source. The
// policy package selects a placement target by live-probing every
// candidate shard and folding to the least-loaded one.
//
// # Basic Usage
//
//	source := topology.NewLocal()
//	source.SetShards([]types.RawShardDescriptor{
//	    {Name: "shard0", Host: "db0:27018"},
//	    {Name: "shard1", Host: "rs1/db1a:27018,db1b:27018"},
//	})
//
//	reg := shardgrid.NewRegistry(source,
//	    shardgrid.WithLogger(logger),
//	    shardgrid.WithResolver(monitor),
//	)
//	if err := reg.Reload(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	shard, ok, err := reg.Find("rs1/db1a:27018,db1b:27018")
//
//	picker := policy.NewPicker(reg, prober)
//	target, err := picker.Pick(ctx, types.EmptyShard)
//
// # Consistency Model
//
// The cache refreshes on demand only: a miss during FindWithRetry or
// FindCopy triggers exactly one reload, and an administrative Reload can
// be issued directly. There is no push-based invalidation from the source.
// A second miss after a reload is a ConsistencyError, signalling a caller
// or data-model bug rather than transient staleness.
//
// # Concurrency
//
// All operations are synchronous and safe for concurrent use. No lock is
// ever held across a remote call: config source fetches and status probes
// execute outside the registry lock, and their results are installed under
// the lock only after completion. Callers always receive value copies;
// mutating the registry never invalidates a value already returned.
package shardgrid
