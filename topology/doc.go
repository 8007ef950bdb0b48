// Package topology provides authoritative config source implementations
// for the shardgrid registry.
//
// Three sources are included:
//
//   - Local: in-memory and programmable; intended for tests and demos.
//   - File: a YAML shard list read on every ListShards call.
//   - NATS: a JSON shard list document in a NATS JetStream KV bucket,
//     with a watch channel and a polling fallback.
//
// Sources that change behind the registry's back emit ChangeNotice events
// on their Watch channel. The registry never subscribes itself: refreshing
// stays an explicit caller decision (typically a Reload call driven by the
// notice), preserving the refresh-on-demand consistency model.
//
// # NATS layout
//
// Operations teams PUT a ShardListDoc as JSON under the configured key:
//
//	{
//	  "shards": [
//	    {"name": "shard0", "host": "db0:27018"},
//	    {"name": "shard1", "host": "rs1/db1a:27018,db1b:27018", "draining": true}
//	  ]
//	}
package topology
