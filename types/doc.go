// Package types provides shared types and error definitions for shardgrid.
//
// This is a leaf package with zero shardgrid imports to prevent import
// cycles. All packages in shardgrid can safely import this package.
//
// # Types
//
// ConnString is an explicit tagged connection descriptor:
//
//	cs, err := types.ParseConnString("rs0/db1:27018,db2:27018")
//	cs.IsReplicaSet() // true
//	cs.SetName        // "rs0"
//
// Shard is the immutable-by-convention record describing one shard.
// EmptyShard is the distinguished "no shard" sentinel, unequal by name to
// every real record.
//
// ShardStatus is the transient probe snapshot used only for placement
// decisions; its Less method defines the total placement ordering
// (data size ascending, version ascending, name ascending).
//
// # Errors
//
// The error taxonomy distinguishes:
//
//   - *ParseError: a connection string does not parse (fatal at the boundary)
//   - *ValidationError: a descriptor from the config source is malformed
//     (fatal, aborts the whole reload)
//   - *ConsistencyError: a retried lookup still missed after a fresh reload
//     (fatal; wraps ErrShardNotFound)
//   - *ShardError: a remote call against a shard failed (fatal, no retry)
//
// Absence on a plain lookup is a soft result (bool or EmptyShard), never
// an error.
package types
