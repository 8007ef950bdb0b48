package shardgrid

import "github.com/arloliu/shardgrid/types"

// Type aliases for convenience - re-export from types package.
type (
	Shard              = types.Shard
	ShardStatus        = types.ShardStatus
	ConnString         = types.ConnString
	RawShardDescriptor = types.RawShardDescriptor
	MembershipResolver = types.MembershipResolver
	Membership         = types.Membership
	Logger             = types.Logger
	MetricsCollector   = types.MetricsCollector
)

// EmptyShard re-exports the "no shard" sentinel for convenience.
var EmptyShard = types.EmptyShard
