package topology

import (
	"time"

	"github.com/arloliu/shardgrid/types"
)

// ShardListDoc is the shard list document stored in NATS KV or a YAML file.
//
// This is the structure operations teams PUT to the KV store (as JSON) or
// maintain in a topology file (as YAML) to describe the cluster.
type ShardListDoc struct {
	// Shards is the full authoritative shard list.
	Shards []types.RawShardDescriptor `json:"shards" yaml:"shards"`
}

// ChangeNotice signals that the authoritative shard list may have changed.
//
// Sources emit notices on their Watch channel so applications can trigger
// a registry reload. The cache itself never reloads on push; refreshing
// stays an explicit caller decision.
type ChangeNotice struct {
	// Revision is the source revision that triggered the notice, when the
	// backing store has one (NATS KV). Zero otherwise.
	Revision uint64
}

// SourceConfig holds configuration for topology sources.
type SourceConfig struct {
	// Key is the NATS KV key holding the shard list document.
	// Default: "shardgrid.topology.shards"
	Key string

	// PollInterval is the fallback polling interval if watch fails.
	// Default: 5 seconds
	PollInterval time.Duration

	// FetchTimeout bounds a single KV fetch issued by ListShards.
	// Default: 10 seconds
	FetchTimeout time.Duration
}

// DefaultSourceConfig returns a SourceConfig with sensible defaults.
//
// Returns:
//   - SourceConfig: Default configuration
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		Key:          "shardgrid.topology.shards",
		PollInterval: 5 * time.Second,
		FetchTimeout: 10 * time.Second,
	}
}

// SourceOption configures a topology source.
type SourceOption func(*SourceConfig)

// WithKey sets the NATS KV key holding the shard list document.
//
// Parameters:
//   - key: The key name (e.g. "cluster.topology.shards")
//
// Returns:
//   - SourceOption: Configuration option
func WithKey(key string) SourceOption {
	return func(c *SourceConfig) {
		c.Key = key
	}
}

// WithPollInterval sets the fallback polling interval.
//
// If the NATS watch fails or disconnects, the watcher falls back to
// polling at this interval.
//
// Parameters:
//   - d: Polling interval duration
//
// Returns:
//   - SourceOption: Configuration option
func WithPollInterval(d time.Duration) SourceOption {
	return func(c *SourceConfig) {
		c.PollInterval = d
	}
}

// WithFetchTimeout sets the timeout for a single KV fetch.
//
// Parameters:
//   - d: Timeout duration
//
// Returns:
//   - SourceOption: Configuration option
func WithFetchTimeout(d time.Duration) SourceOption {
	return func(c *SourceConfig) {
		c.FetchTimeout = d
	}
}
