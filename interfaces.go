package shardgrid

import (
	"context"

	"github.com/arloliu/shardgrid/types"
)

// Document is a generic command or reply document exchanged with a shard.
type Document map[string]any

// ConfigSource is the authoritative external store of cluster topology.
//
// Implementations include topology.Local (in-memory), topology.File (YAML)
// and topology.NATS (JetStream KV). The registry validates every descriptor
// before acceptance; persistence and transport belong to the source.
//
// Implementations MUST be safe for concurrent use from multiple goroutines.
type ConfigSource interface {
	// ListShards returns the full authoritative shard list.
	//
	// Parameters:
	//   - ctx: Context for cancellation/timeout of the fetch
	//
	// Returns:
	//   - []types.RawShardDescriptor: The complete shard list
	//   - error: Transport or source error; fatal to the triggering reload
	ListShards(ctx context.Context) ([]types.RawShardDescriptor, error)
}

// CommandRunner executes a command document against a shard.
//
// This is the seam to the wire protocol and connection pooling, which are
// external collaborators; shardgrid never opens connections itself.
//
// Implementations MUST be safe for concurrent use from multiple goroutines.
type CommandRunner interface {
	// RunCommand executes cmd against the db on the host addressed by cs.
	//
	// Parameters:
	//   - ctx: Context for cancellation/timeout
	//   - cs: Connection descriptor of the target
	//   - db: Database name the command runs against
	//   - cmd: The command document
	//
	// Returns:
	//   - bool: false if the server reported command failure
	//   - Document: The reply document
	//   - error: Transport error; nil when the command reached the server
	RunCommand(ctx context.Context, cs types.ConnString, db string, cmd Document) (bool, Document, error)
}

// StatusProber obtains the live status signals used for placement.
//
// Both probes fail if the remote call fails or the expected reply field is
// absent or mistyped; failures are fatal to the placement decision.
//
// Implementations MUST be safe for concurrent use from multiple goroutines.
type StatusProber interface {
	// DataSizeBytes returns the shard's live data size in bytes.
	DataSizeBytes(ctx context.Context, host string) (int64, error)

	// Version returns the server version string reported by the shard.
	Version(ctx context.Context, host string) (string, error)
}
