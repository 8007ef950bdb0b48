package topology

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/shardgrid"
	"github.com/arloliu/shardgrid/types"
)

// File serves the authoritative shard list from a YAML file.
//
// The file is read on every ListShards call, so editing it and issuing a
// registry reload is enough to change topology; no watcher is involved.
//
// Expected layout:
//
//	shards:
//	  - name: shard0
//	    host: db0:27018
//	  - name: shard1
//	    host: rs1/db1a:27018,db1b:27018
//	    maxSizeMB: 10240
//	    draining: true
type File struct {
	path string
}

var _ shardgrid.ConfigSource = (*File)(nil)

// NewFile creates a file-backed topology source.
//
// The file is not opened until the first ListShards call.
//
// Parameters:
//   - path: Path to the YAML shard list file
//
// Returns:
//   - *File: A new file source
func NewFile(path string) *File {
	return &File{path: path}
}

// ListShards reads and parses the shard list file.
//
// Parameters:
//   - ctx: Accepted for interface compliance; local file reads are not
//     cancellable
//
// Returns:
//   - []types.RawShardDescriptor: The shard list from the file
//   - error: Read or YAML parse failure
func (f *File) ListShards(_ context.Context) ([]types.RawShardDescriptor, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("shardgrid/topology: read shard list %s: %w", f.path, err)
	}

	var doc ShardListDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("shardgrid/topology: parse shard list %s: %w", f.path, err)
	}

	return doc.Shards, nil
}
