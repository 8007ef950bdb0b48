package shardgrid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/shardgrid/internal/metrics"
	"github.com/arloliu/shardgrid/types"
)

// CommandProber implements StatusProber on top of a CommandRunner.
//
// Data size is derived from the aggregate size field of a database listing
// command, and the version string from a server status command. Both
// probes fail if the remote call fails or the expected field is absent or
// mistyped; there is no partial result.
type CommandProber struct {
	runner  CommandRunner
	metrics types.MetricsCollector
}

// Compile-time assertion that CommandProber implements StatusProber.
var _ StatusProber = (*CommandProber)(nil)

// NewCommandProber creates a prober backed by the given command runner.
//
// Parameters:
//   - runner: The transport collaborator used to reach shards
//   - opts: Optional configuration options
//
// Returns:
//   - *CommandProber: A new prober instance
func NewCommandProber(runner CommandRunner, opts ...ProberOption) *CommandProber {
	p := &CommandProber{
		runner:  runner,
		metrics: metrics.NewNopMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ProberOption configures a CommandProber.
type ProberOption func(*CommandProber)

// WithProberMetrics sets the metrics collector for probe durations.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - ProberOption: Configuration option
func WithProberMetrics(collector types.MetricsCollector) ProberOption {
	return func(p *CommandProber) {
		p.metrics = collector
	}
}

// DataSizeBytes returns the shard's live data size in bytes, derived from
// the totalSize field of a listDatabases command.
//
// Parameters:
//   - ctx: Context for the remote call
//   - host: The shard host or connection string to probe
//
// Returns:
//   - int64: Total data size in bytes
//   - error: A *types.ShardError on transport or reply-shape failure
func (p *CommandProber) DataSizeBytes(ctx context.Context, host string) (int64, error) {
	reply, err := p.run(ctx, host, "listDatabases")
	if err != nil {
		return 0, err
	}

	size, ok := asInt64(reply["totalSize"])
	if !ok {
		return 0, &types.ShardError{
			Host:  host,
			Op:    "listDatabases",
			Cause: errors.New("totalSize field not found in reply"),
		}
	}

	return size, nil
}

// Version returns the server version string reported by the shard,
// derived from the version field of a serverStatus command.
//
// Parameters:
//   - ctx: Context for the remote call
//   - host: The shard host or connection string to probe
//
// Returns:
//   - string: The server version string
//   - error: A *types.ShardError on transport or reply-shape failure
func (p *CommandProber) Version(ctx context.Context, host string) (string, error) {
	reply, err := p.run(ctx, host, "serverStatus")
	if err != nil {
		return "", err
	}

	version, ok := reply["version"].(string)
	if !ok {
		return "", &types.ShardError{
			Host:  host,
			Op:    "serverStatus",
			Cause: errors.New("version field not found in reply"),
		}
	}

	return version, nil
}

// run executes a single admin command against host and normalizes failures.
func (p *CommandProber) run(ctx context.Context, host, command string) (Document, error) {
	cs, err := types.ParseConnString(host)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ok, reply, err := p.runner.RunCommand(ctx, cs, "admin", Document{command: 1})
	p.metrics.ObserveProbeDuration(time.Since(start).Seconds())

	if err != nil {
		return nil, &types.ShardError{Host: host, Op: command, Cause: err}
	}
	if !ok {
		return nil, &types.ShardError{
			Host:  host,
			Op:    command,
			Cause: fmt.Errorf("command rejected by server: %v", reply),
		}
	}

	return reply, nil
}

// asInt64 coerces numeric reply values, which may arrive as any integer or
// floating point width depending on the transport's decoder.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	default:
		return 0, false
	}
}
