package policy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/shardgrid/internal/logging"
	"github.com/arloliu/shardgrid/internal/metrics"
	"github.com/arloliu/shardgrid/types"
)

// ShardSource provides the candidate shard list for placement decisions.
//
// *shardgrid.Registry satisfies this interface.
type ShardSource interface {
	// AllShards returns the distinct registered shards, excluding the
	// config pseudo-entry.
	AllShards() []types.Shard

	// Reload refreshes the shard list from the authoritative source.
	Reload(ctx context.Context) error
}

// Prober obtains the live status signals used for ranking candidates.
//
// *shardgrid.CommandProber satisfies this interface.
type Prober interface {
	// DataSizeBytes returns the shard's live data size in bytes.
	DataSizeBytes(ctx context.Context, host string) (int64, error)

	// Version returns the server version string reported by the shard.
	Version(ctx context.Context, host string) (string, error)
}

// Picker selects a destination shard for new data.
//
// Every candidate is probed live; statuses are never cached. The winner is
// the least status under the total ordering defined by
// types.ShardStatus.Less: data size ascending, then version ascending,
// then shard name.
type Picker struct {
	source  ShardSource
	prober  Prober
	metrics types.MetricsCollector
	logger  types.Logger
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithPickerMetrics sets the metrics collector.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - PickerOption: Configuration option
func WithPickerMetrics(collector types.MetricsCollector) PickerOption {
	return func(p *Picker) {
		p.metrics = collector
	}
}

// WithPickerLogger sets the structured logger.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - PickerOption: Configuration option
func WithPickerLogger(logger types.Logger) PickerOption {
	return func(p *Picker) {
		p.logger = logger
	}
}

// NewPicker creates a placement picker over the given shard source.
//
// Parameters:
//   - source: The registry or other shard list provider
//   - prober: The live status probe collaborator
//   - opts: Optional configuration options
//
// Returns:
//   - *Picker: A new picker instance
func NewPicker(source ShardSource, prober Prober, opts ...PickerOption) *Picker {
	p := &Picker{
		source: source,
		prober: prober,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.metrics == nil {
		p.metrics = metrics.NewNopMetrics()
	}
	if p.logger == nil {
		p.logger = logging.NewNopLogger()
	}

	return p
}

// Pick selects the destination shard for a new allocation.
//
// If the source is empty it is reloaded once; an empty source after the
// reload yields EmptyShard without error. Draining shards are excluded
// from the candidates. When a current shard is provided its live status
// seeds the running best, so a different shard wins only if it is a
// strictly better choice.
//
// Any probe failure aborts the whole selection; there is no best-effort
// fallback over reachable shards only.
//
// Parameters:
//   - ctx: Context for reload and probe calls
//   - current: The shard the caller already allocates to, or EmptyShard
//
// Returns:
//   - types.Shard: The winning record, or EmptyShard if none is eligible
//   - error: Reload or probe failure
func (p *Picker) Pick(ctx context.Context, current types.Shard) (types.Shard, error) {
	p.metrics.IncPlacementTotal()

	all := p.source.AllShards()
	if len(all) == 0 {
		if err := p.source.Reload(ctx); err != nil {
			p.metrics.IncPlacementError()

			return types.EmptyShard, err
		}
		all = p.source.AllShards()
		if len(all) == 0 {
			return types.EmptyShard, nil
		}
	}

	// Draining shards are excluded from new placement.
	candidates := all[:0:0]
	for _, shard := range all {
		if !shard.Draining {
			candidates = append(candidates, shard)
		}
	}
	if len(candidates) == 0 {
		p.logger.Warn("no placement candidates, all shards are draining",
			"shards", len(all),
		)

		return types.EmptyShard, nil
	}

	statuses := make([]types.ShardStatus, len(candidates))
	var currentStatus types.ShardStatus

	g, gctx := errgroup.WithContext(ctx)
	for i, shard := range candidates {
		i, shard := i, shard
		g.Go(func() error {
			status, err := p.probe(gctx, shard)
			if err != nil {
				return err
			}
			statuses[i] = status

			return nil
		})
	}
	if !current.IsEmpty() {
		g.Go(func() error {
			status, err := p.probe(gctx, current)
			if err != nil {
				return err
			}
			currentStatus = status

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.metrics.IncPlacementError()

		return types.EmptyShard, err
	}

	// Seed from the current shard when provided: a candidate replaces it
	// only under a strictly-less comparison.
	best := statuses[0]
	if !current.IsEmpty() {
		best = currentStatus
	}
	for _, status := range statuses {
		if status.Less(best) {
			best = status
		}
	}

	p.logger.Debug("best shard for new allocation", "status", best.String())

	return best.Shard, nil
}

// probe snapshots one shard's live status.
func (p *Picker) probe(ctx context.Context, shard types.Shard) (types.ShardStatus, error) {
	addr := shard.Address()

	size, err := p.prober.DataSizeBytes(ctx, addr)
	if err != nil {
		return types.ShardStatus{}, err
	}

	version, err := p.prober.Version(ctx, addr)
	if err != nil {
		return types.ShardStatus{}, err
	}

	return types.ShardStatus{Shard: shard, DataSizeBytes: size, Version: version}, nil
}
