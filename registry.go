package shardgrid

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/shardgrid/types"
)

// ConfigShardName is the reserved pseudo-entry key for the config server.
//
// The config entry is installed via Set outside the normal reload flow and
// survives reloads whose authoritative list does not include it. This way
// removed shards can be dropped without reinitializing the config server
// information.
const ConfigShardName = "config"

// Registry is a thread-safe, eventually-consistent local view of shard
// topology. The authoritative source is external; staleness is resolved
// only by explicit reload triggers.
//
// The registry keeps two mapping tables guarded by one mutex: a primary
// table keyed by shard name, every replica set member host and the full
// connection string, and a replica set table keyed by set name. Every
// record reachable under its name is also reachable under every alias
// derived from its connection descriptor.
type Registry struct {
	source   ConfigSource
	resolver types.MembershipResolver
	metrics  types.MetricsCollector
	logger   types.Logger

	mu       sync.RWMutex
	lookup   map[string]types.Shard // shard name, host and connection string -> record
	rsLookup map[string]types.Shard // replica set name -> record
}

// NewRegistry creates a registry backed by the given config source.
//
// The registry starts empty; call Reload to populate it, or rely on the
// retry lookups to trigger the first load on demand.
//
// Parameters:
//   - source: The authoritative config source
//   - opts: Optional configuration options
//
// Returns:
//   - *Registry: A new registry instance
func NewRegistry(source ConfigSource, opts ...Option) *Registry {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Registry{
		source:   source,
		resolver: cfg.Resolver,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		lookup:   make(map[string]types.Shard),
		rsLookup: make(map[string]types.Shard),
	}
}

// Reload replaces the registry contents from the authoritative source.
//
// The full shard list is fetched and validated outside the lock. On any
// transport or validation failure the reload aborts with no mutation to
// existing state. On success both tables are cleared, preserving only the
// "config" pseudo-entry, and rebuilt in one pass; readers taking the lock
// never observe an intermediate state.
//
// Parameters:
//   - ctx: Context for the source fetch
//
// Returns:
//   - error: Transport error from the source, or *types.ValidationError
//     for the first malformed descriptor
func (r *Registry) Reload(ctx context.Context) error {
	start := time.Now()
	reloadID := uuid.NewString()
	r.metrics.IncReloadTotal()

	raws, err := r.source.ListShards(ctx)
	if err != nil {
		r.metrics.IncReloadError()
		r.logger.Error("failed to list shards from config source",
			"reload_id", reloadID,
			"error", err,
		)

		return err
	}

	shards := make([]types.Shard, 0, len(raws))
	for _, raw := range raws {
		if err := raw.Validate(); err != nil {
			r.metrics.IncReloadError()

			return err
		}

		shard, err := raw.Shard()
		if err != nil {
			r.metrics.IncReloadError()

			return err
		}

		shards = append(shards, shard)
	}

	r.logger.Debug("found shards listed on config source",
		"reload_id", reloadID,
		"count", len(shards),
	)

	r.mu.Lock()
	config, hasConfig := r.lookup[ConfigShardName]

	r.lookup = make(map[string]types.Shard, len(shards)*2+1)
	r.rsLookup = make(map[string]types.Shard)

	if hasConfig {
		r.lookup[ConfigShardName] = config
	}

	for _, shard := range shards {
		r.lookup[shard.Name] = shard
		r.installHostLocked(shard)
	}
	r.mu.Unlock()

	r.metrics.SetShardCount(len(shards))
	r.metrics.ObserveReloadDuration(time.Since(start).Seconds())

	return nil
}

// Find looks up a shard by name, host, connection string or replica set
// connection string. Replica set strings are routed to the replica set
// table by set name; everything else hits the primary table directly.
//
// Find never reloads and never touches the network. Absence is a soft
// result, not an error.
//
// Parameters:
//   - ident: Shard name, host address or connection string
//
// Returns:
//   - types.Shard: An owned copy of the record, or EmptyShard on miss
//   - bool: true if the record was found
//   - error: A *types.ParseError if ident is syntactically invalid
func (r *Registry) Find(ident string) (types.Shard, bool, error) {
	cs, err := types.ParseConnString(ident)
	if err != nil {
		return types.EmptyShard, false, err
	}

	r.metrics.IncLookupTotal()

	r.mu.RLock()
	var (
		shard types.Shard
		ok    bool
	)
	if cs.IsReplicaSet() {
		shard, ok = r.rsLookup[cs.SetName]
	} else {
		shard, ok = r.lookup[ident]
	}
	r.mu.RUnlock()

	if !ok {
		r.metrics.IncLookupMiss()

		return types.EmptyShard, false, nil
	}

	return shard.Clone(), true, nil
}

// FindWithRetry looks up a shard, reloading the registry once on a miss.
//
// A second miss after the reload is a consistency error: the identifier is
// expected to exist, so absence signals a caller or data-model bug rather
// than transient staleness.
//
// Parameters:
//   - ctx: Context for the reload fetch, if one is triggered
//   - ident: Shard name, host address or connection string
//
// Returns:
//   - types.Shard: An owned copy of the record
//   - error: ParseError, reload error, or *types.ConsistencyError if the
//     identifier is still absent after a fresh reload
func (r *Registry) FindWithRetry(ctx context.Context, ident string) (types.Shard, error) {
	shard, ok, err := r.Find(ident)
	if err != nil {
		return types.EmptyShard, err
	}
	if ok {
		return shard, nil
	}

	// Not in our tables; pull the full list once and retry.
	r.metrics.IncRetryReload()
	if err := r.Reload(ctx); err != nil {
		return types.EmptyShard, err
	}

	shard, ok, err = r.Find(ident)
	if err != nil {
		return types.EmptyShard, err
	}
	if !ok {
		return types.EmptyShard, &types.ConsistencyError{Ident: ident}
	}

	return shard, nil
}

// FindCopy is FindWithRetry returning an owned value copy.
//
// All registry lookups already return copies; FindCopy exists for callers
// that persist the record and want that guarantee spelled out at the call
// site.
//
// Parameters:
//   - ctx: Context for the reload fetch, if one is triggered
//   - ident: Shard name, host address or connection string
//
// Returns:
//   - types.Shard: An owned copy of the record
//   - error: As FindWithRetry
func (r *Registry) FindCopy(ctx context.Context, ident string) (types.Shard, error) {
	return r.FindWithRetry(ctx, ident)
}

// LookupReplicaSet looks up a shard by replica set name.
//
// This consults the replica set table only and never triggers a reload, so
// a newly added set may be missed until another path reloads the registry.
//
// Parameters:
//   - name: The replica set name
//
// Returns:
//   - types.Shard: An owned copy of the record, or EmptyShard on miss
func (r *Registry) LookupReplicaSet(name string) types.Shard {
	r.mu.RLock()
	shard, ok := r.rsLookup[name]
	r.mu.RUnlock()

	if !ok {
		return types.EmptyShard
	}

	return shard.Clone()
}

// Set performs an incremental upsert of a shard outside the normal reload
// flow, such as installing the config server entry.
//
// Parameters:
//   - name: The primary table key for the name index
//   - shard: The record to install
//   - updateNameIndex: Install the record under name in the primary table
//   - updateHostIndex: Install the record under its derived aliases
//     (connection string, member hosts, replica set name)
func (r *Registry) Set(name string, shard types.Shard, updateNameIndex, updateHostIndex bool) {
	stored := shard.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if updateNameIndex {
		r.lookup[name] = stored
	}
	if updateHostIndex {
		r.installHostLocked(stored)
	}
}

// Remove deletes every entry whose record carries the given shard name
// from both tables. Unrelated records remain fully queryable.
//
// The linear scan is acceptable: shard counts are bounded in the
// thousands and removal is not a hot path.
//
// Parameters:
//   - name: The shard name to remove
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, shard := range r.lookup {
		if shard.Name == name {
			delete(r.lookup, key)
		}
	}
	for key, shard := range r.rsLookup {
		if shard.Name == name {
			delete(r.rsLookup, key)
		}
	}
}

// AllShards returns a snapshot of the distinct records by name, excluding
// the "config" pseudo-entry, sorted by shard name.
//
// Returns:
//   - []types.Shard: Owned copies of the distinct records
func (r *Registry) AllShards() []types.Shard {
	r.mu.RLock()
	all := r.distinctLocked()
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return all
}

// IsShardNode reports whether addr is served by any registered shard.
//
// The address matches if it is a primary table key, or if any distinct
// non-config record contains it as a replica set member. Membership checks
// run outside the lock so a slow resolver never blocks readers.
//
// Parameters:
//   - addr: The host address to test
//
// Returns:
//   - bool: true if addr belongs to a registered shard
func (r *Registry) IsShardNode(addr string) bool {
	r.mu.RLock()
	if _, ok := r.lookup[addr]; ok {
		r.mu.RUnlock()

		return true
	}
	all := r.distinctLocked()
	r.mu.RUnlock()

	for _, shard := range all {
		if shard.ContainsNode(addr, r.resolver, r.logger) {
			return true
		}
	}

	return false
}

// ShardMap returns the full identifier to connection string mapping of the
// primary table, for diagnostic surfaces such as an admin getShardMap
// command.
//
// Returns:
//   - map[string]string: identifier -> canonical connection string
func (r *Registry) ShardMap() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.lookup))
	for key, shard := range r.lookup {
		out[key] = shard.Address()
	}

	return out
}

// installHostLocked installs a record under every alias derived from its
// connection descriptor. Caller must hold the write lock.
func (r *Registry) installHostLocked(shard types.Shard) {
	r.lookup[shard.Address()] = shard

	cs := shard.ConnString
	if !cs.IsReplicaSet() {
		return
	}

	if cs.SetName != "" {
		r.rsLookup[cs.SetName] = shard
	}
	for _, member := range cs.Members {
		r.lookup[member] = shard
	}
}

// distinctLocked collects the distinct non-config records by name.
// Caller must hold at least the read lock.
func (r *Registry) distinctLocked() []types.Shard {
	seen := make(map[string]struct{}, len(r.lookup))
	all := make([]types.Shard, 0, len(r.lookup))

	for _, shard := range r.lookup {
		if shard.Name == ConfigShardName {
			continue
		}
		if _, dup := seen[shard.Name]; dup {
			continue
		}
		seen[shard.Name] = struct{}{}
		all = append(all, shard.Clone())
	}

	return all
}
