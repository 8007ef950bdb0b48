package topology

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/shardgrid"
	"github.com/arloliu/shardgrid/types"
)

// NATS serves the authoritative shard list from a NATS KV bucket.
//
// The shard list lives in a single JSON document (ShardListDoc) under a
// configurable key. ListShards fetches the document live, so the registry
// always reloads against the latest revision. Watch emits ChangeNotice
// events when the document changes, letting applications decide when to
// trigger a reload.
//
// Watch() should be called once per instance. Subsequent calls return the
// same channel. The channel is closed when Close() is called or the
// context is cancelled.
type NATS struct {
	kv     jetstream.KeyValue
	config SourceConfig

	lastRevision uint64
	mu           sync.RWMutex

	// Lifecycle
	notices      chan ChangeNotice
	done         chan struct{}
	closed       bool
	watchStarted bool
	closeOnce    sync.Once
}

var _ shardgrid.ConfigSource = (*NATS)(nil)

// NewNATS creates a new NATS KV topology source.
//
// Parameters:
//   - kv: A NATS JetStream KeyValue store
//   - opts: Optional configuration options
//
// Returns:
//   - *NATS: A new source instance
//   - error: Error if kv is nil
//
// Example:
//
//	nc, _ := nats.Connect("nats://localhost:4222")
//	js, _ := jetstream.New(nc)
//	kv, _ := js.KeyValue(ctx, "cluster-config")
//
//	source, _ := topology.NewNATS(kv,
//	    topology.WithKey("cluster.topology.shards"),
//	    topology.WithPollInterval(10*time.Second),
//	)
func NewNATS(kv jetstream.KeyValue, opts ...SourceOption) (*NATS, error) {
	if kv == nil {
		return nil, errors.New("shardgrid/topology: KeyValue store is nil")
	}

	config := DefaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &NATS{
		kv:      kv,
		config:  config,
		notices: make(chan ChangeNotice, 10),
		done:    make(chan struct{}),
	}, nil
}

// ListShards fetches and parses the shard list document.
//
// A missing key is an empty cluster, not an error. Transport failures and
// malformed documents propagate to the caller and abort the triggering
// reload.
//
// Parameters:
//   - ctx: Context for the KV fetch, bounded by FetchTimeout
//
// Returns:
//   - []types.RawShardDescriptor: The shard list from the latest revision
//   - error: KV or JSON failure
func (n *NATS) ListShards(ctx context.Context) ([]types.RawShardDescriptor, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, n.config.FetchTimeout)
	defer cancel()

	entry, err := n.kv.Get(fetchCtx, n.config.Key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("shardgrid/topology: fetch %s: %w", n.config.Key, err)
	}

	var doc ShardListDoc
	if err := json.Unmarshal(entry.Value(), &doc); err != nil {
		return nil, fmt.Errorf("shardgrid/topology: parse %s: %w", n.config.Key, err)
	}

	n.mu.Lock()
	n.lastRevision = entry.Revision()
	n.mu.Unlock()

	return doc.Shards, nil
}

// Watch returns a channel that receives change notices.
//
// The source spawns a background goroutine that monitors the NATS KV key
// and emits a ChangeNotice whenever the document revision changes,
// including deletions. The channel is closed when Close() is called or
// the context is cancelled. Multiple calls return the same channel; only
// the first call's context controls the watch lifecycle.
//
// Parameters:
//   - ctx: Context for cancellation (only used on first call)
//
// Returns:
//   - <-chan ChangeNotice: Channel of change notices
func (n *NATS) Watch(ctx context.Context) <-chan ChangeNotice {
	n.mu.Lock()
	if n.watchStarted {
		n.mu.Unlock()

		return n.notices
	}
	n.watchStarted = true
	n.mu.Unlock()

	go n.watchLoop(ctx)

	return n.notices
}

// Close stops the source and releases resources.
//
// This method is safe to call multiple times.
func (n *NATS) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}

	n.closed = true
	close(n.done)

	return nil
}

// Config returns the source configuration.
//
// This method is primarily useful for testing to verify configuration
// options.
//
// Returns:
//   - SourceConfig: The current source configuration
func (n *NATS) Config() SourceConfig {
	return n.config
}

// LastRevision returns the KV revision of the last fetched document.
//
// Returns:
//   - uint64: The revision, or 0 if nothing has been fetched yet
func (n *NATS) LastRevision() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.lastRevision
}

// watchLoop is the main watch loop that monitors the NATS KV key.
func (n *NATS) watchLoop(ctx context.Context) {
	defer n.closeOnce.Do(func() { close(n.notices) })

	watcher, err := n.kv.Watch(ctx, n.config.Key)
	if err != nil {
		// Fall back to polling if watch fails
		n.pollLoop(ctx)
		return
	}
	defer func() { _ = watcher.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-n.done:
			return
		case entry, ok := <-watcher.Updates():
			if !ok {
				// Watcher channel closed, fall back to polling
				n.pollLoop(ctx)
				return
			}
			if entry == nil {
				// Initial nil entry, skip
				continue
			}
			n.emit(entry.Revision())
		}
	}
}

// pollLoop is a fallback polling loop when watch fails.
func (n *NATS) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(n.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-n.done:
			return
		case <-ticker.C:
			n.pollOnce(ctx)
		}
	}
}

// pollOnce fetches the current revision and emits a notice if it moved.
func (n *NATS) pollOnce(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, n.config.FetchTimeout)
	defer cancel()

	entry, err := n.kv.Get(fetchCtx, n.config.Key)
	if err != nil {
		return
	}

	n.mu.RLock()
	seen := n.lastRevision
	n.mu.RUnlock()

	if entry.Revision() != seen {
		n.emit(entry.Revision())
	}
}

// emit sends a non-blocking change notice.
func (n *NATS) emit(revision uint64) {
	select {
	case n.notices <- ChangeNotice{Revision: revision}:
	default:
		// Channel full, skip notice (older notices are stale anyway)
	}
}
