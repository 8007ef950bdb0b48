package topology

import (
	"context"
	"sync"

	"github.com/arloliu/shardgrid"
	"github.com/arloliu/shardgrid/types"
)

// Local provides an in-memory topology source for testing and demos.
//
// Unlike NATS, this implementation allows programmatic control of the
// shard list, per-shard drain states and injected failures, making it
// ideal for unit tests.
type Local struct {
	shards  []types.RawShardDescriptor
	listErr error
	mu      sync.RWMutex

	notices       chan ChangeNotice
	done          chan struct{}
	closed        bool
	noticesClosed bool
}

var _ shardgrid.ConfigSource = (*Local)(nil)

// NewLocal creates a new in-memory topology source.
//
// Returns:
//   - *Local: A new local topology instance, initially empty
func NewLocal() *Local {
	return &Local{
		notices: make(chan ChangeNotice, 10),
		done:    make(chan struct{}),
	}
}

// ListShards returns the current authoritative shard list.
//
// Parameters:
//   - ctx: Accepted for interface compliance; the in-memory list needs no
//     cancellation
//
// Returns:
//   - []types.RawShardDescriptor: A copy of the configured shard list
//   - error: The injected error, if SetError was called with one
func (l *Local) ListShards(_ context.Context) ([]types.RawShardDescriptor, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.listErr != nil {
		return nil, l.listErr
	}

	out := make([]types.RawShardDescriptor, len(l.shards))
	copy(out, l.shards)

	return out, nil
}

// SetShards replaces the authoritative shard list and emits a notice.
//
// Parameters:
//   - shards: The new full shard list
func (l *Local) SetShards(shards []types.RawShardDescriptor) {
	l.mu.Lock()
	l.shards = make([]types.RawShardDescriptor, len(shards))
	copy(l.shards, shards)
	l.mu.Unlock()

	l.emit()
}

// SetDraining flips the drain flag on one shard and emits a notice.
//
// Unknown names are ignored.
//
// Parameters:
//   - name: The shard name to update
//   - draining: true to mark the shard as being decommissioned
func (l *Local) SetDraining(name string, draining bool) {
	l.mu.Lock()
	changed := false
	for i := range l.shards {
		if l.shards[i].Name == name && l.shards[i].Draining != draining {
			l.shards[i].Draining = draining
			changed = true
		}
	}
	l.mu.Unlock()

	if changed {
		l.emit()
	}
}

// SetError injects a transport error returned by subsequent ListShards
// calls. Pass nil to clear it.
//
// Parameters:
//   - err: The error to return, or nil to restore normal operation
func (l *Local) SetError(err error) {
	l.mu.Lock()
	l.listErr = err
	l.mu.Unlock()
}

// Watch returns a channel that receives change notices.
//
// Notices are emitted when SetShards or SetDraining changes the list.
// The channel is closed when Close() is called or the context is
// cancelled. Multiple calls return the same channel; only the first
// call's context controls the watch lifecycle.
//
// Parameters:
//   - ctx: Context for cancellation (only used on first call)
//
// Returns:
//   - <-chan ChangeNotice: Channel of change notices
func (l *Local) Watch(ctx context.Context) <-chan ChangeNotice {
	go l.waitForClose(ctx)
	return l.notices
}

// Close stops the source and releases resources.
func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	close(l.done)

	return nil
}

// emit sends a non-blocking change notice.
func (l *Local) emit() {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed || l.noticesClosed {
		return
	}

	select {
	case l.notices <- ChangeNotice{}:
	default:
		// Channel full, skip notice (a pending notice already covers it)
	}
}

// waitForClose waits for context cancellation or close signal.
func (l *Local) waitForClose(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-l.done:
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.noticesClosed {
		l.noticesClosed = true
		close(l.notices)
	}
}
