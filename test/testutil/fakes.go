package testutil

import (
	"context"
	"sync"

	"github.com/arloliu/shardgrid"
	"github.com/arloliu/shardgrid/types"
)

// FakeMembership is a fixed replica set membership for testing.
type FakeMembership struct {
	// Hosts are the member addresses.
	Hosts []string
}

// Contains reports whether host is in the fixed member list.
func (m FakeMembership) Contains(host string) bool {
	for _, h := range m.Hosts {
		if h == host {
			return true
		}
	}

	return false
}

// FakeResolver resolves replica set names from a fixed table.
type FakeResolver struct {
	mu   sync.RWMutex
	sets map[string]FakeMembership
}

// Compile-time assertion that FakeResolver implements MembershipResolver.
var _ types.MembershipResolver = (*FakeResolver)(nil)

// NewFakeResolver creates an empty resolver.
func NewFakeResolver() *FakeResolver {
	return &FakeResolver{sets: make(map[string]FakeMembership)}
}

// AddSet registers a replica set and its members.
func (r *FakeResolver) AddSet(name string, hosts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sets[name] = FakeMembership{Hosts: hosts}
}

// Resolve looks up the membership for a replica set.
func (r *FakeResolver) Resolve(setName string) (types.Membership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.sets[setName]

	return m, ok
}

// FakeProber serves shard status probes from fixed tables.
type FakeProber struct {
	mu       sync.RWMutex
	sizes    map[string]int64
	versions map[string]string
	errs     map[string]error

	// Probes counts DataSizeBytes calls per host.
	Probes map[string]int
}

// NewFakeProber creates an empty prober.
func NewFakeProber() *FakeProber {
	return &FakeProber{
		sizes:    make(map[string]int64),
		versions: make(map[string]string),
		errs:     make(map[string]error),
		Probes:   make(map[string]int),
	}
}

// SetStatus fixes the status returned for a host.
func (p *FakeProber) SetStatus(host string, sizeBytes int64, version string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sizes[host] = sizeBytes
	p.versions[host] = version
}

// SetError makes probes against host fail with err.
func (p *FakeProber) SetError(host string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.errs[host] = err
}

// DataSizeBytes returns the fixed data size for host.
func (p *FakeProber) DataSizeBytes(_ context.Context, host string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Probes[host]++
	if err := p.errs[host]; err != nil {
		return 0, err
	}

	return p.sizes[host], nil
}

// Version returns the fixed version string for host.
func (p *FakeProber) Version(_ context.Context, host string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.errs[host]; err != nil {
		return "", err
	}

	return p.versions[host], nil
}

// FakeRunner serves RunCommand calls from canned replies keyed by the
// command name (the first key of the command document that is present in
// the reply table).
type FakeRunner struct {
	mu      sync.RWMutex
	replies map[string]shardgrid.Document
	fails   map[string]bool
	errs    map[string]error
}

// Compile-time assertion that FakeRunner implements CommandRunner.
var _ shardgrid.CommandRunner = (*FakeRunner)(nil)

// NewFakeRunner creates an empty runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		replies: make(map[string]shardgrid.Document),
		fails:   make(map[string]bool),
		errs:    make(map[string]error),
	}
}

// SetReply fixes the reply document for a command name.
func (r *FakeRunner) SetReply(command string, reply shardgrid.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.replies[command] = reply
}

// SetCommandFailure makes the server report failure for a command name.
func (r *FakeRunner) SetCommandFailure(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fails[command] = true
}

// SetError makes the transport fail for a command name.
func (r *FakeRunner) SetError(command string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errs[command] = err
}

// RunCommand returns the canned reply for the command document.
func (r *FakeRunner) RunCommand(_ context.Context, _ types.ConnString, _ string, cmd shardgrid.Document) (bool, shardgrid.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name := range cmd {
		if err := r.errs[name]; err != nil {
			return false, nil, err
		}
		if r.fails[name] {
			return false, shardgrid.Document{"ok": 0}, nil
		}
		if reply, ok := r.replies[name]; ok {
			return true, reply, nil
		}
	}

	return false, shardgrid.Document{"ok": 0}, nil
}

// RecordingMetrics is a test implementation of types.MetricsCollector
// that counts method calls for assertions.
type RecordingMetrics struct {
	mu sync.Mutex

	ReloadTotal     int
	ReloadErrors    int
	ReloadDurations []float64
	ShardCount      int

	LookupTotal  int
	LookupMisses int
	RetryReloads int

	PlacementTotal  int
	PlacementErrors int
	ProbeDurations  []float64
}

// Compile-time assertion that RecordingMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*RecordingMetrics)(nil)

// NewRecordingMetrics creates a zeroed recording collector.
func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{}
}

// IncReloadTotal records the call.
func (m *RecordingMetrics) IncReloadTotal() { m.inc(&m.ReloadTotal) }

// IncReloadError records the call.
func (m *RecordingMetrics) IncReloadError() { m.inc(&m.ReloadErrors) }

// ObserveReloadDuration records the observation.
func (m *RecordingMetrics) ObserveReloadDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReloadDurations = append(m.ReloadDurations, seconds)
}

// SetShardCount records the gauge value.
func (m *RecordingMetrics) SetShardCount(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShardCount = count
}

// IncLookupTotal records the call.
func (m *RecordingMetrics) IncLookupTotal() { m.inc(&m.LookupTotal) }

// IncLookupMiss records the call.
func (m *RecordingMetrics) IncLookupMiss() { m.inc(&m.LookupMisses) }

// IncRetryReload records the call.
func (m *RecordingMetrics) IncRetryReload() { m.inc(&m.RetryReloads) }

// IncPlacementTotal records the call.
func (m *RecordingMetrics) IncPlacementTotal() { m.inc(&m.PlacementTotal) }

// IncPlacementError records the call.
func (m *RecordingMetrics) IncPlacementError() { m.inc(&m.PlacementErrors) }

// ObserveProbeDuration records the observation.
func (m *RecordingMetrics) ObserveProbeDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProbeDurations = append(m.ProbeDurations, seconds)
}

func (m *RecordingMetrics) inc(field *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*field++
}
