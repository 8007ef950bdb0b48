package policy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/shardgrid"
	"github.com/arloliu/shardgrid/policy"
	"github.com/arloliu/shardgrid/test/testutil"
	"github.com/arloliu/shardgrid/topology"
	"github.com/arloliu/shardgrid/types"
)

const mb = int64(1024 * 1024)

func newPickerFixture(t *testing.T, shards []types.RawShardDescriptor) (*policy.Picker, *topology.Local, *testutil.FakeProber) {
	t.Helper()

	source := topology.NewLocal()
	source.SetShards(shards)
	t.Cleanup(func() { _ = source.Close() })

	reg := shardgrid.NewRegistry(source)
	require.NoError(t, reg.Reload(context.Background()))

	prober := testutil.NewFakeProber()
	picker := policy.NewPicker(reg, prober)

	return picker, source, prober
}

func TestPickLowerLoadWins(t *testing.T) {
	picker, _, prober := newPickerFixture(t, []types.RawShardDescriptor{
		{Name: "shardA", Host: "dbA:27018"},
		{Name: "shardB", Host: "dbB:27018"},
	})
	prober.SetStatus("dbA:27018", 100*mb, "3.0.0")
	prober.SetStatus("dbB:27018", 50*mb, "3.0.0")

	winner, err := picker.Pick(context.Background(), types.EmptyShard)
	require.NoError(t, err)
	assert.Equal(t, "shardB", winner.Name)
}

func TestPickKeepsCurrentUnderStrictLess(t *testing.T) {
	picker, _, prober := newPickerFixture(t, []types.RawShardDescriptor{
		{Name: "shardA", Host: "dbA:27018"},
		{Name: "shardB", Host: "dbB:27018"},
	})
	prober.SetStatus("dbA:27018", 100*mb, "3.0.0")
	prober.SetStatus("dbB:27018", 150*mb, "3.0.0")

	current, err := types.NewShard("shardA", "dbA:27018", 0, false)
	require.NoError(t, err)

	winner, err := picker.Pick(context.Background(), current)
	require.NoError(t, err)
	assert.Equal(t, "shardA", winner.Name)
}

func TestPickEmptyRegistryReloadsOnce(t *testing.T) {
	source := topology.NewLocal()
	t.Cleanup(func() { _ = source.Close() })

	reg := shardgrid.NewRegistry(source)
	prober := testutil.NewFakeProber()
	prober.SetStatus("dbA:27018", 10*mb, "3.0.0")
	picker := policy.NewPicker(reg, prober)

	// The registry was never loaded; the picker reloads once and finds
	// the shard the source now lists.
	source.SetShards([]types.RawShardDescriptor{{Name: "shardA", Host: "dbA:27018"}})

	winner, err := picker.Pick(context.Background(), types.EmptyShard)
	require.NoError(t, err)
	assert.Equal(t, "shardA", winner.Name)
}

func TestPickNoShardsReturnsEmpty(t *testing.T) {
	picker, _, _ := newPickerFixture(t, nil)

	winner, err := picker.Pick(context.Background(), types.EmptyShard)
	require.NoError(t, err)
	assert.True(t, winner.IsEmpty())
}

func TestPickReloadFailurePropagates(t *testing.T) {
	source := topology.NewLocal()
	t.Cleanup(func() { _ = source.Close() })
	transportErr := errors.New("config server unreachable")
	source.SetError(transportErr)

	reg := shardgrid.NewRegistry(source)
	picker := policy.NewPicker(reg, testutil.NewFakeProber())

	_, err := picker.Pick(context.Background(), types.EmptyShard)
	require.ErrorIs(t, err, transportErr)
}

func TestPickExcludesDrainingShards(t *testing.T) {
	picker, _, prober := newPickerFixture(t, []types.RawShardDescriptor{
		{Name: "shardA", Host: "dbA:27018"},
		{Name: "shardB", Host: "dbB:27018", Draining: true},
	})
	prober.SetStatus("dbA:27018", 100*mb, "3.0.0")
	prober.SetStatus("dbB:27018", 1*mb, "3.0.0")

	// shardB is far less loaded but draining, so shardA wins.
	winner, err := picker.Pick(context.Background(), types.EmptyShard)
	require.NoError(t, err)
	assert.Equal(t, "shardA", winner.Name)
}

func TestPickAllDrainingReturnsEmpty(t *testing.T) {
	picker, _, _ := newPickerFixture(t, []types.RawShardDescriptor{
		{Name: "shardA", Host: "dbA:27018", Draining: true},
	})

	winner, err := picker.Pick(context.Background(), types.EmptyShard)
	require.NoError(t, err)
	assert.True(t, winner.IsEmpty())
}

func TestPickProbeFailureAborts(t *testing.T) {
	picker, _, prober := newPickerFixture(t, []types.RawShardDescriptor{
		{Name: "shardA", Host: "dbA:27018"},
		{Name: "shardB", Host: "dbB:27018"},
	})
	prober.SetStatus("dbA:27018", 10*mb, "3.0.0")
	probeErr := errors.New("shard unreachable")
	prober.SetError("dbB:27018", probeErr)

	_, err := picker.Pick(context.Background(), types.EmptyShard)
	require.ErrorIs(t, err, probeErr)
}

func TestPickVersionBreaksSizeTie(t *testing.T) {
	picker, _, prober := newPickerFixture(t, []types.RawShardDescriptor{
		{Name: "shardA", Host: "dbA:27018"},
		{Name: "shardB", Host: "dbB:27018"},
	})
	// Same size; shardB is mid-upgrade to a newer version, so shardA is
	// the safer placement target.
	prober.SetStatus("dbA:27018", 100*mb, "3.0.0")
	prober.SetStatus("dbB:27018", 100*mb, "3.1.0")

	winner, err := picker.Pick(context.Background(), types.EmptyShard)
	require.NoError(t, err)
	assert.Equal(t, "shardA", winner.Name)
}

func TestPickNameBreaksFullTie(t *testing.T) {
	picker, _, prober := newPickerFixture(t, []types.RawShardDescriptor{
		{Name: "shardB", Host: "dbB:27018"},
		{Name: "shardA", Host: "dbA:27018"},
	})
	prober.SetStatus("dbA:27018", 100*mb, "3.0.0")
	prober.SetStatus("dbB:27018", 100*mb, "3.0.0")

	winner, err := picker.Pick(context.Background(), types.EmptyShard)
	require.NoError(t, err)
	assert.Equal(t, "shardA", winner.Name)
}

func TestPickMetrics(t *testing.T) {
	source := topology.NewLocal()
	source.SetShards([]types.RawShardDescriptor{{Name: "shardA", Host: "dbA:27018"}})
	t.Cleanup(func() { _ = source.Close() })

	reg := shardgrid.NewRegistry(source)
	require.NoError(t, reg.Reload(context.Background()))

	prober := testutil.NewFakeProber()
	prober.SetError("dbA:27018", errors.New("down"))

	metrics := testutil.NewRecordingMetrics()
	picker := policy.NewPicker(reg, prober, policy.WithPickerMetrics(metrics))

	_, err := picker.Pick(context.Background(), types.EmptyShard)
	require.Error(t, err)
	assert.Equal(t, 1, metrics.PlacementTotal)
	assert.Equal(t, 1, metrics.PlacementErrors)
}
