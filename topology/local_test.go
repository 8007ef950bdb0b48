package topology_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/shardgrid/topology"
	"github.com/arloliu/shardgrid/types"
)

func TestLocalListShardsEmpty(t *testing.T) {
	source := topology.NewLocal()
	defer source.Close()

	shards, err := source.ListShards(context.Background())
	require.NoError(t, err)
	assert.Empty(t, shards)
}

func TestLocalSetShards(t *testing.T) {
	source := topology.NewLocal()
	defer source.Close()

	source.SetShards([]types.RawShardDescriptor{
		{Name: "shard0", Host: "db0:27018"},
		{Name: "shard1", Host: "rs1/db1a:27018,db1b:27018"},
	})

	shards, err := source.ListShards(context.Background())
	require.NoError(t, err)
	require.Len(t, shards, 2)
	assert.Equal(t, "shard0", shards[0].Name)
	assert.Equal(t, "rs1/db1a:27018,db1b:27018", shards[1].Host)
}

func TestLocalListShardsReturnsCopy(t *testing.T) {
	source := topology.NewLocal()
	defer source.Close()

	source.SetShards([]types.RawShardDescriptor{{Name: "shard0", Host: "db0:27018"}})

	shards, err := source.ListShards(context.Background())
	require.NoError(t, err)
	shards[0].Name = "mutated"

	again, err := source.ListShards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shard0", again[0].Name)
}

func TestLocalSetDraining(t *testing.T) {
	source := topology.NewLocal()
	defer source.Close()

	source.SetShards([]types.RawShardDescriptor{{Name: "shard0", Host: "db0:27018"}})
	source.SetDraining("shard0", true)

	shards, err := source.ListShards(context.Background())
	require.NoError(t, err)
	assert.True(t, shards[0].Draining)

	// Unknown names are ignored.
	source.SetDraining("ghost", true)
}

func TestLocalSetError(t *testing.T) {
	source := topology.NewLocal()
	defer source.Close()

	transportErr := errors.New("boom")
	source.SetError(transportErr)

	_, err := source.ListShards(context.Background())
	require.ErrorIs(t, err, transportErr)

	source.SetError(nil)
	_, err = source.ListShards(context.Background())
	require.NoError(t, err)
}

func TestLocalWatchEmitsOnChange(t *testing.T) {
	source := topology.NewLocal()
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notices := source.Watch(ctx)

	source.SetShards([]types.RawShardDescriptor{{Name: "shard0", Host: "db0:27018"}})

	select {
	case _, ok := <-notices:
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notice")
	}

	// A no-op drain flip emits nothing new.
	source.SetDraining("shard0", false)

	select {
	case notice := <-notices:
		t.Fatalf("unexpected notice: %+v", notice)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLocalWatchClosedOnClose(t *testing.T) {
	source := topology.NewLocal()

	notices := source.Watch(context.Background())
	require.NoError(t, source.Close())

	select {
	case _, ok := <-notices:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed")
	}
}
