package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticMembership []string

func (m staticMembership) Contains(host string) bool {
	for _, h := range m {
		if h == host {
			return true
		}
	}
	return false
}

type staticResolver map[string]staticMembership

func (r staticResolver) Resolve(setName string) (Membership, bool) {
	m, ok := r[setName]
	return m, ok
}

type captureLogger struct {
	warns []string
}

func (l *captureLogger) Debug(_ string, _ ...any) {}
func (l *captureLogger) Info(_ string, _ ...any)  {}
func (l *captureLogger) Warn(msg string, _ ...any) {
	l.warns = append(l.warns, msg)
}
func (l *captureLogger) Error(_ string, _ ...any) {}

func TestNewShardSingleHost(t *testing.T) {
	shard, err := NewShard("shard0", "db0:27018", 1024, false)
	require.NoError(t, err)

	assert.Equal(t, "shard0", shard.Name)
	assert.Equal(t, "db0:27018", shard.Address())
	assert.Equal(t, int64(1024), shard.MaxSizeMB)
	assert.False(t, shard.Draining)
	assert.False(t, shard.IsEmpty())
}

func TestNewShardReplicaSet(t *testing.T) {
	shard, err := NewShard("shard1", "rs1/db1:27018,db2:27018", 0, true)
	require.NoError(t, err)

	assert.True(t, shard.ConnString.IsReplicaSet())
	assert.Equal(t, "rs1", shard.ConnString.SetName)
	assert.True(t, shard.Draining)
}

func TestNewShardBadAddress(t *testing.T) {
	_, err := NewShard("shard0", "", 0, false)
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestEmptyShardComparesByName(t *testing.T) {
	assert.True(t, EmptyShard.IsEmpty())

	shard, err := NewShard("shard0", "db0:27018", 0, false)
	require.NoError(t, err)
	assert.False(t, shard.IsEmpty())
	assert.NotEqual(t, EmptyShard.Name, shard.Name)
}

func TestContainsNodeOwnAddress(t *testing.T) {
	shard, err := NewShard("shard0", "db0:27018", 0, false)
	require.NoError(t, err)

	logger := &captureLogger{}
	assert.True(t, shard.ContainsNode("db0:27018", staticResolver{}, logger))
	assert.False(t, shard.ContainsNode("other:27018", staticResolver{}, logger))
}

func TestContainsNodeReplicaSetMember(t *testing.T) {
	shard, err := NewShard("shard1", "rs1/db1:27018,db2:27018", 0, false)
	require.NoError(t, err)

	resolver := staticResolver{
		"rs1": staticMembership{"db1:27018", "db2:27018", "db3:27018"},
	}
	logger := &captureLogger{}

	// db3 is a live member reported by the monitor even though it is not
	// part of the configured connection string.
	assert.True(t, shard.ContainsNode("db3:27018", resolver, logger))
	assert.False(t, shard.ContainsNode("stranger:27018", resolver, logger))
	assert.Empty(t, logger.warns)
}

func TestContainsNodeUnresolvedSetSoftFails(t *testing.T) {
	shard, err := NewShard("shard1", "rs1/db1:27018,db2:27018", 0, false)
	require.NoError(t, err)

	logger := &captureLogger{}
	assert.False(t, shard.ContainsNode("db1:27018", staticResolver{}, logger))
	assert.Len(t, logger.warns, 1)
}

func TestShardCloneIndependence(t *testing.T) {
	shard, err := NewShard("shard1", "rs1/db1:27018,db2:27018", 0, false)
	require.NoError(t, err)

	clone := shard.Clone()
	clone.ConnString.Members[1] = "mutated"

	assert.Equal(t, "db2:27018", shard.ConnString.Members[1])
}

func TestRawShardDescriptorValidate(t *testing.T) {
	valid := RawShardDescriptor{Name: "shard0", Host: "db0:27018"}
	require.NoError(t, valid.Validate())

	noName := RawShardDescriptor{Host: "db0:27018"}
	err := noName.Validate()
	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	badHost := RawShardDescriptor{Name: "shard0", Host: "rs0/"}
	err = badHost.Validate()
	require.Error(t, err)
	assert.ErrorAs(t, err, &validationErr)
}

func TestShardStatusOrdering(t *testing.T) {
	mk := func(name string, size int64, version string) ShardStatus {
		return ShardStatus{
			Shard:         Shard{Name: name},
			DataSizeBytes: size,
			Version:       version,
		}
	}

	// Primary key: data size ascending.
	assert.True(t, mk("a", 50, "3.0.0").Less(mk("b", 100, "3.0.0")))
	assert.False(t, mk("b", 100, "3.0.0").Less(mk("a", 50, "3.0.0")))

	// Secondary key: prefer the not-newer version.
	assert.True(t, mk("a", 100, "2.8.0").Less(mk("b", 100, "3.0.0")))

	// Tertiary key: shard name for determinism.
	assert.True(t, mk("a", 100, "3.0.0").Less(mk("b", 100, "3.0.0")))
	assert.False(t, mk("b", 100, "3.0.0").Less(mk("a", 100, "3.0.0")))

	// Equal statuses are not strictly less.
	assert.False(t, mk("a", 100, "3.0.0").Less(mk("a", 100, "3.0.0")))
}

func TestConsistencyErrorUnwrapsSentinel(t *testing.T) {
	err := &ConsistencyError{Ident: "shard9"}
	assert.ErrorIs(t, err, ErrShardNotFound)
}
