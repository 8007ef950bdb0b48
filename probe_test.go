package shardgrid_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/shardgrid"
	"github.com/arloliu/shardgrid/test/testutil"
	"github.com/arloliu/shardgrid/types"
)

func TestCommandProberDataSize(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.SetReply("listDatabases", shardgrid.Document{"totalSize": int64(52428800)})

	prober := shardgrid.NewCommandProber(runner)

	size, err := prober.DataSizeBytes(context.Background(), "db0:27018")
	require.NoError(t, err)
	assert.Equal(t, int64(52428800), size)
}

func TestCommandProberDataSizeFloatReply(t *testing.T) {
	// JSON-decoding transports deliver numbers as float64.
	runner := testutil.NewFakeRunner()
	runner.SetReply("listDatabases", shardgrid.Document{"totalSize": float64(1048576)})

	prober := shardgrid.NewCommandProber(runner)

	size, err := prober.DataSizeBytes(context.Background(), "db0:27018")
	require.NoError(t, err)
	assert.Equal(t, int64(1048576), size)
}

func TestCommandProberDataSizeMissingField(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.SetReply("listDatabases", shardgrid.Document{"ok": 1})

	prober := shardgrid.NewCommandProber(runner)

	_, err := prober.DataSizeBytes(context.Background(), "db0:27018")
	require.Error(t, err)

	var shardErr *types.ShardError
	require.ErrorAs(t, err, &shardErr)
	assert.Equal(t, "listDatabases", shardErr.Op)
	assert.Equal(t, "db0:27018", shardErr.Host)
}

func TestCommandProberVersion(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.SetReply("serverStatus", shardgrid.Document{"version": "3.0.2"})

	prober := shardgrid.NewCommandProber(runner)

	version, err := prober.Version(context.Background(), "db0:27018")
	require.NoError(t, err)
	assert.Equal(t, "3.0.2", version)
}

func TestCommandProberVersionMistyped(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.SetReply("serverStatus", shardgrid.Document{"version": 302})

	prober := shardgrid.NewCommandProber(runner)

	_, err := prober.Version(context.Background(), "db0:27018")
	require.Error(t, err)

	var shardErr *types.ShardError
	assert.ErrorAs(t, err, &shardErr)
}

func TestCommandProberTransportError(t *testing.T) {
	runner := testutil.NewFakeRunner()
	transportErr := errors.New("connection refused")
	runner.SetError("listDatabases", transportErr)

	prober := shardgrid.NewCommandProber(runner)

	_, err := prober.DataSizeBytes(context.Background(), "db0:27018")
	require.ErrorIs(t, err, transportErr)
}

func TestCommandProberCommandRejected(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.SetCommandFailure("serverStatus")

	prober := shardgrid.NewCommandProber(runner)

	_, err := prober.Version(context.Background(), "db0:27018")
	require.Error(t, err)

	var shardErr *types.ShardError
	assert.ErrorAs(t, err, &shardErr)
}

func TestCommandProberBadHost(t *testing.T) {
	prober := shardgrid.NewCommandProber(testutil.NewFakeRunner())

	_, err := prober.DataSizeBytes(context.Background(), "rs0/")
	require.Error(t, err)

	var parseErr *types.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestCommandProberMetrics(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.SetReply("listDatabases", shardgrid.Document{"totalSize": int64(1)})

	metrics := testutil.NewRecordingMetrics()
	prober := shardgrid.NewCommandProber(runner, shardgrid.WithProberMetrics(metrics))

	_, err := prober.DataSizeBytes(context.Background(), "db0:27018")
	require.NoError(t, err)
	assert.Len(t, metrics.ProbeDurations, 1)
}
