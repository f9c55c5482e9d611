package dnp3

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTableLRUBound(t *testing.T) {
	table, err := NewTable(4, 64, discardLogger())
	require.NoError(t, err)

	for i := uint16(1); i <= 5; i++ {
		_, err := table.Lookup(i, i+100)
		require.NoError(t, err)
	}

	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []AddrPair{
		{5, 105},
		{4, 104},
		{3, 103},
		{2, 102},
	}, table.Snapshot())
}

func TestTableReclaimedPairGetsFreshContext(t *testing.T) {
	table, err := NewTable(1, 64, discardLogger())
	require.NoError(t, err)

	first, err := table.Lookup(1, 2)
	require.NoError(t, err)
	first.n = 10
	first.buf[0] = 0xFF
	originalID := first.ID()

	second, err := table.Lookup(3, 4)
	require.NoError(t, err)

	assert.Same(t, first, second, "the sole slot should be reused in place")
	assert.Zero(t, second.n)
	assert.NotEqual(t, originalID, second.ID())
}

func TestTableLookupHitMovesToFront(t *testing.T) {
	table, err := NewTable(3, 64, discardLogger())
	require.NoError(t, err)

	_, err = table.Lookup(1, 1)
	require.NoError(t, err)
	_, err = table.Lookup(2, 2)
	require.NoError(t, err)
	_, err = table.Lookup(1, 1) // re-touch the first pair
	require.NoError(t, err)

	assert.Equal(t, []AddrPair{{1, 1}, {2, 2}}, table.Snapshot())
}

func TestTableSnapshotOldestFirstIsReverseOfSnapshot(t *testing.T) {
	table, err := NewTable(4, 64, discardLogger())
	require.NoError(t, err)

	for i := uint16(1); i <= 3; i++ {
		_, err := table.Lookup(i, i+100)
		require.NoError(t, err)
	}

	mru := table.Snapshot()
	lru := table.SnapshotOldestFirst()
	require.Len(t, lru, len(mru))
	for i := range mru {
		assert.Equal(t, mru[i], lru[len(lru)-1-i])
	}
}

func TestTableLogsOverflowOnNonEmptyReclaim(t *testing.T) {
	var logs bytes.Buffer
	table, err := NewTable(1, 64, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	ctx, err := table.Lookup(1, 2)
	require.NoError(t, err)
	ctx.n = 5 // simulate unconsumed raw bytes

	_, err = table.Lookup(3, 4)
	require.NoError(t, err) // reclamation itself must not fail; logging is a side effect only
	assert.Contains(t, logs.String(), "dropped_bytes=5")
}
