package memory

import (
	"context"
	"testing"

	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore(domain.Columns, domain.Rows)

	// Given: one written cell
	require.NoError(t, store.Set(ctx, 3, 5, domain.Yellow))

	// Then: reads and snapshots agree
	got, err := store.Get(ctx, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.Yellow, got)

	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Yellow, snapshot[5][3])
	assert.Equal(t, 1, snapshot.Count(domain.Yellow))

	// snapshots are copies
	snapshot[0][0] = domain.Red
	got, err = store.Get(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, got)

	// When: reset
	require.NoError(t, store.Reset(ctx))

	snapshot, err = store.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())
	assert.Equal(t, domain.Columns, snapshot.Width())
	assert.Equal(t, domain.Rows, snapshot.Height())
}

func TestStore_OutOfRange(t *testing.T) {
	ctx := context.Background()
	store := NewStore(domain.Columns, domain.Rows)

	got, err := store.Get(ctx, -1, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, got)

	err = store.Set(ctx, domain.Columns, 0, domain.Red)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}
