package redis

import (
	"testing"

	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/iamasit07/four-chain/backend/internal/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellStore(t *testing.T) {
	ctx, client := suite.NewRedis(t)
	store := NewCellStore(client, "", domain.Columns, domain.Rows)

	// Given: an empty board
	board, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, board.IsEmpty())

	// When: cells are written
	require.NoError(t, store.Set(ctx, 3, 5, domain.Yellow))
	require.NoError(t, store.Set(ctx, 3, 4, domain.Red))

	// Then: they are stored under their cell ids
	player, err := client.HGet(ctx, DefaultBoardKey, "38").Result()
	require.NoError(t, err)
	assert.Equal(t, "yellow", player)

	got, err := store.Get(ctx, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.Red, got)

	got, err = store.Get(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, got)

	board, err = store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Yellow, board[5][3])
	assert.Equal(t, domain.Red, board[4][3])

	// When: a field holds a token the game does not know
	require.NoError(t, client.HSet(ctx, DefaultBoardKey, "4", "green").Err())

	// Then: Get and Snapshot both read it as empty
	got, err = store.Get(ctx, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, got)
	board, err = store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, board[0][4])

	// When: the board is reset
	require.NoError(t, store.Reset(ctx))

	board, err = store.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, board.IsEmpty())
}

func TestCellStore_OutOfRange(t *testing.T) {
	ctx, client := suite.NewRedis(t)
	store := NewCellStore(client, "test:board", domain.Columns, domain.Rows)

	got, err := store.Get(ctx, -1, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, got)

	assert.ErrorIs(t, store.Set(ctx, domain.Columns, 0, domain.Red), domain.ErrOutOfRange)
}
