package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "board.db"), domain.Columns, domain.Rows)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ", domain.Columns, domain.Rows)
	require.Error(t, err)
}

func TestStore_SetGetSnapshot(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	// Given: two written cells, one overwritten
	require.NoError(t, store.Set(ctx, 3, 5, domain.Yellow))
	require.NoError(t, store.Set(ctx, 6, 0, domain.Yellow))
	require.NoError(t, store.Set(ctx, 6, 0, domain.Red))

	// Then: reads reflect the last write and unwritten cells are empty
	got, err := store.Get(ctx, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.Yellow, got)

	got, err = store.Get(ctx, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Red, got)

	got, err = store.Get(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, got)

	board, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Yellow, board[5][3])
	assert.Equal(t, domain.Red, board[0][6])
	assert.Equal(t, 2, board.Count(domain.Yellow)+board.Count(domain.Red))
}

func TestStore_PersistsCellIDs(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Set(ctx, 3, 5, domain.Yellow))

	var player string
	err := store.sqlDB.QueryRowContext(ctx, `SELECT player FROM cell WHERE id = ?`, 5*domain.Columns+3).Scan(&player)
	require.NoError(t, err)
	assert.Equal(t, "yellow", player)
}

func TestStore_IgnoresForeignRows(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.sqlDB.ExecContext(ctx, `INSERT INTO cell (id, player) VALUES (?, ?), (?, ?)`,
		domain.Columns*domain.Rows+3, "red", 4, "green")
	require.NoError(t, err)

	board, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, board.IsEmpty())

	got, err := store.Get(ctx, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, got)
	assert.Equal(t, board[0][4], got)
}

func TestStore_OutOfRange(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	got, err := store.Get(ctx, 9, -2)
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, got)

	assert.ErrorIs(t, store.Set(ctx, 0, domain.Rows, domain.Red), domain.ErrOutOfRange)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Set(ctx, 0, 5, domain.Yellow))
	require.NoError(t, store.Set(ctx, 1, 5, domain.Red))

	require.NoError(t, store.Reset(ctx))
	require.NoError(t, store.Reset(ctx))

	board, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, board.IsEmpty())
	require.NoError(t, store.Ping(ctx))
}
