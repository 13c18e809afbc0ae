package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct {
	x, y int
}

func boardWith(p Occupant, cells ...cell) Board {
	board := NewBoard(Columns, Rows)
	for _, c := range cells {
		board[c.y][c.x] = p
	}
	return board
}

func TestFindWinner(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		winner, ok := FindWinner(NewBoard(Columns, Rows))

		assert.False(t, ok)
		assert.Equal(t, Empty, winner)
	})

	t.Run("horizontal", func(t *testing.T) {
		board := boardWith(Yellow, cell{2, 5}, cell{3, 5}, cell{4, 5}, cell{5, 5})

		winner, ok := FindWinner(board)

		require.True(t, ok)
		assert.Equal(t, Yellow, winner)
	})

	t.Run("vertical", func(t *testing.T) {
		board := boardWith(Red, cell{6, 2}, cell{6, 3}, cell{6, 4}, cell{6, 5})

		winner, ok := FindWinner(board)

		require.True(t, ok)
		assert.Equal(t, Red, winner)
	})

	t.Run("diagonal rising to the right", func(t *testing.T) {
		board := boardWith(Red, cell{0, 5}, cell{1, 4}, cell{2, 3}, cell{3, 2})

		winner, ok := FindWinner(board)

		require.True(t, ok)
		assert.Equal(t, Red, winner)
	})

	t.Run("diagonal falling to the right", func(t *testing.T) {
		board := boardWith(Yellow, cell{3, 0}, cell{4, 1}, cell{5, 2}, cell{6, 3})

		winner, ok := FindWinner(board)

		require.True(t, ok)
		assert.Equal(t, Yellow, winner)
	})

	t.Run("three in a row is not a win", func(t *testing.T) {
		board := boardWith(Yellow, cell{0, 5}, cell{1, 5}, cell{2, 5})

		_, ok := FindWinner(board)

		assert.False(t, ok)
	})

	t.Run("line broken by the other player", func(t *testing.T) {
		board := boardWith(Yellow, cell{0, 5}, cell{1, 5}, cell{3, 5}, cell{4, 5})
		board[5][2] = Red

		_, ok := FindWinner(board)

		assert.False(t, ok)
	})

	t.Run("line does not wrap across rows", func(t *testing.T) {
		board := boardWith(Red, cell{5, 2}, cell{6, 2}, cell{0, 3}, cell{1, 3})

		_, ok := FindWinner(board)

		assert.False(t, ok)
	})
}

func TestFindWinner_FirstLineInScanOrderWins(t *testing.T) {
	// red's line starts on row 1, yellow's on row 5: the row-major scan
	// reaches red first.
	board := boardWith(Yellow, cell{0, 5}, cell{1, 5}, cell{2, 5}, cell{3, 5})
	for y := 1; y <= 4; y++ {
		board[y][6] = Red
	}

	winner, ok := FindWinner(board)

	require.True(t, ok)
	assert.Equal(t, Red, winner)
}

func TestFindWinner_DetectedFromAnyCellOfTheRun(t *testing.T) {
	run := []cell{{1, 3}, {2, 3}, {3, 3}, {4, 3}}

	// each iteration treats a different cell of the run as the most recent
	// move: the board is built without it, checked, then completed.
	for i := range run {
		var others []cell
		for j, c := range run {
			if j != i {
				others = append(others, c)
			}
		}
		board := boardWith(Yellow, others...)

		_, ok := FindWinner(board)
		require.False(t, ok)

		board[run[i].y][run[i].x] = Yellow
		winner, ok := FindWinner(board)
		require.True(t, ok, "last placed cell %v", run[i])
		assert.Equal(t, Yellow, winner)
	}
}

func TestFindWinner_OtherBoardSizes(t *testing.T) {
	board := NewBoard(4, 4)
	for x := 0; x < 4; x++ {
		board[x][x] = Red
	}

	winner, ok := FindWinner(board)

	require.True(t, ok)
	assert.Equal(t, Red, winner)
}
