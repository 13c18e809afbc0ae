package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_At(t *testing.T) {
	board := NewBoard(Columns, Rows)
	board[5][3] = Yellow

	assert.Equal(t, Yellow, board.At(3, 5))
	assert.Equal(t, Empty, board.At(3, 4))

	for _, c := range []cell{{-1, 0}, {0, -1}, {Columns, 0}, {0, Rows}, {100, 100}} {
		assert.Equal(t, Empty, board.At(c.x, c.y), "out of range %v", c)
	}
}

func TestBoard_LandingRow(t *testing.T) {
	t.Run("falls to the bottom of an empty column", func(t *testing.T) {
		board := NewBoard(Columns, Rows)

		assert.Equal(t, Rows-1, board.LandingRow(2, 0))
	})

	t.Run("stops on top of the stack", func(t *testing.T) {
		board := NewBoard(Columns, Rows)
		board[5][2] = Red
		board[4][2] = Yellow

		assert.Equal(t, 3, board.LandingRow(2, 0))
	})

	t.Run("stays put when the cell below is taken", func(t *testing.T) {
		board := NewBoard(Columns, Rows)
		board[3][2] = Red

		assert.Equal(t, 2, board.LandingRow(2, 2))
	})

	t.Run("never scans upwards", func(t *testing.T) {
		board := NewBoard(Columns, Rows)

		assert.Equal(t, Rows-1, board.LandingRow(0, Rows-1))
	})
}

func TestCellID(t *testing.T) {
	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			id := CellID(x, y, Columns)
			gx, gy := CellCoord(id, Columns)
			require.Equal(t, x, gx)
			require.Equal(t, y, gy)
		}
	}
	assert.Equal(t, 38, CellID(3, 5, 7))
}

func TestParseOccupant(t *testing.T) {
	for _, s := range []string{"yellow", "red", "empty"} {
		o, err := ParseOccupant(s)
		require.NoError(t, err)
		assert.Equal(t, Occupant(s), o)
	}

	o, err := ParseOccupant("")
	require.NoError(t, err)
	assert.Equal(t, Empty, o)

	_, err = ParseOccupant("green")
	assert.ErrorIs(t, err, ErrUnknownOccupant)
}

func TestOccupantFromRecord(t *testing.T) {
	assert.Equal(t, Yellow, OccupantFromRecord("yellow"))
	assert.Equal(t, Red, OccupantFromRecord("red"))
	assert.Equal(t, Empty, OccupantFromRecord(""))
	assert.Equal(t, Empty, OccupantFromRecord("green"))
}

func TestBoard_PlaceRecord(t *testing.T) {
	b := NewBoard(Columns, Rows)

	assert.True(t, b.PlaceRecord(CellID(3, 5, Columns), "red"))
	assert.Equal(t, Red, b[5][3])

	// an unknown token clears the slot just as Get reports it
	assert.True(t, b.PlaceRecord(CellID(3, 5, Columns), "green"))
	assert.Equal(t, Empty, b[5][3])

	assert.False(t, b.PlaceRecord(-1, "red"))
	assert.False(t, b.PlaceRecord(Columns*Rows, "red"))
	assert.True(t, b.IsEmpty())
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, Red, Opponent(Yellow))
	assert.Equal(t, Yellow, Opponent(Red))
	assert.Equal(t, Yellow, Opponent(Empty))
}

func TestNewServerMessage(t *testing.T) {
	msg := NewServerMessage(CellChanged(0, 5, Red, "<span></span>"))

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"cell_changed","cell":{"x":0,"y":5,"occupant":"red"},"html":"<span></span>"}`, string(data))

	msg = NewServerMessage(WinnerAnnounced(Yellow, "banner"))
	assert.Equal(t, "board_replaced", msg.Type)
	assert.Equal(t, TargetWinnerBox, msg.Target)
	assert.Equal(t, Yellow, msg.Winner)
	assert.Nil(t, msg.Cell)
}
