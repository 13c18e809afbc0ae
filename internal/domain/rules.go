package domain

type offset struct {
	dx, dy int
}

// winMasks holds one offset triple per half-axis. A line of four is the
// origin cell plus the three cells of one mask.
var winMasks = [8][ToWin - 1]offset{
	// down
	{{0, 1}, {0, 2}, {0, 3}},
	// up
	{{0, -1}, {0, -2}, {0, -3}},
	// right
	{{1, 0}, {2, 0}, {3, 0}},
	// left
	{{-1, 0}, {-2, 0}, {-3, 0}},
	// \ direction
	{{1, 1}, {2, 2}, {3, 3}},
	{{-1, -1}, {-2, -2}, {-3, -3}},
	// / direction
	{{-1, 1}, {-2, 2}, {-3, 3}},
	{{1, -1}, {2, -2}, {3, -3}},
}

// FindWinner scans the board row-major (y ascending, then x) and returns the
// first player that owns four in a row from some origin cell. The board is
// re-scanned from scratch on every call.
func FindWinner(board Board) (Occupant, bool) {
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			if winnerFrom(board, x, y) {
				return board[y][x], true
			}
		}
	}
	return Empty, false
}

func winnerFrom(board Board, cx, cy int) bool {
	player := board.At(cx, cy)
	if player == Empty {
		return false
	}

	for _, mask := range winMasks {
		matched := 0
		for _, o := range mask {
			if board.At(cx+o.dx, cy+o.dy) != player {
				break
			}
			matched++
		}
		if matched == len(mask) {
			return true
		}
	}
	return false
}
