package domain

// Board is a Height x Width grid indexed board[y][x]; row 0 is the top.
type Board [][]Occupant

func NewBoard(width, height int) Board {
	board := make(Board, height)
	for y := range board {
		board[y] = make([]Occupant, width)
		for x := range board[y] {
			board[y][x] = Empty
		}
	}
	return board
}

func (b Board) Height() int {
	return len(b)
}

func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// InBounds reports whether (x, y) is a cell of the board.
func (b Board) InBounds(x, y int) bool {
	return y >= 0 && y < len(b) && x >= 0 && x < len(b[y])
}

// At returns the occupant at (x, y). Coordinates outside the board read as
// Empty; the win detector and the gravity scan rely on that.
func (b Board) At(x, y int) Occupant {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b[y][x]
}

// this creates a deep copy of the board
func (b Board) Copy() Board {
	newBoard := make(Board, len(b))
	for y := range b {
		newBoard[y] = make([]Occupant, len(b[y]))
		copy(newBoard[y], b[y])
	}
	return newBoard
}

// IsEmpty reports whether no cell holds a token.
func (b Board) IsEmpty() bool {
	for _, row := range b {
		for _, cell := range row {
			if cell != Empty {
				return false
			}
		}
	}
	return true
}

// Count returns how many cells hold p.
func (b Board) Count(p Occupant) int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == p {
				n++
			}
		}
	}
	return n
}

// LandingRow applies gravity from the clicked row downwards: the piece keeps
// falling while both the current cell and the one below are empty. It never
// scans upwards, so a click below the top only falls as far as is free.
func (b Board) LandingRow(x, y int) int {
	for y+1 < b.Height() && b.At(x, y) == Empty && b.At(x, y+1) == Empty {
		y++
	}
	return y
}

// CellID is the persistence key of (x, y) for a board of the given width.
func CellID(x, y, width int) int {
	return y*width + x
}

// CellCoord is the inverse of CellID.
func CellCoord(id, width int) (x, y int) {
	return id % width, id / width
}

// PlaceRecord writes a persisted (id, token) pair into the board. Records
// that do not map onto the board are skipped and reported as false. Unknown
// tokens read as Empty, see OccupantFromRecord.
func (b Board) PlaceRecord(id int, token string) bool {
	x, y := CellCoord(id, b.Width())
	if id < 0 || !b.InBounds(x, y) {
		return false
	}
	b[y][x] = OccupantFromRecord(token)
	return true
}
