package domain

// BoardView is a consistent point-in-time view of the game: the board, whose
// turn it is and the derived outcome.
type BoardView struct {
	Board         Board
	CurrentPlayer Occupant
	Winner        Occupant
}

// NewBoardView derives the outcome from the board so the winner is never
// stored separately from the cells it comes from.
func NewBoardView(board Board, current Occupant) BoardView {
	winner, _ := FindWinner(board)
	return BoardView{
		Board:         board,
		CurrentPlayer: current,
		Winner:        winner,
	}
}

func (v BoardView) IsFinished() bool {
	return v.Winner != Empty
}

// CanClick reports whether a click on (x, y) could be accepted right now.
func (v BoardView) CanClick(x, y int) bool {
	return !v.IsFinished() && v.Board.InBounds(x, y) && v.Board.At(x, y) == Empty
}
