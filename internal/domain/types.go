package domain

// Occupant is the content of a board cell: a player's token or Empty.
type Occupant string

const (
	Empty  Occupant = "empty"
	Yellow Occupant = "yellow"
	Red    Occupant = "red"
)

// Players lists the tokens in turn order; Players[0] starts by default.
var Players = [2]Occupant{Yellow, Red}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// IsPlayer reports whether o is one of the two player tokens.
func (o Occupant) IsPlayer() bool {
	return o == Yellow || o == Red
}

func (o Occupant) String() string {
	return string(o)
}

// ParseOccupant maps a stored token back to an Occupant.
// The empty string is treated as Empty.
func ParseOccupant(s string) (Occupant, error) {
	switch Occupant(s) {
	case Yellow, Red, Empty:
		return Occupant(s), nil
	case "":
		return Empty, nil
	}
	return Empty, ErrUnknownOccupant
}

// OccupantFromRecord reads a persisted token. Unknown tokens read as Empty,
// the same as a missing record.
func OccupantFromRecord(token string) Occupant {
	o, err := ParseOccupant(token)
	if err != nil {
		return Empty
	}
	return o
}

// Opponent returns the other player. Anything that is not a player maps to
// the first player so a corrupt turn state heals on the next toggle.
func Opponent(p Occupant) Occupant {
	if p == Players[0] {
		return Players[1]
	}
	return Players[0]
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrCellOccupied    Error = "cell is occupied"
	ErrGameOver        Error = "game is over"
	ErrOutOfRange      Error = "coordinate out of range"
	ErrUnknownOccupant Error = "unknown occupant"
)
