package domain

// ClientMessage is what an observer sends over the websocket.
type ClientMessage struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

const (
	ClientClickCell  = "click_cell"
	ClientResetBoard = "reset_board"
	ClientSync       = "sync"
)

type CellUpdate struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Occupant Occupant `json:"occupant"`
}

// ServerMessage is the wire form of an Event, plus the "error" type that is
// only ever sent to a single observer.
type ServerMessage struct {
	Type    string      `json:"type"`
	Cell    *CellUpdate `json:"cell,omitempty"`
	Player  Occupant    `json:"player,omitempty"`
	Winner  Occupant    `json:"winner,omitempty"`
	Target  string      `json:"target,omitempty"`
	Board   Board       `json:"board,omitempty"`
	HTML    string      `json:"html,omitempty"`
	Message string      `json:"message,omitempty"`
}

const ServerError = "error"

func NewServerMessage(e Event) ServerMessage {
	msg := ServerMessage{Type: string(e.Kind), HTML: e.HTML}
	switch e.Kind {
	case EventCellChanged:
		msg.Cell = &CellUpdate{X: e.X, Y: e.Y, Occupant: e.Occupant}
	case EventCurrentPlayerChanged:
		msg.Player = e.Player
	case EventBoardReplaced:
		msg.Target = e.Target
		msg.Board = e.Board
		msg.Player = e.Player
		if e.Winner != Empty {
			msg.Winner = e.Winner
		}
	}
	return msg
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
