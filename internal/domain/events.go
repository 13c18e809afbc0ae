package domain

type EventKind string

const (
	EventCellChanged          EventKind = "cell_changed"
	EventCurrentPlayerChanged EventKind = "current_player_changed"
	EventBoardReplaced        EventKind = "board_replaced"
)

// Targets of a BoardReplaced event.
const (
	TargetHome      = "home"
	TargetWinnerBox = "winner-box"
)

// Event is one change produced by the engine, in emission order.
// Which fields are set depends on Kind.
type Event struct {
	Kind     EventKind
	X, Y     int
	Occupant Occupant
	Player   Occupant
	Winner   Occupant
	Target   string
	Board    Board
	HTML     string
}

func CellChanged(x, y int, occupant Occupant, html string) Event {
	return Event{Kind: EventCellChanged, X: x, Y: y, Occupant: occupant, HTML: html}
}

func CurrentPlayerChanged(player Occupant) Event {
	return Event{Kind: EventCurrentPlayerChanged, Player: player}
}

// WinnerAnnounced replaces the winner box with the rendered banner.
func WinnerAnnounced(winner Occupant, html string) Event {
	return Event{Kind: EventBoardReplaced, Target: TargetWinnerBox, Winner: winner, HTML: html}
}

// HomeReplaced carries a full re-render of the home view.
func HomeReplaced(view BoardView, html string) Event {
	return Event{
		Kind:   EventBoardReplaced,
		Target: TargetHome,
		Board:  view.Board.Copy(),
		Player: view.CurrentPlayer,
		Winner: view.Winner,
		HTML:   html,
	}
}

func (e Event) IsWinnerAnnouncement() bool {
	return e.Kind == EventBoardReplaced && e.Target == TargetWinnerBox
}
