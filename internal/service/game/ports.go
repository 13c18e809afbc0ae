package game

import (
	"context"

	"github.com/iamasit07/four-chain/backend/internal/domain"
)

// BoardStore owns the cell data of one board.
//
// Get never fails for coordinates outside the board: they read as Empty.
// Set outside the board is a programming error and returns
// domain.ErrOutOfRange. Snapshot and Reset are each a single atomic step.
type BoardStore interface {
	Get(ctx context.Context, x, y int) (domain.Occupant, error)
	Set(ctx context.Context, x, y int, occupant domain.Occupant) error
	Snapshot(ctx context.Context) (domain.Board, error)
	Reset(ctx context.Context) error
}

// Notifier delivers events to every connected observer. Publish must not
// block: the engine calls it while holding its lock.
type Notifier interface {
	Publish(events ...domain.Event)
}

// Renderer turns board state into the display fragments carried by events.
type Renderer interface {
	Home(ctx context.Context, view domain.BoardView) (string, error)
	Cell(ctx context.Context, x, y int, occupant domain.Occupant) (string, error)
	Winner(ctx context.Context, winner domain.Occupant) (string, error)
}

type nopNotifier struct{}

func (nopNotifier) Publish(...domain.Event) {}

type nopRenderer struct{}

func (nopRenderer) Home(context.Context, domain.BoardView) (string, error)         { return "", nil }
func (nopRenderer) Cell(context.Context, int, int, domain.Occupant) (string, error) { return "", nil }
func (nopRenderer) Winner(context.Context, domain.Occupant) (string, error)         { return "", nil }
