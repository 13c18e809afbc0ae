package game

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/rs/zerolog"
)

// Engine is the authority for one board. Every entry point holds mu for its
// whole read-validate-write-detect-publish sequence, so two moves can never
// both see the same destination cell as empty.
type Engine struct {
	mu sync.Mutex

	store    BoardStore
	notifier Notifier
	renderer Renderer
	logger   zerolog.Logger

	width            int
	height           int
	startingPlayer   domain.Occupant
	reannounceWinner bool

	currentPlayer domain.Occupant
}

type Option func(*Engine)

// WithBoardSize sets the board dimensions; the store must use the same.
func WithBoardSize(width, height int) Option {
	return func(e *Engine) {
		e.width = width
		e.height = height
	}
}

func WithStartingPlayer(p domain.Occupant) Option {
	return func(e *Engine) {
		if p.IsPlayer() {
			e.startingPlayer = p
		}
	}
}

// WithReannounceWinner makes a move attempted after game over publish the
// winner banner again instead of being dropped without a trace.
func WithReannounceWinner(enabled bool) Option {
	return func(e *Engine) {
		e.reannounceWinner = enabled
	}
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.With().Str("component", "engine").Logger()
	}
}

func NewEngine(store BoardStore, opts ...Option) *Engine {
	e := &Engine{
		store:          store,
		notifier:       nopNotifier{},
		renderer:       nopRenderer{},
		logger:         zerolog.New(io.Discard),
		width:          domain.Columns,
		height:         domain.Rows,
		startingPlayer: domain.Players[0],
	}
	for _, opt := range opts {
		opt(e)
	}
	e.currentPlayer = e.startingPlayer
	return e
}

func (e *Engine) Width() int  { return e.width }
func (e *Engine) Height() int { return e.height }

// CurrentPlayer returns whose turn it is.
func (e *Engine) CurrentPlayer() domain.Occupant {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentPlayer
}

// View returns a consistent snapshot of board, turn and outcome.
func (e *Engine) View(ctx context.Context) (domain.BoardView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	board, err := e.store.Snapshot(ctx)
	if err != nil {
		return domain.BoardView{}, fmt.Errorf("failed to read board: %w", err)
	}
	return domain.NewBoardView(board, e.currentPlayer), nil
}

// Observe calls fn with the current view while holding the engine lock.
// Nothing can be published between the snapshot and fn returning, which is
// what a new observer needs to register without missing or reordering events.
func (e *Engine) Observe(ctx context.Context, fn func(domain.BoardView)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	board, err := e.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read board: %w", err)
	}
	fn(domain.NewBoardView(board, e.currentPlayer))
	return nil
}

// AttemptMove handles a click on (x, y). The piece falls from the clicked
// row to the lowest free cell below it. A move that cannot be played is
// returned as a rejected Result with no state change; the error is reserved
// for store failures.
func (e *Engine) AttemptMove(ctx context.Context, x, y int) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if x < 0 || x >= e.width || y < 0 || y >= e.height {
		return Rejected(domain.ErrOutOfRange), nil
	}

	occupant, err := e.store.Get(ctx, x, y)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read cell (%d,%d): %w", x, y, err)
	}
	if occupant != domain.Empty {
		return Rejected(domain.ErrCellOccupied), nil
	}

	board, err := e.store.Snapshot(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read board: %w", err)
	}

	if winner, over := domain.FindWinner(board); over {
		if !e.reannounceWinner {
			return Rejected(domain.ErrGameOver), nil
		}
		event := domain.WinnerAnnounced(winner, e.renderWinner(ctx, winner))
		e.notifier.Publish(event)
		return Rejected(domain.ErrGameOver, event), nil
	}

	y = board.LandingRow(x, y)
	player := e.currentPlayer

	if err := e.store.Set(ctx, x, y, player); err != nil {
		return Result{}, fmt.Errorf("failed to write cell (%d,%d): %w", x, y, err)
	}
	board[y][x] = player

	events := []domain.Event{
		domain.CellChanged(x, y, player, e.renderCell(ctx, x, y, player)),
	}

	if winner, over := domain.FindWinner(board); over {
		e.logger.Info().Str("winner", winner.String()).Int("x", x).Int("y", y).Msg("game won")
		events = append(events, domain.WinnerAnnounced(winner, e.renderWinner(ctx, winner)))
	} else {
		e.currentPlayer = domain.Opponent(player)
		events = append(events, domain.CurrentPlayerChanged(e.currentPlayer))
	}

	e.logger.Debug().Str("player", player.String()).Int("x", x).Int("y", y).Msg("move accepted")
	e.notifier.Publish(events...)
	return Accepted(events...), nil
}

// Reset clears the board and hands the turn back to the starting player.
func (e *Engine) Reset(ctx context.Context) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Reset(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to reset board: %w", err)
	}
	e.currentPlayer = e.startingPlayer

	view := domain.NewBoardView(domain.NewBoard(e.width, e.height), e.currentPlayer)
	html, err := e.renderer.Home(ctx, view)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to render board")
	}

	event := domain.HomeReplaced(view, html)
	e.logger.Info().Msg("board reset")
	e.notifier.Publish(event)
	return Accepted(event), nil
}

func (e *Engine) renderCell(ctx context.Context, x, y int, occupant domain.Occupant) string {
	html, err := e.renderer.Cell(ctx, x, y, occupant)
	if err != nil {
		e.logger.Error().Err(err).Int("x", x).Int("y", y).Msg("failed to render cell")
	}
	return html
}

func (e *Engine) renderWinner(ctx context.Context, winner domain.Occupant) string {
	html, err := e.renderer.Winner(ctx, winner)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to render winner")
	}
	return html
}
