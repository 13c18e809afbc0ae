// Package memory keeps the board in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/iamasit07/four-chain/backend/internal/domain"
)

type Store struct {
	mu    sync.RWMutex
	board domain.Board
}

func NewStore(width, height int) *Store {
	return &Store{board: domain.NewBoard(width, height)}
}

func (s *Store) Get(_ context.Context, x, y int) (domain.Occupant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.At(x, y), nil
}

func (s *Store) Set(_ context.Context, x, y int, occupant domain.Occupant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.board.InBounds(x, y) {
		return domain.ErrOutOfRange
	}
	s.board[y][x] = occupant
	return nil
}

func (s *Store) Snapshot(_ context.Context) (domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Copy(), nil
}

// Reset swaps in a fresh board under the write lock, so a concurrent
// Snapshot sees either the old board or the empty one.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = domain.NewBoard(s.board.Width(), s.board.Height())
	return nil
}
