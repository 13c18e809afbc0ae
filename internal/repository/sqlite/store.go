// Package sqlite provides a SQLite-backed board store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iamasit07/four-chain/backend/internal/domain"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store persists one row per occupied cell in SQLite.
type Store struct {
	sqlDB  *sql.DB
	width  int
	height int
}

// Open opens a SQLite board store and applies the schema.
func Open(ctx context.Context, path string, width, height int) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one writer keeps SQLite from returning SQLITE_BUSY under load
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, width: width, height: height}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *Store) Get(ctx context.Context, x, y int) (domain.Occupant, error) {
	if !s.inBounds(x, y) {
		return domain.Empty, nil
	}

	var player string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT player FROM cell WHERE id = ?`, domain.CellID(x, y, s.width)).Scan(&player)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Empty, nil
	}
	if err != nil {
		return domain.Empty, fmt.Errorf("get cell: %w", err)
	}
	return domain.OccupantFromRecord(player), nil
}

func (s *Store) Set(ctx context.Context, x, y int, occupant domain.Occupant) error {
	if !s.inBounds(x, y) {
		return domain.ErrOutOfRange
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO cell (id, player) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET player = excluded.player, updated_at = CURRENT_TIMESTAMP
`, domain.CellID(x, y, s.width), string(occupant))
	if err != nil {
		return fmt.Errorf("upsert cell: %w", err)
	}
	return nil
}

func (s *Store) Snapshot(ctx context.Context) (domain.Board, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, player FROM cell`)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	board := domain.NewBoard(s.width, s.height)
	for rows.Next() {
		var (
			id     int
			player string
		)
		if err := rows.Scan(&id, &player); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		board.PlaceRecord(id, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cells: %w", err)
	}
	return board, nil
}

func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cell`); err != nil {
		return fmt.Errorf("clear cells: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}
