package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iamasit07/four-chain/backend/internal/domain"
)

// CellRepo stores one row per occupied cell of a single board.
type CellRepo struct {
	DB     *sql.DB
	width  int
	height int
}

func NewCellRepo(db *sql.DB, width, height int) *CellRepo {
	return &CellRepo{DB: db, width: width, height: height}
}

func (r *CellRepo) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

func (r *CellRepo) Get(ctx context.Context, x, y int) (domain.Occupant, error) {
	if !r.inBounds(x, y) {
		return domain.Empty, nil
	}

	var player string
	err := r.DB.QueryRowContext(ctx, `SELECT player FROM cell WHERE id = $1`, domain.CellID(x, y, r.width)).Scan(&player)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Empty, nil
	}
	if err != nil {
		return domain.Empty, fmt.Errorf("failed to get cell: %w", err)
	}
	return domain.OccupantFromRecord(player), nil
}

func (r *CellRepo) Set(ctx context.Context, x, y int, occupant domain.Occupant) error {
	if !r.inBounds(x, y) {
		return domain.ErrOutOfRange
	}

	query := `
	INSERT INTO cell (id, player)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET
		player = EXCLUDED.player,
		updated_at = NOW();
	`
	if _, err := r.DB.ExecContext(ctx, query, domain.CellID(x, y, r.width), string(occupant)); err != nil {
		return fmt.Errorf("failed to upsert cell: %w", err)
	}
	return nil
}

// Snapshot reads every row in one statement, which Postgres evaluates
// against a single snapshot.
func (r *CellRepo) Snapshot(ctx context.Context) (domain.Board, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, player FROM cell`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer rows.Close()

	board := domain.NewBoard(r.width, r.height)
	for rows.Next() {
		var (
			id     int
			player string
		)
		if err := rows.Scan(&id, &player); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		board.PlaceRecord(id, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cells: %w", err)
	}
	return board, nil
}

func (r *CellRepo) Reset(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM cell`); err != nil {
		return fmt.Errorf("failed to clear cells: %w", err)
	}
	return nil
}

func (r *CellRepo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
