package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultBoardKey = "fourchain:board"

// CellStore keeps the board in one hash: field = cell id, value = token.
// HGETALL and DEL are single commands, so snapshots and resets are atomic.
type CellStore struct {
	client *redis.Client
	key    string
	width  int
	height int
}

func NewCellStore(client *redis.Client, key string, width, height int) *CellStore {
	if key == "" {
		key = DefaultBoardKey
	}
	return &CellStore{client: client, key: key, width: width, height: height}
}

func (s *CellStore) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *CellStore) field(x, y int) string {
	return strconv.Itoa(domain.CellID(x, y, s.width))
}

func (s *CellStore) Get(ctx context.Context, x, y int) (domain.Occupant, error) {
	if !s.inBounds(x, y) {
		return domain.Empty, nil
	}

	player, err := s.client.HGet(ctx, s.key, s.field(x, y)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Empty, nil
	}
	if err != nil {
		return domain.Empty, fmt.Errorf("failed to get cell: %w", err)
	}
	return domain.OccupantFromRecord(player), nil
}

func (s *CellStore) Set(ctx context.Context, x, y int, occupant domain.Occupant) error {
	if !s.inBounds(x, y) {
		return domain.ErrOutOfRange
	}
	if err := s.client.HSet(ctx, s.key, s.field(x, y), string(occupant)).Err(); err != nil {
		return fmt.Errorf("failed to set cell: %w", err)
	}
	return nil
}

func (s *CellStore) Snapshot(ctx context.Context) (domain.Board, error) {
	cells, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	board := domain.NewBoard(s.width, s.height)
	for field, player := range cells {
		id, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		board.PlaceRecord(id, player)
	}
	return board, nil
}

func (s *CellStore) Reset(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear board: %w", err)
	}
	return nil
}

func (s *CellStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
