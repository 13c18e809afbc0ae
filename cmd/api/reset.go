package main

import (
	"context"

	"github.com/iamasit07/four-chain/backend/internal/config"
)

type ResetCmd struct{}

// Run clears the stored cells. A running server keeps its own turn state
// and observers until they resync, so prefer the reset button while it is up.
func (c *ResetCmd) Run(g *Globals) error {
	cfg, logger, err := setup(g)
	if err != nil {
		return err
	}
	if cfg.Board.Store == config.StoreMemory {
		return errNotPersisted
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Reset(ctx); err != nil {
		return err
	}
	logger.Info().Str("store", cfg.Board.Store).Msg("board cleared")
	return nil
}
