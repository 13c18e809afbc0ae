package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/four-chain/backend/internal/render"
	"github.com/iamasit07/four-chain/backend/internal/service/cleanup"
	"github.com/iamasit07/four-chain/backend/internal/service/game"
	transportHttp "github.com/iamasit07/four-chain/backend/internal/transport/http"
	"github.com/iamasit07/four-chain/backend/internal/transport/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

type ServeCmd struct {
	Port string `help:"Listen port (overrides PORT)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := setup(g)
	if err != nil {
		return err
	}
	if c.Port != "" {
		cfg.Port = c.Port
	}
	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Persistence
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}()

	// 2. Services
	clock := quartz.NewReal()
	hub := websocket.NewHub(logger, clock)
	renderer := render.NewHTMLRenderer()
	engine := game.NewEngine(store,
		game.WithBoardSize(cfg.Board.Width, cfg.Board.Height),
		game.WithStartingPlayer(cfg.StartingOccupant()),
		game.WithReannounceWinner(cfg.Board.ReannounceWinner),
		game.WithNotifier(hub),
		game.WithRenderer(renderer),
		game.WithLogger(logger),
	)
	gameService := game.NewService(engine, renderer)

	// 3. Background workers
	cleanupWorker := cleanup.NewWorker(hub, clock, cfg.Observer.SweepInterval, cfg.Observer.StaleAfter, logger)

	// 4. Handlers and router
	origins := cfg.Origins()
	boardHandler := transportHttp.NewBoardHandler(gameService, store, logger)
	wsHandler := websocket.NewHandler(hub, gameService, origins, cfg.Observer.SendBuffer, logger)
	router := transportHttp.NewRouter(boardHandler, wsHandler, origins, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("store", cfg.Board.Store).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return cleanupWorker.Run(ctx)
	})

	group.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("server is shutting down")

		// Hijacked websocket connections are not closed by Shutdown.
		hub.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("server exited gracefully")
	return nil
}
