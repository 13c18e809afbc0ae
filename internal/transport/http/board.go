package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/iamasit07/four-chain/backend/internal/render"
	"github.com/iamasit07/four-chain/backend/internal/service/game"
	"github.com/rs/zerolog"
)

// Pinger is implemented by stores that can check their backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type BoardHandler struct {
	Service *game.Service
	Store   game.BoardStore

	logger zerolog.Logger
}

func NewBoardHandler(svc *game.Service, store game.BoardStore, logger zerolog.Logger) *BoardHandler {
	return &BoardHandler{
		Service: svc,
		Store:   store,
		logger:  logger.With().Str("component", "http").Logger(),
	}
}

type boardResponse struct {
	Width         int             `json:"width"`
	Height        int             `json:"height"`
	Board         domain.Board    `json:"board"`
	CurrentPlayer domain.Occupant `json:"currentPlayer"`
	Winner        domain.Occupant `json:"winner,omitempty"`
}

func newBoardResponse(view domain.BoardView) boardResponse {
	resp := boardResponse{
		Width:         view.Board.Width(),
		Height:        view.Board.Height(),
		Board:         view.Board,
		CurrentPlayer: view.CurrentPlayer,
	}
	if view.IsFinished() {
		resp.Winner = view.Winner
	}
	return resp
}

type moveResponse struct {
	Accepted bool                   `json:"accepted"`
	Events   []domain.ServerMessage `json:"events"`
}

type clickRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// Home serves the full page.
func (h *BoardHandler) Home(c *gin.Context) {
	view, err := h.Service.Engine.View(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load board")
		c.String(http.StatusInternalServerError, "Failed to load board")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := render.Page(view).Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error().Err(err).Msg("failed to render page")
	}
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	view, err := h.Service.Engine.View(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load board")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}
	c.JSON(http.StatusOK, newBoardResponse(view))
}

// ClickCell takes x and y from the query string or a JSON body. A rejected
// move answers 204 and changes nothing.
func (h *BoardHandler) ClickCell(c *gin.Context) {
	x, y, err := parseClick(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Service.Engine.AttemptMove(c.Request.Context(), x, y)
	if err != nil {
		h.logger.Error().Err(err).Int("x", x).Int("y", y).Msg("move failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply move"})
		return
	}
	if !res.Accepted {
		h.logger.Debug().Err(res.Reason).Int("x", x).Int("y", y).Msg("move rejected")
		c.Status(http.StatusNoContent)
		return
	}

	events := make([]domain.ServerMessage, 0, len(res.Events))
	for _, e := range res.Events {
		events = append(events, domain.NewServerMessage(e))
	}
	c.JSON(http.StatusOK, moveResponse{Accepted: true, Events: events})
}

// ResetBoard answers with the board the reset produced, not a fresh read
// that a concurrent move could already have changed.
func (h *BoardHandler) ResetBoard(c *gin.Context) {
	res, err := h.Service.Engine.Reset(c.Request.Context())
	if err != nil || len(res.Events) == 0 {
		h.logger.Error().Err(err).Msg("reset failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset board"})
		return
	}

	e := res.Events[0]
	c.JSON(http.StatusOK, newBoardResponse(domain.BoardView{
		Board:         e.Board,
		CurrentPlayer: e.Player,
		Winner:        e.Winner,
	}))
}

func (h *BoardHandler) Health(c *gin.Context) {
	if p, ok := h.Store.(Pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("store unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseClick(c *gin.Context) (int, int, error) {
	xs, xok := c.GetQuery("x")
	ys, yok := c.GetQuery("y")
	if xok || yok {
		x, err := strconv.Atoi(xs)
		if err != nil {
			return 0, 0, errors.New("x must be an integer")
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return 0, 0, errors.New("y must be an integer")
		}
		return x, y, nil
	}

	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return 0, 0, errors.New("invalid request body")
	}
	if req.X == nil || req.Y == nil {
		return 0, 0, errors.New("x and y are required")
	}
	return *req.X, *req.Y, nil
}
