package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/iamasit07/four-chain/backend/internal/service/game"
	"github.com/iamasit07/four-chain/backend/pkg/uid"
	"github.com/rs/zerolog"
)

// Handler manages WebSocket dependencies
type Handler struct {
	Hub        *Hub
	Service    *game.Service
	Upgrader   websocket.Upgrader
	SendBuffer int

	logger zerolog.Logger
}

// NewHandler creates a WebSocket handler. Browsers may only connect from
// the page's own host or one of allowedOrigins.
func NewHandler(hub *Hub, svc *game.Service, allowedOrigins []string, sendBuffer int, logger zerolog.Logger) *Handler {
	return &Handler{
		Hub:        hub,
		Service:    svc,
		SendBuffer: sendBuffer,
		logger:     logger.With().Str("component", "ws").Logger(),
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, err := uid.GenerateObserverID()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create observer id")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("upgrade error")
		return
	}

	o := NewObserver(id, conn, h.SendBuffer, h.Hub.Clock().Now())
	h.handleConnection(r.Context(), o)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, o *Observer) {
	logger := h.logger.With().Str("observer_id", o.ID).Logger()

	// The initial view is queued and the observer registered in one step,
	// so the first broadcast it receives is newer than its snapshot.
	if err := h.Service.Sync(ctx, func(e domain.Event) {
		h.Hub.SendEvent(o, e)
		h.Hub.Register(o)
	}); err != nil {
		logger.Error().Err(err).Msg("failed to sync new observer")
		_ = o.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "board unavailable"))
		_ = o.conn.Close()
		return
	}

	go o.writePump(h.Hub.Clock(), logger)

	defer func() {
		logger.Debug().Msg("connection closed")
		h.Hub.Unregister(o)
		o.Close()
	}()

	o.conn.SetReadLimit(maxMessageSize)
	_ = o.conn.SetReadDeadline(time.Now().Add(pongWait))
	o.conn.SetPongHandler(func(string) error {
		_ = o.conn.SetReadDeadline(time.Now().Add(pongWait))
		o.touch(h.Hub.Clock().Now())
		return nil
	})

	for {
		_, data, err := o.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("observer disconnected unexpectedly")
			}
			return
		}
		o.touch(h.Hub.Clock().Now())

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debug().Err(err).Msg("invalid message format")
			h.Hub.SendError(o, "invalid message format")
			continue
		}

		h.processMessage(ctx, o, msg, logger)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, o *Observer, msg domain.ClientMessage, logger zerolog.Logger) {
	switch msg.Type {
	case domain.ClientClickCell:
		res, err := h.Service.Engine.AttemptMove(ctx, msg.X, msg.Y)
		if err != nil {
			logger.Error().Err(err).Int("x", msg.X).Int("y", msg.Y).Msg("move failed")
			h.Hub.SendError(o, "failed to apply move")
			return
		}
		if !res.Accepted {
			// Rejected moves are silent; the board simply does not change.
			logger.Debug().Err(res.Reason).Int("x", msg.X).Int("y", msg.Y).Msg("move rejected")
		}

	case domain.ClientResetBoard:
		if _, err := h.Service.Engine.Reset(ctx); err != nil {
			logger.Error().Err(err).Msg("reset failed")
			h.Hub.SendError(o, "failed to reset board")
		}

	case domain.ClientSync:
		if err := h.Service.Sync(ctx, func(e domain.Event) { h.Hub.SendEvent(o, e) }); err != nil {
			logger.Error().Err(err).Msg("sync failed")
			h.Hub.SendError(o, "failed to load board")
		}

	default:
		logger.Debug().Str("type", msg.Type).Msg("unknown message type")
		h.Hub.SendError(o, "unknown message type")
	}
}
