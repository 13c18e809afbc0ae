package websocket

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/iamasit07/four-chain/backend/internal/render"
	"github.com/iamasit07/four-chain/backend/internal/repository/memory"
	"github.com/iamasit07/four-chain/backend/internal/service/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	hub    *Hub
	engine *game.Engine
}

func startTestServer(t *testing.T, allowed ...string) *testServer {
	t.Helper()

	logger := zerolog.New(io.Discard)
	hub := NewHub(logger, quartz.NewMock(t))
	renderer := render.NewHTMLRenderer()
	engine := game.NewEngine(
		memory.NewStore(domain.Columns, domain.Rows),
		game.WithNotifier(hub),
		game.WithRenderer(renderer),
	)
	handler := NewHandler(hub, game.NewService(engine, renderer), allowed, 16, logger)

	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	t.Cleanup(func() {
		hub.CloseAll()
		srv.Close()
	})
	return &testServer{Server: srv, hub: hub, engine: engine}
}

func (s *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg domain.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func waitForObservers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Count() == n }, 2*time.Second, 5*time.Millisecond)
}

func TestHandler_SyncOnConnect(t *testing.T) {
	srv := startTestServer(t)
	conn := srv.dial(t)

	msg := readMessage(t, conn)
	assert.Equal(t, "board_replaced", msg.Type)
	assert.Equal(t, domain.TargetHome, msg.Target)
	assert.Equal(t, domain.Yellow, msg.Player)
	require.Len(t, msg.Board, domain.Rows)
	assert.Contains(t, msg.HTML, `id="home"`)
}

func TestHandler_ClickIsBroadcastToAllObservers(t *testing.T) {
	srv := startTestServer(t)
	player := srv.dial(t)
	watcher := srv.dial(t)
	readMessage(t, player)
	readMessage(t, watcher)
	waitForObservers(t, srv.hub, 2)

	require.NoError(t, player.WriteJSON(domain.ClientMessage{Type: domain.ClientClickCell, X: 3, Y: 0}))

	for _, conn := range []*websocket.Conn{player, watcher} {
		msg := readMessage(t, conn)
		assert.Equal(t, "cell_changed", msg.Type)
		assert.Equal(t, &domain.CellUpdate{X: 3, Y: 5, Occupant: domain.Yellow}, msg.Cell)

		msg = readMessage(t, conn)
		assert.Equal(t, "current_player_changed", msg.Type)
		assert.Equal(t, domain.Red, msg.Player)
	}
}

func TestHandler_RejectedMoveIsSilent(t *testing.T) {
	srv := startTestServer(t)
	conn := srv.dial(t)
	readMessage(t, conn)
	waitForObservers(t, srv.hub, 1)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: domain.ClientClickCell, X: 0, Y: 5}))
	assert.Equal(t, "cell_changed", readMessage(t, conn).Type)
	assert.Equal(t, "current_player_changed", readMessage(t, conn).Type)

	// occupied cell, then a sync to prove nothing was sent in between
	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: domain.ClientClickCell, X: 0, Y: 5}))
	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: domain.ClientSync}))

	msg := readMessage(t, conn)
	assert.Equal(t, "board_replaced", msg.Type)
	assert.Equal(t, domain.Yellow, msg.Board[5][0])
	assert.Equal(t, domain.Red, msg.Player)
}

func TestHandler_ResetAndErrors(t *testing.T) {
	srv := startTestServer(t)
	conn := srv.dial(t)
	readMessage(t, conn)
	waitForObservers(t, srv.hub, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg := readMessage(t, conn)
	assert.Equal(t, domain.ServerError, msg.Type)
	assert.Equal(t, "invalid message format", msg.Message)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "dance"}))
	msg = readMessage(t, conn)
	assert.Equal(t, domain.ServerError, msg.Type)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: domain.ClientResetBoard}))
	msg = readMessage(t, conn)
	assert.Equal(t, "board_replaced", msg.Type)
	assert.Equal(t, domain.TargetHome, msg.Target)
	assert.Equal(t, domain.Yellow, msg.Player)
}

func TestHandler_DisconnectUnregisters(t *testing.T) {
	srv := startTestServer(t)
	conn := srv.dial(t)
	readMessage(t, conn)
	waitForObservers(t, srv.hub, 1)

	require.NoError(t, conn.Close())
	waitForObservers(t, srv.hub, 0)

	// publishing with nobody connected is fine
	_, err := srv.engine.AttemptMove(t.Context(), 1, 0)
	require.NoError(t, err)
}

func TestHandler_OriginCheck(t *testing.T) {
	srv := startTestServer(t, "https://four.example.com")
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"https://four.example.com"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, "board_replaced", readMessage(t, conn).Type)
}

func TestOriginChecker_SameHost(t *testing.T) {
	check := originChecker(nil)

	r := httptest.NewRequest(http.MethodGet, "http://localhost:8080/ws", nil)
	assert.True(t, check(r))

	r.Header.Set("Origin", "http://localhost:8080")
	assert.True(t, check(r))

	r.Header.Set("Origin", "http://localhost:5173")
	assert.False(t, check(r))
}
