package websocket

import (
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second

	// PingPeriod is how often an idle observer is pinged. A healthy
	// connection is seen at least this often.
	PingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096

	DefaultSendBuffer = 64
)

// Observer is one connected viewer of the board.
type Observer struct {
	ID   string
	conn *websocket.Conn

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	mu       sync.RWMutex
	lastSeen time.Time
}

// NewObserver creates an observer with a bounded send queue. conn may be nil
// for observers that are never pumped.
func NewObserver(id string, conn *websocket.Conn, sendBuffer int, now time.Time) *Observer {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Observer{
		ID:       id,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		lastSeen: now,
	}
}

// Done is closed once the observer is closed.
func (o *Observer) Done() <-chan struct{} {
	return o.done
}

// Close is safe to call more than once. The send channel is never closed;
// the write pump watches done, says goodbye and closes the connection.
func (o *Observer) Close() {
	o.closeOnce.Do(func() {
		close(o.done)
	})
}

func (o *Observer) LastSeen() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastSeen
}

func (o *Observer) touch(now time.Time) {
	o.mu.Lock()
	o.lastSeen = now
	o.mu.Unlock()
}

func (o *Observer) enqueue(data []byte) bool {
	select {
	case <-o.done:
		return false
	default:
	}

	select {
	case o.send <- data:
		return true
	default:
		return false
	}
}

// writePump is the only goroutine that writes to the connection.
func (o *Observer) writePump(clock quartz.Clock, logger zerolog.Logger) {
	ticker := clock.NewTicker(PingPeriod, "observer", "ping")
	defer func() {
		ticker.Stop()
		o.Close()
		_ = o.conn.Close()
	}()

	for {
		select {
		case message := <-o.send:
			_ = o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := o.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Debug().Err(err).Str("observer_id", o.ID).Msg("write failed")
				return
			}

		case <-ticker.C:
			_ = o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := o.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-o.done:
			_ = o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = o.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
