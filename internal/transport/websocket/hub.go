package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/rs/zerolog"
)

// Hub tracks every connected observer and fans engine events out to them.
// It implements game.Notifier.
type Hub struct {
	observers map[string]*Observer
	mu        sync.RWMutex // Protects the map itself

	clock  quartz.Clock
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger, clock quartz.Clock) *Hub {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Hub{
		observers: make(map[string]*Observer),
		clock:     clock,
		logger:    logger.With().Str("component", "hub").Logger(),
	}
}

// Clock is the time source used for observer liveness.
func (h *Hub) Clock() quartz.Clock {
	return h.clock
}

// Register adds an observer. An observer already registered under the same
// ID is closed and replaced.
func (h *Hub) Register(o *Observer) {
	h.mu.Lock()
	old, exists := h.observers[o.ID]
	h.observers[o.ID] = o
	count := len(h.observers)
	h.mu.Unlock()

	if exists && old != o {
		old.Close()
	}
	h.logger.Debug().Str("observer_id", o.ID).Int("observers", count).Msg("observer registered")
}

// Unregister removes o if it is still the registered observer for its ID,
// so cleaning up an old connection never drops a newer one.
func (h *Hub) Unregister(o *Observer) {
	h.mu.Lock()
	current, exists := h.observers[o.ID]
	if exists && current == o {
		delete(h.observers, o.ID)
	}
	count := len(h.observers)
	h.mu.Unlock()

	if exists && current == o {
		h.logger.Debug().Str("observer_id", o.ID).Int("observers", count).Msg("observer unregistered")
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Publish offers every event to every observer without blocking. An
// observer whose queue is full or closed misses the event; the others are
// unaffected.
func (h *Hub) Publish(events ...domain.Event) {
	for _, event := range events {
		data, err := json.Marshal(domain.NewServerMessage(event))
		if err != nil {
			h.logger.Error().Err(err).Str("kind", string(event.Kind)).Msg("failed to encode event")
			continue
		}
		h.broadcast(data)
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, o := range h.observers {
		if !o.enqueue(data) {
			h.logger.Warn().Str("observer_id", id).Msg("observer queue full, event dropped")
		}
	}
}

// SendEvent delivers one event to a single observer only.
func (h *Hub) SendEvent(o *Observer, event domain.Event) bool {
	return h.SendMessage(o, domain.NewServerMessage(event))
}

// SendError reports a failure to the observer whose request caused it.
func (h *Hub) SendError(o *Observer, message string) bool {
	return h.SendMessage(o, domain.ErrorMessage{Type: domain.ServerError, Message: message})
}

func (h *Hub) SendMessage(o *Observer, message any) bool {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("observer_id", o.ID).Msg("failed to encode message")
		return false
	}
	return o.enqueue(data)
}

// PruneStale closes and removes observers not seen since cutoff and
// returns how many were removed.
func (h *Hub) PruneStale(cutoff time.Time) int {
	var stale []*Observer

	h.mu.Lock()
	for id, o := range h.observers {
		if o.LastSeen().Before(cutoff) {
			stale = append(stale, o)
			delete(h.observers, id)
		}
	}
	h.mu.Unlock()

	for _, o := range stale {
		h.logger.Info().Str("observer_id", o.ID).Time("last_seen", o.LastSeen()).Msg("closing stale observer")
		o.Close()
	}
	return len(stale)
}

// CloseAll disconnects every observer, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	observers := h.observers
	h.observers = make(map[string]*Observer)
	h.mu.Unlock()

	for _, o := range observers {
		o.Close()
	}
}
