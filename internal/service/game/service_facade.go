package game

import (
	"context"

	"github.com/iamasit07/four-chain/backend/internal/domain"
)

// Service is the entry point for the transports (facade)
type Service struct {
	Engine   *Engine
	Renderer Renderer
}

func NewService(engine *Engine, renderer Renderer) *Service {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	return &Service{
		Engine:   engine,
		Renderer: renderer,
	}
}

// Sync hands one observer a full-board event of the current view. deliver
// runs under the engine lock, so anything it enqueues is ordered before the
// next published event. The event is never broadcast.
func (s *Service) Sync(ctx context.Context, deliver func(domain.Event)) error {
	var renderErr error
	err := s.Engine.Observe(ctx, func(view domain.BoardView) {
		html, err := s.Renderer.Home(ctx, view)
		if err != nil {
			renderErr = err
			return
		}
		deliver(domain.HomeReplaced(view, html))
	})
	if err != nil {
		return err
	}
	return renderErr
}
