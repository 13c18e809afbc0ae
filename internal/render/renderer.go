package render

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/iamasit07/four-chain/backend/internal/domain"
)

// HTMLRenderer captures components as strings for the engine's events.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) Home(ctx context.Context, view domain.BoardView) (string, error) {
	return renderString(ctx, Home(view))
}

// Cell renders a slot as it looks once occupied by a move. Empty slots
// only come out of Home, where clickability is known.
func (r *HTMLRenderer) Cell(ctx context.Context, x, y int, occupant domain.Occupant) (string, error) {
	return renderString(ctx, Cell(x, y, occupant, false))
}

func (r *HTMLRenderer) Winner(ctx context.Context, winner domain.Occupant) (string, error) {
	return renderString(ctx, Winner(winner))
}

func renderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
