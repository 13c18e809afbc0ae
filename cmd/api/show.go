package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iamasit07/four-chain/backend/internal/config"
	"github.com/iamasit07/four-chain/backend/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	frameStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

var errNotPersisted = errors.New("the memory store keeps no board between runs")

type ShowCmd struct{}

func (c *ShowCmd) Run(g *Globals) error {
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

	board, err := store.Snapshot(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, formatBoard(board))
	return nil
}

// formatBoard draws the board top row first, with column numbers underneath
// and the winner, if any, as a title.
func formatBoard(board domain.Board) string {
	var sb strings.Builder

	title := "No winner yet"
	if winner, ok := domain.FindWinner(board); ok {
		title = "Winner: " + styleFor(winner).Render(winner.String())
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	for y := range board.Height() {
		cells := make([]string, board.Width())
		for x := range board.Width() {
			cells[x] = styleFor(board.At(x, y)).Render(symbolFor(board.At(x, y)))
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	columns := make([]string, board.Width())
	for x := range columns {
		columns[x] = fmt.Sprint(x % 10)
	}
	sb.WriteString(emptyStyle.Render(strings.Join(columns, " ")))

	return frameStyle.Render(sb.String())
}

func symbolFor(o domain.Occupant) string {
	switch o {
	case domain.Yellow:
		return "Y"
	case domain.Red:
		return "R"
	default:
		return "."
	}
}

func styleFor(o domain.Occupant) lipgloss.Style {
	switch o {
	case domain.Yellow:
		return yellowStyle
	case domain.Red:
		return redStyle
	default:
		return emptyStyle
	}
}
