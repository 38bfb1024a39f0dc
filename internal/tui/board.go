package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"fitquest/internal/session"
)

func RunBoard(ctx context.Context, mgr *session.Manager, out io.Writer) error {
	m := newBoardModel(ctx, mgr)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
