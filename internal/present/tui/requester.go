package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type reviewMsg struct{}

// ProgramRequester shows the review prompt inside a running viewer.
type ProgramRequester struct {
	Program *tea.Program
}

func (r ProgramRequester) RequestReview(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.Program.Send(reviewMsg{})
	return nil
}
