package ui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/h5x/internal/session"
)

// Run renders the session's root listing, starts the Bubble Tea program,
// and blocks until the user quits. The initial provider round-trip
// happens here so a broken provider fails before the terminal is taken
// over.
func Run(ctx context.Context, title string, ctrl *session.Controller, noColor bool, opts ...tea.ProgramOption) error {
	first, err := ctrl.Open(ctx)
	if err != nil {
		return err
	}
	m := NewModel(ctx, title, ctrl, first)
	m.NoColor = noColor
	_, err = tea.NewProgram(m, opts...).Run()
	return err
}
