package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chorus/internal/shared"
	"github.com/desertthunder/chorus/internal/ui"
)

// TUI launches the interactive terminal UI. Logs are redirected to a file so
// they don't corrupt the alternate screen.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logger, err := shared.NewFileLogger("./tmp/chorus-tui.log")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.SetLogger(logger)

	model := ui.NewModel(ctx, ui.ModelOpts{
		Session:    r.session,
		Catalog:    r.catalogController(),
		Collection: r.collectionController(),
		Users:      r.usersController(),
		Admin:      r.adminController(),
		Client:     r.client,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI exited with an error: %w", err)
	}

	return nil
}
