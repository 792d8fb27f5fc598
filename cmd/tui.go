package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mymusic/internal/ui"
	"github.com/urfave/cli/v3"
)

// PlaylistTUI launches the interactive terminal UI for one playlist.
func (r *Runner) PlaylistTUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	// Logs would interfere with TUI rendering
	r.logger.SetOutput(io.Discard)

	model := ui.NewModel(ctx, r.service, cmd.String("id"))
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
