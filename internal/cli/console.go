package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/console"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
)

// consoleCommand starts the interactive panel.
func consoleCommand() error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	model := console.NewModel(client, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTask,
			"Console exited with an error",
			"Check the terminal supports TUI rendering, or use the one-shot subcommands")
	}

	// Graceful shutdown: stop any sweep or bill-poll still running
	if m, ok := final.(console.Model); ok {
		m.Shutdown()
	}

	return nil
}
