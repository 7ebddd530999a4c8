// Package tui is the terminal settings UI: a preview of the grid slots on
// each monitor, a form for the placement settings and saving them back to
// the config file.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/monitor"
	"github.com/1broseidon/floatpane/internal/panel"
)

// Options configures a TUI run.
type Options struct {
	// ConfigPath is where 's' saves. Empty uses the default path.
	ConfigPath string
	Config     *config.Config
	// Monitors to preview. Empty previews a 1920x1080 fallback.
	Monitors []monitor.Info
	// Place applies a request to a live panel on enter. Optional.
	Place func(panel.Request) error
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
