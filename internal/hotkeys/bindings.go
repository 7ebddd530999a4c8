package hotkeys

import (
	"log/slog"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/interaction"
	"github.com/1broseidon/floatpane/internal/placement"
)

// Actions are the panel operations reachable from the keyboard.
type Actions interface {
	RequestTemporaryInteractive() bool
	ToggleInteraction() interaction.State
	PlaceDefault() (placement.Point, error)
	ShowSettings() (placement.Decision, bool)
}

// Binding ties a key sequence to an action.
type Binding struct {
	Name string
	Keys string
	Run  func()
}

// Bindings builds the global shortcuts from the configured key sequences.
// openMenu may be nil, which leaves the menu binding out.
func Bindings(keys config.Hotkeys, actions Actions, openMenu func(), logger *slog.Logger) []Binding {
	if logger == nil {
		logger = slog.Default()
	}
	bindings := []Binding{
		{Name: "temporary-interactive", Keys: keys.TemporaryInteractive, Run: func() {
			actions.RequestTemporaryInteractive()
		}},
		{Name: "toggle-click-through", Keys: keys.ToggleClickThrough, Run: func() {
			actions.ToggleInteraction()
		}},
		{Name: "place", Keys: keys.Place, Run: func() {
			if _, err := actions.PlaceDefault(); err != nil {
				logger.Warn("hotkey placement failed", "error", err)
			}
		}},
		{Name: "settings", Keys: keys.Settings, Run: func() {
			actions.ShowSettings()
		}},
	}
	if openMenu != nil {
		// The menu blocks on an external launcher; keep it off the event loop.
		bindings = append(bindings, Binding{Name: "menu", Keys: keys.Menu, Run: func() {
			go openMenu()
		}})
	}
	return bindings
}
