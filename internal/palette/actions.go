package palette

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/1broseidon/floatpane/internal/interaction"
	"github.com/1broseidon/floatpane/internal/monitor"
	"github.com/1broseidon/floatpane/internal/panel"
	"github.com/1broseidon/floatpane/internal/placement"
)

// Menu actions.
const (
	ActionPreferences = "preferences"
	ActionShow        = "show"
	ActionToggle      = "toggle-click-through"
	ActionTemporary   = "temporary-interactive"
	ActionRandom      = "place:random"
	ActionManual      = "place:manual"
	ActionSaveManual  = "save-manual"
	ActionQuit        = "quit"

	slotPrefix = "place:slot:"
)

// Panel is the subset of the panel service the menu drives.
type Panel interface {
	ShowSettings() (placement.Decision, bool)
	ShowMain() placement.Point
	ToggleInteraction() interaction.State
	RequestTemporaryInteractive() bool
	InteractionState() interaction.State
	PlaceMain(req panel.Request) (placement.Point, error)
	Preferences() panel.Preferences
	SetPreferences(p panel.Preferences)
	SaveManualPosition() placement.Point
	Positions(g placement.Grid) ([]placement.Slot, monitor.Info, error)
}

// Dispatcher builds the action menu from the panel's current state and
// runs the chosen action in-process.
type Dispatcher struct {
	panel  Panel
	menu   *Menu
	logger *slog.Logger

	// Manual is the saved manual position offered by the Place submenu.
	Manual placement.Point
	// OnSave is called after the manual position is captured. Optional.
	OnSave func(placement.Point) error
	// OnQuit is called for the Quit action. Optional.
	OnQuit func()
}

// NewDispatcher creates a dispatcher showing its menu through launcher.
func NewDispatcher(p Panel, launcher Launcher, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		panel:  p,
		menu:   NewMenu(launcher, "floatpane"),
		logger: logger,
	}
}

// Open shows the menu and runs the chosen action. Cancelling is not an error.
func (d *Dispatcher) Open() error {
	action, err := d.menu.Choose(d.Entries())
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	return d.Run(action)
}

// Entries returns the current menu tree.
func (d *Dispatcher) Entries() []Entry {
	prefs := d.panel.Preferences()
	clickThrough := d.panel.InteractionState() == interaction.ClickThrough

	toggleLabel := "Enable click-through"
	if clickThrough {
		toggleLabel = "Disable click-through"
	}

	entries := []Entry{
		{Label: "Preferences…", Action: ActionPreferences, Icon: "preferences-system"},
		{Label: "Show panel", Action: ActionShow, Icon: "window-new"},
		{Label: toggleLabel, Action: ActionToggle, IsActive: clickThrough},
	}
	if clickThrough {
		entries = append(entries, Entry{Label: "Temporary access", Action: ActionTemporary})
	}
	entries = append(entries,
		Entry{Label: "Place", Icon: "view-grid", Children: d.placeEntries(prefs)},
		Entry{Label: "Save manual position", Action: ActionSaveManual, Icon: "document-save"},
		Entry{Label: "Quit", Action: ActionQuit, Icon: "application-exit"},
	)
	return entries
}

func (d *Dispatcher) placeEntries(prefs panel.Preferences) []Entry {
	current, isGrid := prefs.Mode.(placement.Grid)
	_, isRandom := prefs.Mode.(placement.Random)
	_, isManual := prefs.Mode.(placement.Manual)

	entries := []Entry{{Label: "Grid", IsHeader: true}}
	slots, mon, err := d.panel.Positions(prefs.Grid)
	if err != nil {
		d.logger.Warn("grid positions unavailable", "error", err)
	}
	for _, slot := range slots {
		entries = append(entries, Entry{
			Label:    fmt.Sprintf("Row %d, column %d  (%.0f, %.0f)", slot.Row+1, slot.Col+1, slot.Point.X, slot.Point.Y),
			Action:   slotPrefix + strconv.Itoa(slot.Index),
			IsActive: isGrid && current.Position == slot.Index,
		})
	}
	if len(slots) > 0 {
		entries[0].Label = fmt.Sprintf("Grid on %s", monitorLabel(mon))
	}

	entries = append(entries,
		Entry{Label: "Other", IsHeader: true},
		Entry{Label: "Random", Action: ActionRandom, IsActive: isRandom},
		Entry{Label: fmt.Sprintf("Saved manual position (%.0f, %.0f)", d.Manual.X, d.Manual.Y), Action: ActionManual, IsActive: isManual},
	)
	return entries
}

// Run performs one menu action.
func (d *Dispatcher) Run(action string) error {
	d.logger.Info("menu action", "action", action)

	switch action {
	case ActionPreferences:
		d.panel.ShowSettings()
	case ActionShow:
		d.panel.ShowMain()
	case ActionToggle:
		d.panel.ToggleInteraction()
	case ActionTemporary:
		d.panel.RequestTemporaryInteractive()
	case ActionRandom:
		return d.place(placement.Random{})
	case ActionManual:
		return d.place(placement.Manual{X: d.Manual.X, Y: d.Manual.Y})
	case ActionSaveManual:
		pt := d.panel.SaveManualPosition()
		d.Manual = pt
		if d.OnSave != nil {
			if err := d.OnSave(pt); err != nil {
				return fmt.Errorf("save manual position: %w", err)
			}
		}
	case ActionQuit:
		if d.OnQuit != nil {
			d.OnQuit()
		}
	default:
		idx, ok := strings.CutPrefix(action, slotPrefix)
		if !ok {
			return fmt.Errorf("unknown menu action %q", action)
		}
		pos, err := strconv.Atoi(idx)
		if err != nil {
			return fmt.Errorf("invalid grid slot %q: %w", idx, err)
		}
		g := d.panel.Preferences().Grid
		g.Position = pos
		return d.place(g)
	}
	return nil
}

// place applies mode and keeps it as the default request.
func (d *Dispatcher) place(mode placement.Mode) error {
	prefs := d.panel.Preferences()
	prefs.Mode = mode
	if g, ok := mode.(placement.Grid); ok {
		prefs.Grid = g
	}
	d.panel.SetPreferences(prefs)

	if _, err := d.panel.PlaceMain(prefs.Request); err != nil {
		return fmt.Errorf("place main panel: %w", err)
	}
	return nil
}

func monitorLabel(m monitor.Info) string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("monitor %d", m.Index)
}
