package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/monitor"
)

// formFields are the huh-bound values, converted on submit. The model holds
// them by pointer because bubbletea copies the model on every update.
type formFields struct {
	mode         string
	gridPosition string
	autoDetect   bool
	cols         string
	rows         string
	monitor      string
	allSpaces    bool
}

func (m *model) startEditing() {
	p := m.cfg.Placement
	m.fields = &formFields{
		mode:         string(p.Mode),
		gridPosition: strconv.Itoa(p.GridPosition),
		autoDetect:   p.AutoDetectGrid,
		cols:         strconv.Itoa(p.ManualCols),
		rows:         strconv.Itoa(p.ManualRows),
		monitor:      p.PreferredMonitor,
		allSpaces:    p.ShowOnAllSpaces,
	}

	w := max(m.width-4, 40)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("mode").
				Title("Placement Mode").
				Options(huh.NewOptions(string(config.PlacementGrid), string(config.PlacementRandom), string(config.PlacementManual))...).
				Value(&m.fields.mode),

			huh.NewInput().
				Key("grid_position").
				Title("Grid Position").
				Description("Slot index, wraps around the grid").
				Validate(validInt).
				Value(&m.fields.gridPosition),

			huh.NewConfirm().
				Key("auto_detect_grid").
				Title("Auto-detect Grid").
				Description("Derive columns and rows from the monitor aspect ratio").
				Value(&m.fields.autoDetect),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("manual_cols").
				Title("Manual Columns").
				Validate(validPositiveInt).
				Value(&m.fields.cols),

			huh.NewInput().
				Key("manual_rows").
				Title("Manual Rows").
				Validate(validPositiveInt).
				Value(&m.fields.rows),

			huh.NewInput().
				Key("preferred_monitor").
				Title("Preferred Monitor").
				Description("auto, primary, current or a monitor index").
				Validate(validSelector).
				Value(&m.fields.monitor),

			huh.NewConfirm().
				Key("show_on_all_spaces").
				Title("Show On All Desktops").
				Value(&m.fields.allSpaces),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	m.editing = true
}

func (m model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.editing = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.applyForm(); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("placement updated (s to save)", false)
		}
		m.editing = false
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.editing = false
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// applyForm copies the form values into the config. Nothing is applied when
// the resulting config is invalid.
func (m *model) applyForm() error {
	candidate := *m.cfg
	p := &candidate.Placement

	p.Mode = config.PlacementMode(m.fields.mode)
	p.AutoDetectGrid = m.fields.autoDetect
	p.PreferredMonitor = strings.TrimSpace(m.fields.monitor)
	p.ShowOnAllSpaces = m.fields.allSpaces

	var err error
	if p.GridPosition, err = strconv.Atoi(strings.TrimSpace(m.fields.gridPosition)); err != nil {
		return fmt.Errorf("grid position: %w", err)
	}
	if p.ManualCols, err = strconv.Atoi(strings.TrimSpace(m.fields.cols)); err != nil {
		return fmt.Errorf("manual columns: %w", err)
	}
	if p.ManualRows, err = strconv.Atoi(strings.TrimSpace(m.fields.rows)); err != nil {
		return fmt.Errorf("manual rows: %w", err)
	}

	if err := candidate.Validate(); err != nil {
		return err
	}
	*m.cfg = candidate
	return nil
}

func validInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func validPositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func validSelector(s string) error {
	if !monitor.ValidSelector(strings.TrimSpace(s)) {
		return fmt.Errorf("must be auto, primary, current or a monitor index")
	}
	return nil
}
