package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/1broseidon/floatpane/internal/interaction"
	"github.com/1broseidon/floatpane/internal/monitor"
	"github.com/1broseidon/floatpane/internal/placement"
)

// PlacementMode names a main panel placement strategy.
type PlacementMode string

const (
	PlacementGrid   PlacementMode = "grid"
	PlacementRandom PlacementMode = "random"
	PlacementManual PlacementMode = "manual"
)

// Placement holds the main panel placement preferences.
type Placement struct {
	Mode             PlacementMode `yaml:"mode" toml:"mode"`
	GridPosition     int           `yaml:"grid_position" toml:"grid_position"`
	AutoDetectGrid   bool          `yaml:"auto_detect_grid" toml:"auto_detect_grid"`
	ManualCols       int           `yaml:"manual_cols" toml:"manual_cols"`
	ManualRows       int           `yaml:"manual_rows" toml:"manual_rows"`
	PreferredMonitor string        `yaml:"preferred_monitor" toml:"preferred_monitor"`
	ShowOnAllSpaces  bool          `yaml:"show_on_all_spaces" toml:"show_on_all_spaces"`
	ManualX          float64       `yaml:"manual_x" toml:"manual_x"`
	ManualY          float64       `yaml:"manual_y" toml:"manual_y"`
}

// Window identifies a panel window and its fixed size.
type Window struct {
	Title  string  `yaml:"title" toml:"title"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Windows groups the two panel roles.
type Windows struct {
	Main     Window `yaml:"main" toml:"main"`
	Settings Window `yaml:"settings" toml:"settings"`
}

// Interaction holds the interaction mode settings.
type Interaction struct {
	// Initial is "interactive" or "click-through".
	Initial          string `yaml:"initial" toml:"initial"`
	TemporarySeconds int    `yaml:"temporary_seconds" toml:"temporary_seconds"`
}

// Hotkeys are xgbutil keybind strings. An empty string disables a binding.
type Hotkeys struct {
	TemporaryInteractive string `yaml:"temporary_interactive" toml:"temporary_interactive"`
	ToggleClickThrough   string `yaml:"toggle_click_through" toml:"toggle_click_through"`
	Place                string `yaml:"place" toml:"place"`
	Settings             string `yaml:"settings" toml:"settings"`
	Menu                 string `yaml:"menu" toml:"menu"`
}

// Probe configures the local service health check.
type Probe struct {
	URL            string `yaml:"url" toml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

type Config struct {
	Display                  string      `yaml:"display,omitempty" toml:"display,omitempty"`
	LogLevel                 string      `yaml:"log_level" toml:"log_level"`
	MenuBackend              string      `yaml:"menu_backend" toml:"menu_backend"`
	ReconcileIntervalSeconds int         `yaml:"reconcile_interval_seconds" toml:"reconcile_interval_seconds"`
	Placement                Placement   `yaml:"placement" toml:"placement"`
	Windows                  Windows     `yaml:"windows" toml:"windows"`
	Interaction              Interaction `yaml:"interaction" toml:"interaction"`
	Hotkeys                  Hotkeys     `yaml:"hotkeys" toml:"hotkeys"`
	Probe                    Probe       `yaml:"probe" toml:"probe"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:                 "info",
		MenuBackend:              "auto",
		ReconcileIntervalSeconds: 10,
		Placement: Placement{
			Mode:             PlacementGrid,
			GridPosition:     4,
			AutoDetectGrid:   true,
			ManualCols:       4,
			ManualRows:       3,
			PreferredMonitor: monitor.SelectorAuto,
			ShowOnAllSpaces:  true,
			ManualX:          100,
			ManualY:          100,
		},
		Windows: Windows{
			Main:     Window{Title: "floatpane", Width: 400, Height: 300},
			Settings: Window{Title: "floatpane settings", Width: 400, Height: 600},
		},
		Interaction: Interaction{
			Initial:          interaction.Interactive.String(),
			TemporarySeconds: 3,
		},
		Hotkeys: Hotkeys{
			TemporaryInteractive: "Control-Shift-i",
			ToggleClickThrough:   "Control-Shift-t",
			Place:                "Control-Shift-p",
			Settings:             "Control-Shift-comma",
			Menu:                 "Control-Shift-m",
		},
		Probe: Probe{
			URL:            "http://localhost:11434/api/version",
			TimeoutSeconds: 5,
		},
	}
}

// ValidationError ties a validation failure to a config key.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch c.MenuBackend {
	case "auto", "rofi", "dmenu":
	default:
		return &ValidationError{Path: "menu_backend", Err: fmt.Errorf("menu_backend must be one of: auto, rofi, dmenu")}
	}
	if c.ReconcileIntervalSeconds < 0 {
		return &ValidationError{Path: "reconcile_interval_seconds", Err: fmt.Errorf("reconcile_interval_seconds must be >= 0")}
	}

	switch c.Placement.Mode {
	case PlacementGrid, PlacementRandom, PlacementManual:
	default:
		return &ValidationError{Path: "placement.mode", Err: fmt.Errorf("mode must be one of: grid, random, manual")}
	}
	if !c.Placement.AutoDetectGrid && c.Placement.ManualCols*c.Placement.ManualRows < 1 {
		return &ValidationError{Path: "placement.manual_cols", Err: fmt.Errorf("%w: %dx%d", placement.ErrEmptyGrid, c.Placement.ManualCols, c.Placement.ManualRows)}
	}
	if c.Placement.ManualCols < 0 || c.Placement.ManualRows < 0 {
		return &ValidationError{Path: "placement.manual_rows", Err: fmt.Errorf("grid dimensions must be >= 0")}
	}
	if !monitor.ValidSelector(c.Placement.PreferredMonitor) {
		return &ValidationError{Path: "placement.preferred_monitor", Err: fmt.Errorf("preferred_monitor must be auto, primary, current or a monitor index >= 0")}
	}

	windows := []struct {
		path string
		w    Window
	}{
		{"windows.main", c.Windows.Main},
		{"windows.settings", c.Windows.Settings},
	}
	for _, win := range windows {
		if strings.TrimSpace(win.w.Title) == "" {
			return &ValidationError{Path: win.path + ".title", Err: fmt.Errorf("title is required")}
		}
		if win.w.Width <= 0 || win.w.Height <= 0 {
			return &ValidationError{Path: win.path, Err: fmt.Errorf("width and height must be > 0")}
		}
	}
	if c.Windows.Main.Title == c.Windows.Settings.Title {
		return &ValidationError{Path: "windows.settings.title", Err: fmt.Errorf("settings title must differ from the main title")}
	}

	if _, err := interaction.ParseState(c.Interaction.Initial); err != nil {
		return &ValidationError{Path: "interaction.initial", Err: err}
	}
	if c.Interaction.TemporarySeconds <= 0 {
		return &ValidationError{Path: "interaction.temporary_seconds", Err: fmt.Errorf("temporary_seconds must be > 0")}
	}

	if strings.TrimSpace(c.Probe.URL) == "" {
		return &ValidationError{Path: "probe.url", Err: fmt.Errorf("url is required")}
	}
	if c.Probe.TimeoutSeconds <= 0 {
		return &ValidationError{Path: "probe.timeout_seconds", Err: fmt.Errorf("timeout_seconds must be > 0")}
	}
	return nil
}

// Grid returns the configured grid request.
func (p Placement) Grid() placement.Grid {
	return placement.Grid{
		Position:   p.GridPosition,
		Cols:       p.ManualCols,
		Rows:       p.ManualRows,
		AutoDetect: p.AutoDetectGrid,
	}
}

// PlacementMode returns the configured main placement strategy.
func (p Placement) PlacementMode() placement.Mode {
	switch p.Mode {
	case PlacementRandom:
		return placement.Random{}
	case PlacementManual:
		return placement.Manual{X: p.ManualX, Y: p.ManualY}
	default:
		return p.Grid()
	}
}

// Size returns the window's fixed geometry.
func (w Window) Size() placement.Size {
	return placement.Size{Width: w.Width, Height: w.Height}
}

// InitialState returns the parsed initial interaction state.
func (i Interaction) InitialState() interaction.State {
	s, err := interaction.ParseState(i.Initial)
	if err != nil {
		return interaction.Interactive
	}
	return s
}

// TemporaryDuration returns the temporary interactive window length.
func (i Interaction) TemporaryDuration() time.Duration {
	if i.TemporarySeconds <= 0 {
		return interaction.DefaultTemporaryDuration
	}
	return time.Duration(i.TemporarySeconds) * time.Second
}

// Timeout returns the probe timeout.
func (p Probe) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// ReconcileInterval returns the reconciler period; zero disables it.
func (c *Config) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileIntervalSeconds) * time.Second
}
