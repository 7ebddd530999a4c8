// Package monitor enumerates the displays the panels can be placed on.
package monitor

import (
	"log/slog"

	"github.com/1broseidon/floatpane/internal/platform"
)

// Info is an immutable snapshot of one display. Index 0 is treated as the
// primary display regardless of what the window system reports.
type Info struct {
	Index   int
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Primary bool
	Name    string
}

// Fallback is the synthetic monitor used when enumeration yields nothing.
func Fallback() Info {
	return Info{Index: 0, X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true}
}

// AspectRatio returns width divided by height, or 0 for a degenerate monitor.
func AspectRatio(m Info) float64 {
	if m.Height <= 0 {
		return 0
	}
	return m.Width / m.Height
}

// Contains reports whether (x, y) lies in [X, X+Width) x [Y, Y+Height).
func (m Info) Contains(x, y float64) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// Containing returns the first monitor containing (x, y).
func Containing(monitors []Info, x, y float64) (Info, bool) {
	for _, m := range monitors {
		if m.Contains(x, y) {
			return m, true
		}
	}
	return Info{}, false
}

// Catalog enumerates monitors through a platform backend. Nothing is cached:
// every call re-queries the window system.
type Catalog struct {
	backend   platform.Backend
	mainTitle string
	logger    *slog.Logger
}

// NewCatalog creates a catalog. mainTitle names the main panel window used by
// Current.
func NewCatalog(backend platform.Backend, mainTitle string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{backend: backend, mainTitle: mainTitle, logger: logger}
}

// Enumerate returns the monitors exactly as the window system reports them,
// which may be empty.
func (c *Catalog) Enumerate() ([]Info, error) {
	displays, err := c.backend.Displays()
	if err != nil {
		return nil, err
	}
	monitors := make([]Info, 0, len(displays))
	for i, d := range displays {
		monitors = append(monitors, fromDisplay(i, d))
	}
	return monitors, nil
}

// List returns the current monitors in enumeration order. Enumeration
// failure or an empty result yields a single Fallback monitor.
func (c *Catalog) List() []Info {
	monitors, err := c.Enumerate()
	if err != nil {
		c.logger.Warn("monitor enumeration failed, using fallback", "error", err)
		return []Info{Fallback()}
	}
	if len(monitors) == 0 {
		c.logger.Warn("no monitors reported, using fallback")
		return []Info{Fallback()}
	}
	return monitors
}

// Current returns the monitor the main panel is on. The second result is
// false when the panel or its monitor cannot be determined.
func (c *Catalog) Current() (Info, bool) {
	id, err := c.backend.FindWindow(c.mainTitle)
	if err != nil {
		c.logger.Debug("current monitor: main panel not found", "title", c.mainTitle, "error", err)
		return Info{}, false
	}
	d, err := c.backend.DisplayForWindow(id)
	if err != nil {
		c.logger.Debug("current monitor: display lookup failed", "error", err)
		return Info{}, false
	}
	for _, m := range c.List() {
		if m.X == float64(d.Bounds.X) && m.Y == float64(d.Bounds.Y) {
			return m, true
		}
	}
	c.logger.Debug("current monitor: display not in the monitor list", "display", d.Name)
	return Info{}, false
}

func fromDisplay(index int, d platform.Display) Info {
	return Info{
		Index:   index,
		X:       float64(d.Bounds.X),
		Y:       float64(d.Bounds.Y),
		Width:   float64(d.Bounds.Width),
		Height:  float64(d.Bounds.Height),
		Primary: index == 0,
		Name:    d.Name,
	}
}
