// Package panel is the owner of the two panel windows. Every placement and
// interaction request from hotkeys, the action menu, the reconciler and the
// command line is applied through a Service.
package panel

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/interaction"
	"github.com/1broseidon/floatpane/internal/monitor"
	"github.com/1broseidon/floatpane/internal/placement"
	"github.com/1broseidon/floatpane/internal/platform"
)

const (
	contentPadding = 32.0
	minWidth       = 300.0
	maxWidth       = 800.0
	minHeight      = 150.0
	maxHeight      = 400.0
)

var fallbackPosition = placement.Point{X: 100, Y: 100}

// Request is a main panel placement request.
type Request struct {
	Mode             placement.Mode
	PreferredMonitor string
}

// Preferences are the caller-supplied placement settings the service applies
// when no explicit request is given.
type Preferences struct {
	Request
	Grid            placement.Grid
	ShowOnAllSpaces bool
}

// PreferencesFromConfig builds Preferences from the placement section.
func PreferencesFromConfig(p config.Placement) Preferences {
	return Preferences{
		Request: Request{
			Mode:             p.PlacementMode(),
			PreferredMonitor: p.PreferredMonitor,
		},
		Grid:            p.Grid(),
		ShowOnAllSpaces: p.ShowOnAllSpaces,
	}
}

// ScreenInfo describes the current monitor and its effective grid.
type ScreenInfo struct {
	Width  float64
	Height float64
	Cols   int
	Rows   int
}

// Service serialises every write to the panel windows behind one mutex. The
// interaction controller is built on the same mutex, so a mode change never
// interleaves with a placement or level write.
type Service struct {
	mu sync.Mutex

	catalog      *monitor.Catalog
	main         *platform.Surface
	settings     *platform.Surface
	mainSize     placement.Size
	settingsSize placement.Size
	placer       placement.Placer
	controller   *interaction.Controller
	prefs        Preferences
	logger       *slog.Logger
}

// New builds a service for the windows named in cfg.
func New(backend platform.Backend, cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	main := platform.NewSurface(backend, cfg.Windows.Main.Title)
	s := &Service{
		catalog:      monitor.NewCatalog(backend, cfg.Windows.Main.Title, logger),
		main:         main,
		settings:     platform.NewSurface(backend, cfg.Windows.Settings.Title),
		mainSize:     cfg.Windows.Main.Size(),
		settingsSize: cfg.Windows.Settings.Size(),
		prefs:        PreferencesFromConfig(cfg.Placement),
		logger:       logger,
	}
	s.controller = interaction.New(main, interaction.Options{
		Initial:           cfg.Interaction.InitialState(),
		TemporaryDuration: cfg.Interaction.TemporaryDuration(),
		Logger:            logger,
		Lock:              &s.mu,
	})
	return s
}

// Controller returns the interaction controller for the main panel.
func (s *Service) Controller() *interaction.Controller {
	return s.controller
}

// Catalog returns the monitor catalog.
func (s *Service) Catalog() *monitor.Catalog {
	return s.catalog
}

// Preferences returns the current placement preferences.
func (s *Service) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetPreferences replaces the placement preferences.
func (s *Service) SetPreferences(p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
}

// Init runs the startup sequence: the main panel is raised to the pop-up
// tier, pinned against background drags, made visible on every desktop,
// shown, centred and focused; the settings panel is hidden. The initial
// interaction state and placement preferences are then applied.
func (s *Service) Init() {
	s.mu.Lock()
	s.warn("level", s.main.SetLevel(platform.LevelPopUpMenu))
	s.warn("movable by background", s.main.SetMovableByBackground(false))
	s.warn("collection behavior", s.main.SetCollectionBehavior(platform.AllSpaces))
	s.warn("show", s.main.Show())
	s.warn("center", s.main.Center())
	s.warn("focus", s.main.Focus())
	s.warn("hide settings", s.settings.Hide())
	prefs := s.prefs
	s.mu.Unlock()

	s.controller.Apply()
	s.UpdateSpaces(prefs.ShowOnAllSpaces)
	if _, err := s.PlaceMain(prefs.Request); err != nil {
		s.logger.Warn("initial placement failed", "error", err)
	}
}

// PlaceDefault applies the current preferences.
func (s *Service) PlaceDefault() (placement.Point, error) {
	return s.PlaceMain(s.Preferences().Request)
}

// PlaceMain resolves the target monitor, computes the main panel position
// and applies it. Only invalid requests are returned as errors; a missing
// window is logged and skipped.
func (s *Service) PlaceMain(req Request) (placement.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	monitors := s.catalog.List()
	current, ok := s.catalog.Current()
	mon := monitor.Resolve(req.PreferredMonitor, monitors, current, ok)

	pt, err := s.placer.Compute(req.Mode, mon, s.mainSize)
	if err != nil {
		return placement.Point{}, fmt.Errorf("place main panel: %w", err)
	}

	s.logger.Info("placing main panel",
		"mode", req.Mode,
		"monitor", mon.Index,
		"x", pt.X,
		"y", pt.Y,
	)
	s.warn("move main panel", s.main.MoveResize(toRect(pt, s.mainSize)))
	return pt, nil
}

// ShowSettings positions the settings panel beside the main panel, then
// shows and focuses it. ok is false when no position was computed.
func (s *Service) ShowSettings() (placement.Decision, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.resolveSettingsLocked()
	if ok {
		s.logger.Info("placing settings panel", "rule", d.Rule, "monitor", d.Monitor.Index, "x", d.Point.X, "y", d.Point.Y)
		s.warn("move settings panel", s.settings.Move(round(d.Point.X), round(d.Point.Y)))
	}
	s.warn("show settings", s.settings.Show())
	s.warn("focus settings", s.settings.Focus())
	return d, ok
}

func (s *Service) resolveSettingsLocked() (placement.Decision, bool) {
	mainRect, err := s.main.Rect()
	if err != nil {
		s.logger.Warn("main panel unavailable, showing settings in place", "error", err)
		return placement.Decision{}, false
	}

	monitors, err := s.catalog.Enumerate()
	if err != nil || len(monitors) == 0 {
		s.logger.Warn("monitor enumeration failed, centring settings", "error", err)
		s.warn("center settings", s.settings.Center())
		return placement.Decision{}, false
	}

	primary := placement.Rect{
		X:      float64(mainRect.X),
		Y:      float64(mainRect.Y),
		Width:  float64(mainRect.Width),
		Height: float64(mainRect.Height),
	}
	return placement.ExplainSettings(primary, s.settingsSize, monitors)
}

// ToggleInteraction flips click-through.
func (s *Service) ToggleInteraction() interaction.State {
	return s.controller.Toggle()
}

// SetInteraction forces click-through on or off.
func (s *Service) SetInteraction(clickThrough bool) {
	s.controller.Set(interaction.FromClickThrough(clickThrough))
}

// RequestTemporaryInteractive opens a click-through panel to input briefly.
func (s *Service) RequestTemporaryInteractive() bool {
	return s.controller.RequestTemporaryInteractive()
}

// FixInteractivity forces the panel interactive and focuses it.
func (s *Service) FixInteractivity() error {
	if _, err := s.main.ID(); err != nil {
		return err
	}
	s.controller.Set(interaction.Interactive)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.main.Focus()
}

// InteractionState returns the main panel's current interaction state.
func (s *Service) InteractionState() interaction.State {
	return s.controller.State()
}

// SaveManualPosition returns the main panel's current outer position, or
// (100, 100) when it cannot be read.
func (s *Service) SaveManualPosition() placement.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.main.Rect()
	if err != nil {
		s.logger.Warn("main panel position unavailable", "error", err)
		return fallbackPosition
	}
	pt := placement.Point{X: float64(r.X), Y: float64(r.Y)}
	s.logger.Info("saving manual position", "x", pt.X, "y", pt.Y)
	return pt
}

// ShowMain forces the main panel visible at the centre of the primary
// monitor, above other windows, and focuses it.
func (s *Service) ShowMain() placement.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.warn("show", s.main.Show())

	pt := fallbackPosition
	if monitors, err := s.catalog.Enumerate(); err == nil && len(monitors) > 0 {
		m := monitors[0]
		pt = placement.Point{
			X: m.X + (m.Width-s.mainSize.Width)/2,
			Y: m.Y + (m.Height-s.mainSize.Height)/2,
		}
	}
	s.warn("move main panel", s.main.MoveResize(toRect(pt, s.mainSize)))
	s.warn("level", s.main.SetLevel(platform.LevelRaised))
	s.warn("focus", s.main.Focus())
	return pt
}

// ResizeForContent sizes the main panel to fit content plus padding within
// fixed bounds and returns the applied size.
func (s *Service) ResizeForContent(width, height float64) placement.Size {
	size := ContentSize(width, height)

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.main.Rect()
	if err != nil {
		s.logger.Warn("main panel unavailable for resize", "error", err)
		return size
	}
	s.logger.Debug("resizing for content", "content_width", width, "content_height", height, "width", size.Width, "height", size.Height)
	s.warn("resize main panel", s.main.MoveResize(platform.Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  round(size.Width),
		Height: round(size.Height),
	}))
	return size
}

// ContentSize pads content by 32 and clamps width to [300, 800] and height
// to [150, 400].
func ContentSize(width, height float64) placement.Size {
	return placement.Size{
		Width:  math.Min(math.Max(width+contentPadding, minWidth), maxWidth),
		Height: math.Min(math.Max(height+contentPadding, minHeight), maxHeight),
	}
}

// UpdateSpaces sets whether the main panel appears on every desktop.
func (s *Service) UpdateSpaces(allSpaces bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var behavior platform.CollectionBehavior
	if allSpaces {
		behavior = platform.AllSpaces
	}
	s.prefs.ShowOnAllSpaces = allSpaces
	s.warn("collection behavior", s.main.SetCollectionBehavior(behavior))
}

// ScreenInfo reports the current monitor's size and the grid g resolves to
// there, falling back to 1920x1080 with a 4x3 grid.
func (s *Service) ScreenInfo(g placement.Grid) ScreenInfo {
	mon, ok := s.catalog.Current()
	if !ok {
		cols, rows := 4, 3
		if !g.AutoDetect {
			cols, rows = g.Cols, g.Rows
		}
		fb := monitor.Fallback()
		return ScreenInfo{Width: fb.Width, Height: fb.Height, Cols: cols, Rows: rows}
	}
	cols, rows := placement.GridDimensions(g, mon)
	return ScreenInfo{Width: mon.Width, Height: mon.Height, Cols: cols, Rows: rows}
}

// Positions lists every slot of g on the main panel's monitor.
func (s *Service) Positions(g placement.Grid) ([]placement.Slot, monitor.Info, error) {
	mon, ok := s.catalog.Current()
	if !ok {
		mon = s.catalog.List()[0]
	}
	slots, err := placement.Slots(g, mon, s.mainSize)
	return slots, mon, err
}

// Monitors lists the monitors, falling back to a synthetic one.
func (s *Service) Monitors() []monitor.Info {
	return s.catalog.List()
}

// MainOnScreen reports whether the main panel's centre lies on a monitor.
// It reports true when either the panel or the monitors cannot be read.
func (s *Service) MainOnScreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.main.Rect()
	if err != nil {
		return true
	}
	monitors, err := s.catalog.Enumerate()
	if err != nil || len(monitors) == 0 {
		return true
	}
	_, ok := monitor.Containing(monitors, float64(r.X)+float64(r.Width)/2, float64(r.Y)+float64(r.Height)/2)
	return ok
}

// Stop cancels any pending interaction revert.
func (s *Service) Stop() {
	s.controller.Stop()
}

func (s *Service) warn(what string, err error) {
	if err != nil {
		s.logger.Warn("window write failed", "op", what, "error", err)
	}
}

func toRect(pt placement.Point, size placement.Size) platform.Rect {
	return platform.Rect{
		X:      round(pt.X),
		Y:      round(pt.Y),
		Width:  round(size.Width),
		Height: round(size.Height),
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
