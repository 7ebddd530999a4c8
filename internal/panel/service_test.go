package panel

import (
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/interaction"
	"github.com/1broseidon/floatpane/internal/placement"
	"github.com/1broseidon/floatpane/internal/platform"
	"github.com/1broseidon/floatpane/internal/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	backend  *platformtest.Backend
	service  *Service
	main     platform.WindowID
	settings platform.WindowID
}

func newFixture(t *testing.T, displays ...platform.Display) fixture {
	t.Helper()
	if len(displays) == 0 {
		displays = []platform.Display{platformtest.Display(0, 0, 0, 1920, 1080)}
	}
	backend := platformtest.New(displays...)
	cfg := config.DefaultConfig()
	main := backend.AddWindow(cfg.Windows.Main.Title, platform.Rect{X: 100, Y: 100, Width: 450, Height: 220})
	settings := backend.AddWindow(cfg.Windows.Settings.Title, platform.Rect{Width: 400, Height: 600})
	return fixture{
		backend:  backend,
		service:  New(backend, cfg, nil),
		main:     main,
		settings: settings,
	}
}

func TestShowSettings_EndToEndExample(t *testing.T) {
	f := newFixture(t)

	d, ok := f.service.ShowSettings()
	require.True(t, ok)
	assert.Equal(t, placement.RuleRight, d.Rule)
	assert.Equal(t, placement.Point{X: 570, Y: 100}, d.Point)

	r := f.backend.Rect(f.settings)
	assert.Equal(t, 570, r.X)
	assert.Equal(t, 100, r.Y)
	assert.True(t, f.backend.Visible(f.settings))
}

func TestShowSettings_CentresWhenNoMonitors(t *testing.T) {
	f := newFixture(t)
	f.backend.DisplayErr = errors.New("randr gone")

	_, ok := f.service.ShowSettings()
	assert.False(t, ok)
	assert.Equal(t, []string{"center", "show", "focus"}, f.backend.Ops())
}

func TestPlaceMain_GridOnPreferredMonitor(t *testing.T) {
	f := newFixture(t,
		platformtest.Display(0, 0, 0, 1920, 1080),
		platformtest.Display(1, 1920, 0, 1920, 1080),
	)

	pt, err := f.service.PlaceMain(Request{
		Mode:             placement.Grid{Position: 0, Cols: 4, Rows: 3},
		PreferredMonitor: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, placement.Point{X: 1970, Y: 50}, pt)
	assert.Equal(t, platform.Rect{X: 1970, Y: 50, Width: 400, Height: 300}, f.backend.Rect(f.main))
}

func TestPlaceMain_AutoUsesCurrentMonitor(t *testing.T) {
	f := newFixture(t,
		platformtest.Display(0, 0, 0, 1920, 1080),
		platformtest.Display(1, 1920, 0, 1920, 1080),
	)
	require.NoError(t, f.backend.Move(f.main, 2500, 400))

	pt, err := f.service.PlaceMain(Request{Mode: placement.Grid{Cols: 1, Rows: 1}, PreferredMonitor: "auto"})
	require.NoError(t, err)
	assert.Equal(t, placement.Point{X: 1920 + 760, Y: 390}, pt)
}

func TestPlaceMain_EmptyGridRejected(t *testing.T) {
	f := newFixture(t)
	f.backend.Reset()

	_, err := f.service.PlaceMain(Request{Mode: placement.Grid{Cols: 0, Rows: 3}})
	assert.ErrorIs(t, err, placement.ErrEmptyGrid)
	assert.Empty(t, f.backend.Ops())
}

func TestPlaceMain_MissingWindowIsNotAnError(t *testing.T) {
	backend := platformtest.New(platformtest.Display(0, 0, 0, 1920, 1080))
	s := New(backend, config.DefaultConfig(), nil)

	pt, err := s.PlaceMain(Request{Mode: placement.Manual{X: 10, Y: 20}})
	require.NoError(t, err)
	assert.Equal(t, placement.Point{X: 10, Y: 20}, pt)
	assert.Empty(t, backend.Ops())
}

func TestSaveManualPosition(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, placement.Point{X: 100, Y: 100}, f.service.SaveManualPosition())

	require.NoError(t, f.backend.Move(f.main, 640, 32))
	assert.Equal(t, placement.Point{X: 640, Y: 32}, f.service.SaveManualPosition())

	empty := New(platformtest.New(), config.DefaultConfig(), nil)
	assert.Equal(t, placement.Point{X: 100, Y: 100}, empty.SaveManualPosition())
}

func TestShowMain_CentresOnPrimary(t *testing.T) {
	f := newFixture(t,
		platformtest.Display(0, 0, 0, 1920, 1080),
		platformtest.Display(1, 1920, 0, 1920, 1080),
	)
	require.NoError(t, f.backend.Move(f.main, 3000, 500))

	pt := f.service.ShowMain()
	assert.Equal(t, placement.Point{X: 760, Y: 390}, pt)
	assert.Equal(t, platform.LevelRaised, f.backend.Level(f.main))
	assert.True(t, f.backend.Visible(f.main))
}

func TestShowMain_FallbackPosition(t *testing.T) {
	f := newFixture(t)
	f.backend.DisplayErr = errors.New("no randr")
	assert.Equal(t, placement.Point{X: 100, Y: 100}, f.service.ShowMain())
}

func TestContentSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want placement.Size
	}{
		{100, 50, placement.Size{Width: 300, Height: 150}},
		{400, 200, placement.Size{Width: 432, Height: 232}},
		{1000, 1000, placement.Size{Width: 800, Height: 400}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentSize(tt.w, tt.h))
	}
}

func TestResizeForContent_KeepsPosition(t *testing.T) {
	f := newFixture(t)
	f.service.ResizeForContent(400, 200)
	assert.Equal(t, platform.Rect{X: 100, Y: 100, Width: 432, Height: 232}, f.backend.Rect(f.main))
}

func TestUpdateSpaces(t *testing.T) {
	f := newFixture(t)
	f.service.UpdateSpaces(true)
	assert.Equal(t, platform.CanJoinAllSpaces|platform.Stationary, f.backend.Behavior(f.main))
	f.service.UpdateSpaces(false)
	assert.Equal(t, platform.CollectionBehavior(0), f.backend.Behavior(f.main))
	assert.False(t, f.service.Preferences().ShowOnAllSpaces)
}

func TestScreenInfo(t *testing.T) {
	f := newFixture(t, platformtest.Display(0, 0, 0, 3440, 1440))
	assert.Equal(t, ScreenInfo{Width: 3440, Height: 1440, Cols: 6, Rows: 3}, f.service.ScreenInfo(placement.Grid{AutoDetect: true}))
	assert.Equal(t, ScreenInfo{Width: 3440, Height: 1440, Cols: 2, Rows: 2}, f.service.ScreenInfo(placement.Grid{Cols: 2, Rows: 2}))

	headless := New(platformtest.New(), config.DefaultConfig(), nil)
	assert.Equal(t, ScreenInfo{Width: 1920, Height: 1080, Cols: 4, Rows: 3}, headless.ScreenInfo(placement.Grid{AutoDetect: true}))
	assert.Equal(t, ScreenInfo{Width: 1920, Height: 1080, Cols: 5, Rows: 2}, headless.ScreenInfo(placement.Grid{Cols: 5, Rows: 2}))
}

func TestPositions(t *testing.T) {
	f := newFixture(t)
	slots, mon, err := f.service.Positions(placement.Grid{AutoDetect: true})
	require.NoError(t, err)
	assert.Equal(t, 0, mon.Index)
	assert.Len(t, slots, 12)
}

func TestInteractionDelegation(t *testing.T) {
	f := newFixture(t)
	var seen []interaction.State
	f.service.Controller().Subscribe(func(s interaction.State) { seen = append(seen, s) })

	assert.Equal(t, interaction.ClickThrough, f.service.ToggleInteraction())
	assert.True(t, f.backend.Passthrough(f.main))
	assert.Equal(t, platform.LevelStatus, f.backend.Level(f.main))

	f.service.SetInteraction(false)
	assert.False(t, f.backend.Passthrough(f.main))
	assert.False(t, f.service.RequestTemporaryInteractive())
	assert.Equal(t, []interaction.State{interaction.ClickThrough, interaction.Interactive}, seen)
}

func TestFixInteractivity(t *testing.T) {
	f := newFixture(t)
	f.service.SetInteraction(true)
	require.NoError(t, f.service.FixInteractivity())
	assert.Equal(t, interaction.Interactive, f.service.Controller().State())
	assert.False(t, f.backend.Passthrough(f.main))

	headless := New(platformtest.New(), config.DefaultConfig(), nil)
	assert.ErrorIs(t, headless.FixInteractivity(), platform.ErrWindowNotFound)
}

func TestInit_StartupSequence(t *testing.T) {
	f := newFixture(t)
	f.service.Init()

	ops := f.backend.Ops()
	require.GreaterOrEqual(t, len(ops), 7)
	assert.Equal(t, []string{"level", "movable", "collection", "show", "center", "focus", "hide"}, ops[:7])
	assert.False(t, f.backend.Visible(f.settings))
	assert.Equal(t, platform.AllSpaces, f.backend.Behavior(f.main))

	// Default preferences: grid slot 4 of the auto 4x3 grid for 16:9.
	assert.Equal(t, platform.Rect{X: 50, Y: 390, Width: 400, Height: 300}, f.backend.Rect(f.main))
}

func TestMainOnScreen(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.service.MainOnScreen())
	require.NoError(t, f.backend.Move(f.main, 5000, 5000))
	assert.False(t, f.service.MainOnScreen())
}

// gatedBackend parks SetLevel(LevelRaised) until release is closed.
type gatedBackend struct {
	*platformtest.Backend
	entered chan struct{}
	release chan struct{}
}

func (b *gatedBackend) SetLevel(id platform.WindowID, level platform.Level) error {
	if level == platform.LevelRaised {
		close(b.entered)
		<-b.release
	}
	return b.Backend.SetLevel(id, level)
}

func TestShowMainAndToggleDoNotInterleave(t *testing.T) {
	backend := &gatedBackend{
		Backend: platformtest.New(platformtest.Display(0, 0, 0, 1920, 1080)),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	cfg := config.DefaultConfig()
	main := backend.AddWindow(cfg.Windows.Main.Title, platform.Rect{Width: 400, Height: 300})
	svc := New(backend, cfg, nil)

	showDone := make(chan struct{})
	go func() {
		defer close(showDone)
		svc.ShowMain()
	}()
	<-backend.entered

	toggleDone := make(chan struct{})
	go func() {
		defer close(toggleDone)
		svc.ToggleInteraction()
	}()

	require.Never(t, func() bool {
		for _, op := range backend.Ops() {
			if op == "passthrough" {
				return true
			}
		}
		return false
	}, 50*time.Millisecond, 5*time.Millisecond)

	close(backend.release)
	<-showDone
	<-toggleDone

	assert.Equal(t, []string{"show", "move-resize", "level", "focus", "passthrough", "movable", "mouse-moved", "level"}, backend.Ops())
	assert.Equal(t, platform.LevelStatus, backend.Level(main))
}
