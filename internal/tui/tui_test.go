package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/monitor"
	"github.com/1broseidon/floatpane/internal/panel"
	"github.com/1broseidon/floatpane/internal/placement"
)

var (
	hd    = monitor.Info{Index: 0, Width: 1920, Height: 1080, Primary: true, Name: "OUT-0"}
	ultra = monitor.Info{Index: 1, X: 1920, Width: 3440, Height: 1440, Name: "OUT-1"}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func newTestModel(t *testing.T, place func(panel.Request) error, monitors ...monitor.Info) model {
	t.Helper()
	if len(monitors) == 0 {
		monitors = []monitor.Info{hd}
	}
	return newModel(Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Config:     config.DefaultConfig(),
		Monitors:   monitors,
		Place:      place,
	})
}

func TestArrowKeysMoveAndWrap(t *testing.T) {
	m := newTestModel(t, nil)
	require.Equal(t, 4, m.selected())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 5, m.selected())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 9, m.selected())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected(), "down from the last row wraps")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 11, m.selected(), "left from slot 0 wraps")
	assert.Equal(t, config.PlacementGrid, m.cfg.Placement.Mode)
}

func TestArrowKeysLeaveRandomMode(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(t, m, runes("r"))
	assert.Equal(t, config.PlacementRandom, m.cfg.Placement.Mode)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, config.PlacementGrid, m.cfg.Placement.Mode)
	assert.Equal(t, 0, m.selected())

	m = press(t, m, runes("r"), runes("r"))
	assert.Equal(t, config.PlacementGrid, m.cfg.Placement.Mode)
}

func TestTabCyclesMonitors(t *testing.T) {
	m := newTestModel(t, nil, hd, ultra)

	cols, rows := m.gridDims()
	assert.Equal(t, []int{4, 3}, []int{cols, rows})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "OUT-1", m.currentMonitor().Name)
	cols, rows = m.gridDims()
	assert.Equal(t, []int{6, 3}, []int{cols, rows})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "OUT-0", m.currentMonitor().Name)
}

func TestSaveWritesChanges(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(t, m, runes("s"))
	assert.Equal(t, "no changes to save", m.status)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("s"))
	require.False(t, m.statusErr, m.status)
	assert.Contains(t, m.status, "grid_position: 4 -> 5")

	loaded, err := config.LoadFromPath(m.path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Placement.GridPosition)

	m = press(t, m, runes("s"))
	assert.Equal(t, "no changes to save", m.status)
}

func TestEnterPlacesOnPreviewedMonitor(t *testing.T) {
	var got []panel.Request
	m := newTestModel(t, func(r panel.Request) error {
		got = append(got, r)
		return nil
	}, hd, ultra)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].PreferredMonitor)
	g, ok := got[0].Mode.(placement.Grid)
	require.True(t, ok)
	assert.Equal(t, 4, g.Position)
	assert.False(t, m.statusErr)
}

func TestEnterReportsErrors(t *testing.T) {
	m := press(t, newTestModel(t, nil), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.statusErr)

	m = newTestModel(t, func(panel.Request) error { return errors.New("window not found") })
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.statusErr)
	assert.Equal(t, "window not found", m.status)
}

func TestEditStartsFormAndEscCancels(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("e"))
	require.True(t, m.editing)
	require.NotNil(t, m.form)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Nil(t, m.form)
}

func TestApplyForm(t *testing.T) {
	m := newTestModel(t, nil)
	m.fields = &formFields{
		mode:         "manual",
		gridPosition: "7",
		autoDetect:   false,
		cols:         "2",
		rows:         "2",
		monitor:      "primary",
		allSpaces:    false,
	}
	require.NoError(t, m.applyForm())

	p := m.cfg.Placement
	assert.Equal(t, config.PlacementManual, p.Mode)
	assert.Equal(t, 7, p.GridPosition)
	assert.Equal(t, 2, p.ManualCols)
	assert.Equal(t, "primary", p.PreferredMonitor)
	assert.False(t, p.ShowOnAllSpaces)
}

func TestApplyFormRejectsInvalid(t *testing.T) {
	m := newTestModel(t, nil)
	m.startEditing()
	m.fields.cols = "0"
	m.fields.autoDetect = false

	assert.Error(t, m.applyForm())
	assert.Equal(t, 4, m.cfg.Placement.ManualCols, "config untouched")

	m.fields.cols = "x"
	assert.Error(t, m.applyForm())
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validInt("-3"))
	assert.Error(t, validInt("three"))
	assert.NoError(t, validPositiveInt("1"))
	assert.Error(t, validPositiveInt("0"))
	assert.NoError(t, validSelector("current"))
	assert.NoError(t, validSelector("2"))
	assert.Error(t, validSelector("-1"))
}

func TestPlacementChanges(t *testing.T) {
	before := config.DefaultConfig().Placement
	after := before
	after.GridPosition = 9
	after.Mode = config.PlacementRandom

	assert.Equal(t, []string{"mode: grid -> random", "grid_position: 4 -> 9"}, placementChanges(before, after))
	assert.Empty(t, placementChanges(before, before))
}

func TestViewRendersPreview(t *testing.T) {
	m := newTestModel(t, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := next.(model).View()

	assert.Contains(t, view, "floatpane placement")
	assert.Contains(t, view, "OUT-0")
	assert.Contains(t, view, "╔")
	assert.Contains(t, view, "┏", "selected slot is highlighted")
}

func TestRenderPreview(t *testing.T) {
	g := placement.Grid{Position: 0, AutoDetect: true}
	window := placement.Size{Width: 400, Height: 300}

	lines := renderPreview(hd, g, window, 0, false, 60, 20)
	require.Len(t, lines, 20)
	for _, l := range lines {
		assert.Equal(t, 60, len([]rune(l)))
	}
	assert.True(t, strings.HasPrefix(lines[0], "╔"))
	all := strings.Join(lines, "\n")
	assert.Contains(t, all, "┏", "selected slot")
	assert.Contains(t, all, "11", "last slot label")

	random := strings.Join(renderPreview(hd, g, window, 0, true, 60, 20), "\n")
	assert.Contains(t, random, "?")
	assert.NotContains(t, random, "┏")

	tiny := renderPreview(hd, g, window, 0, false, 3, 2)
	assert.Equal(t, []string{"   ", "   "}, tiny)
}
