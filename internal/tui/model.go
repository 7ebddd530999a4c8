package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/monitor"
	"github.com/1broseidon/floatpane/internal/panel"
	"github.com/1broseidon/floatpane/internal/placement"
)

const sidebarWidth = 26

// monitorItem implements list.Item for the monitor sidebar.
type monitorItem struct {
	info monitor.Info
}

func (i monitorItem) Title() string {
	name := i.info.Name
	if name == "" {
		name = fmt.Sprintf("monitor %d", i.info.Index)
	}
	if i.info.Primary {
		name += " *"
	}
	return fmt.Sprintf("%s  %.0f×%.0f", name, i.info.Width, i.info.Height)
}

func (i monitorItem) Description() string { return "" }
func (i monitorItem) FilterValue() string { return i.info.Name }

// model is the root bubbletea model for the TUI.
type model struct {
	cfg      *config.Config
	original config.Config
	path     string
	place    func(panel.Request) error

	infos    []monitor.Info
	monitors list.Model

	// Edit mode
	editing bool
	form    *huh.Form
	fields  *formFields

	status    string
	statusErr bool

	width  int
	height int
}

func newModel(opts Options) model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	infos := opts.Monitors
	if len(infos) == 0 {
		infos = []monitor.Info{monitor.Fallback()}
	}

	items := make([]list.Item, 0, len(infos))
	for _, info := range infos {
		items = append(items, monitorItem{info: info})
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, sidebarWidth, 10)
	l.Title = "Monitors"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return model{
		cfg:      cfg,
		original: *cfg,
		path:     path,
		place:    opts.Place,
		infos:    infos,
		monitors: l,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.height = ws.Height
		m.monitors.SetSize(sidebarWidth, max(ws.Height-4, 3))
	}

	if m.editing {
		return m.updateEditing(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch km.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		m.moveSelection(-1)
	case "right", "l":
		m.moveSelection(1)
	case "up", "k":
		cols, _ := m.gridDims()
		m.moveSelection(-cols)
	case "down", "j":
		cols, _ := m.gridDims()
		m.moveSelection(cols)
	case "tab":
		m.monitors.Select((m.monitors.Index() + 1) % len(m.infos))
	case "shift+tab":
		m.monitors.Select((m.monitors.Index() - 1 + len(m.infos)) % len(m.infos))
	case "r":
		m.toggleRandom()
	case "e":
		m.startEditing()
		return m, m.form.Init()
	case "s":
		m.save()
	case "enter":
		m.applyToPanel()
	}
	return m, nil
}

func (m model) currentMonitor() monitor.Info {
	idx := m.monitors.Index()
	if idx < 0 || idx >= len(m.infos) {
		return m.infos[0]
	}
	return m.infos[idx]
}

func (m model) gridDims() (cols, rows int) {
	return placement.GridDimensions(m.cfg.Placement.Grid(), m.currentMonitor())
}

// selected returns the grid position normalised onto the current lattice.
func (m model) selected() int {
	cols, rows := m.gridDims()
	total := cols * rows
	if total < 1 {
		return 0
	}
	return ((m.cfg.Placement.GridPosition % total) + total) % total
}

func (m *model) moveSelection(delta int) {
	cols, rows := m.gridDims()
	total := cols * rows
	if total < 1 {
		m.setStatus("grid has no slots", true)
		return
	}
	m.cfg.Placement.Mode = config.PlacementGrid
	m.cfg.Placement.GridPosition = (((m.selected() + delta) % total) + total) % total
	m.status = ""
}

func (m *model) toggleRandom() {
	if m.cfg.Placement.Mode == config.PlacementRandom {
		m.cfg.Placement.Mode = config.PlacementGrid
	} else {
		m.cfg.Placement.Mode = config.PlacementRandom
	}
	m.status = ""
}

func (m *model) applyToPanel() {
	if m.place == nil {
		m.setStatus("no panel to place (daemon owns the window)", true)
		return
	}
	req := panel.Request{
		Mode:             m.cfg.Placement.PlacementMode(),
		PreferredMonitor: strconv.Itoa(m.currentMonitor().Index),
	}
	if err := m.place(req); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("placed "+req.Mode.String(), false)
}

func (m *model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(18).
			Align(lipgloss.Right).
			PaddingRight(2)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := titleStyle.Width(m.width).Render("floatpane placement")
	help := dimStyle.Width(m.width).Padding(0, 1).Render(
		"←↑↓→: slot  tab: monitor  r: random  e: edit  s: save  enter: place  q: quit")

	var status string
	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errStyle
		}
		status = style.Padding(0, 1).Render(m.status)
	}

	bodyHeight := max(m.height-lipgloss.Height(title)-lipgloss.Height(help)-1, 3)

	var body string
	if m.editing && m.form != nil {
		body = lipgloss.NewStyle().Padding(1, 2).Render(
			valueStyle.Render("Editing placement") + dimStyle.Render("  (esc to cancel)") + "\n\n" + m.form.View())
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.monitors.View(), m.viewPreview(m.width-sidebarWidth-2, bodyHeight))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, status, help)
}

func (m model) viewPreview(width, height int) string {
	p := m.cfg.Placement
	mon := m.currentMonitor()
	window := m.cfg.Windows.Main.Size()
	cols, rows := m.gridDims()
	random := p.Mode == config.PlacementRandom

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	info := []string{
		row("Mode", string(p.Mode)),
		row("Grid", fmt.Sprintf("%d×%d", cols, rows)+autoSuffix(p.AutoDetectGrid)),
		row("Preferred monitor", p.PreferredMonitor),
		row("All desktops", strconv.FormatBool(p.ShowOnAllSpaces)),
	}
	if !random {
		if pt, err := placement.Compute(placement.Grid{Position: m.selected(), Cols: p.ManualCols, Rows: p.ManualRows, AutoDetect: p.AutoDetectGrid}, mon, window); err == nil {
			info = append(info, row("Slot", fmt.Sprintf("%d at (%.0f, %.0f)", m.selected(), pt.X, pt.Y)))
		}
	}

	canvasH := max(height-len(info)-1, 3)
	canvasW := max(width, 5)
	// Terminal cells are roughly twice as tall as wide.
	if ideal := int(float64(canvasH) * 2 * mon.Width / mon.Height); ideal < canvasW {
		canvasW = max(ideal, 5)
	}
	canvas := renderPreview(mon, p.Grid(), window, m.selected(), random, canvasW, canvasH)

	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(canvas, "\n") + "\n" + strings.Join(info, "\n"))
}

func autoSuffix(auto bool) string {
	if auto {
		return " (auto)"
	}
	return ""
}
