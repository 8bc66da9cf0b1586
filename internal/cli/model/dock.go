// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockable/internal/application/port"
	"github.com/bnema/dockable/internal/application/usecase"
	"github.com/bnema/dockable/internal/cli/styles"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/logging"
	"github.com/bnema/dockable/internal/ui/dock"
	"github.com/bnema/dockable/internal/ui/input"
)

const defaultFrameInterval = time.Second / 30

// ThemeMsg swaps the theme, typically after a config reload.
type ThemeMsg struct {
	Theme *styles.Theme
}

// TaskMsg runs a task on the UI loop. A non-nil result is handled as the
// next message.
type TaskMsg func() tea.Msg

type frameMsg time.Time

// DockModel is the Bubble Tea model hosting a docking engine in the
// terminal. Cells are converted to engine pixels with the configured
// cell size.
type DockModel struct {
	// UI components
	help     help.Model
	keys     dockKeyMap
	showHelp bool

	// State
	width     int
	height    int
	status    string
	lastPoint entity.Point

	// Config
	cellW, cellH  float64
	frameInterval time.Duration
	initial       *entity.LayoutSnapshot

	// Dependencies
	ctx     context.Context
	engine  *dock.Engine
	content *DemoContent
	stats   *layoutStats
	theme   *styles.Theme
	// menuTargets maps each popup menu to the panel it was opened on.
	menuTargets map[entity.ContentID]entity.PanelID
}

// dockKeyMap defines keybindings for the dock demo.
type dockKeyMap struct {
	NewNote  key.Binding
	Menu     key.Binding
	NextTab  key.Binding
	CloseTab key.Binding
	Dismiss  key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k dockKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewNote, k.Reset, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k dockKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewNote, k.Menu, k.Dismiss},
		{k.NextTab, k.CloseTab, k.Reset},
		{k.Help, k.Quit},
	}
}

func defaultDockKeyMap() dockKeyMap {
	return dockKeyMap{
		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new floating note"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m/right click", "popup menu"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close tab"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss popups"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset layout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DockModelConfig holds configuration for the dock model.
type DockModelConfig struct {
	Settings   dock.Settings
	CellWidth  float64
	CellHeight float64
	// Layout is loaded at startup and on reset. Nil uses DefaultLayout.
	Layout *entity.LayoutSnapshot
	// Content defaults to NewDemoContent.
	Content       *DemoContent
	FrameInterval time.Duration
	IDGenerator   usecase.IDGenerator
}

// NewDockModel creates the engine and loads the startup layout.
func NewDockModel(ctx context.Context, theme *styles.Theme, cfg DockModelConfig) (DockModel, error) {
	if cfg.CellWidth <= 0 || cfg.CellHeight <= 0 {
		return DockModel{}, fmt.Errorf("invalid cell size %gx%g", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.Layout == nil {
		cfg.Layout = DefaultLayout()
	}
	if cfg.Content == nil {
		cfg.Content = NewDemoContent(cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = defaultFrameInterval
	}
	if theme == nil {
		theme = styles.NewTheme(nil)
	}

	ctx = logging.WithComponent(ctx, "dock-model")
	stats := &layoutStats{ctx: ctx}
	engine := dock.NewEngine(ctx, dock.EngineConfig{
		ContentFactory: cfg.Content,
		Observer:       stats,
		Settings:       cfg.Settings,
		IDGenerator:    cfg.IDGenerator,
	})
	if err := engine.LoadSnapshot(cfg.Layout); err != nil {
		return DockModel{}, fmt.Errorf("load layout: %w", err)
	}

	return DockModel{
		help:          help.New(),
		keys:          defaultDockKeyMap(),
		cellW:         cfg.CellWidth,
		cellH:         cfg.CellHeight,
		frameInterval: cfg.FrameInterval,
		initial:       cfg.Layout,
		ctx:           ctx,
		engine:        engine,
		content:       cfg.Content,
		stats:         stats,
		theme:         theme,
		menuTargets:   make(map[entity.ContentID]entity.PanelID),
	}, nil
}

// Engine returns the hosted engine.
func (m DockModel) Engine() *dock.Engine {
	return m.engine
}

// Init implements tea.Model.
func (m DockModel) Init() tea.Cmd {
	return m.tick()
}

func (m DockModel) tick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m DockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncBounds()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.engine.RunFrame()
		return m, m.tick()

	case TaskMsg:
		if msg == nil {
			return m, nil
		}
		if next := msg(); next != nil {
			return m.Update(next)
		}
		return m, nil

	case ThemeMsg:
		if msg.Theme != nil {
			m.theme = msg.Theme
		}
		return m, nil
	}
	return m, nil
}

// toPoint maps a cell to the engine point at its center.
func (m DockModel) toPoint(x, y int) entity.Point {
	return entity.Point{X: (float64(x) + 0.5) * m.cellW, Y: (float64(y) + 0.5) * m.cellH}
}

func (m *DockModel) handleMouse(msg tea.MouseMsg) {
	pt := m.toPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Y >= m.canvasHeight() {
			return
		}
		m.lastPoint = pt
		switch msg.Button {
		case tea.MouseButtonLeft:
			if m.pickMenuItem(msg.X, msg.Y, pt) {
				return
			}
			hit := m.engine.PointerDown(pt)
			m.status = hit.Kind.String()
		case tea.MouseButtonRight:
			m.openMenu(pt)
		}
	case tea.MouseActionMotion:
		m.lastPoint = pt
		m.engine.PointerMove(pt)
	case tea.MouseActionRelease:
		m.engine.PointerUp(pt)
	}
}

func (m DockModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.syncBounds()
	case key.Matches(msg, m.keys.NewNote):
		m.openNote()
	case key.Matches(msg, m.keys.Menu):
		m.openMenu(m.lastPoint)
	case key.Matches(msg, m.keys.Dismiss):
		m.status = fmt.Sprintf("dismissed %d", m.engine.DismissEphemerals())
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab()
	case key.Matches(msg, m.keys.CloseTab):
		m.closeActiveTab()
	case key.Matches(msg, m.keys.Reset):
		if err := m.engine.LoadSnapshot(m.initial); err != nil {
			m.status = err.Error()
		} else {
			m.status = "layout reset"
		}
	}
	return m, nil
}

// openNote opens a note centered in the workspace. It is placed once its
// preferred size arrives.
func (m *DockModel) openNote() {
	m.openNoteAt(m.engine.Bounds().Center(), false)
}

// openNoteAt opens a note centered on at. onTop keeps the click being
// handled from raising another panel over it.
func (m *DockModel) openNoteAt(at entity.Point, onTop bool) (entity.PanelID, bool) {
	id := m.content.NewNote()
	panel, err := m.engine.OpenWindow([]entity.ContentID{id}, usecase.OpenOptions{
		AnchorRect:  entity.NewRect(at.X, at.Y, 0, 0),
		AppearOnTop: onTop,
	})
	if err != nil {
		m.status = err.Error()
		return "", false
	}
	// Attach now so the preferred size is queued for the next frame.
	m.engine.Renderable(id)
	m.status = "opened " + string(panel)
	return panel, true
}

func (m *DockModel) openMenu(pt entity.Point) {
	target := m.engine.HitTest(pt).Panel
	if target == "" {
		target = m.engine.Active()
	}
	id := m.content.NewMenu()
	if _, err := m.engine.OpenWindow([]entity.ContentID{id}, usecase.OpenOptions{
		AnchorRect: entity.NewRect(pt.X, pt.Y, 0, 0),
		AlignX:     1,
		AlignY:     1,
		Ephemeral:  true,
	}); err != nil {
		m.status = err.Error()
		return
	}
	// Menus dismissed without a pick leave their entries behind.
	clear(m.menuTargets)
	m.menuTargets[id] = target
	m.engine.Renderable(id)
}

// pickMenuItem runs the popup menu entry under the pressed cell. It reports
// whether the press was consumed; a new note lets the press through so the
// enclosing click cannot raise anything over the note.
func (m *DockModel) pickMenuItem(x, y int, pt entity.Point) bool {
	hit := m.engine.HitTest(pt)
	if hit.Kind != input.HitBody {
		return false
	}
	p, ok := m.engine.Panel(hit.Panel)
	if !ok || len(p.WindowIDs) == 0 {
		return false
	}
	menu := p.ActiveWindow()
	r := toCells(p.Rect, m.cellW, m.cellH)
	item, ok := m.content.MenuItem(menu, y-r.Y-1)
	if !ok || x <= r.X || x >= r.X+r.W-1 {
		return false
	}
	target, ok := m.menuTargets[menu]
	if !ok {
		target = m.engine.Active()
	}
	delete(m.menuTargets, menu)

	logging.FromContext(m.ctx).Debug().
		Str("item", item).
		Str("target", string(target)).
		Msg("menu item picked")

	switch item {
	case MenuNewNote:
		m.openNoteAt(pt, true)
		return false
	case MenuSplitRight:
		m.splitWithNote(target, entity.DockRight)
	case MenuSplitDown:
		m.splitWithNote(target, entity.DockBottom)
	case MenuClose:
		if err := m.engine.ClosePanel(target); err != nil {
			m.status = err.Error()
		} else {
			m.status = "closed " + string(target)
		}
	}
	m.engine.DismissEphemerals()
	return true
}

// splitWithNote docks a new note next to target.
func (m *DockModel) splitWithNote(target entity.PanelID, mode entity.DockMode) {
	panel, ok := m.openNoteAt(m.engine.Bounds().Center(), false)
	if !ok {
		return
	}
	if err := m.engine.Dock(panel, target, mode); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("docked %s %s of %s", panel, mode, target)
}

func (m *DockModel) cycleTab() {
	p, ok := m.engine.Panel(m.engine.Active())
	if !ok || len(p.WindowIDs) < 2 {
		return
	}
	_ = m.engine.SelectTab(p.ID, (p.CurWindowIndex+1)%len(p.WindowIDs))
}

func (m *DockModel) closeActiveTab() {
	p, ok := m.engine.Panel(m.engine.Active())
	if !ok || len(p.WindowIDs) == 0 {
		return
	}
	if err := m.engine.CloseTab(p.ID, p.CurWindowIndex); err != nil {
		m.status = err.Error()
	}
}

func (m DockModel) footer() string {
	if m.showHelp {
		return m.help.View(m.keys)
	}

	floating := len(m.engine.FloatingPanels())
	left := m.theme.StatusBar.Render(fmt.Sprintf(" %d layouts · %d floating · %s ",
		m.stats.changes.Load(), floating, m.engine.Pointer().Action))
	if m.status != "" {
		left += m.theme.Highlight.Render(m.status) + " "
	}
	right := m.help.View(m.keys)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}

func (m DockModel) footerHeight() int {
	return lipgloss.Height(m.footer())
}

func (m DockModel) canvasHeight() int {
	return max(m.height-m.footerHeight(), 0)
}

// syncBounds sizes the engine to the canvas.
func (m DockModel) syncBounds() {
	m.engine.SetBounds(entity.NewRect(0, 0,
		float64(m.width)*m.cellW,
		float64(m.canvasHeight())*m.cellH))
}

// View implements tea.Model.
func (m DockModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return m.draw().render(m.theme) + "\n" + m.footer()
}

// layoutStats counts engine notifications for the status bar.
type layoutStats struct {
	ctx       context.Context
	changes   atomic.Int64
	refreshed atomic.Int64
}

var _ port.LayoutObserver = (*layoutStats)(nil)

func (s *layoutStats) LayoutChanged(*entity.Layout) {
	s.changes.Add(1)
}

func (s *layoutStats) PreferredSizeRefreshed(panel entity.PanelID) {
	s.refreshed.Add(1)
	logging.FromContext(s.ctx).Debug().Str("panel", string(panel)).Msg("panel placed from preferred size")
}
