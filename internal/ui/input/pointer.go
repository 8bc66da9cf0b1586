package input

import (
	"context"
	"math"

	"github.com/bnema/dockable/internal/application/usecase"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/logging"
)

// Action is what the current pointer drag does.
type Action int

const (
	ActionNone Action = iota
	// ActionMoveHeader drags a panel by its header or by one of its tabs.
	ActionMoveHeader
	// ActionResizePanel drags a floating panel's corner handle.
	ActionResizePanel
	// ActionResizeDivider drags the divider of a split.
	ActionResizeDivider
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionMoveHeader:
		return "move_header"
	case ActionResizePanel:
		return "resize_panel"
	case ActionResizeDivider:
		return "resize_divider"
	default:
		return "none"
	}
}

const (
	DefaultDragThreshold = 10.0
	DefaultCaptureRadius = 50.0
)

// Settings tunes drag detection.
type Settings struct {
	// DragThreshold is how far the pointer travels on either axis before a
	// press turns into a drag.
	DragThreshold float64
	// CaptureRadius is the distance within which a dragged header snaps to
	// a dock anchor.
	CaptureRadius float64
}

// DefaultSettings returns the stock drag settings.
func DefaultSettings() Settings {
	return Settings{
		DragThreshold: DefaultDragThreshold,
		CaptureRadius: DefaultCaptureRadius,
	}
}

// Frame is the engine state a pointer event applies to.
type Frame struct {
	Dockspace *entity.Dockspace
	// Layout is the last resolved layout, source of the dock anchors.
	Layout    *entity.Layout
	Container entity.Rect
}

// State is a read-only view of the machine for renderers.
type State struct {
	Action   Action
	Down     bool
	Locked   bool
	Position entity.Point
	// ShowAnchors is set while a header drag is past the threshold.
	ShowAnchors   bool
	GrabbedPanel  entity.PanelID
	NearestAnchor *entity.Anchor
}

// PointerConfig holds the dependencies of a PointerMachine.
type PointerConfig struct {
	Panels   *usecase.ManagePanelsUseCase
	Floating *usecase.ManageFloatingUseCase
	Settings Settings
}

// PointerMachine turns raw pointer events into drags, resizes, undocks and
// docks. It is not safe for concurrent use; the engine serializes calls.
type PointerMachine struct {
	panels   *usecase.ManagePanelsUseCase
	floating *usecase.ManageFloatingUseCase
	settings Settings

	down    bool
	locked  bool
	action  Action
	downPos entity.Point
	pos     entity.Point

	grabbedPanel entity.PanelID
	grabbedTab   int
	grabbedRect  entity.Rect
	divider      entity.Divider
	nearest      *entity.Anchor

	onActionChange func(from, to Action)
}

// NewPointerMachine creates an idle pointer machine.
func NewPointerMachine(cfg PointerConfig) *PointerMachine {
	settings := cfg.Settings
	settings.DragThreshold = max(settings.DragThreshold, 0)
	settings.CaptureRadius = max(settings.CaptureRadius, 0)
	return &PointerMachine{
		panels:     cfg.Panels,
		floating:   cfg.Floating,
		settings:   settings,
		grabbedTab: -1,
	}
}

// SetSettings replaces the drag settings. Takes effect on the next press.
func (m *PointerMachine) SetSettings(s Settings) {
	m.settings = s
}

// SetOnActionChange registers a callback fired on every action transition.
func (m *PointerMachine) SetOnActionChange(fn func(from, to Action)) {
	m.onActionChange = fn
}

// OnActionChange returns the registered action callback, or nil.
func (m *PointerMachine) OnActionChange() func(from, to Action) {
	return m.onActionChange
}

// State returns a snapshot of the machine.
func (m *PointerMachine) State() State {
	s := State{
		Action:      m.action,
		Down:        m.down,
		Locked:      m.locked,
		Position:    m.pos,
		ShowAnchors: m.down && !m.locked && m.action == ActionMoveHeader,
	}
	if m.down {
		s.GrabbedPanel = m.grabbedPanel
	}
	if m.nearest != nil {
		a := *m.nearest
		s.NearestAnchor = &a
	}
	return s
}

func (m *PointerMachine) setAction(ctx context.Context, to Action) {
	from := m.action
	m.action = to
	if from == to {
		return
	}
	logging.FromContext(ctx).Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("pointer action")
	if m.onActionChange != nil {
		m.onActionChange(from, to)
	}
}

func (m *PointerMachine) reset(ctx context.Context) {
	m.down = false
	m.locked = false
	m.grabbedPanel = ""
	m.grabbedTab = -1
	m.grabbedRect = entity.Rect{}
	m.divider = entity.Divider{}
	m.nearest = nil
	m.setAction(ctx, ActionNone)
}

func (m *PointerMachine) press(ctx context.Context, action Action, pos entity.Point) {
	m.reset(ctx)
	m.down = true
	m.locked = true
	m.downPos = pos
	m.pos = pos
	m.setAction(ctx, action)
}

// PanelActivate handles a press on a panel body: focus only, no drag.
func (m *PointerMachine) PanelActivate(ctx context.Context, f Frame, panelID entity.PanelID) bool {
	p := f.Dockspace.Panel(panelID)
	if p == nil {
		return false
	}
	m.floating.BringToFront(ctx, f.Dockspace, panelID, p.Ephemeral)
	return true
}

// HeaderDown starts a header drag of the whole panel.
func (m *PointerMachine) HeaderDown(ctx context.Context, f Frame, panelID entity.PanelID, pos entity.Point) bool {
	return m.grab(ctx, f, panelID, -1, ActionMoveHeader, pos)
}

// TabDown selects a tab and starts dragging it.
func (m *PointerMachine) TabDown(ctx context.Context, f Frame, panelID entity.PanelID, tab int, pos entity.Point) bool {
	if err := m.panels.SelectTab(ctx, f.Dockspace, panelID, tab); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("tab press ignored")
		return false
	}
	return m.grab(ctx, f, panelID, tab, ActionMoveHeader, pos)
}

// ResizeHandleDown starts resizing a floating panel.
func (m *PointerMachine) ResizeHandleDown(ctx context.Context, f Frame, panelID entity.PanelID, pos entity.Point) bool {
	p := f.Dockspace.Panel(panelID)
	if p == nil || !p.Floating {
		return false
	}
	return m.grab(ctx, f, panelID, -1, ActionResizePanel, pos)
}

func (m *PointerMachine) grab(ctx context.Context, f Frame, panelID entity.PanelID, tab int, action Action, pos entity.Point) bool {
	p := f.Dockspace.Panel(panelID)
	if p == nil {
		return false
	}
	m.press(ctx, action, pos)
	m.grabbedPanel = panelID
	m.grabbedTab = tab
	m.grabbedRect = p.Rect

	m.floating.BringToFront(ctx, f.Dockspace, panelID, p.Ephemeral)
	return true
}

// DividerDown starts dragging a split divider.
func (m *PointerMachine) DividerDown(ctx context.Context, d entity.Divider, pos entity.Point) {
	m.press(ctx, ActionResizeDivider, pos)
	m.divider = d
}

// Move feeds a pointer position. Returns true when the dockspace changed.
func (m *PointerMachine) Move(ctx context.Context, f Frame, pos entity.Point) bool {
	prev := m.pos
	m.pos = pos
	if !m.down {
		return false
	}

	switch {
	case m.action == ActionResizePanel:
		p := f.Dockspace.Panel(m.grabbedPanel)
		if p == nil {
			return false
		}
		w := m.grabbedRect.W + pos.X - m.downPos.X
		h := m.grabbedRect.H + pos.Y - m.downPos.Y
		return m.floating.ResizeBy(f.Dockspace, p.ID, w-p.Rect.W, h-p.Rect.H)

	case m.action == ActionResizeDivider:
		return m.panels.SetSplitSize(f.Dockspace, m.divider.Panel, m.divider.SplitSizeAt(pos))

	case m.locked:
		if math.Abs(pos.X-m.downPos.X) <= m.settings.DragThreshold &&
			math.Abs(pos.Y-m.downPos.Y) <= m.settings.DragThreshold {
			return false
		}
		m.locked = false
		if m.action == ActionMoveHeader {
			m.startHeaderDrag(ctx, f)
		}
		return true

	case m.action == ActionMoveHeader:
		m.nearest = m.nearestAnchor(f.Layout, pos)
		m.floating.MoveBy(f.Dockspace, m.grabbedPanel, pos.X-prev.X, pos.Y-prev.Y)
		return true
	}
	return false
}

// startHeaderDrag runs once the press becomes a drag: a docked panel, or a
// single tab of a multi-tab panel, is torn out into a new floating panel
// under the pointer. An already floating panel keeps being dragged.
func (m *PointerMachine) startHeaderDrag(ctx context.Context, f Frame) {
	log := logging.FromContext(ctx)
	p := f.Dockspace.Panel(m.grabbedPanel)
	if p == nil || len(p.WindowIDs) == 0 {
		return
	}

	tab := m.grabbedTab
	if tab < 0 || len(p.WindowIDs) == 1 {
		if p.Floating {
			// Catch up with the distance covered while locked.
			m.floating.MoveBy(f.Dockspace, p.ID, m.pos.X-m.downPos.X, m.pos.Y-m.downPos.Y)
			m.floating.BringToFront(ctx, f.Dockspace, p.ID, p.Ephemeral)
			return
		}
		tab = -1
	}

	// Without a reported size the tabs keep the size they had in place.
	fallback := p.Rect.Size()
	if r, ok := f.Layout.RectOf(p.ID); ok {
		fallback = r.Size()
	}
	np, err := m.floating.Undock(ctx, f.Dockspace, p.ID, tab, m.pos, fallback)
	if err != nil {
		log.Debug().Err(err).Str("panel_id", string(p.ID)).Msg("undock failed")
		return
	}
	m.grabbedPanel = np.ID
	m.grabbedTab = -1
	m.grabbedRect = np.Rect
}

func (m *PointerMachine) nearestAnchor(layout *entity.Layout, pos entity.Point) *entity.Anchor {
	if layout == nil {
		return nil
	}
	best := m.settings.CaptureRadius * m.settings.CaptureRadius
	var nearest *entity.Anchor
	for i := range layout.Anchors {
		a := &layout.Anchors[i]
		if a.Panel == m.grabbedPanel {
			continue
		}
		if d := a.Point.DistanceSqr(pos); d < best {
			best = d
			nearest = a
		}
	}
	if nearest == nil {
		return nil
	}
	found := *nearest
	return &found
}

// Up ends the current action: a header drag released over an anchor docks
// the grabbed panel, then floating panels are clamped back into the
// container. A release without a press is ignored.
func (m *PointerMachine) Up(ctx context.Context, f Frame, pos entity.Point) bool {
	if !m.down {
		return false
	}
	m.pos = pos
	log := logging.FromContext(ctx)

	changed := false
	if m.action == ActionMoveHeader && !m.locked && m.nearest != nil {
		anchor := *m.nearest
		m.nearest = nil

		p := f.Dockspace.Panel(m.grabbedPanel)
		switch {
		case p == nil || len(p.WindowIDs) == 0:
			log.Debug().Str("panel_id", string(m.grabbedPanel)).Msg("drop discarded: nothing left to dock")
		default:
			if err := m.panels.Dock(ctx, f.Dockspace, p.ID, anchor.Panel, anchor.Mode); err != nil {
				log.Debug().Err(err).Msg("drop rejected")
			} else {
				changed = true
			}
		}
	}

	if m.floating.ClampAll(ctx, f.Dockspace, f.Container) > 0 {
		changed = true
	}
	m.reset(ctx)
	return changed
}

// TabClose closes a tab through its close button, independent of any drag.
func (m *PointerMachine) TabClose(ctx context.Context, f Frame, panelID entity.PanelID, tab int) bool {
	p := f.Dockspace.Panel(panelID)
	if p == nil || tab < 0 || tab >= len(p.WindowIDs) {
		return false
	}
	if err := m.panels.CloseTab(ctx, f.Dockspace, panelID, tab); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("tab close failed")
		return false
	}
	return true
}
