package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/logging"
)

const (
	DefaultMinOverlap   = 40.0
	DefaultHeaderHeight = 24.0
)

// placementGraceFrames is how many frames a just-opened panel waits for its
// content to report a preferred size.
const placementGraceFrames = 1

// ErrNoContent is returned when opening a floating panel without any tab.
var ErrNoContent = errors.New("no content to open")

// FloatingOptions bounds how floating panels may sit relative to the container.
type FloatingOptions struct {
	// MinOverlap is the header width kept inside the container horizontally.
	MinOverlap float64
	// HeaderHeight is the header row kept inside the container vertically.
	HeaderHeight float64
	// MinSize is the smallest size a floating panel can be resized to.
	MinSize entity.Size
}

// DefaultFloatingOptions returns the stock floating settings.
func DefaultFloatingOptions() FloatingOptions {
	return FloatingOptions{
		MinOverlap:   DefaultMinOverlap,
		HeaderHeight: DefaultHeaderHeight,
		MinSize:      entity.Size{W: 40, H: DefaultHeaderHeight},
	}
}

// OpenOptions describes where a new floating panel opens.
type OpenOptions struct {
	// AnchorRect is the rect (or point, with zero size) that spawned the panel.
	AnchorRect entity.Rect
	// AlignX and AlignY are -1, 0 or 1: before, centered on, or after AnchorRect.
	AlignX int
	AlignY int
	// Ephemeral panels are dismissed as soon as focus moves elsewhere.
	Ephemeral bool
	// AppearOnTop keeps the enclosing click from raising another panel over
	// this one when it is opened from inside that click.
	AppearOnTop bool
}

// ManageFloatingUseCase handles the floating panel stack: placement, clamping,
// z-order and ephemeral dismissal.
type ManageFloatingUseCase struct {
	panels *ManagePanelsUseCase
	opts   FloatingOptions
}

// NewManageFloatingUseCase creates a floating panel manager.
func NewManageFloatingUseCase(panels *ManagePanelsUseCase, opts FloatingOptions) *ManageFloatingUseCase {
	opts.MinOverlap = max(opts.MinOverlap, 0)
	opts.HeaderHeight = max(opts.HeaderHeight, 0)
	opts.MinSize.W = max(opts.MinSize.W, 1)
	opts.MinSize.H = max(opts.MinSize.H, 1)
	return &ManageFloatingUseCase{
		panels: panels,
		opts:   opts,
	}
}

// Options returns the floating settings.
func (uc *ManageFloatingUseCase) Options() FloatingOptions {
	return uc.opts
}

// ClampStrictly moves and, if needed, shrinks a floating panel so it lies
// fully inside container.
func (uc *ManageFloatingUseCase) ClampStrictly(ds *entity.Dockspace, panelID entity.PanelID, container entity.Rect) bool {
	p := ds.Panel(panelID)
	if p == nil || !p.Floating || container.IsEmpty() {
		return false
	}
	clamped := p.Rect.ClampInside(container)
	if clamped == p.Rect {
		return false
	}
	p.Rect = clamped
	return true
}

// ClampAll is the loose pass run on container resize and drag release: each
// floating panel keeps part of its header reachable. Panels already meeting
// that are left where the user parked them. Returns the number of panels moved.
func (uc *ManageFloatingUseCase) ClampAll(ctx context.Context, ds *entity.Dockspace, container entity.Rect) int {
	if container.IsEmpty() {
		return 0
	}

	moved := 0
	for _, p := range ds.FloatingPanels() {
		r := p.Rect
		if !ds.JustOpened(p.ID) {
			r = r.WithMinSize(uc.opts.MinSize)
		}

		overlap := min(uc.opts.MinOverlap, r.W)
		r.X = entity.ClampFloat(r.X, container.X1()+overlap-r.W, container.X2()-overlap)

		header := min(uc.opts.HeaderHeight, r.H)
		r.Y = entity.ClampFloat(r.Y, container.Y1(), container.Y2()-header)

		if r != p.Rect {
			p.Rect = r
			moved++
		}
	}

	if moved > 0 {
		logging.FromContext(ctx).Debug().Int("moved", moved).Msg("floating panels clamped")
	}
	return moved
}

// Float turns a panel into a floating window anchored on anchorRect, raises
// it and records a one-shot placement applied once its preferred size is
// known. A docked panel is spliced out of the tree first.
func (uc *ManageFloatingUseCase) Float(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID, anchorRect entity.Rect, alignX, alignY int) error {
	p := ds.Panel(panelID)
	if p == nil {
		return fmt.Errorf("float: %w: %q", ErrPanelNotFound, panelID)
	}
	if !p.IsLeaf() {
		return fmt.Errorf("float %q: %w: only leaves can float", panelID, ErrInvalidTarget)
	}
	if !p.Floating {
		if panelID == ds.Root {
			return fmt.Errorf("float %q: %w: cannot float the root", panelID, ErrInvalidTarget)
		}
		uc.panels.detach(ds, p, "")
	}

	p.Floating = true
	p.Parent = ""
	p.Rect = entity.NewRect(anchorRect.X, anchorRect.Y, 0, 0)
	ds.AddFloating(panelID)
	ds.SetPlacement(panelID, entity.PlacementHint{
		AnchorRect: anchorRect,
		AlignX:     clampAlign(alignX),
		AlignY:     clampAlign(alignY),
	})

	logging.FromContext(ctx).Info().
		Str("panel_id", string(panelID)).
		Float64("x", anchorRect.X).
		Float64("y", anchorRect.Y).
		Msg("panel floated")

	uc.BringToFront(ctx, ds, panelID, false)
	return nil
}

func clampAlign(v int) int {
	return min(max(v, -1), 1)
}

// Open spawns a new floating panel hosting the given contents.
func (uc *ManageFloatingUseCase) Open(ctx context.Context, ds *entity.Dockspace, contentIDs []entity.ContentID, opts OpenOptions) (*entity.Panel, error) {
	if len(contentIDs) == 0 {
		return nil, ErrNoContent
	}

	p := uc.panels.MakePanel(ctx, ds)
	for _, id := range contentIDs {
		addWindow(p, id, "")
	}
	p.Ephemeral = opts.Ephemeral

	if err := uc.Float(ctx, ds, p.ID, opts.AnchorRect, opts.AlignX, opts.AlignY); err != nil {
		ds.Delete(p.ID)
		return nil, err
	}
	if opts.AppearOnTop {
		uc.SuppressNextRaise(ds, p.ID)
	}
	return p, nil
}

// Undock tears tabs out of a panel (one tab, or all of them when tab is
// negative) into a new floating panel opening under the pointer at.
// fallback, usually the size the tabs had while docked, is used when the
// content never reports a preferred size.
func (uc *ManageFloatingUseCase) Undock(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID, tab int, at entity.Point, fallback entity.Size) (*entity.Panel, error) {
	p, err := uc.panels.Extract(ctx, ds, panelID, tab)
	if err != nil {
		return nil, err
	}
	if err := uc.Float(ctx, ds, p.ID, entity.NewRect(at.X, at.Y, 0, 0), 0, 1); err != nil {
		return nil, err
	}
	if hint, ok := ds.Placement(p.ID); ok {
		hint.Fallback = fallback
		ds.SetPlacement(p.ID, hint)
	}
	return p, nil
}

// ApplyPlacements places every just-opened floating panel whose preferred
// size is known: sized to it, aligned on its anchor rect, then clamped
// strictly inside container. The one-shot hint is consumed.
func (uc *ManageFloatingUseCase) ApplyPlacements(ctx context.Context, ds *entity.Dockspace, container entity.Rect) []entity.PanelID {
	var placed []entity.PanelID
	for _, p := range ds.FloatingPanels() {
		hint, ok := ds.Placement(p.ID)
		if !ok || p.PreferredFloatingSize.IsZero() {
			continue
		}

		p.Rect = placeRect(hint, p.PreferredFloatingSize)
		ds.ClearPlacement(p.ID)
		uc.ClampStrictly(ds, p.ID, container)
		placed = append(placed, p.ID)

		logging.FromContext(ctx).Debug().
			Str("panel_id", string(p.ID)).
			Float64("w", p.Rect.W).
			Float64("h", p.Rect.H).
			Msg("floating panel placed")
	}
	return placed
}

// ExpirePlacements ages the pending placement hints by one frame. Panels
// that waited placementGraceFrames without a reported size are placed at
// their fallback size, never below MinSize, so they cannot stay invisible.
func (uc *ManageFloatingUseCase) ExpirePlacements(ctx context.Context, ds *entity.Dockspace, container entity.Rect) []entity.PanelID {
	var placed []entity.PanelID
	for _, p := range ds.FloatingPanels() {
		hint, ok := ds.Placement(p.ID)
		if !ok {
			continue
		}
		hint.Frames++
		if hint.Frames < placementGraceFrames || !p.PreferredFloatingSize.IsZero() {
			ds.SetPlacement(p.ID, hint)
			continue
		}

		size := entity.Rect{W: hint.Fallback.W, H: hint.Fallback.H}.WithMinSize(uc.opts.MinSize).Size()
		p.Rect = placeRect(hint, size)
		ds.ClearPlacement(p.ID)
		uc.ClampStrictly(ds, p.ID, container)
		placed = append(placed, p.ID)

		logging.FromContext(ctx).Debug().
			Str("panel_id", string(p.ID)).
			Float64("w", p.Rect.W).
			Float64("h", p.Rect.H).
			Msg("floating panel placed at fallback size")
	}
	return placed
}

func placeRect(hint entity.PlacementHint, size entity.Size) entity.Rect {
	a := hint.AnchorRect
	r := entity.Rect{W: size.W, H: size.H}

	switch hint.AlignX {
	case -1:
		r.X = a.X1() - r.W
	case 1:
		r.X = a.X2()
	default:
		r.X = a.XCenter() - r.W/2
	}

	switch hint.AlignY {
	case -1:
		r.Y = a.Y1() - r.H
	case 1:
		r.Y = a.Y2()
	default:
		r.Y = a.YCenter() - r.H/2
	}
	return r
}

// MoveBy displaces a floating panel. A panel still waiting for its placement
// drags its anchor along so it opens where it was dropped.
func (uc *ManageFloatingUseCase) MoveBy(ds *entity.Dockspace, panelID entity.PanelID, dx, dy float64) bool {
	p := ds.Panel(panelID)
	if p == nil || !p.Floating {
		return false
	}
	p.Rect = p.Rect.Displace(dx, dy)
	if hint, ok := ds.Placement(panelID); ok {
		hint.AnchorRect = hint.AnchorRect.Displace(dx, dy)
		ds.SetPlacement(panelID, hint)
	}
	return true
}

// ResizeBy grows or shrinks a floating panel, never below the minimum size.
func (uc *ManageFloatingUseCase) ResizeBy(ds *entity.Dockspace, panelID entity.PanelID, dw, dh float64) bool {
	p := ds.Panel(panelID)
	if p == nil || !p.Floating {
		return false
	}
	r := p.Rect
	r.W += dw
	r.H += dh
	r = r.WithMinSize(uc.opts.MinSize)
	if r == p.Rect {
		return false
	}
	p.Rect = r
	// A manual resize settles the panel; a late size report must not move it.
	ds.ClearPlacement(panelID)
	return true
}

// RemoveEphemerals closes every ephemeral floating panel not listed in except.
func (uc *ManageFloatingUseCase) RemoveEphemerals(ctx context.Context, ds *entity.Dockspace, except ...entity.PanelID) int {
	removed := 0
	for _, p := range ds.FloatingPanels() {
		if !p.Ephemeral || slices.Contains(except, p.ID) {
			continue
		}
		ds.Delete(p.ID)
		removed++
	}
	if removed > 0 {
		logging.FromContext(ctx).Debug().Int("removed", removed).Msg("ephemeral panels dismissed")
	}
	return removed
}

// BringToFront focuses a panel. Docked panels only become active. Floating
// panels move to the top of the stack and dismiss ephemerals, unless the
// panel or the click itself is ephemeral. A pending SuppressNextRaise mark
// swallows the reorder once.
func (uc *ManageFloatingUseCase) BringToFront(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID, clickedEphemeral bool) {
	p := ds.Panel(panelID)
	if p == nil {
		return
	}
	if len(p.WindowIDs) > 0 {
		ds.Active = panelID
	}
	if !p.Floating {
		return
	}

	if ds.AppearOnTopPending() {
		ds.ClearAppearOnTop()
		logging.FromContext(ctx).Debug().Str("panel_id", string(panelID)).Msg("raise suppressed")
		return
	}

	ds.AddFloating(panelID)
	if !p.Ephemeral && !clickedEphemeral {
		uc.RemoveEphemerals(ctx, ds)
	}
}

// SuppressNextRaise arms the one-shot mark that makes the next BringToFront
// leave the floating order untouched.
func (uc *ManageFloatingUseCase) SuppressNextRaise(ds *entity.Dockspace, panelID entity.PanelID) {
	if p := ds.Panel(panelID); p != nil && p.Floating {
		ds.ArmAppearOnTop(panelID)
	}
}
