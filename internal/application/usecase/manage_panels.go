package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/logging"
	"github.com/google/uuid"
)

// IDGenerator is a function type for generating unique IDs.
type IDGenerator func() string

var (
	// ErrDockCycle is returned when docking would make a panel its own ancestor.
	ErrDockCycle = errors.New("dock would create a cycle")
	// ErrPanelNotFound is returned when a panel id is unknown to the dockspace.
	ErrPanelNotFound = errors.New("panel not found")
	// ErrInvalidTarget is returned when a dock target cannot receive the panel.
	ErrInvalidTarget = errors.New("invalid dock target")
)

// ManagePanelsUseCase handles structural edits of the panel tree.
type ManagePanelsUseCase struct {
	idGenerator IDGenerator
}

// NewManagePanelsUseCase creates a new panel management use case.
// A nil generator falls back to random UUIDs.
func NewManagePanelsUseCase(idGenerator IDGenerator) *ManagePanelsUseCase {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	return &ManagePanelsUseCase{
		idGenerator: idGenerator,
	}
}

// MakePanel registers a new empty, non-floating panel that is not attached
// anywhere yet. The caller must dock it or float it before returning control.
func (uc *ManagePanelsUseCase) MakePanel(ctx context.Context, ds *entity.Dockspace) *entity.Panel {
	id := entity.PanelID(uc.idGenerator())
	for ds.Panel(id) != nil {
		id = entity.PanelID(uc.idGenerator())
	}

	p := entity.NewPanel(id)
	ds.Add(p)

	logging.FromContext(ctx).Debug().Str("panel_id", string(id)).Msg("panel created")
	return p
}

// AddWindow appends a tab to a panel. Adding content already hosted by the
// same panel is a no-op; other panels may host the same content.
func (uc *ManagePanelsUseCase) AddWindow(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID, contentID entity.ContentID) error {
	p := ds.Panel(panelID)
	if p == nil {
		return fmt.Errorf("add window %q: %w: %q", contentID, ErrPanelNotFound, panelID)
	}
	if p.IsSplit() {
		return fmt.Errorf("add window %q: %w: %q is a split", contentID, ErrInvalidTarget, panelID)
	}
	addWindow(p, contentID, "")

	logging.FromContext(ctx).Debug().
		Str("panel_id", string(panelID)).
		Str("content_id", string(contentID)).
		Int("tabs", len(p.WindowIDs)).
		Msg("window added")
	return nil
}

func addWindow(p *entity.Panel, contentID entity.ContentID, title string) bool {
	if p.WindowIndex(contentID) >= 0 {
		return false
	}
	wasEmpty := len(p.WindowIDs) == 0
	p.WindowIDs = append(p.WindowIDs, contentID)
	p.WindowTitles = append(p.WindowTitles, title)
	if wasEmpty {
		p.CurWindowIndex = len(p.WindowIDs) - 1
	}
	return true
}

// RemoveWindow removes a tab from a panel. Missing content is a no-op.
// The panel may be left empty; callers run CoalesceEmptyPanels afterwards.
func (uc *ManagePanelsUseCase) RemoveWindow(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID, contentID entity.ContentID) error {
	p := ds.Panel(panelID)
	if p == nil {
		return fmt.Errorf("remove window %q: %w: %q", contentID, ErrPanelNotFound, panelID)
	}
	if !removeWindow(p, contentID) {
		return nil
	}

	logging.FromContext(ctx).Debug().
		Str("panel_id", string(panelID)).
		Str("content_id", string(contentID)).
		Int("tabs", len(p.WindowIDs)).
		Msg("window removed")
	return nil
}

func removeWindow(p *entity.Panel, contentID entity.ContentID) bool {
	idx := p.WindowIndex(contentID)
	if idx < 0 {
		return false
	}

	p.WindowIDs = append(p.WindowIDs[:idx], p.WindowIDs[idx+1:]...)
	if idx < len(p.WindowTitles) {
		p.WindowTitles = append(p.WindowTitles[:idx], p.WindowTitles[idx+1:]...)
	}

	switch {
	case len(p.WindowIDs) == 0:
		p.CurWindowIndex = 0
	case idx < p.CurWindowIndex:
		// Keep the same tab active.
		p.CurWindowIndex--
	case p.CurWindowIndex >= len(p.WindowIDs):
		p.CurWindowIndex = len(p.WindowIDs) - 1
	}
	return true
}

// SelectTab activates a tab by index. Out of range indexes are ignored.
func (uc *ManagePanelsUseCase) SelectTab(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID, index int) error {
	p := ds.Panel(panelID)
	if p == nil {
		return fmt.Errorf("select tab: %w: %q", ErrPanelNotFound, panelID)
	}
	if index < 0 || index >= len(p.WindowIDs) {
		return nil
	}
	p.CurWindowIndex = index

	logging.FromContext(ctx).Debug().
		Str("panel_id", string(panelID)).
		Int("index", index).
		Msg("tab selected")
	return nil
}

// SetSplitSize moves a split's divider. The fraction is clamped to
// [MinSplitSize, MaxSplitSize]. Returns false when nothing changed.
func (uc *ManagePanelsUseCase) SetSplitSize(ds *entity.Dockspace, panelID entity.PanelID, size float64) bool {
	p := ds.Panel(panelID)
	if p == nil || !p.IsSplit() {
		return false
	}
	size = entity.ClampSplitSize(size)
	if p.SplitSize == size {
		return false
	}
	p.SplitSize = size
	return true
}

// SetWindowTitle updates the title of a hosted tab. Returns false when the
// tab is gone or the title is unchanged.
func (uc *ManagePanelsUseCase) SetWindowTitle(ds *entity.Dockspace, panelID entity.PanelID, contentID entity.ContentID, title string) bool {
	p := ds.Panel(panelID)
	if p == nil {
		return false
	}
	idx := p.WindowIndex(contentID)
	if idx < 0 || p.WindowTitles[idx] == title {
		return false
	}
	p.WindowTitles[idx] = title
	return true
}

// SetPreferredSize records the floating size wanted by a panel's content.
// Only the active tab speaks for its panel; unchanged sizes are ignored.
func (uc *ManagePanelsUseCase) SetPreferredSize(ds *entity.Dockspace, panelID entity.PanelID, contentID entity.ContentID, size entity.Size) bool {
	p := ds.Panel(panelID)
	if p == nil || p.ActiveWindow() != contentID || contentID == "" {
		return false
	}
	if p.PreferredFloatingSize == size {
		return false
	}
	p.PreferredFloatingSize = size
	return true
}

// Extract moves tabs into a new unattached panel: the tab at index, or every
// tab when index is negative. The tab titles come along; a whole-panel
// extraction also keeps the active tab and preferred size, while a single
// tab starts with no size until its content reports one. The source is
// coalesced away when left empty. The caller must float or dock the
// returned panel.
func (uc *ManagePanelsUseCase) Extract(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID, index int) (*entity.Panel, error) {
	p := ds.Panel(panelID)
	if p == nil {
		return nil, fmt.Errorf("extract: %w: %q", ErrPanelNotFound, panelID)
	}
	if len(p.WindowIDs) == 0 {
		return nil, fmt.Errorf("extract %q: %w", panelID, ErrNoContent)
	}
	if index >= len(p.WindowIDs) {
		return nil, fmt.Errorf("extract %q: %w: tab %d out of range", panelID, ErrInvalidTarget, index)
	}

	ids := slices.Clone(p.WindowIDs)
	titles := slices.Clone(p.WindowTitles)
	active := p.CurWindowIndex
	if index >= 0 {
		ids = ids[index : index+1]
		titles = titles[index : index+1]
		active = 0
	}

	dst := uc.MakePanel(ctx, ds)
	if index < 0 {
		dst.PreferredFloatingSize = p.PreferredFloatingSize
	}
	for i, id := range ids {
		removeWindow(p, id)
		addWindow(dst, id, titles[i])
	}
	dst.CurWindowIndex = active

	logging.FromContext(ctx).Info().
		Str("panel_id", string(panelID)).
		Str("new_panel_id", string(dst.ID)).
		Int("tabs", len(ids)).
		Msg("tabs extracted")

	uc.CoalesceEmptyPanels(ctx, ds)
	return dst, nil
}

// CloseTab removes the tab at index and coalesces the tree.
func (uc *ManagePanelsUseCase) CloseTab(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID, index int) error {
	p := ds.Panel(panelID)
	if p == nil {
		return fmt.Errorf("close tab: %w: %q", ErrPanelNotFound, panelID)
	}
	if index < 0 || index >= len(p.WindowIDs) {
		return nil
	}
	if err := uc.RemoveWindow(ctx, ds, panelID, p.WindowIDs[index]); err != nil {
		return err
	}
	uc.CoalesceEmptyPanels(ctx, ds)
	return nil
}

// ClosePanel closes a panel with all its tabs. Floating panels are removed
// directly; docked panels are emptied and coalesced away.
func (uc *ManagePanelsUseCase) ClosePanel(ctx context.Context, ds *entity.Dockspace, panelID entity.PanelID) error {
	log := logging.FromContext(ctx)

	p := ds.Panel(panelID)
	if p == nil {
		return fmt.Errorf("close panel: %w: %q", ErrPanelNotFound, panelID)
	}

	if p.Floating {
		ds.Delete(panelID)
		log.Info().Str("panel_id", string(panelID)).Msg("floating panel closed")
		return nil
	}

	var leaves []*entity.Panel
	walkSubtree(ds, panelID, func(n *entity.Panel) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	})
	for _, leaf := range leaves {
		leaf.WindowIDs = nil
		leaf.WindowTitles = nil
		leaf.CurWindowIndex = 0
	}
	removed := uc.CoalesceEmptyPanels(ctx, ds)

	log.Info().
		Str("panel_id", string(panelID)).
		Int("removed", removed).
		Msg("docked panel closed")
	return nil
}

// CoalesceEmptyPanels removes empty leaves from the docked tree, promoting
// the surviving sibling into the slot of their split, until no split has an
// empty child. Empty floating panels are dropped. When every docked tab is
// gone the root is left as a single empty placeholder leaf.
// Returns the number of panels removed.
func (uc *ManagePanelsUseCase) CoalesceEmptyPanels(ctx context.Context, ds *entity.Dockspace) int {
	removed := 0

	for {
		split, empty := findCollapsibleSplit(ds)
		if split == nil {
			break
		}

		sibling := split.First()
		if sibling == empty.ID {
			sibling = split.Second()
		}
		ds.ReplaceChild(split.Parent, split.ID, sibling)

		if ds.Active == empty.ID || ds.Active == split.ID {
			ds.Active = firstTabbedLeaf(ds, sibling)
		}
		ds.Delete(empty.ID)
		ds.Delete(split.ID)
		removed += 2
	}

	for _, p := range ds.FloatingPanels() {
		if len(p.WindowIDs) == 0 {
			ds.Delete(p.ID)
			removed++
		}
	}

	if removed > 0 {
		logging.FromContext(ctx).Info().
			Int("removed", removed).
			Str("root_id", string(ds.Root)).
			Msg("empty panels coalesced")
	}
	return removed
}

// findCollapsibleSplit returns the first split (pre-order) having an empty
// leaf child, together with that child.
func findCollapsibleSplit(ds *entity.Dockspace) (split, empty *entity.Panel) {
	ds.Walk(func(p *entity.Panel) bool {
		if !p.IsSplit() {
			return true
		}
		for _, child := range p.Children {
			if c := ds.Panel(child); c != nil && c.IsEmpty() {
				split, empty = p, c
				return false
			}
		}
		return true
	})
	return split, empty
}

func firstTabbedLeaf(ds *entity.Dockspace, from entity.PanelID) entity.PanelID {
	var found entity.PanelID
	walkSubtree(ds, from, func(p *entity.Panel) {
		if found == "" && p.IsLeaf() && len(p.WindowIDs) > 0 {
			found = p.ID
		}
	})
	return found
}

func walkSubtree(ds *entity.Dockspace, id entity.PanelID, fn func(*entity.Panel)) {
	p := ds.Panel(id)
	if p == nil {
		return
	}
	fn(p)
	for _, child := range p.Children {
		walkSubtree(ds, child, fn)
	}
}

// Dock inserts source next to target according to mode. Full merges the
// source tabs into target and discards source; the other modes replace target
// with a new split holding both panels at an even ratio.
// The tree is coalesced before returning.
func (uc *ManagePanelsUseCase) Dock(ctx context.Context, ds *entity.Dockspace, source, target entity.PanelID, mode entity.DockMode) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("source_id", string(source)).
		Str("target_id", string(target)).
		Str("mode", mode.String()).
		Msg("docking panel")

	src := ds.Panel(source)
	if src == nil {
		return fmt.Errorf("dock source: %w: %q", ErrPanelNotFound, source)
	}
	tgt := ds.Panel(target)
	if tgt == nil {
		return fmt.Errorf("dock target: %w: %q", ErrPanelNotFound, target)
	}
	if source == target || ds.IsAncestor(source, target) {
		return fmt.Errorf("dock %q into %q: %w", source, target, ErrDockCycle)
	}
	if !ds.IsDocked(target) {
		return fmt.Errorf("dock %q into %q: %w: target is not docked", source, target, ErrInvalidTarget)
	}
	if mode == entity.DockFull && (!tgt.IsLeaf() || !src.IsLeaf()) {
		return fmt.Errorf("dock %q into %q: %w: full dock needs two leaves", source, target, ErrInvalidTarget)
	}

	target = uc.detach(ds, src, target)
	tgt = ds.Panel(target)

	if mode == entity.DockFull {
		active := src.ActiveWindow()
		for i, w := range src.WindowIDs {
			addWindow(tgt, w, src.Title(i))
		}
		if idx := tgt.WindowIndex(active); idx >= 0 {
			tgt.CurWindowIndex = idx
		}
		ds.Delete(src.ID)
		if len(tgt.WindowIDs) > 0 {
			ds.Active = tgt.ID
		}
	} else {
		split := uc.MakePanel(ctx, ds)
		split.Split = mode.Split()
		split.SplitSize = entity.DefaultSplitSize

		ds.ReplaceChild(tgt.Parent, tgt.ID, split.ID)
		if mode.PlacesFirst() {
			split.Children = []entity.PanelID{src.ID, tgt.ID}
		} else {
			split.Children = []entity.PanelID{tgt.ID, src.ID}
		}
		src.Parent = split.ID
		tgt.Parent = split.ID
		if firstTabbedLeaf(ds, src.ID) != "" {
			ds.Active = firstTabbedLeaf(ds, src.ID)
		}
	}

	uc.CoalesceEmptyPanels(ctx, ds)

	log.Info().
		Str("source_id", string(source)).
		Str("target_id", string(target)).
		Str("mode", mode.String()).
		Msg("panel docked")
	return nil
}

// detach takes src out of the floating stack or out of the docked tree.
// When src leaves a split, its sibling takes the split's slot; if that split
// was the dock target, the sibling becomes the new target, which is returned.
func (uc *ManagePanelsUseCase) detach(ds *entity.Dockspace, src *entity.Panel, target entity.PanelID) entity.PanelID {
	if src.Floating {
		ds.RemoveFloating(src.ID)
		ds.ClearPlacement(src.ID)
		src.Floating = false
		src.Rect = entity.Rect{}
		return target
	}

	parent := ds.Panel(src.Parent)
	if parent == nil {
		// Unattached panel fresh from MakePanel.
		return target
	}

	sibling := parent.First()
	if sibling == src.ID {
		sibling = parent.Second()
	}
	ds.ReplaceChild(parent.Parent, parent.ID, sibling)
	ds.Delete(parent.ID)
	src.Parent = ""

	if target == parent.ID {
		return sibling
	}
	return target
}
