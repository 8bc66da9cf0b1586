package usecase

import (
	"github.com/bnema/dockable/internal/domain/entity"
)

const (
	DefaultDividerSize  = 6.0
	DefaultAnchorOffset = 20.0
)

// ResolveOptions tunes the geometry produced by the resolver.
type ResolveOptions struct {
	// DividerSize is the thickness reserved between the children of a split.
	DividerSize float64
	// AnchorOffset is the distance between an edge anchor and its panel edge.
	AnchorOffset float64
	// RootAnchors adds container-edge anchors targeting a split root, so a
	// panel can be docked along a whole side of the workspace.
	RootAnchors bool
}

// DefaultResolveOptions returns the stock resolver settings.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		DividerSize:  DefaultDividerSize,
		AnchorOffset: DefaultAnchorOffset,
		RootAnchors:  true,
	}
}

// ResolveLayoutUseCase turns a dockspace and container bounds into concrete
// geometry. It holds no state besides its options.
type ResolveLayoutUseCase struct {
	opts ResolveOptions
}

// NewResolveLayoutUseCase creates a resolver.
func NewResolveLayoutUseCase(opts ResolveOptions) *ResolveLayoutUseCase {
	opts.DividerSize = max(opts.DividerSize, 0)
	opts.AnchorOffset = max(opts.AnchorOffset, 0)
	return &ResolveLayoutUseCase{opts: opts}
}

// Options returns the resolver settings.
func (uc *ResolveLayoutUseCase) Options() ResolveOptions {
	return uc.opts
}

// Resolve partitions container among the docked panels, emits one divider per
// split and the dock anchors of every visible leaf, then appends floating
// panels in z-order. Identical inputs always give identical output.
func (uc *ResolveLayoutUseCase) Resolve(ds *entity.Dockspace, container entity.Rect) *entity.Layout {
	layout := &entity.Layout{Container: container}
	if ds == nil {
		return layout
	}

	uc.resolvePanel(ds, ds.Root, container, layout)

	if root := ds.RootPanel(); uc.opts.RootAnchors && root != nil && root.IsSplit() && !container.IsEmpty() {
		layout.Anchors = append(layout.Anchors, uc.edgeAnchors(root.ID, container, uc.opts.AnchorOffset/2)...)
	}

	for _, p := range ds.FloatingPanels() {
		layout.PanelRects = append(layout.PanelRects, entity.PanelRect{
			Panel:    p.ID,
			Rect:     p.Rect,
			Floating: true,
		})
	}
	return layout
}

func (uc *ResolveLayoutUseCase) resolvePanel(ds *entity.Dockspace, id entity.PanelID, rect entity.Rect, layout *entity.Layout) {
	p := ds.Panel(id)
	if p == nil {
		return
	}

	if !p.IsSplit() {
		layout.PanelRects = append(layout.PanelRects, entity.PanelRect{Panel: p.ID, Rect: rect})
		if rect.IsEmpty() {
			return
		}
		if !p.IsEmpty() {
			layout.Anchors = append(layout.Anchors, uc.edgeAnchors(p.ID, rect, uc.opts.AnchorOffset)...)
		}
		layout.Anchors = append(layout.Anchors, entity.Anchor{
			Panel:       p.ID,
			Point:       rect.Center(),
			Mode:        entity.DockFull,
			PreviewRect: rect,
		})
		return
	}

	first, divider, second := splitRect(rect, p.Split, p.SplitSize, uc.opts.DividerSize)

	d := entity.Divider{Panel: p.ID, Rect: divider, Split: p.Split}
	if p.Split == entity.SplitVertical {
		d.ResizeMin, d.ResizeMax = rect.Y1(), rect.Y2()
	} else {
		d.ResizeMin, d.ResizeMax = rect.X1(), rect.X2()
	}
	layout.Dividers = append(layout.Dividers, d)

	uc.resolvePanel(ds, p.First(), first, layout)
	uc.resolvePanel(ds, p.Second(), second, layout)
}

// splitRect cuts rect along the split axis. The first child receives
// splitSize of the space left once the divider is reserved; the three parts
// always add up to rect exactly.
func splitRect(rect entity.Rect, dir entity.SplitDirection, splitSize, dividerSize float64) (first, divider, second entity.Rect) {
	if dir == entity.SplitVertical {
		avail := max(0, rect.H-dividerSize)
		h1 := avail * splitSize
		div := max(0, rect.H) - avail
		first = entity.NewRect(rect.X, rect.Y, rect.W, h1)
		divider = entity.NewRect(rect.X, rect.Y+h1, rect.W, div)
		second = entity.NewRect(rect.X, rect.Y+h1+div, rect.W, avail-h1)
		return first, divider, second
	}

	avail := max(0, rect.W-dividerSize)
	w1 := avail * splitSize
	div := max(0, rect.W) - avail
	first = entity.NewRect(rect.X, rect.Y, w1, rect.H)
	divider = entity.NewRect(rect.X+w1, rect.Y, div, rect.H)
	second = entity.NewRect(rect.X+w1+div, rect.Y, avail-w1, rect.H)
	return first, divider, second
}

// edgeAnchors returns the Left, Right, Top and Bottom anchors of rect, each
// offset inward from its edge. The preview is the half the docked panel takes.
func (uc *ResolveLayoutUseCase) edgeAnchors(id entity.PanelID, rect entity.Rect, offset float64) []entity.Anchor {
	halfW := rect.W / 2
	halfH := rect.H / 2
	return []entity.Anchor{
		{
			Panel:       id,
			Point:       entity.Point{X: rect.X1() + offset, Y: rect.YCenter()},
			Mode:        entity.DockLeft,
			PreviewRect: entity.NewRect(rect.X, rect.Y, halfW, rect.H),
		},
		{
			Panel:       id,
			Point:       entity.Point{X: rect.X2() - offset, Y: rect.YCenter()},
			Mode:        entity.DockRight,
			PreviewRect: entity.NewRect(rect.X+halfW, rect.Y, halfW, rect.H),
		},
		{
			Panel:       id,
			Point:       entity.Point{X: rect.XCenter(), Y: rect.Y1() + offset},
			Mode:        entity.DockTop,
			PreviewRect: entity.NewRect(rect.X, rect.Y, rect.W, halfH),
		},
		{
			Panel:       id,
			Point:       entity.Point{X: rect.XCenter(), Y: rect.Y2() - offset},
			Mode:        entity.DockBottom,
			PreviewRect: entity.NewRect(rect.X, rect.Y+halfH, rect.W, halfH),
		},
	}
}
