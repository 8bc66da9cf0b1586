package input

import (
	"unicode/utf8"

	"github.com/bnema/dockable/internal/domain/entity"
)

// HitKind tells which part of the dock lies under the pointer.
type HitKind int

const (
	HitNone HitKind = iota
	HitBody
	HitHeader
	HitTab
	HitTabClose
	HitResizeHandle
	HitDivider
)

// String returns a human-readable hit kind.
func (k HitKind) String() string {
	switch k {
	case HitBody:
		return "body"
	case HitHeader:
		return "header"
	case HitTab:
		return "tab"
	case HitTabClose:
		return "tab_close"
	case HitResizeHandle:
		return "resize_handle"
	case HitDivider:
		return "divider"
	default:
		return "none"
	}
}

// Hit is the topmost target under a point.
type Hit struct {
	Kind     HitKind
	Panel    entity.PanelID
	Floating bool
	// Tab is the tab index for HitTab and HitTabClose, -1 otherwise.
	Tab int
	// Divider is the owning split for HitDivider.
	Divider entity.Divider
}

// TabMetrics returns the width of a tab button showing title.
type TabMetrics func(title string) float64

// FixedTabWidth gives every tab the same width.
func FixedTabWidth(w float64) TabMetrics {
	return func(string) float64 { return w }
}

// TextTabWidth sizes tabs from their title length: charWidth per rune plus
// padding, the close button included.
func TextTabWidth(charWidth, padding float64) TabMetrics {
	return func(title string) float64 {
		return float64(utf8.RuneCountInString(title))*charWidth + padding
	}
}

// HitOptions describes the panel chrome the renderer draws.
type HitOptions struct {
	HeaderHeight float64
	// ResizeHandleSize is the square in a floating panel's bottom-right corner.
	ResizeHandleSize float64
	// CloseButtonWidth is the trailing part of each tab that closes it.
	CloseButtonWidth float64
	// DividerGrab widens dividers on both sides so thin ones stay grabbable.
	DividerGrab float64
	TabWidth    TabMetrics
}

// DefaultHitOptions returns chrome sizes matching the default floating settings.
func DefaultHitOptions() HitOptions {
	return HitOptions{
		HeaderHeight:     24,
		ResizeHandleSize: 12,
		CloseButtonWidth: 16,
		DividerGrab:      2,
		TabWidth:         FixedTabWidth(120),
	}
}

// HitTest finds what lies under pt: floating panels front to back first,
// then dividers, then docked panels.
func HitTest(layout *entity.Layout, ds *entity.Dockspace, pt entity.Point, opts HitOptions) Hit {
	miss := Hit{Kind: HitNone, Tab: -1}
	if layout == nil || ds == nil {
		return miss
	}
	if opts.TabWidth == nil {
		opts.TabWidth = DefaultHitOptions().TabWidth
	}

	for i := len(layout.PanelRects) - 1; i >= 0; i-- {
		pr := layout.PanelRects[i]
		if !pr.Floating || !pr.Rect.Contains(pt) {
			continue
		}
		if p := ds.Panel(pr.Panel); p != nil {
			return panelHit(p, pr.Rect, pt, true, opts)
		}
	}

	for _, d := range layout.Dividers {
		grab := d.Rect
		if d.Split == entity.SplitVertical {
			grab = entity.NewRect(grab.X, grab.Y-opts.DividerGrab, grab.W, grab.H+2*opts.DividerGrab)
		} else {
			grab = entity.NewRect(grab.X-opts.DividerGrab, grab.Y, grab.W+2*opts.DividerGrab, grab.H)
		}
		if grab.Contains(pt) {
			return Hit{Kind: HitDivider, Panel: d.Panel, Tab: -1, Divider: d}
		}
	}

	for _, pr := range layout.PanelRects {
		if pr.Floating || !pr.Rect.Contains(pt) {
			continue
		}
		if p := ds.Panel(pr.Panel); p != nil {
			return panelHit(p, pr.Rect, pt, false, opts)
		}
	}
	return miss
}

func panelHit(p *entity.Panel, rect entity.Rect, pt entity.Point, floating bool, opts HitOptions) Hit {
	hit := Hit{Kind: HitBody, Panel: p.ID, Floating: floating, Tab: -1}

	if floating && opts.ResizeHandleSize > 0 &&
		pt.X >= rect.X2()-opts.ResizeHandleSize && pt.Y >= rect.Y2()-opts.ResizeHandleSize {
		hit.Kind = HitResizeHandle
		return hit
	}

	if pt.Y >= rect.Y1()+opts.HeaderHeight {
		return hit
	}

	hit.Kind = HitHeader
	x := rect.X1()
	for i := range p.WindowIDs {
		w := opts.TabWidth(p.DisplayTitle(i))
		if pt.X < x+w {
			hit.Tab = i
			hit.Kind = HitTab
			if opts.CloseButtonWidth > 0 && pt.X >= x+w-opts.CloseButtonWidth {
				hit.Kind = HitTabClose
			}
			return hit
		}
		x += w
	}
	return hit
}
