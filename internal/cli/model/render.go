package model

import (
	"math"
	"strings"

	"github.com/bnema/dockable/internal/application/port"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/ui/input"
)

const (
	tabPaddingLeft = 1
	closeGlyph     = '×'
	tabSeparator   = '│'
	resizeGlyph    = '◢'
)

// draw paints docked panels, dividers, floating panels in z-order, then the
// dock anchors of an ongoing header drag.
func (m DockModel) draw() *canvas {
	c := newCanvas(m.width, m.canvasHeight())
	layout := m.engine.Layout()
	if layout == nil {
		return c
	}
	active := m.engine.Active()

	for _, pr := range layout.PanelRects {
		if !pr.Floating {
			m.drawPanel(c, pr, active)
		}
	}
	for _, d := range layout.Dividers {
		m.drawDivider(c, d)
	}
	for _, pr := range layout.PanelRects {
		if pr.Floating {
			m.drawPanel(c, pr, active)
		}
	}

	if state := m.engine.Pointer(); state.ShowAnchors {
		m.drawAnchors(c, layout.Anchors, state)
	}
	return c
}

func (m DockModel) drawPanel(c *canvas, pr entity.PanelRect, active entity.PanelID) {
	p, ok := m.engine.Panel(pr.Panel)
	if !ok {
		return
	}
	// Resolve content first: a just-opened panel has no size until its
	// content attaches and reports one.
	var unit port.Renderable
	if len(p.WindowIDs) > 0 {
		unit, _ = m.engine.Renderable(p.ActiveWindow())
	}
	r := toCells(pr.Rect, m.cellW, m.cellH)
	if r.empty() {
		return
	}

	border := brushBorder
	if p.ID == active {
		border = brushActiveBorder
	}
	if pr.Floating {
		c.fill(r, ' ', brushPlain)
	}
	c.box(r, border)
	m.drawTabs(c, &p, r, border)

	if pr.Floating {
		c.set(r.X+r.W-1, r.Y+r.H-1, resizeGlyph, border)
	}

	inner := cellRect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
	if inner.empty() || unit == nil {
		return
	}
	body := unit.Render(entity.Size{W: float64(inner.W), H: float64(inner.H)})
	for i, line := range strings.Split(body, "\n") {
		if i >= inner.H {
			break
		}
		c.text(inner.X, inner.Y+i, line, inner.W, brushText)
	}
}

// drawTabs lays tabs out on the header row with the widths hit testing
// uses, so clicks land on what is drawn.
func (m DockModel) drawTabs(c *canvas, p *entity.Panel, r cellRect, border brush) {
	tabWidth := m.engine.Settings().Hit.TabWidth
	right := r.X + r.W - 1
	x := float64(r.X)

	for i := range p.WindowIDs {
		title := p.DisplayTitle(i)
		w := int(math.Round(tabWidth(title) / m.cellW))
		start := int(math.Round(x))
		x += float64(w)
		if w <= 0 || start >= right {
			return
		}

		label := brushTab
		if i == p.CurWindowIndex {
			label = brushActiveTab
		}
		// " title ×│" with the close button in the last two cells
		avail := min(w, right-start)
		c.fill(cellRect{X: start, Y: r.Y, W: avail, H: 1}, ' ', label)
		c.text(start+tabPaddingLeft, r.Y, title, max(avail-tabPaddingLeft-3, 0), label)
		if avail == w {
			c.set(start+w-2, r.Y, closeGlyph, brushTab)
			c.set(start+w-1, r.Y, tabSeparator, border)
		}
	}
}

func (m DockModel) drawDivider(c *canvas, d entity.Divider) {
	r := toCells(d.Rect, m.cellW, m.cellH)
	glyph := '│'
	if d.Split == entity.SplitVertical {
		glyph = '─'
	}
	c.fill(r, glyph, brushDivider)
}

func (m DockModel) drawAnchors(c *canvas, anchors []entity.Anchor, state input.State) {
	if state.NearestAnchor != nil {
		c.box(toCells(state.NearestAnchor.PreviewRect, m.cellW, m.cellH), brushPreview)
	}
	for _, a := range anchors {
		b := brushAnchor
		if state.NearestAnchor != nil && *state.NearestAnchor == a {
			b = brushNearestAnchor
		}
		x := int(math.Floor(a.Point.X / m.cellW))
		y := int(math.Floor(a.Point.Y / m.cellH))
		c.set(x, y, anchorGlyph(a.Mode), b)
	}
}

func anchorGlyph(mode entity.DockMode) rune {
	switch mode {
	case entity.DockLeft:
		return '◀'
	case entity.DockRight:
		return '▶'
	case entity.DockTop:
		return '▲'
	case entity.DockBottom:
		return '▼'
	default:
		return '◆'
	}
}
