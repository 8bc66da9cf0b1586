package model

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockable/internal/cli/styles"
	"github.com/bnema/dockable/internal/domain/entity"
)

// brush selects the theme style of a canvas cell.
type brush int

const (
	brushPlain brush = iota
	brushBorder
	brushActiveBorder
	brushTab
	brushActiveTab
	brushDivider
	brushAnchor
	brushNearestAnchor
	brushPreview
	brushText
)

func (b brush) style(theme *styles.Theme) lipgloss.Style {
	switch b {
	case brushBorder:
		return theme.PanelBorder
	case brushActiveBorder:
		return theme.ActivePanelBorder
	case brushTab:
		return theme.TabLabel
	case brushActiveTab:
		return theme.ActiveTabLabel
	case brushDivider:
		return theme.DividerStyle
	case brushAnchor:
		return theme.AnchorStyle
	case brushNearestAnchor:
		return theme.NearestAnchor
	case brushPreview:
		return theme.PreviewStyle
	case brushText:
		return theme.Normal
	default:
		return lipgloss.NewStyle()
	}
}

// cellRect is a rectangle on the terminal grid.
type cellRect struct {
	X, Y, W, H int
}

func (r cellRect) empty() bool { return r.W <= 0 || r.H <= 0 }

// toCells maps a pixel rect onto the grid, rounding every edge.
func toCells(r entity.Rect, cellW, cellH float64) cellRect {
	x1 := int(math.Round(r.X1() / cellW))
	y1 := int(math.Round(r.Y1() / cellH))
	x2 := int(math.Round(r.X2() / cellW))
	y2 := int(math.Round(r.Y2() / cellH))
	return cellRect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// canvas is a fixed grid of runes, each painted with a brush.
type canvas struct {
	w, h    int
	runes   []rune
	brushes []brush
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{
		w:       w,
		h:       h,
		runes:   make([]rune, w*h),
		brushes: make([]brush, w*h),
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, b brush) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.brushes[y*c.w+x] = b
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.runes[y*c.w+x]
}

// text writes s from (x, y), clipped to maxW cells.
func (c *canvas) text(x, y int, s string, maxW int, b brush) int {
	n := 0
	for _, r := range s {
		if n >= maxW {
			break
		}
		c.set(x+n, y, r, b)
		n++
	}
	return n
}

func (c *canvas) fill(r cellRect, ch rune, b brush) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.set(x, y, ch, b)
		}
	}
}

// box draws the outline of r. Rects one cell thin collapse to a line.
func (c *canvas) box(r cellRect, b brush) {
	if r.empty() {
		return
	}
	x2, y2 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X; x <= x2; x++ {
		c.set(x, r.Y, '─', b)
		c.set(x, y2, '─', b)
	}
	for y := r.Y; y <= y2; y++ {
		c.set(r.X, y, '│', b)
		c.set(x2, y, '│', b)
	}
	if r.W > 1 && r.H > 1 {
		c.set(r.X, r.Y, '┌', b)
		c.set(x2, r.Y, '┐', b)
		c.set(r.X, y2, '└', b)
		c.set(x2, y2, '┘', b)
	}
}

// plain returns the grid without styling.
func (c *canvas) plain() string {
	var sb strings.Builder
	for y := range c.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(c.runes[y*c.w : (y+1)*c.w]))
	}
	return sb.String()
}

// render styles runs of cells sharing a brush.
func (c *canvas) render(theme *styles.Theme) string {
	var sb strings.Builder
	for y := range c.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := y * c.w
		for x := 0; x < c.w; {
			b := c.brushes[row+x]
			end := x
			for end < c.w && c.brushes[row+end] == b {
				end++
			}
			run := string(c.runes[row+x : row+end])
			if b == brushPlain {
				sb.WriteString(run)
			} else {
				sb.WriteString(b.style(theme).Render(run))
			}
			x = end
		}
	}
	return sb.String()
}
