// Package entity defines domain entities for the dock layout engine.
package entity

// Point is a position in container coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.W == 0 && s.H == 0
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// Units are renderer defined (pixels for a canvas, cells for a terminal).
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewRect builds a rect from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromEdges builds a rect from its four edges.
func RectFromEdges(x1, y1, x2, y2 float64) Rect {
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// X1 returns the left edge.
func (r Rect) X1() float64 { return r.X }

// Y1 returns the top edge.
func (r Rect) Y1() float64 { return r.Y }

// X2 returns the right edge.
func (r Rect) X2() float64 { return r.X + r.W }

// Y2 returns the bottom edge.
func (r Rect) Y2() float64 { return r.Y + r.H }

// XCenter returns the horizontal center.
func (r Rect) XCenter() float64 { return r.X + r.W/2 }

// YCenter returns the vertical center.
func (r Rect) YCenter() float64 { return r.Y + r.H/2 }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.XCenter(), Y: r.YCenter()}
}

// Size returns the rect dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// IsEmpty reports whether the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Displace returns the rect moved by (dx, dy).
func (r Rect) Displace(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Contains reports whether p lies inside the rect. The right and bottom
// edges are exclusive so adjacent rects never both contain a point.
func (r Rect) Contains(p Point) bool {
	if r.IsEmpty() {
		return false
	}
	return p.X >= r.X && p.Y >= r.Y && p.X < r.X2() && p.Y < r.Y2()
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y && other.X2() <= r.X2() && other.Y2() <= r.Y2()
}

// Intersect returns the overlapping area of both rects, or an empty rect.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X2(), other.X2())
	y2 := min(r.Y2(), other.Y2())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return RectFromEdges(x1, y1, x2, y2)
}

// WithMinSize grows the rect (keeping its origin) so that it is at least min.
func (r Rect) WithMinSize(minSize Size) Rect {
	r.W = max(r.W, minSize.W)
	r.H = max(r.H, minSize.H)
	return r
}

// ClampInside returns the rect moved (and shrunk if needed) so that it lies
// fully inside container.
func (r Rect) ClampInside(container Rect) Rect {
	if r.W > container.W {
		r.W = container.W
	}
	if r.H > container.H {
		r.H = container.H
	}
	r.X = ClampFloat(r.X, container.X, container.X2()-r.W)
	r.Y = ClampFloat(r.Y, container.Y, container.Y2()-r.H)
	return r
}

// DistanceSqr returns the squared distance between two points.
func (p Point) DistanceSqr(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ClampFloat limits v to [minVal, maxVal]. When the range is inverted the
// lower bound wins.
func ClampFloat(v, minVal, maxVal float64) float64 {
	if v > maxVal {
		v = maxVal
	}
	if v < minVal {
		v = minVal
	}
	return v
}
