package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Edges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	assert.Equal(t, 10.0, r.X1())
	assert.Equal(t, 20.0, r.Y1())
	assert.Equal(t, 110.0, r.X2())
	assert.Equal(t, 70.0, r.Y2())
	assert.Equal(t, Point{X: 60, Y: 45}, r.Center())
	assert.Equal(t, r, RectFromEdges(10, 20, 110, 70))
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(0, 0, 100, 100)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{50, 50}, true},
		{"top-left corner", Point{0, 0}, true},
		{"right edge exclusive", Point{100, 50}, false},
		{"bottom edge exclusive", Point{50, 100}, false},
		{"left of rect", Point{-1, 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}

	assert.False(t, Rect{}.Contains(Point{}), "empty rect contains nothing")
}

func TestRect_Intersect(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(50, 60, 100, 100)

	assert.Equal(t, NewRect(50, 60, 50, 40), a.Intersect(b))
	assert.True(t, a.Intersect(NewRect(200, 200, 10, 10)).IsEmpty())
	assert.True(t, a.Intersect(NewRect(100, 0, 10, 10)).IsEmpty(), "touching rects do not overlap")
}

func TestRect_ClampInside(t *testing.T) {
	container := NewRect(0, 0, 800, 600)

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already inside", NewRect(10, 10, 100, 100), NewRect(10, 10, 100, 100)},
		{"past right edge", NewRect(750, 10, 100, 100), NewRect(700, 10, 100, 100)},
		{"negative origin", NewRect(-30, -5, 100, 100), NewRect(0, 0, 100, 100)},
		{"larger than container", NewRect(-10, 50, 1000, 700), NewRect(0, 0, 800, 600)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.ClampInside(container)
			assert.Equal(t, tt.want, got)
			assert.True(t, container.ContainsRect(got))
		})
	}
}

func TestRect_WithMinSize(t *testing.T) {
	r := NewRect(5, 5, 10, 100).WithMinSize(Size{W: 40, H: 24})
	assert.Equal(t, NewRect(5, 5, 40, 100), r)
}

func TestRect_Displace(t *testing.T) {
	assert.Equal(t, NewRect(15, 0, 10, 10), NewRect(10, 10, 10, 10).Displace(5, -10))
}

func TestPoint_DistanceSqr(t *testing.T) {
	assert.Equal(t, 25.0, Point{0, 0}.DistanceSqr(Point{3, 4}))
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 0.05, ClampFloat(-1, 0.05, 0.95))
	assert.Equal(t, 0.95, ClampFloat(2, 0.05, 0.95))
	assert.Equal(t, 0.5, ClampFloat(0.5, 0.05, 0.95))
	assert.Equal(t, 10.0, ClampFloat(5, 10, 0), "lower bound wins on inverted range")
}
