package canvas

import (
	"image"
	"math"
)

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool { return finite(p.X, p.Y) }

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Rect is an axis-aligned rectangle given by its origin and size. Width
// and height may be negative until normalized.
type Rect struct {
	X, Y, W, H float64
}

// Left returns the smaller x edge.
func (r Rect) Left() float64 { return math.Min(r.X, r.X+r.W) }

// Top returns the smaller y edge.
func (r Rect) Top() float64 { return math.Min(r.Y, r.Y+r.H) }

// Right returns the larger x edge.
func (r Rect) Right() float64 { return math.Max(r.X, r.X+r.W) }

// Bottom returns the larger y edge.
func (r Rect) Bottom() float64 { return math.Max(r.Y, r.Y+r.H) }

// Normalize returns r with non-negative width and height.
func (r Rect) Normalize() Rect {
	return Rect{X: r.Left(), Y: r.Top(), W: math.Abs(r.W), H: math.Abs(r.H)}
}

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool {
	return r.W == 0 || r.H == 0 || !finite(r.X, r.Y, r.W, r.H)
}

// Intersect returns the intersection of two normalized rectangles.
func (r Rect) Intersect(o Rect) Rect {
	r, o = r.Normalize(), o.Normalize()
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether p lies inside the normalized rectangle.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return p.X >= n.X && p.X < n.X+n.W && p.Y >= n.Y && p.Y < n.Y+n.H
}

// Round rounds origin and size independently to integers.
func (r Rect) Round() image.Rectangle {
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	return image.Rect(x, y, x+int(math.Round(r.W)), y+int(math.Round(r.H)))
}
