package canvas

import (
	"math"

	"github.com/gogpu/canvas/internal/raster"
	"github.com/gogpu/canvas/text"
)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is an ordered list of subpaths built with the canvas path API.
// Calls with non-finite arguments are ignored. A Path can be owned by a
// Context as its current path or held by the caller and passed per call.
type Path struct {
	elements   []PathElement
	start      Point // Starting point of current subpath
	current    Point // Current point
	hasCurrent bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	p.moveTo(Pt(x, y))
}

func (p *Path) moveTo(pt Point) {
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.hasCurrent = true
}

// ensureSubpath starts a subpath at pt when the path has no current point.
func (p *Path) ensureSubpath(pt Point) {
	if !p.hasCurrent {
		p.moveTo(pt)
	}
}

// LineTo draws a line to (x, y). Without a current point it behaves as
// MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	pt := Pt(x, y)
	if !p.hasCurrent {
		p.moveTo(pt)
		return
	}
	p.lineTo(pt)
}

func (p *Path) lineTo(pt Point) {
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticCurveTo draws a quadratic Bezier curve.
func (p *Path) QuadraticCurveTo(cpx, cpy, x, y float64) {
	if !finite(cpx, cpy, x, y) {
		return
	}
	ctrl := Pt(cpx, cpy)
	pt := Pt(x, y)
	p.ensureSubpath(ctrl)
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	p.current = pt
}

// BezierCurveTo draws a cubic Bezier curve.
func (p *Path) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if !finite(cp1x, cp1y, cp2x, cp2y, x, y) {
		return
	}
	p.ensureSubpath(Pt(cp1x, cp1y))
	p.cubicTo(Pt(cp1x, cp1y), Pt(cp2x, cp2y), Pt(x, y))
}

func (p *Path) cubicTo(c1, c2, pt Point) {
	p.elements = append(p.elements, CubicTo{
		Control1: c1,
		Control2: c2,
		Point:    pt,
	})
	p.current = pt
}

// ClosePath closes the current subpath. The next subpath starts at the
// closed subpath's first point.
func (p *Path) ClosePath() {
	if !p.hasCurrent {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Rect adds a closed rectangle subpath.
func (p *Path) Rect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	p.moveTo(Pt(x, y))
	p.lineTo(Pt(x+w, y))
	p.lineTo(Pt(x+w, y+h))
	p.lineTo(Pt(x, y+h))
	p.ClosePath()
}

// RectPath returns a new path holding the closed quadrilateral
// (x,y) → (x+w,y) → (x+w,y+h) → (x,y+h).
func RectPath(x, y, w, h float64) *Path {
	p := NewPath()
	p.Rect(x, y, w, h)
	return p
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.hasCurrent = false
}

// Elements returns a copy of the path elements.
func (p *Path) Elements() []PathElement {
	return append([]PathElement(nil), p.elements...)
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// CurrentPoint returns the current point and whether one exists.
func (p *Path) CurrentPoint() (Point, bool) {
	return p.current, p.hasCurrent
}

// AddPath appends the subpaths of other transformed by m.
func (p *Path) AddPath(other *Path, m Matrix) {
	if other == nil || !m.IsFinite() {
		return
	}
	for _, elem := range other.Transform(m).elements {
		switch e := elem.(type) {
		case MoveTo:
			p.moveTo(e.Point)
		case LineTo:
			p.ensureSubpath(e.Point)
			p.lineTo(e.Point)
		case QuadTo:
			p.ensureSubpath(e.Control)
			p.elements = append(p.elements, e)
			p.current = e.Point
		case CubicTo:
			p.ensureSubpath(e.Control1)
			p.cubicTo(e.Control1, e.Control2, e.Point)
		case Close:
			p.ClosePath()
		}
	}
}

// Transform returns a copy of the path with every point mapped by m.
// Affine maps keep Bezier curves exact.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	result.hasCurrent = p.hasCurrent
	result.start = m.TransformPoint(p.start)
	result.current = m.TransformPoint(p.current)
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			result.elements = append(result.elements, MoveTo{Point: m.TransformPoint(e.Point)})
		case LineTo:
			result.elements = append(result.elements, LineTo{Point: m.TransformPoint(e.Point)})
		case QuadTo:
			result.elements = append(result.elements, QuadTo{
				Control: m.TransformPoint(e.Control),
				Point:   m.TransformPoint(e.Point),
			})
		case CubicTo:
			result.elements = append(result.elements, CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			})
		case Close:
			result.elements = append(result.elements, Close{})
		}
	}
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	result.hasCurrent = p.hasCurrent
	return result
}

// BoundingBox returns the bounds of the flattened path. An empty path has
// a zero Rect.
func (p *Path) BoundingBox() Rect {
	minP, maxP, ok := raster.Bounds(p.contours(raster.Tolerance))
	if !ok {
		return Rect{}
	}
	return Rect{X: minP.X, Y: minP.Y, W: maxP.X - minP.X, H: maxP.Y - minP.Y}
}

// Contains reports whether pt is inside the path under rule.
func (p *Path) Contains(pt Point, rule WindingRule) bool {
	return raster.Contains(p.contours(raster.Tolerance), raster.Point(pt), rule.raster())
}

func (p *Path) rasterElements() []raster.Element {
	out := make([]raster.Element, 0, len(p.elements))
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			out = append(out, raster.MoveTo{Point: raster.Point(e.Point)})
		case LineTo:
			out = append(out, raster.LineTo{Point: raster.Point(e.Point)})
		case QuadTo:
			out = append(out, raster.QuadTo{Control: raster.Point(e.Control), Point: raster.Point(e.Point)})
		case CubicTo:
			out = append(out, raster.CubicTo{
				Control1: raster.Point(e.Control1),
				Control2: raster.Point(e.Control2),
				Point:    raster.Point(e.Point),
			})
		case Close:
			out = append(out, raster.Close{})
		}
	}
	return out
}

func (p *Path) contours(tolerance float64) []raster.Contour {
	return raster.Flatten(p.rasterElements(), tolerance)
}

// appendGlyph adds a glyph outline translated by (dx, dy). Each outline
// contour is a closed subpath.
func (p *Path) appendGlyph(segs []text.Segment, dx, dy float64) {
	at := func(tp text.Point) Point { return Pt(tp.X+dx, tp.Y+dy) }
	open := false
	for _, s := range segs {
		switch s.Op {
		case text.OutlineOpMoveTo:
			if open {
				p.ClosePath()
			}
			p.moveTo(at(s.Points[0]))
			open = true
		case text.OutlineOpLineTo:
			p.ensureSubpath(at(s.Points[0]))
			p.lineTo(at(s.Points[0]))
		case text.OutlineOpQuadTo:
			p.ensureSubpath(at(s.Points[0]))
			p.elements = append(p.elements, QuadTo{Control: at(s.Points[0]), Point: at(s.Points[1])})
			p.current = at(s.Points[1])
		case text.OutlineOpCubicTo:
			p.ensureSubpath(at(s.Points[0]))
			p.cubicTo(at(s.Points[0]), at(s.Points[1]), at(s.Points[2]))
		}
	}
	if open {
		p.ClosePath()
	}
}

// WindingRule selects how path interiors are determined.
type WindingRule uint8

const (
	// NonZero fills regions with a non-zero winding number.
	NonZero WindingRule = iota
	// EvenOdd fills regions crossed an odd number of times.
	EvenOdd
)

// ParseWindingRule maps "evenodd" and "nonzero" to their rules. Any other
// string means NonZero.
func ParseWindingRule(s string) WindingRule {
	switch s {
	case "evenodd":
		return EvenOdd
	case "nonzero":
		return NonZero
	}
	Logger().Debug("unknown fill rule, using nonzero", "rule", s)
	return NonZero
}

// String returns the canvas name of the rule.
func (r WindingRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

func (r WindingRule) raster() raster.FillRule {
	if r == EvenOdd {
		return raster.EvenOdd
	}
	return raster.NonZero
}

func hypot(p Point) float64 { return math.Hypot(p.X, p.Y) }
