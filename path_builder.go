// path_builder.go

package canvas

import "math"

const twoPi = 2 * math.Pi

// Arc adds a circular arc around (x, y) from startAngle to endAngle, in
// radians measured clockwise from the positive x axis on a y-down surface.
// A line joins the current point to the arc start. A negative radius is
// an IndexSize error.
func (p *Path) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) error {
	return p.Ellipse(x, y, radius, radius, 0, startAngle, endAngle, counterclockwise)
}

// Ellipse adds an elliptical arc with radii rx, ry rotated by rotation
// around (x, y). Negative radii are an IndexSize error.
func (p *Path) Ellipse(x, y, rx, ry, rotation, startAngle, endAngle float64, counterclockwise bool) error {
	if !finite(x, y, rx, ry, rotation, startAngle, endAngle) {
		return nil
	}
	if rx < 0 || ry < 0 {
		return newDOMError(IndexSizeError, "the radius provided is negative")
	}
	sweep := arcSweep(startAngle, endAngle, counterclockwise)

	sin, cos := math.Sincos(rotation)
	at := func(ux, uy float64) Point {
		px, py := ux*rx, uy*ry
		return Pt(x+px*cos-py*sin, y+px*sin+py*cos)
	}
	start := at(math.Cos(startAngle), math.Sin(startAngle))
	if p.hasCurrent {
		p.lineTo(start)
	} else {
		p.moveTo(start)
	}
	if sweep == 0 {
		return nil
	}

	// At most a quarter turn per cubic segment.
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	alpha := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3
	a1 := startAngle
	for i := 0; i < n; i++ {
		a2 := a1 + step
		sin1, cos1 := math.Sincos(a1)
		sin2, cos2 := math.Sincos(a2)
		p.cubicTo(
			at(cos1-alpha*sin1, sin1+alpha*cos1),
			at(cos2+alpha*sin2, sin2-alpha*cos2),
			at(cos2, sin2),
		)
		a1 = a2
	}
	return nil
}

// arcSweep returns the signed angle swept from start to end. Sweeps of a
// full turn or more in the drawing direction are clamped to one turn.
func arcSweep(start, end float64, ccw bool) float64 {
	if !ccw {
		if end-start >= twoPi {
			return twoPi
		}
		d := math.Mod(end-start, twoPi)
		if d < 0 {
			d += twoPi
		}
		return d
	}
	if start-end >= twoPi {
		return -twoPi
	}
	d := math.Mod(start-end, twoPi)
	if d < 0 {
		d += twoPi
	}
	return -d
}

// ArcTo adds an arc of the given radius tangent to the lines from the
// current point to (x1, y1) and from (x1, y1) to (x2, y2), joined to the
// current point by a straight line.
func (p *Path) ArcTo(x1, y1, x2, y2, radius float64) error {
	if !finite(x1, y1, x2, y2, radius) {
		return nil
	}
	if radius < 0 {
		return newDOMError(IndexSizeError, "the radius provided is negative")
	}
	p1, p2 := Pt(x1, y1), Pt(x2, y2)
	p.ensureSubpath(p1)
	p0 := p.current

	v1, v2 := p0.Sub(p1), p2.Sub(p1)
	l1, l2 := hypot(v1), hypot(v2)
	cross := v1.X*v2.Y - v1.Y*v2.X
	if p0 == p1 || p1 == p2 || radius == 0 || l1 == 0 || l2 == 0 || math.Abs(cross) < 1e-12*l1*l2 {
		p.lineTo(p1)
		return nil
	}
	v1, v2 = v1.Mul(1/l1), v2.Mul(1/l2)
	theta := math.Acos(math.Max(-1, math.Min(1, v1.X*v2.X+v1.Y*v2.Y)))
	dist := radius / math.Tan(theta/2)
	t1 := p1.Add(v1.Mul(dist))
	t2 := p1.Add(v2.Mul(dist))
	bis := v1.Add(v2)
	center := p1.Add(bis.Mul(radius / math.Sin(theta/2) / hypot(bis)))

	a0 := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	a1 := math.Atan2(t2.Y-center.Y, t2.X-center.X)
	d := a1 - a0
	for d > math.Pi {
		d -= twoPi
	}
	for d < -math.Pi {
		d += twoPi
	}
	return p.Arc(center.X, center.Y, radius, a0, a0+d, d < 0)
}

// RoundRect adds a rounded rectangle. radii takes one to four values in
// CSS border-radius order (top-left, top-right, bottom-right,
// bottom-left). Negative radii or a wrong count are an IndexSize error.
func (p *Path) RoundRect(x, y, w, h float64, radii ...float64) error {
	if !finite(x, y, w, h) || !finite(radii...) {
		return nil
	}
	if len(radii) == 0 || len(radii) > 4 {
		return newDOMError(IndexSizeError, "radii must have between 1 and 4 values")
	}
	for _, r := range radii {
		if r < 0 {
			return newDOMError(IndexSizeError, "the radius provided is negative")
		}
	}
	var tl, tr, br, bl float64
	switch len(radii) {
	case 1:
		tl, tr, br, bl = radii[0], radii[0], radii[0], radii[0]
	case 2:
		tl, tr, br, bl = radii[0], radii[1], radii[0], radii[1]
	case 3:
		tl, tr, br, bl = radii[0], radii[1], radii[2], radii[1]
	default:
		tl, tr, br, bl = radii[0], radii[1], radii[2], radii[3]
	}
	// Mirror the corners so the rectangle runs over positive extents.
	if w < 0 {
		x, w = x+w, -w
		tl, tr = tr, tl
		bl, br = br, bl
	}
	if h < 0 {
		y, h = y+h, -h
		tl, bl = bl, tl
		tr, br = br, tr
	}
	scale := 1.0
	for _, pair := range [][3]float64{{tl, tr, w}, {bl, br, w}, {tl, bl, h}, {tr, br, h}} {
		if sum := pair[0] + pair[1]; sum > pair[2] && sum > 0 {
			scale = math.Min(scale, pair[2]/sum)
		}
	}
	tl, tr, br, bl = tl*scale, tr*scale, br*scale, bl*scale

	p.moveTo(Pt(x+tl, y))
	p.lineTo(Pt(x+w-tr, y))
	_ = p.Arc(x+w-tr, y+tr, tr, -math.Pi/2, 0, false)
	p.lineTo(Pt(x+w, y+h-br))
	_ = p.Arc(x+w-br, y+h-br, br, 0, math.Pi/2, false)
	p.lineTo(Pt(x+bl, y+h))
	_ = p.Arc(x+bl, y+h-bl, bl, math.Pi/2, math.Pi, false)
	p.lineTo(Pt(x, y+tl))
	_ = p.Arc(x+tl, y+tl, tl, math.Pi, 3*math.Pi/2, false)
	p.ClosePath()
	p.moveTo(Pt(x, y))
	return nil
}

// PathBuilder provides a fluent interface for path construction.
// All methods return the builder for chaining. Argument errors from arcs
// and rounded rectangles are kept and reported by Err.
type PathBuilder struct {
	path *Path
	err  error
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// MoveTo moves to a new position.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.path.MoveTo(x, y)
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.path.LineTo(x, y)
	return b
}

// QuadTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.path.QuadraticCurveTo(cx, cy, x, y)
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.path.BezierCurveTo(c1x, c1y, c2x, c2y, x, y)
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.path.ClosePath()
	return b
}

// Rect adds a rectangle to the path.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	b.path.Rect(x, y, w, h)
	return b
}

// Arc adds a circular arc.
func (b *PathBuilder) Arc(x, y, r, start, end float64, ccw bool) *PathBuilder {
	b.keep(b.path.Arc(x, y, r, start, end, ccw))
	return b
}

// Circle adds a full circle as its own closed subpath.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	b.path.MoveTo(cx+r, cy)
	b.keep(b.path.Arc(cx, cy, r, 0, twoPi, false))
	b.path.ClosePath()
	return b
}

// RoundRect adds a rounded rectangle to the path.
func (b *PathBuilder) RoundRect(x, y, w, h float64, radii ...float64) *PathBuilder {
	b.keep(b.path.RoundRect(x, y, w, h, radii...))
	return b
}

func (b *PathBuilder) keep(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first argument error recorded while building.
func (b *PathBuilder) Err() error { return b.err }

// Build returns the constructed path.
func (b *PathBuilder) Build() *Path {
	return b.path
}
