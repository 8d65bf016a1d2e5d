// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster converts path geometry into anti-aliased coverage masks.
//
// It works on flattened polylines: curves are subdivided into line
// segments, strokes and dashes are expanded into polygons, and the
// polygons are scan converted with either the nonzero or even-odd rule.
package raster

import "math"

// Point is a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

func (p Point) Sub(q Point) Point   { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Add(q Point) Point   { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Mul(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Normalize returns the unit vector of p, or the zero vector.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Perp returns p rotated by 90 degrees.
func (p Point) Perp() Point { return Point{X: -p.Y, Y: p.X} }

// Tolerance is the default maximum distance between a curve and its
// flattened approximation, in device pixels.
const Tolerance = 0.1

// Element is one drawing command of a path.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

// LineTo draws a straight line.
type LineTo struct{ Point Point }

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct{ Control, Point Point }

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

// Close closes the current subpath.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// Contour is a flattened subpath.
type Contour struct {
	Points []Point
	Closed bool
}

// Flatten converts elements into polylines, one per subpath. Curves are
// subdivided until they deviate less than tolerance from their chords.
func Flatten(elements []Element, tolerance float64) []Contour {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	var (
		contours []Contour
		cur      *Contour
		current  Point
		start    Point
	)
	begin := func(p Point) {
		contours = append(contours, Contour{Points: []Point{p}})
		cur = &contours[len(contours)-1]
	}
	ensure := func() {
		if cur == nil {
			begin(current)
		}
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			current, start = e.Point, e.Point
			begin(current)
		case LineTo:
			ensure()
			cur.Points = append(cur.Points, e.Point)
			current = e.Point
		case QuadTo:
			ensure()
			flattenQuad(current, e.Control, e.Point, tolerance, 0, &cur.Points)
			current = e.Point
		case CubicTo:
			ensure()
			flattenCubic(current, e.Control1, e.Control2, e.Point, tolerance, 0, &cur.Points)
			current = e.Point
		case Close:
			if cur != nil {
				cur.Closed = true
				cur = nil
			}
			current = start
		}
	}
	return contours
}

// Transform applies f to every point of every contour in place.
func Transform(contours []Contour, f func(Point) Point) {
	for i := range contours {
		pts := contours[i].Points
		for j := range pts {
			pts[j] = f(pts[j])
		}
	}
}

const maxDepth = 16

func flattenQuad(p0, p1, p2 Point, tolerance float64, depth int, out *[]Point) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		*out = append(*out, p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	m := q0.Lerp(q1, 0.5)
	flattenQuad(p0, q0, m, tolerance, depth+1, out)
	flattenQuad(m, q1, p2, tolerance, depth+1, out)
}

func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, depth int, out *[]Point) {
	d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || d < tolerance {
		*out = append(*out, p3)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	flattenCubic(p0, q0, r0, s, tolerance, depth+1, out)
	flattenCubic(s, r1, q2, p3, tolerance, depth+1, out)
}

// distanceToLine is the distance from p to segment ab.
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Sub(a).Length()
	case t > 1:
		return p.Sub(b).Length()
	}
	return p.Sub(a.Add(ab.Mul(t))).Length()
}

// Bounds returns the bounding box of all contour points. ok is false when
// there are no points.
func Bounds(contours []Contour) (minP, maxP Point, ok bool) {
	minP = Point{X: math.Inf(1), Y: math.Inf(1)}
	maxP = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, c := range contours {
		for _, p := range c.Points {
			minP.X = math.Min(minP.X, p.X)
			minP.Y = math.Min(minP.Y, p.Y)
			maxP.X = math.Max(maxP.X, p.X)
			maxP.Y = math.Max(maxP.Y, p.Y)
			ok = true
		}
	}
	if !ok {
		return Point{}, Point{}, false
	}
	return minP, maxP, true
}
