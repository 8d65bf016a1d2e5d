// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "math"

// LineCap is the shape at the open ends of a stroked subpath.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape where two stroked segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// StrokeStyle describes the pen used by Stroke.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// Stroke expands the contours into polygons covering the stroked area.
// Every returned polygon winds in the same direction, so the union is
// obtained by filling with the nonzero rule.
func Stroke(contours []Contour, style StrokeStyle, tolerance float64) []Contour {
	if style.Width <= 0 || math.IsNaN(style.Width) || math.IsInf(style.Width, 0) {
		return nil
	}
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	s := stroker{style: style, hw: style.Width / 2, tolerance: tolerance}
	for _, c := range contours {
		s.contour(c)
	}
	return s.out
}

type stroker struct {
	style     StrokeStyle
	hw        float64
	tolerance float64
	out       []Contour
}

func dedupe(c Contour) []Point {
	pts := make([]Point, 0, len(c.Points))
	for _, p := range c.Points {
		if !finite(p) {
			continue
		}
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	if c.Closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func (s *stroker) contour(c Contour) {
	pts := dedupe(c)
	if len(pts) < 2 {
		return
	}
	closed := c.Closed && len(pts) > 2

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		d := b.Sub(a).Normalize()
		if !closed && s.style.Cap == CapSquare {
			if i == 0 {
				a = a.Sub(d.Mul(s.hw))
			}
			if i == segs-1 {
				b = b.Add(d.Mul(s.hw))
			}
		}
		nrm := d.Perp().Mul(s.hw)
		s.emit([]Point{a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)})
	}

	if closed {
		for i := range n {
			prev := pts[(i+n-1)%n]
			s.join(prev, pts[i], pts[(i+1)%n])
		}
		return
	}
	for i := 1; i < n-1; i++ {
		s.join(pts[i-1], pts[i], pts[i+1])
	}
	if s.style.Cap == CapRound {
		s.emit(s.circle(pts[0]))
		s.emit(s.circle(pts[n-1]))
	}
}

func (s *stroker) join(prev, v, next Point) {
	d0 := v.Sub(prev).Normalize()
	d1 := next.Sub(v).Normalize()
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)
	if math.Abs(cross) < 1e-12 && dot > 0 {
		return
	}
	if s.style.Join == JoinRound {
		s.emit(s.circle(v))
		return
	}
	side := 1.0
	if cross > 0 {
		side = -1
	}
	o0 := d0.Perp().Mul(s.hw * side)
	o1 := d1.Perp().Mul(s.hw * side)
	if s.style.Join == JoinMiter {
		half := math.Sqrt((1 + dot) / 2)
		if half > 1e-12 {
			ratio := 1 / half
			if ratio <= s.style.MiterLimit {
				tip := v.Add(o0.Add(o1).Normalize().Mul(s.hw * ratio))
				s.emit([]Point{v, v.Add(o0), tip, v.Add(o1)})
				return
			}
		}
	}
	s.emit([]Point{v, v.Add(o0), v.Add(o1)})
}

// circle approximates a disc of radius hw around c.
func (s *stroker) circle(c Point) []Point {
	n := 8
	if s.hw > s.tolerance {
		step := 2 * math.Acos(1-s.tolerance/s.hw)
		if step > 0 {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}
	n = min(n, 256)
	pts := make([]Point, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: c.X + s.hw*math.Cos(a), Y: c.Y + s.hw*math.Sin(a)}
	}
	return pts
}

func (s *stroker) emit(poly []Point) {
	area := SignedArea(poly)
	if area == 0 {
		return
	}
	if area < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	s.out = append(s.out, Contour{Points: poly, Closed: true})
}

// SignedArea is the shoelace area of a closed polygon.
func SignedArea(poly []Point) float64 {
	var a float64
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		a += p.Cross(q)
	}
	return a / 2
}
