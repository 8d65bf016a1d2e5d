// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"math"
	"slices"
)

// FillRule selects how winding numbers map to inside/outside.
type FillRule uint8

const (
	// NonZero treats any non-zero winding number as inside.
	NonZero FillRule = iota
	// EvenOdd treats odd winding numbers as inside.
	EvenOdd
)

func (r FillRule) inside(winding int) bool {
	if r == EvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// subSamples is the number of sample rows per pixel row. A power of two
// keeps fully covered pixels at exactly 1.
const subSamples = 16

type edge struct {
	x0, y0, x1, y1 float64
	dir            int
}

type crossing struct {
	x   float64
	dir int
}

// buildEdges collects the non-horizontal edges of all contours. Every
// contour is implicitly closed.
func buildEdges(contours []Contour) []edge {
	var edges []edge
	for _, c := range contours {
		n := len(c.Points)
		if n < 2 {
			continue
		}
		for i := range n {
			p0 := c.Points[i]
			p1 := c.Points[(i+1)%n]
			if p0.Y == p1.Y || !finite(p0) || !finite(p1) {
				continue
			}
			e := edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y, dir: 1}
			if p0.Y > p1.Y {
				e = edge{x0: p1.X, y0: p1.Y, x1: p0.X, y1: p0.Y, dir: -1}
			}
			edges = append(edges, e)
		}
	}
	return edges
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (e edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
}

// Fill scan converts the contours into a width x height coverage mask.
func Fill(contours []Contour, rule FillRule, width, height int) *Mask {
	m := NewMask(width, height)
	edges := buildEdges(contours)
	if len(edges) == 0 || width <= 0 || height <= 0 {
		return m
	}
	slices.SortFunc(edges, func(a, b edge) int {
		switch {
		case a.y0 < b.y0:
			return -1
		case a.y0 > b.y0:
			return 1
		}
		return 0
	})

	yMin, yMax := edges[0].y0, edges[0].y1
	for _, e := range edges {
		yMax = math.Max(yMax, e.y1)
	}
	rowStart := max(0, int(math.Floor(yMin)))
	rowEnd := min(height, int(math.Ceil(yMax)))

	const weight = 1.0 / subSamples
	var (
		active    []edge
		crossings []crossing
		next      int
	)
	for y := rowStart; y < rowEnd; y++ {
		for s := range subSamples {
			sy := float64(y) + (float64(s)+0.5)/subSamples
			for next < len(edges) && edges[next].y0 <= sy {
				active = append(active, edges[next])
				next++
			}
			active = slices.DeleteFunc(active, func(e edge) bool { return e.y1 <= sy })

			crossings = crossings[:0]
			for _, e := range active {
				if e.y0 <= sy && sy < e.y1 {
					crossings = append(crossings, crossing{x: e.xAt(sy), dir: e.dir})
				}
			}
			if len(crossings) < 2 {
				continue
			}
			slices.SortFunc(crossings, func(a, b crossing) int {
				switch {
				case a.x < b.x:
					return -1
				case a.x > b.x:
					return 1
				}
				return 0
			})

			winding := 0
			var spanStart float64
			for _, c := range crossings {
				was := rule.inside(winding)
				winding += c.dir
				now := rule.inside(winding)
				switch {
				case !was && now:
					spanStart = c.x
				case was && !now:
					m.addSpan(y, spanStart, c.x, weight)
				}
			}
		}
	}
	m.clamp()
	return m
}

// addSpan adds w times the horizontal overlap of [xa, xb) to row y.
func (m *Mask) addSpan(y int, xa, xb float64, w float32) {
	xa = math.Max(xa, 0)
	xb = math.Min(xb, float64(m.Width))
	if xb <= xa {
		return
	}
	ia := int(math.Floor(xa))
	ib := int(math.Floor(xb))
	if ia == ib {
		m.add(ia, y, float32(xb-xa)*w)
		m.grow(ia, y, ia+1)
		return
	}
	m.add(ia, y, float32(float64(ia+1)-xa)*w)
	for x := ia + 1; x < ib; x++ {
		m.add(x, y, w)
	}
	end := ib
	if ib < m.Width && xb > float64(ib) {
		m.add(ib, y, float32(xb-float64(ib))*w)
		end = ib + 1
	}
	m.grow(ia, y, end)
}

// Contains reports whether p lies inside the contours under rule.
func Contains(contours []Contour, p Point, rule FillRule) bool {
	winding := 0
	for _, e := range buildEdges(contours) {
		if e.y0 <= p.Y && p.Y < e.y1 && e.xAt(p.Y) <= p.X {
			winding += e.dir
		}
	}
	return rule.inside(winding)
}
