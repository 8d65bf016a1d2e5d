// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"math"
	"testing"
)

func rect(x0, y0, x1, y1 float64) Contour {
	return Contour{Points: []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, Closed: true}
}

func TestFillAxisAlignedRect(t *testing.T) {
	m := Fill([]Contour{rect(2, 1, 6, 4)}, NonZero, 8, 8)

	for y := range 8 {
		for x := range 8 {
			want := float32(0)
			if x >= 2 && x < 6 && y >= 1 && y < 4 {
				want = 1
			}
			if got := m.At(x, y); got != want {
				t.Fatalf("At(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if m.MinX != 2 || m.MaxX != 6 || m.MinY != 1 || m.MaxY != 4 {
		t.Errorf("bounds = [%d,%d)x[%d,%d), want [2,6)x[1,4)", m.MinX, m.MaxX, m.MinY, m.MaxY)
	}
}

func TestFillPartialCoverage(t *testing.T) {
	m := Fill([]Contour{rect(0.5, 0, 1.5, 1)}, NonZero, 4, 1)

	for x, want := range []float32{0.5, 0.5, 0, 0} {
		if got := m.At(x, 0); math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("At(%d,0) = %v, want %v", x, got, want)
		}
	}
}

func TestFillCoverageStaysInRange(t *testing.T) {
	contours := []Contour{rect(0.25, 0.25, 3.75, 3.75), rect(0.25, 0.25, 3.75, 3.75), rect(1.1, 0, 1.9, 4)}
	for _, rule := range []FillRule{NonZero, EvenOdd} {
		m := Fill(contours, rule, 4, 4)
		for i, v := range m.Cover {
			if v < 0 || v > 1 {
				t.Fatalf("rule %d: Cover[%d] = %v, want within [0, 1]", rule, i, v)
			}
		}
	}
}

func TestFillRules(t *testing.T) {
	// Two nested squares with the same orientation: winding 2 in the middle.
	shape := []Contour{rect(0, 0, 10, 10), rect(3, 3, 7, 7)}

	tests := []struct {
		name string
		rule FillRule
		want float32
	}{
		{"nonzero fills the hole", NonZero, 1},
		{"evenodd leaves the hole", EvenOdd, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Fill(shape, tt.rule, 10, 10)
			if got := m.At(5, 5); got != tt.want {
				t.Errorf("center = %v, want %v", got, tt.want)
			}
			if got := m.At(1, 1); got != 1 {
				t.Errorf("ring = %v, want 1", got)
			}
		})
	}
}

func TestFillOutsideSurface(t *testing.T) {
	m := Fill([]Contour{rect(-20, -20, -10, -10)}, NonZero, 4, 4)
	if !m.Empty() {
		t.Errorf("mask should be empty, bounds [%d,%d)x[%d,%d)", m.MinX, m.MaxX, m.MinY, m.MaxY)
	}
}

func TestContains(t *testing.T) {
	shape := []Contour{rect(0, 0, 10, 10), rect(3, 3, 7, 7)}

	tests := []struct {
		p    Point
		rule FillRule
		want bool
	}{
		{Point{1, 1}, NonZero, true},
		{Point{5, 5}, NonZero, true},
		{Point{5, 5}, EvenOdd, false},
		{Point{11, 5}, NonZero, false},
		{Point{-1, 5}, EvenOdd, false},
	}
	for _, tt := range tests {
		if got := Contains(shape, tt.p, tt.rule); got != tt.want {
			t.Errorf("Contains(%v, %d) = %v, want %v", tt.p, tt.rule, got, tt.want)
		}
	}
}

func TestMaskIntersect(t *testing.T) {
	a := Fill([]Contour{rect(0, 0, 4, 4)}, NonZero, 8, 8)
	b := Fill([]Contour{rect(2, 2, 8, 8)}, NonZero, 8, 8)
	m := a.Intersect(b)

	if got := m.At(3, 3); got != 1 {
		t.Errorf("overlap = %v, want 1", got)
	}
	if got := m.At(1, 1); got != 0 {
		t.Errorf("a only = %v, want 0", got)
	}
	if got := m.At(5, 5); got != 0 {
		t.Errorf("b only = %v, want 0", got)
	}
	if m.MinX != 2 || m.MaxX != 4 {
		t.Errorf("x bounds = [%d,%d), want [2,4)", m.MinX, m.MaxX)
	}
}

func TestFlattenCurves(t *testing.T) {
	elems := []Element{
		MoveTo{Point{0, 0}},
		QuadTo{Point{50, 100}, Point{100, 0}},
		CubicTo{Point{100, 50}, Point{0, 50}, Point{0, 0}},
		Close{},
	}
	cs := Flatten(elems, 0.1)
	if len(cs) != 1 {
		t.Fatalf("got %d contours, want 1", len(cs))
	}
	if !cs[0].Closed {
		t.Error("contour should be closed")
	}
	if n := len(cs[0].Points); n < 10 {
		t.Errorf("curves flattened to %d points, want a finer polyline", n)
	}
	last := cs[0].Points[len(cs[0].Points)-1]
	if last != (Point{0, 0}) {
		t.Errorf("last point = %v, want origin", last)
	}
}

func TestFlattenLineWithoutMove(t *testing.T) {
	cs := Flatten([]Element{LineTo{Point{5, 5}}}, 0)
	if len(cs) != 1 || len(cs[0].Points) != 2 {
		t.Fatalf("got %+v", cs)
	}
	if cs[0].Points[0] != (Point{}) {
		t.Errorf("implicit start = %v, want origin", cs[0].Points[0])
	}
}
