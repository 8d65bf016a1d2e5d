package canvas

import (
	"image/color"
	"math"
	"sort"
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  color.NRGBA
}

// gradient holds the color stops shared by every gradient kind. Colors
// are interpolated in premultiplied sRGB and padded past the end stops.
type gradient struct {
	stops  []ColorStop
	parser ColorParser
}

// AddColorStop adds a stop at offset in [0, 1]. Out-of-range offsets are
// an IndexSize error and unparseable colors a Syntax error. Stops with
// equal offsets keep their insertion order.
func (g *gradient) AddColorStop(offset float64, c string) error {
	if math.IsNaN(offset) || offset < 0 || offset > 1 {
		return newDOMError(IndexSizeError, "color stop offset must be between 0 and 1")
	}
	parser := g.parser
	if parser == nil {
		parser = CSSColorParser
	}
	col, ok := parser.ParseColor(c, ColorStopProperty)
	if !ok {
		return newDOMError(SyntaxError, "could not parse color stop "+c)
	}
	g.AddColor(offset, col)
	return nil
}

// AddColor adds a stop with an already resolved color. Offsets are
// clamped to [0, 1].
func (g *gradient) AddColor(offset float64, c color.NRGBA) {
	offset = clamp01(offset)
	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].Offset > offset })
	g.stops = append(g.stops, ColorStop{})
	copy(g.stops[i+1:], g.stops[i:])
	g.stops[i] = ColorStop{Offset: offset, Color: c}
}

// Stops returns a copy of the sorted color stops.
func (g *gradient) Stops() []ColorStop {
	return append([]ColorStop(nil), g.stops...)
}

func (g *gradient) hasStops() bool { return len(g.stops) > 0 }

// colorAt returns the color at gradient position t.
func (g *gradient) colorAt(t float64) color.NRGBA {
	stops := g.stops
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	idx := sort.Search(len(stops), func(i int) bool { return stops[i].Offset > t })
	s1, s2 := stops[idx-1], stops[idx]
	if s2.Offset == s1.Offset {
		return s2.Color
	}
	return lerpPremultiplied(s1.Color, s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}

func lerpPremultiplied(c1, c2 color.NRGBA, t float64) color.NRGBA {
	a1, a2 := float64(c1.A)/255, float64(c2.A)/255
	a := a1 + (a2-a1)*t
	if a <= 0 {
		return color.NRGBA{}
	}
	ch := func(v1, v2 uint8) uint8 {
		p1, p2 := float64(v1)*a1, float64(v2)*a2
		return uint8(math.Round(math.Min(255, (p1+(p2-p1)*t)/a)))
	}
	return color.NRGBA{
		R: ch(c1.R, c2.R),
		G: ch(c1.G, c2.G),
		B: ch(c1.B, c2.B),
		A: uint8(math.Round(a * 255)),
	}
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// LinearGradient interpolates along the line from (X0, Y0) to (X1, Y1).
type LinearGradient struct {
	gradient
	X0, Y0, X1, Y1 float64
}

// NewLinearGradient creates a linear gradient without stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// IsVisible implements PaintStyle. A gradient whose start and end points
// coincide paints nothing.
func (g *LinearGradient) IsVisible() bool {
	return g.hasStops() && (g.X0 != g.X1 || g.Y0 != g.Y1)
}

// ColorAt implements PaintStyle.
func (g *LinearGradient) ColorAt(x, y float64) color.NRGBA {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return color.NRGBA{}
	}
	return g.colorAt(((x-g.X0)*dx + (y-g.Y0)*dy) / l2)
}

// RadialGradient interpolates between the circle (X0, Y0, R0) and the
// circle (X1, Y1, R1).
type RadialGradient struct {
	gradient
	X0, Y0, R0 float64
	X1, Y1, R1 float64
}

// NewRadialGradient creates a two-circle radial gradient. Negative radii
// are an IndexSize error.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*RadialGradient, error) {
	if r0 < 0 || r1 < 0 {
		return nil, newDOMError(IndexSizeError, "the radius provided is negative")
	}
	return &RadialGradient{X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}, nil
}

// IsVisible implements PaintStyle. Identical circles paint nothing.
func (g *RadialGradient) IsVisible() bool {
	return g.hasStops() && (g.X0 != g.X1 || g.Y0 != g.Y1 || g.R0 != g.R1)
}

// ColorAt implements PaintStyle. The position is the largest ω for which
// (x, y) lies on the circle interpolated at ω with a non-negative radius;
// points on no such circle are transparent.
func (g *RadialGradient) ColorAt(x, y float64) color.NRGBA {
	cdx, cdy, dr := g.X1-g.X0, g.Y1-g.Y0, g.R1-g.R0
	pdx, pdy := x-g.X0, y-g.Y0
	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + g.R0*dr
	c := pdx*pdx + pdy*pdy - g.R0*g.R0

	valid := func(w float64) bool { return g.R0+w*dr >= 0 }
	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return color.NRGBA{}
		}
		w := c / (2 * b)
		if !valid(w) {
			return color.NRGBA{}
		}
		return g.colorAt(w)
	}
	disc := b*b - a*c
	if disc < 0 {
		return color.NRGBA{}
	}
	s := math.Sqrt(disc)
	w1, w2 := (b+s)/a, (b-s)/a
	if w1 < w2 {
		w1, w2 = w2, w1
	}
	switch {
	case valid(w1):
		return g.colorAt(w1)
	case valid(w2):
		return g.colorAt(w2)
	}
	return color.NRGBA{}
}

// ConicGradient sweeps clockwise around (X, Y) starting at StartAngle
// radians from the positive x axis.
type ConicGradient struct {
	gradient
	StartAngle, X, Y float64
}

// NewConicGradient creates a conic gradient without stops.
func NewConicGradient(startAngle, x, y float64) *ConicGradient {
	return &ConicGradient{StartAngle: startAngle, X: x, Y: y}
}

// IsVisible implements PaintStyle.
func (g *ConicGradient) IsVisible() bool { return g.hasStops() }

// ColorAt implements PaintStyle.
func (g *ConicGradient) ColorAt(x, y float64) color.NRGBA {
	angle := math.Atan2(y-g.Y, x-g.X) - g.StartAngle
	t := math.Mod(angle/twoPi, 1)
	if t < 0 {
		t++
	}
	return g.colorAt(t)
}
