package blend

import "github.com/chewxy/math32"

// separableFunc blends one unpremultiplied channel: cb is the backdrop,
// cs the source.
type separableFunc func(cb, cs float32) float32

var separableFuncs = map[Mode]separableFunc{
	Multiply:   func(cb, cs float32) float32 { return cb * cs },
	Screen:     screen,
	Overlay:    func(cb, cs float32) float32 { return hardLight(cs, cb) },
	Darken:     func(cb, cs float32) float32 { return math32.Min(cb, cs) },
	Lighten:    func(cb, cs float32) float32 { return math32.Max(cb, cs) },
	ColorDodge: colorDodge,
	ColorBurn:  colorBurn,
	HardLight:  hardLight,
	SoftLight:  softLight,
	Difference: func(cb, cs float32) float32 { return math32.Abs(cb - cs) },
	Exclusion:  func(cb, cs float32) float32 { return cb + cs - 2*cb*cs },
}

func screen(cb, cs float32) float32 { return cb + cs - cb*cs }

func hardLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	return screen(cb, 2*cs-1)
}

func colorDodge(cb, cs float32) float32 {
	switch {
	case cb == 0:
		return 0
	case cs >= 1:
		return 1
	}
	return math32.Min(1, cb/(1-cs))
}

func colorBurn(cb, cs float32) float32 {
	switch {
	case cb >= 1:
		return 1
	case cs <= 0:
		return 0
	}
	return 1 - math32.Min(1, (1-cb)/cs)
}

func softLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float32
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math32.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func unpremultiply(c Color) (r, g, b float32) {
	if c.A <= 0 {
		return 0, 0, 0
	}
	return c.R / c.A, c.G / c.A, c.B / c.A
}

// mix applies the general compositing formula for a blended color
// (br, bg, bb) as source-over.
func mix(s, d Color, br, bg, bb float32) Color {
	ks, kd, both := 1-d.A, 1-s.A, s.A*d.A
	return Color{
		R: clampUnit(s.R*ks + d.R*kd + both*br),
		G: clampUnit(s.G*ks + d.G*kd + both*bg),
		B: clampUnit(s.B*ks + d.B*kd + both*bb),
		A: s.A + d.A - s.A*d.A,
	}
}

func separable(f separableFunc) Func {
	return func(s, d Color) Color {
		sr, sg, sb := unpremultiply(s)
		dr, dg, db := unpremultiply(d)
		return mix(s, d, f(dr, sr), f(dg, sg), f(db, sb))
	}
}
