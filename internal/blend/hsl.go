package blend

// Non-separable blend modes operate on the whole RGB triplet.

// Lum returns the luminosity of a color: 0.30*r + 0.59*g + 0.11*b.
func Lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns max(r, g, b) - min(r, g, b).
func Sat(r, g, b float32) float32 {
	return max(r, g, b) - min(r, g, b)
}

// ClipColor brings out-of-range components back into [0, 1] while keeping
// the luminosity.
func ClipColor(r, g, b float32) (float32, float32, float32) {
	l := Lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)
	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

// SetLum shifts a color to luminosity l.
func SetLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat rescales a color to saturation s, keeping the component order.
// Gray inputs become black.
func SetSat(r, g, b, s float32) (float32, float32, float32) {
	lo, mid, hi := sortRGB(&r, &g, &b)
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return r, g, b
}

func sortRGB(r, g, b *float32) (lo, mid, hi *float32) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	}
	return b, g, r
}

type hslFunc func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32)

func hslHue(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := SetSat(sr, sg, sb, Sat(dr, dg, db))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

func hslSaturation(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := SetSat(dr, dg, db, Sat(sr, sg, sb))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

func hslColor(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return SetLum(sr, sg, sb, Lum(dr, dg, db))
}

func hslLuminosity(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return SetLum(dr, dg, db, Lum(sr, sg, sb))
}

func nonSeparable(f hslFunc) Func {
	return func(s, d Color) Color {
		sr, sg, sb := unpremultiply(s)
		dr, dg, db := unpremultiply(d)
		r, g, b := f(sr, sg, sb, dr, dg, db)
		return mix(s, d, r, g, b)
	}
}
