// Package blend implements Porter-Duff compositing and the W3C blend modes
// on premultiplied RGBA colors.
//
// Colors are normalized float32 values in [0, 1] with color channels
// already multiplied by alpha.
package blend

// Color is a premultiplied RGBA color.
type Color struct {
	R, G, B, A float32
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Lerp interpolates from c to d.
func (c Color) Lerp(d Color, t float32) Color {
	return Color{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// Mode selects a compositing operator or blend mode.
type Mode uint8

const (
	Normal Mode = iota
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	ColorMode
	Luminosity
	Clear
	Copy
	SourceOver
	DestinationOver
	SourceIn
	DestinationIn
	SourceOut
	DestinationOut
	SourceAtop
	DestinationAtop
	Xor
	Lighter
	PlusDarker
	PlusLighter
)

// Func composites src onto dst.
type Func func(src, dst Color) Color

// Lookup returns the compositing function for m. Unknown modes fall back
// to source-over.
func Lookup(m Mode) Func {
	switch m {
	case Clear:
		return clearColor
	case Copy:
		return copySrc
	case Normal, SourceOver:
		return sourceOver
	case DestinationOver:
		return destinationOver
	case SourceIn:
		return sourceIn
	case DestinationIn:
		return destinationIn
	case SourceOut:
		return sourceOut
	case DestinationOut:
		return destinationOut
	case SourceAtop:
		return sourceAtop
	case DestinationAtop:
		return destinationAtop
	case Xor:
		return xor
	case Lighter, PlusLighter:
		return plusLighter
	case PlusDarker:
		return plusDarker
	case Hue:
		return nonSeparable(hslHue)
	case Saturation:
		return nonSeparable(hslSaturation)
	case ColorMode:
		return nonSeparable(hslColor)
	case Luminosity:
		return nonSeparable(hslLuminosity)
	}
	if f, ok := separableFuncs[m]; ok {
		return separable(f)
	}
	return sourceOver
}

// Unbounded reports whether m alters the destination where the source is
// transparent. Such operators apply to the whole clip region rather than
// only to the painted shape.
func Unbounded(m Mode) bool {
	switch m {
	case Clear, Copy, SourceIn, SourceOut, DestinationIn, DestinationAtop:
		return true
	}
	return false
}

func clampUnit(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
