package canvas

import (
	"image/color"

	"github.com/gogpu/canvas/csscolor"
)

// PaintStyle is a fill or stroke style: a flat color, a gradient or a
// pattern.
type PaintStyle interface {
	// IsVisible reports whether painting with the style can change any
	// pixel.
	IsVisible() bool
	// ColorAt returns the color at (x, y) in user space.
	ColorAt(x, y float64) color.NRGBA
}

// SolidColor is a flat color paint style.
type SolidColor struct {
	Color color.NRGBA
}

// IsVisible implements PaintStyle.
func (s SolidColor) IsVisible() bool { return s.Color.A != 0 }

// ColorAt implements PaintStyle.
func (s SolidColor) ColorAt(_, _ float64) color.NRGBA { return s.Color }

// String returns the HTML serialization of the color.
func (s SolidColor) String() string { return csscolor.Serialize(s.Color) }

// Black is the default fill, stroke and clear-to-opaque color.
var Black = color.NRGBA{A: 255}

// ColorProperty names the property a color string is parsed for.
type ColorProperty uint8

const (
	FillStyleProperty ColorProperty = iota
	StrokeStyleProperty
	ShadowColorProperty
	ColorStopProperty
)

// ColorParser resolves a CSS color string.
type ColorParser interface {
	ParseColor(s string, prop ColorProperty) (color.NRGBA, bool)
}

// ColorParserFunc adapts a function to ColorParser.
type ColorParserFunc func(s string, prop ColorProperty) (color.NRGBA, bool)

// ParseColor implements ColorParser.
func (f ColorParserFunc) ParseColor(s string, prop ColorProperty) (color.NRGBA, bool) {
	return f(s, prop)
}

// CSSColorParser is the default ColorParser, backed by package csscolor.
var CSSColorParser ColorParser = ColorParserFunc(func(s string, _ ColorProperty) (color.NRGBA, bool) {
	c, err := csscolor.Parse(s)
	return c, err == nil
})

func premultiply(c color.NRGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8((uint32(c.R)*a + 127) / 255),
		G: uint8((uint32(c.G)*a + 127) / 255),
		B: uint8((uint32(c.B)*a + 127) / 255),
		A: c.A,
	}
}

func unpremultiply(c color.RGBA) color.NRGBA {
	switch c.A {
	case 0:
		return color.NRGBA{}
	case 255:
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	a := uint32(c.A)
	return color.NRGBA{
		R: uint8(min(255, (uint32(c.R)*255+a/2)/a)),
		G: uint8(min(255, (uint32(c.G)*255+a/2)/a)),
		B: uint8(min(255, (uint32(c.B)*255+a/2)/a)),
		A: c.A,
	}
}
