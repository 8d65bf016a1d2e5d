package canvas

import (
	"image/color"
	"math"
	"slices"

	"github.com/gogpu/canvas/csscolor"
	"github.com/gogpu/canvas/filter"
	"github.com/gogpu/canvas/text"
)

// Setters in this file never fail: invalid input leaves the previous
// value in place.

// SetFillStyle parses a color string and makes it the fill style.
func (c *Context) SetFillStyle(s string) {
	if col, ok := c.opts.colorParser.ParseColor(s, FillStyleProperty); ok {
		c.state().FillStyle = SolidColor{Color: col}
	}
}

// SetFillPaint sets a gradient, pattern or color as the fill style.
func (c *Context) SetFillPaint(p PaintStyle) {
	if p != nil {
		c.state().FillStyle = p
	}
}

// FillStyle returns the fill style.
func (c *Context) FillStyle() PaintStyle { return c.state().FillStyle }

// SetStrokeStyle parses a color string and makes it the stroke style.
func (c *Context) SetStrokeStyle(s string) {
	if col, ok := c.opts.colorParser.ParseColor(s, StrokeStyleProperty); ok {
		c.state().StrokeStyle = SolidColor{Color: col}
	}
}

// SetStrokePaint sets a gradient, pattern or color as the stroke style.
func (c *Context) SetStrokePaint(p PaintStyle) {
	if p != nil {
		c.state().StrokeStyle = p
	}
}

// StrokeStyle returns the stroke style.
func (c *Context) StrokeStyle() PaintStyle { return c.state().StrokeStyle }

// SetGlobalAlpha sets the alpha applied to every draw. Values outside
// [0, 1] are ignored.
func (c *Context) SetGlobalAlpha(a float64) {
	if !finite(a) || a < 0 || a > 1 {
		return
	}
	c.state().GlobalAlpha = a
}

// GlobalAlpha returns the global alpha.
func (c *Context) GlobalAlpha() float64 { return c.state().GlobalAlpha }

// SetGlobalCompositeOperation selects the operator by name. Unknown
// names are ignored.
func (c *Context) SetGlobalCompositeOperation(name string) {
	op, ok := ParseCompositeOperator(name)
	if !ok {
		Logger().Debug("canvas: ignoring unknown composite operation", "name", name)
		return
	}
	c.state().Operator = op
}

// GlobalCompositeOperation returns the operator name.
func (c *Context) GlobalCompositeOperation() string { return c.state().Operator.String() }

// SetShadowOffsetX sets the horizontal shadow offset in device pixels.
func (c *Context) SetShadowOffsetX(v float64) {
	if finite(v) {
		c.state().ShadowOffsetX = v
	}
}

// ShadowOffsetX returns the horizontal shadow offset.
func (c *Context) ShadowOffsetX() float64 { return c.state().ShadowOffsetX }

// SetShadowOffsetY sets the vertical shadow offset in device pixels.
func (c *Context) SetShadowOffsetY(v float64) {
	if finite(v) {
		c.state().ShadowOffsetY = v
	}
}

// ShadowOffsetY returns the vertical shadow offset.
func (c *Context) ShadowOffsetY() float64 { return c.state().ShadowOffsetY }

// SetShadowBlur sets the shadow blur. Negative values are ignored.
func (c *Context) SetShadowBlur(v float64) {
	if finite(v) && v >= 0 {
		c.state().ShadowBlur = v
	}
}

// ShadowBlur returns the shadow blur.
func (c *Context) ShadowBlur() float64 { return c.state().ShadowBlur }

// SetShadowColor parses and sets the shadow color.
func (c *Context) SetShadowColor(s string) {
	if col, ok := c.opts.colorParser.ParseColor(s, ShadowColorProperty); ok {
		c.state().ShadowColor = col
	}
}

// ShadowColor returns the serialized shadow color.
func (c *Context) ShadowColor() string { return csscolor.Serialize(c.state().ShadowColor) }

// SetLineWidth sets the line width. Zero, negative and non-finite values
// are ignored.
func (c *Context) SetLineWidth(w float64) {
	if finite(w) && w > 0 {
		c.state().LineWidth = w
	}
}

// LineWidth returns the line width.
func (c *Context) LineWidth() float64 { return c.state().LineWidth }

// SetLineCap selects the cap by name.
func (c *Context) SetLineCap(name string) {
	if v, ok := ParseLineCap(name); ok {
		c.state().LineCap = v
	}
}

// LineCap returns the cap name.
func (c *Context) LineCap() string { return c.state().LineCap.String() }

// SetLineJoin selects the join by name.
func (c *Context) SetLineJoin(name string) {
	if v, ok := ParseLineJoin(name); ok {
		c.state().LineJoin = v
	}
}

// LineJoin returns the join name.
func (c *Context) LineJoin() string { return c.state().LineJoin.String() }

// SetMiterLimit sets the miter limit. Zero, negative and non-finite values
// are ignored.
func (c *Context) SetMiterLimit(v float64) {
	if finite(v) && v > 0 {
		c.state().MiterLimit = v
	}
}

// MiterLimit returns the miter limit.
func (c *Context) MiterLimit() float64 { return c.state().MiterLimit }

// SetLineDash sets the dash pattern. Lists with a negative or non-finite
// entry are ignored; odd-length lists are repeated to even length.
func (c *Context) SetLineDash(segments []float64) {
	for _, v := range segments {
		if !finite(v) || v < 0 {
			return
		}
	}
	dash := slices.Clone(segments)
	if len(dash)%2 == 1 {
		dash = append(dash, segments...)
	}
	c.state().LineDash = dash
}

// LineDash returns a copy of the dash pattern.
func (c *Context) LineDash() []float64 {
	out := slices.Clone(c.state().LineDash)
	if out == nil {
		out = []float64{}
	}
	return out
}

// SetLineDashOffset sets the dash phase.
func (c *Context) SetLineDashOffset(v float64) {
	if finite(v) {
		c.state().LineDashOffset = v
	}
}

// LineDashOffset returns the dash phase.
func (c *Context) LineDashOffset() float64 { return c.state().LineDashOffset }

// SetImageSmoothingEnabled toggles filtered image sampling.
func (c *Context) SetImageSmoothingEnabled(v bool) { c.state().ImageSmoothing = v }

// ImageSmoothingEnabled reports whether images are sampled with filtering.
func (c *Context) ImageSmoothingEnabled() bool { return c.state().ImageSmoothing }

// SetImageSmoothingQuality selects the quality by name.
func (c *Context) SetImageSmoothingQuality(name string) {
	if q, ok := ParseSmoothingQuality(name); ok {
		c.state().SmoothingQuality = q
	}
}

// ImageSmoothingQuality returns the quality name.
func (c *Context) ImageSmoothingQuality() string { return c.state().SmoothingQuality.String() }

// SetFilter parses a CSS filter list. Unparseable values are ignored.
func (c *Context) SetFilter(s string) {
	f, err := filter.Parse(s)
	if err != nil {
		Logger().Debug("canvas: ignoring filter", "value", s, "error", err)
		return
	}
	if f.IsIdentity() {
		f = nil
	}
	c.state().Filter = f
}

// Filter returns the serialized filter, "none" when unset.
func (c *Context) Filter() string { return c.state().Filter.String() }

// SetTextAlign selects the alignment by name.
func (c *Context) SetTextAlign(name string) {
	if v, ok := ParseTextAlign(name); ok {
		c.state().TextAlign = v
	}
}

// TextAlign returns the alignment name.
func (c *Context) TextAlign() string { return c.state().TextAlign.String() }

// SetTextBaseline selects the baseline by name.
func (c *Context) SetTextBaseline(name string) {
	if v, ok := ParseTextBaseline(name); ok {
		c.state().TextBaseline = v
	}
}

// TextBaseline returns the baseline name.
func (c *Context) TextBaseline() string { return c.state().TextBaseline.String() }

// SetDirection selects the direction by name.
func (c *Context) SetDirection(name string) {
	if v, ok := ParseTextDirection(name); ok {
		c.state().Direction = v
	}
}

// Direction returns the direction name.
func (c *Context) Direction() string { return c.state().Direction.String() }

// SetFont parses a CSS font shorthand. Unparseable values are ignored.
// The font cascade is resolved on first text use.
func (c *Context) SetFont(s string) {
	d, err := text.ParseFont(s)
	if err != nil {
		Logger().Debug("canvas: ignoring font", "value", s, "error", err)
		return
	}
	st := c.state()
	st.Font = d
	st.cascade = nil
}

// Font returns the serialized font.
func (c *Context) Font() string { return c.state().Font.String() }

// fontCascade resolves the current font, falling back to the default
// font when the descriptor matches no face.
func (c *Context) fontCascade() *text.Cascade {
	st := c.state()
	if st.cascade != nil {
		return st.cascade
	}
	cascade, err := c.opts.fonts.Resolve(st.Font)
	if err != nil {
		Logger().Warn("canvas: font resolution failed, using default font", "font", st.Font.String(), "error", err)
		cascade, err = c.opts.fonts.Resolve(text.DefaultDescriptor())
		if err != nil {
			return nil
		}
	}
	st.cascade = cascade
	return cascade
}

// shadowColorAt returns the shadow color with alpha replaced by a.
func shadowColorAt(base color.NRGBA, a float64) color.NRGBA {
	base.A = uint8(math.Round(clamp01(a) * 255))
	return base
}

// CreateLinearGradient returns a linear gradient that parses stop colors
// with the context's color parser.
func (c *Context) CreateLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	g := NewLinearGradient(x0, y0, x1, y1)
	g.parser = c.opts.colorParser
	return g
}

// CreateRadialGradient returns a two-circle radial gradient. Negative
// radii are an IndexSize error.
func (c *Context) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*RadialGradient, error) {
	g, err := NewRadialGradient(x0, y0, r0, x1, y1, r1)
	if err != nil {
		return nil, err
	}
	g.parser = c.opts.colorParser
	return g, nil
}

// CreateConicGradient returns a conic gradient around (x, y).
func (c *Context) CreateConicGradient(startAngle, x, y float64) *ConicGradient {
	g := NewConicGradient(startAngle, x, y)
	g.parser = c.opts.colorParser
	return g
}

// CreatePattern snapshots src into a pattern. It returns nil and no error
// when the source is not ready or unusable.
func (c *Context) CreatePattern(src ImageSource, repetition string) (*Pattern, error) {
	rep, err := ParseRepetition(repetition)
	if err != nil {
		return nil, err
	}
	snap := c.opts.classifier.Classify(src)
	if snap.Usability != Usable || snap.Bitmap == nil {
		return nil, nil
	}
	return NewPattern(snap.Bitmap, rep, snap.OriginClean), nil
}
