package canvas

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/canvas/text"
)

// PreparedText is shaped text laid out from the origin on the baseline.
type PreparedText struct {
	Runs        []text.GlyphRun
	BoundingBox Rect
	// PixelSize is the largest face size of any run.
	PixelSize float64
}

// TextMetrics describes the extent of measured text, in CSS pixels,
// relative to the alignment point.
type TextMetrics struct {
	Width                    float64
	ActualBoundingBoxLeft    float64
	ActualBoundingBoxRight   float64
	FontBoundingBoxAscent    float64
	FontBoundingBoxDescent   float64
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64
	EmHeightAscent           float64
	EmHeightDescent          float64
	HangingBaseline          float64
	// AlphabeticBaseline and IdeographicBaseline are reported as zero.
	AlphabeticBaseline  float64
	IdeographicBaseline float64
}

var asciiSpace = strings.NewReplacer("\t", " ", "\n", " ", "\f", " ", "\r", " ")

// PrepareText shapes s with the current font. A maxWidth that is not
// positive yields an empty result.
func (c *Context) PrepareText(s string, maxWidth float64) PreparedText {
	if math.IsNaN(maxWidth) || maxWidth <= 0 {
		return PreparedText{}
	}
	s = asciiSpace.Replace(s)
	cascade := c.fontCascade()
	if cascade == nil {
		return PreparedText{}
	}
	runs := c.opts.shaper.Shape(s, cascade, c.textDirection(s))
	var out PreparedText
	out.Runs = runs
	var width float64
	for _, r := range runs {
		width += r.Width
		if r.Face != nil {
			out.PixelSize = math.Max(out.PixelSize, r.Face.Size())
		}
	}
	out.BoundingBox = Rect{W: width, H: out.PixelSize}
	return out
}

// textDirection resolves the direction attribute. Inherit takes the
// direction of the first strong character and defaults to left to right.
func (c *Context) textDirection(s string) text.Direction {
	switch c.state().Direction {
	case DirectionLTR:
		return text.LTR
	case DirectionRTL:
		return text.RTL
	}
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return text.LTR
		case bidi.R, bidi.AL:
			return text.RTL
		}
	}
	return text.LTR
}

// TextPath returns the glyph outlines of s positioned at (x, y) under the
// current alignment and baseline. Text wider than maxWidth is squeezed
// horizontally.
func (c *Context) TextPath(s string, x, y, maxWidth float64) *Path {
	prepared := c.PrepareText(s, maxWidth)
	glyphs := NewPath()
	for _, run := range prepared.Runs {
		if run.Face == nil {
			continue
		}
		for _, g := range run.Glyphs {
			segs, err := run.Face.Outline(g.ID)
			if err != nil {
				Logger().Debug("canvas: glyph outline unavailable", "glyph", g.ID, "error", err)
				continue
			}
			glyphs.appendGlyph(segs, run.X+g.X, g.Y)
		}
	}

	width := prepared.BoundingBox.W
	squeeze := 1.0
	if width > maxWidth {
		squeeze = maxWidth / width
		width = maxWidth
	}

	st := c.state()
	rtl := c.textDirection(s) == text.RTL
	var dx float64
	switch st.TextAlign {
	case TextAlignCenter:
		dx = -width / 2
	case TextAlignStart:
		if rtl {
			dx = -width
		}
	case TextAlignEnd:
		if !rtl {
			dx = -width
		}
	case TextAlignRight:
		dx = -width
	}
	var dy float64
	switch st.TextBaseline {
	case TextBaselineTop, TextBaselineHanging:
		dy = prepared.PixelSize
	case TextBaselineMiddle:
		dy = prepared.PixelSize / 2
	}

	m := Translate(x, y).Multiply(Translate(dx, dy)).Multiply(Scale(squeeze, 1))
	return glyphs.Transform(m)
}

// FillText fills s at (x, y).
func (c *Context) FillText(s string, x, y float64) {
	c.fillText(s, x, y, math.Inf(1))
}

// FillTextMaxWidth fills s at (x, y), squeezed to at most maxWidth. A
// non-finite maxWidth draws nothing.
func (c *Context) FillTextMaxWidth(s string, x, y, maxWidth float64) {
	if !finite(maxWidth) {
		return
	}
	c.fillText(s, x, y, maxWidth)
}

func (c *Context) fillText(s string, x, y, maxWidth float64) {
	if !finite(x, y) {
		return
	}
	c.fillInternal(c.TextPath(s, x, y, maxWidth), NonZero)
}

// StrokeText strokes s at (x, y).
func (c *Context) StrokeText(s string, x, y float64) {
	c.strokeText(s, x, y, math.Inf(1))
}

// StrokeTextMaxWidth strokes s at (x, y), squeezed to at most maxWidth. A
// non-finite maxWidth draws nothing.
func (c *Context) StrokeTextMaxWidth(s string, x, y, maxWidth float64) {
	if !finite(maxWidth) {
		return
	}
	c.strokeText(s, x, y, maxWidth)
}

func (c *Context) strokeText(s string, x, y, maxWidth float64) {
	if !finite(x, y) {
		return
	}
	c.strokeInternal(c.TextPath(s, x, y, maxWidth))
}

// MeasureText returns the metrics of s in the current font.
func (c *Context) MeasureText(s string) TextMetrics {
	prepared := c.PrepareText(s, math.Inf(1))
	var baseline float64
	if face := c.fontCascade().First(); face != nil {
		baseline = face.Baseline()
	}
	bb := prepared.BoundingBox
	below := bb.H - baseline
	return TextMetrics{
		Width:                    bb.W,
		ActualBoundingBoxLeft:    -bb.Left(),
		ActualBoundingBoxRight:   bb.Right(),
		FontBoundingBoxAscent:    baseline,
		FontBoundingBoxDescent:   below,
		ActualBoundingBoxAscent:  baseline,
		ActualBoundingBoxDescent: below,
		EmHeightAscent:           baseline,
		EmHeightDescent:          below,
		HangingBaseline:          baseline,
	}
}
